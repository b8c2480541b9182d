package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/model"
)

// MemoryConversationRepository is a process-local ConversationRepository.
// It backs tests and local runs without a Redis instance; history is lost on
// restart.
type MemoryConversationRepository struct {
	mu       sync.RWMutex
	messages map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{messages: make(map[string][]*schema.Message)}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, conversationID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[conversationID] = append(r.messages[conversationID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.messages[conversationID]
	msgs := make([]*schema.Message, len(stored))
	copy(msgs, stored)
	return &model.ConversationHistory{ConversationID: conversationID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, conversationID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(_ context.Context, conversationID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages[conversationID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)

// MemoryLocationRepository is a process-local LocationRepository with
// last-write-wins semantics.
type MemoryLocationRepository struct {
	mu     sync.RWMutex
	coords map[string]model.Coordinates
}

func NewMemoryLocationRepository() *MemoryLocationRepository {
	return &MemoryLocationRepository{coords: make(map[string]model.Coordinates)}
}

func (r *MemoryLocationRepository) Save(_ context.Context, userID string, coords model.Coordinates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coords[userID] = coords
	return nil
}

func (r *MemoryLocationRepository) Load(_ context.Context, userID string) (*model.Coordinates, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coords[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryLocationRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coords, userID)
	return nil
}

var _ model.LocationRepository = (*MemoryLocationRepository)(nil)
