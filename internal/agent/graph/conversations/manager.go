package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/model"
)

// MessagesManager mediates between the graph and the conversation store.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
}

func NewMessagesManager(conversationRepo model.ConversationRepository) *MessagesManager {
	return &MessagesManager{conversationRepo: conversationRepo}
}

// SaveUserMessage appends the (possibly location-enriched) user query to the
// conversation history before the model sees it.
func (mm *MessagesManager) SaveUserMessage(ctx context.Context, conversationID string, query string) error {
	return mm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query))
}

// BuildResponseContext assembles the model input: the system prompt followed
// by the stored conversation history (which already includes the current
// user message).
func (mm *MessagesManager) BuildResponseContext(ctx context.Context, conversationID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := mm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
	}
	messages = append(messages, history.Messages...)

	return messages, nil
}

// SaveResponse persists the assistant's final content message.
func (mm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return mm.conversationRepo.AddMessage(ctx, conversationID, assistantMsg)
}
