package conversations

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/repo"
)

func TestMessagesManagerRoundTrip(t *testing.T) {
	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryConversationRepository())

	if err := mm.SaveUserMessage(ctx, "chat-1", "what should I eat tonight?"); err != nil {
		t.Fatalf("SaveUserMessage returned error: %v", err)
	}
	if err := mm.SaveResponse(ctx, "chat-1", "Try the seafood at the harbour!"); err != nil {
		t.Fatalf("SaveResponse returned error: %v", err)
	}
	if err := mm.SaveUserMessage(ctx, "chat-1", "anything vegetarian?"); err != nil {
		t.Fatalf("SaveUserMessage returned error: %v", err)
	}

	messages, err := mm.BuildResponseContext(ctx, "chat-1", "you are a guide")
	if err != nil {
		t.Fatalf("BuildResponseContext returned error: %v", err)
	}

	if len(messages) != 4 {
		t.Fatalf("got %d messages, want 4 (system + 3 turns)", len(messages))
	}
	if messages[0].Role != schema.System || messages[0].Content != "you are a guide" {
		t.Errorf("messages[0] = %+v, want the system prompt first", messages[0])
	}
	wantRoles := []schema.RoleType{schema.System, schema.User, schema.Assistant, schema.User}
	for i, want := range wantRoles {
		if messages[i].Role != want {
			t.Errorf("messages[%d].Role = %v, want %v", i, messages[i].Role, want)
		}
	}
	if messages[3].Content != "anything vegetarian?" {
		t.Errorf("latest user message = %q, want the current query last", messages[3].Content)
	}
}

func TestMessagesManagerEmptyConversation(t *testing.T) {
	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryConversationRepository())

	messages, err := mm.BuildResponseContext(ctx, "fresh-chat", "system prompt")
	if err != nil {
		t.Fatalf("BuildResponseContext returned error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages for empty conversation, want only the system prompt", len(messages))
	}
}
