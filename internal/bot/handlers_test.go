package bot

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/repo"
)

func newTestHandlers() *Handlers {
	return &Handlers{
		conversations: repo.NewMemoryConversationRepository(),
		locations:     repo.NewMemoryLocationRepository(),
		cityName:      "Kochi",
	}
}

func TestEnrichQueryWithoutStoredLocation(t *testing.T) {
	h := newTestHandlers()

	got := h.enrichQuery(context.Background(), 42, "any good restaurants nearby?")
	if got != "any good restaurants nearby?" {
		t.Errorf("enrichQuery = %q, want the bare text when no location is stored", got)
	}
}

func TestEnrichQueryPrefixesStoredLocation(t *testing.T) {
	ctx := context.Background()
	h := newTestHandlers()

	if err := h.rememberLocation(ctx, 42, 9.9312, 76.2673); err != nil {
		t.Fatalf("rememberLocation returned error: %v", err)
	}

	got := h.enrichQuery(ctx, 42, "any good restaurants nearby?")
	want := "[user location: 9.931200, 76.267300] any good restaurants nearby?"
	if got != want {
		t.Errorf("enrichQuery = %q, want %q", got, want)
	}

	// a different user sees no prefix
	if got := h.enrichQuery(ctx, 7, "hello"); got != "hello" {
		t.Errorf("enrichQuery for other user = %q, want bare text", got)
	}
}

func TestRememberLocationLastWriteWins(t *testing.T) {
	ctx := context.Background()
	h := newTestHandlers()

	if err := h.rememberLocation(ctx, 42, 9.9312, 76.2673); err != nil {
		t.Fatalf("rememberLocation returned error: %v", err)
	}
	if err := h.rememberLocation(ctx, 42, 9.9658, 76.2421); err != nil {
		t.Fatalf("rememberLocation returned error: %v", err)
	}

	got := h.enrichQuery(ctx, 42, "museums?")
	want := "[user location: 9.965800, 76.242100] museums?"
	if got != want {
		t.Errorf("enrichQuery = %q, want the latest coordinates", got)
	}
}

func TestClearSessionClearsHistoryAndLocation(t *testing.T) {
	ctx := context.Background()
	h := newTestHandlers()

	chatID, userID := int64(100), int64(42)
	if err := h.conversations.AddMessage(ctx, conversationID(chatID), schema.UserMessage("hi")); err != nil {
		t.Fatalf("AddMessage returned error: %v", err)
	}
	if err := h.rememberLocation(ctx, userID, 9.9312, 76.2673); err != nil {
		t.Fatalf("rememberLocation returned error: %v", err)
	}

	if err := h.clearSession(ctx, chatID, userID); err != nil {
		t.Fatalf("clearSession returned error: %v", err)
	}

	n, err := h.conversations.GetMessageCount(ctx, conversationID(chatID))
	if err != nil {
		t.Fatalf("GetMessageCount returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("message count after reset = %d, want 0", n)
	}

	coords, err := h.locations.Load(ctx, userKey(userID))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if coords != nil {
		t.Errorf("location after reset = %+v, want nil", coords)
	}
}

func TestConversationAndUserKeys(t *testing.T) {
	if got := conversationID(-1001234567890); got != "-1001234567890" {
		t.Errorf("conversationID = %q", got)
	}
	if got := userKey(42); got != "42" {
		t.Errorf("userKey = %q", got)
	}
}
