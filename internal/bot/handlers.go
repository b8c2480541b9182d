package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kochi-guide/bot/internal/agent/graph"
	agentmodel "github.com/kochi-guide/bot/internal/agent/model"
	logx "github.com/kochi-guide/bot/pkg/logger"
)

const apologyMessage = "Sorry, an error occurred on my end. Please try again in a moment."

// Handlers wires Telegram updates to the agent graph and the session stores.
type Handlers struct {
	runner        graph.Runner
	conversations agentmodel.ConversationRepository
	locations     agentmodel.LocationRepository
	cityName      string
}

func (h *Handlers) handleStart(ctx context.Context, b *tg.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := senderID(update.Message)

	if err := h.clearSession(ctx, chatID, userID); err != nil {
		logx.Error().Err(err).Int64("chat_id", chatID).Msg("failed to reset session on /start")
	}

	name := ""
	if update.Message.From != nil {
		name = update.Message.From.FirstName
	}
	welcome := fmt.Sprintf(
		"Namaste %s! I'm your personal guide to the beautiful city of %s. "+
			"Ask me anything about places, food, our culture, or even the current weather! "+
			"Share your location and I can find great spots near you.",
		name, h.cityName,
	)
	h.reply(ctx, b, chatID, welcome)
}

func (h *Handlers) handleReset(ctx context.Context, b *tg.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	userID := senderID(update.Message)

	if err := h.clearSession(ctx, chatID, userID); err != nil {
		logx.Error().Err(err).Int64("chat_id", chatID).Msg("failed to reset session")
		h.reply(ctx, b, chatID, apologyMessage)
		return
	}
	h.reply(ctx, b, chatID, "Okay, let's start a fresh conversation! What would you like to know?")
}

// handleUpdate dispatches non-command updates: shared locations go to the
// location store, plain text goes to the agent graph.
func (h *Handlers) handleUpdate(ctx context.Context, b *tg.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Location != nil {
		h.handleLocation(ctx, b, update)
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}
	h.handleText(ctx, b, update, text)
}

func (h *Handlers) handleLocation(ctx context.Context, b *tg.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	userID := senderID(update.Message)
	loc := update.Message.Location

	if err := h.rememberLocation(ctx, userID, loc.Latitude, loc.Longitude); err != nil {
		logx.Error().Err(err).Int64("user_id", userID).Msg("failed to store location")
		h.reply(ctx, b, chatID, apologyMessage)
		return
	}

	logx.Info().
		Int64("user_id", userID).
		Float64("latitude", loc.Latitude).
		Float64("longitude", loc.Longitude).
		Msg("stored user location")
	h.reply(ctx, b, chatID, "Got it! I'll use this location when you ask me about places near you.")
}

func (h *Handlers) handleText(ctx context.Context, b *tg.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID
	userID := senderID(update.Message)

	logx.Info().Int64("chat_id", chatID).Str("text", text).Msg("received message")

	// Show a "typing..." indicator while the model works
	if _, err := b.SendChatAction(ctx, &tg.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}); err != nil {
		logx.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send typing action")
	}

	query := h.enrichQuery(ctx, userID, text)

	response, err := h.runner.Invoke(ctx, agentmodel.QueryInput{
		ConversationID: conversationID(chatID),
		Query:          query,
	})
	if err != nil {
		logx.Error().Err(err).Int64("chat_id", chatID).Msg("agent invocation failed")
		h.reply(ctx, b, chatID, apologyMessage)
		return
	}
	if strings.TrimSpace(response) == "" {
		response = apologyMessage
	}
	h.reply(ctx, b, chatID, response)
}

// enrichQuery prefixes the user's text with their stored coordinates so the
// model can pass them to the nearby-places tool. A load failure degrades to
// the bare text; location awareness is best effort.
func (h *Handlers) enrichQuery(ctx context.Context, userID int64, text string) string {
	coords, err := h.locations.Load(ctx, userKey(userID))
	if err != nil {
		logx.Warn().Err(err).Int64("user_id", userID).Msg("failed to load stored location")
		return text
	}
	if coords == nil {
		return text
	}
	return fmt.Sprintf("[user location: %.6f, %.6f] %s", coords.Latitude, coords.Longitude, text)
}

// rememberLocation stores the coordinates for the user, last write wins.
func (h *Handlers) rememberLocation(ctx context.Context, userID int64, lat, lon float64) error {
	return h.locations.Save(ctx, userKey(userID), agentmodel.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	})
}

// clearSession removes stored conversation history and location for the chat.
func (h *Handlers) clearSession(ctx context.Context, chatID, userID int64) error {
	if err := h.conversations.ClearHistory(ctx, conversationID(chatID)); err != nil {
		return err
	}
	return h.locations.Clear(ctx, userKey(userID))
}

func (h *Handlers) reply(ctx context.Context, b *tg.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &tg.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		logx.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}

func senderID(msg *models.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	// channel posts and anonymous admins carry no sender; fall back to the chat
	return msg.Chat.ID
}

func conversationID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
