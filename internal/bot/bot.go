package bot

import (
	"fmt"

	tg "github.com/go-telegram/bot"

	"github.com/kochi-guide/bot/internal/agent/graph"
	"github.com/kochi-guide/bot/internal/agent/model"
)

// Deps are the collaborators the Telegram handlers need. The transport itself
// (long polling, update delivery, retries) is owned by the bot library.
type Deps struct {
	Runner        graph.Runner
	Conversations model.ConversationRepository
	Locations     model.LocationRepository
	CityName      string
}

// New builds the Telegram bot and registers the command, text, and location
// handlers. Call Start(ctx) on the returned bot to begin long polling.
func New(token string, deps Deps) (*tg.Bot, error) {
	if deps.Runner == nil {
		return nil, fmt.Errorf("graph runner is nil")
	}
	if deps.Conversations == nil || deps.Locations == nil {
		return nil, fmt.Errorf("session repositories are nil")
	}

	h := &Handlers{
		runner:        deps.Runner,
		conversations: deps.Conversations,
		locations:     deps.Locations,
		cityName:      deps.CityName,
	}

	b, err := tg.New(token, tg.WithDefaultHandler(h.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b.RegisterHandler(tg.HandlerTypeMessageText, "/start", tg.MatchTypeExact, h.handleStart)
	b.RegisterHandler(tg.HandlerTypeMessageText, "/reset", tg.MatchTypeExact, h.handleReset)

	return b, nil
}
