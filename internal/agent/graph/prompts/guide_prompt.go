package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/graph/tools"
	"github.com/kochi-guide/bot/internal/agent/model"
)

//go:embed template/guide_prompt.txt
var guideSystemPrompt string

// RenderGuideSystem renders the guide persona system prompt and triggers
// prompt callbacks.
func RenderGuideSystem(ctx context.Context, config model.GuidePromptConfig) (string, error) {
	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(guideSystemPrompt),
	)
	vars := map[string]any{
		"CityName":    config.CityName,
		"CityCountry": config.CityCountry,
		"SeasonNote":  config.SeasonNote,
		"WeatherTool": tools.ToolCityWeather,
		"PlacesTool":  tools.ToolNearbyPlaces,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("guide prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("guide prompt render: empty result")
	}
	return msgs[0].Content, nil
}
