package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Tool names referenced by the graph sanitizer and the system prompt.
const (
	ToolCityWeather  = "get_city_weather"
	ToolNearbyPlaces = "find_nearby_places"
)

// GetGuideTools returns the tools the response model may call.
func GetGuideTools(weather WeatherProvider, places PlacesProvider) []tool.BaseTool {
	return []tool.BaseTool{
		createCityWeatherTool(weather),
		createNearbyPlacesTool(places),
	}
}

// GetToolInfos resolves the ToolInfo of each tool for model binding.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
