package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/model"
	logx "github.com/kochi-guide/bot/pkg/logger"
)

// WeatherProvider fetches current conditions for the configured city.
type WeatherProvider interface {
	Current(ctx context.Context) (*model.WeatherReport, error)
}

// ===================================
// City Weather Tool
// ===================================

// CityWeatherInput is empty: the city is fixed by configuration.
type CityWeatherInput struct{}

// CityWeatherOutput carries either the extracted conditions or an error note
// the model can relay conversationally. Provider failures are folded into the
// payload instead of failing the tool call.
type CityWeatherOutput struct {
	Temperature float64 `json:"temperature,omitempty"`
	Humidity    int     `json:"humidity,omitempty"`
	Description string  `json:"description,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func createCityWeatherTool(provider WeatherProvider) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolCityWeather,
			Desc:        "Get the current weather in the city: temperature in Celsius, humidity percentage, and a short description. Takes no arguments. Always use this tool for real-time weather questions instead of guessing.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *CityWeatherInput) (*CityWeatherOutput, error) {
			logx.Debug().Str("tool", ToolCityWeather).Msg("fetching current weather")

			report, err := provider.Current(ctx)
			if err != nil {
				logx.Error().Err(err).Str("tool", ToolCityWeather).Msg("weather lookup failed")
				return &CityWeatherOutput{
					Error: "Sorry, I could not fetch the weather data at the moment.",
				}, nil
			}

			return &CityWeatherOutput{
				Temperature: report.Temperature,
				Humidity:    report.Humidity,
				Description: report.Description,
			}, nil
		},
	)
}
