package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/kochi-guide/bot/internal/agent/model"
	logx "github.com/kochi-guide/bot/pkg/logger"
)

// PlacesProvider finds nearby points of interest around the coordinates.
type PlacesProvider interface {
	Nearby(ctx context.Context, lat, lon float64, placeType string) ([]model.Place, error)
}

// ===================================
// Nearby Places Tool
// ===================================

type NearbyPlacesInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceType string  `json:"place_type"`
}

// NearbyPlacesOutput lists the top matches or an error note the model can
// relay conversationally. Provider failures are folded into the payload
// instead of failing the tool call.
type NearbyPlacesOutput struct {
	Places []model.Place `json:"places,omitempty"`
	Total  int           `json:"total"`
	Error  string        `json:"error,omitempty"`
}

func createNearbyPlacesTool(provider PlacesProvider) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolNearbyPlaces,
			Desc: "Find points of interest near the user's shared location. Returns up to 5 places with name, rating, and address within a 1.5 km radius. Use this tool when the user asks for nearby restaurants, cafes, museums, attractions, or similar, and their coordinates are known.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"latitude": {
					Type:     "number",
					Desc:     "Latitude of the user's location in decimal degrees, e.g. 9.9312.",
					Required: true,
				},
				"longitude": {
					Type:     "number",
					Desc:     "Longitude of the user's location in decimal degrees, e.g. 76.2673.",
					Required: true,
				},
				"place_type": {
					Type:     "string",
					Desc:     "Category of place to search for, e.g. restaurant, cafe, museum, park, tourist_attraction.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *NearbyPlacesInput) (*NearbyPlacesOutput, error) {
			if in.PlaceType == "" {
				return nil, fmt.Errorf("place_type is required")
			}
			if in.Latitude < -90 || in.Latitude > 90 {
				return nil, fmt.Errorf("latitude out of range: %f", in.Latitude)
			}
			if in.Longitude < -180 || in.Longitude > 180 {
				return nil, fmt.Errorf("longitude out of range: %f", in.Longitude)
			}

			logx.Debug().
				Str("tool", ToolNearbyPlaces).
				Float64("latitude", in.Latitude).
				Float64("longitude", in.Longitude).
				Str("place_type", in.PlaceType).
				Msg("searching nearby places")

			places, err := provider.Nearby(ctx, in.Latitude, in.Longitude, in.PlaceType)
			if err != nil {
				logx.Error().Err(err).Str("tool", ToolNearbyPlaces).Msg("places lookup failed")
				return &NearbyPlacesOutput{
					Error: "Sorry, I could not search nearby places at the moment.",
				}, nil
			}

			return &NearbyPlacesOutput{
				Places: places,
				Total:  len(places),
			}, nil
		},
	)
}
