package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/tool"

	"github.com/kochi-guide/bot/internal/agent/model"
)

type stubWeatherProvider struct {
	report *model.WeatherReport
	err    error
}

func (s *stubWeatherProvider) Current(ctx context.Context) (*model.WeatherReport, error) {
	return s.report, s.err
}

type stubPlacesProvider struct {
	places []model.Place
	err    error

	gotLat  float64
	gotLon  float64
	gotType string
}

func (s *stubPlacesProvider) Nearby(ctx context.Context, lat, lon float64, placeType string) ([]model.Place, error) {
	s.gotLat, s.gotLon, s.gotType = lat, lon, placeType
	return s.places, s.err
}

func invoke(t *testing.T, bt tool.BaseTool, args string) string {
	t.Helper()
	inv, ok := bt.(tool.InvokableTool)
	if !ok {
		t.Fatal("tool is not invokable")
	}
	out, err := inv.InvokableRun(context.Background(), args)
	if err != nil {
		t.Fatalf("InvokableRun returned error: %v", err)
	}
	return out
}

func TestCityWeatherToolSuccess(t *testing.T) {
	provider := &stubWeatherProvider{report: &model.WeatherReport{
		Temperature: 28.4,
		Humidity:    84,
		Description: "light rain",
	}}

	raw := invoke(t, createCityWeatherTool(provider), "{}")

	var out CityWeatherOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Error != "" {
		t.Errorf("unexpected error field: %q", out.Error)
	}
	if out.Temperature != 28.4 || out.Humidity != 84 || out.Description != "light rain" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestCityWeatherToolProviderFailure(t *testing.T) {
	provider := &stubWeatherProvider{err: errors.New("connection refused")}

	raw := invoke(t, createCityWeatherTool(provider), "{}")

	var out CityWeatherOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	// the failure is folded into the payload so the model can narrate it
	if out.Error == "" {
		t.Error("expected error field in output, got none")
	}
	if out.Temperature != 0 || out.Description != "" {
		t.Errorf("expected empty report alongside error, got %+v", out)
	}
}

func TestNearbyPlacesToolSuccess(t *testing.T) {
	provider := &stubPlacesProvider{places: []model.Place{
		{Name: "Kashi Art Cafe", Rating: 4.5, Address: "Burgher Street, Fort Kochi"},
		{Name: "Teapot Cafe", Rating: 4.3, Address: "Peter Celli Street, Fort Kochi"},
	}}

	raw := invoke(t, createNearbyPlacesTool(provider),
		`{"latitude": 9.9312, "longitude": 76.2673, "place_type": "cafe"}`)

	var out NearbyPlacesOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Error != "" {
		t.Errorf("unexpected error field: %q", out.Error)
	}
	if out.Total != 2 || len(out.Places) != 2 {
		t.Fatalf("got %d places (total %d), want 2", len(out.Places), out.Total)
	}
	if out.Places[0].Name != "Kashi Art Cafe" {
		t.Errorf("places[0].Name = %q, want %q", out.Places[0].Name, "Kashi Art Cafe")
	}

	if provider.gotLat != 9.9312 || provider.gotLon != 76.2673 || provider.gotType != "cafe" {
		t.Errorf("provider called with (%v, %v, %q)", provider.gotLat, provider.gotLon, provider.gotType)
	}
}

func TestNearbyPlacesToolProviderFailure(t *testing.T) {
	provider := &stubPlacesProvider{err: errors.New("quota exceeded")}

	raw := invoke(t, createNearbyPlacesTool(provider),
		`{"latitude": 9.9312, "longitude": 76.2673, "place_type": "museum"}`)

	var out NearbyPlacesOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Error == "" {
		t.Error("expected error field in output, got none")
	}
}

func TestNearbyPlacesToolRejectsBadArguments(t *testing.T) {
	provider := &stubPlacesProvider{}
	inv := createNearbyPlacesTool(provider).(tool.InvokableTool)

	cases := []struct {
		name string
		args string
	}{
		{"missing place type", `{"latitude": 9.9312, "longitude": 76.2673}`},
		{"latitude out of range", `{"latitude": 99.0, "longitude": 76.2673, "place_type": "cafe"}`},
		{"longitude out of range", `{"latitude": 9.9312, "longitude": 190.0, "place_type": "cafe"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := inv.InvokableRun(context.Background(), tc.args); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestGetGuideTools(t *testing.T) {
	ts := GetGuideTools(&stubWeatherProvider{}, &stubPlacesProvider{})
	infos, err := GetToolInfos(context.Background(), ts)
	if err != nil {
		t.Fatalf("GetToolInfos returned error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d tool infos, want 2", len(infos))
	}
	names := map[string]bool{}
	for _, info := range infos {
		names[info.Name] = true
	}
	if !names[ToolCityWeather] || !names[ToolNearbyPlaces] {
		t.Errorf("tool names = %v, want %q and %q", names, ToolCityWeather, ToolNearbyPlaces)
	}
}
