package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kochi-guide/bot/internal/agent/model"
	errx "github.com/kochi-guide/bot/internal/core/error"
)

// WeatherClient fetches current conditions from OpenWeatherMap for a fixed city.
type WeatherClient struct {
	apiKey     string
	baseURL    string
	city       string
	httpClient *http.Client
}

func NewWeatherClient(cfg model.WeatherConfig) *WeatherClient {
	return &WeatherClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		city:       cfg.City,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// openWeatherResponse mirrors the subset of the provider payload we consume.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current issues one GET for the configured city in metric units and extracts
// temperature, humidity and the textual description.
func (c *WeatherClient) Current(ctx context.Context) (*model.WeatherReport, error) {
	params := url.Values{}
	params.Set("q", c.city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errx.WrapUpstream("openweathermap", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errx.WrapUpstream("openweathermap", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errx.WrapUpstream("openweathermap", fmt.Errorf("decode response: %w", err))
	}

	report := &model.WeatherReport{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}
	return report, nil
}
