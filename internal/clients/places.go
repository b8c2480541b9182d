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

// MaxNearbyResults caps how many places are surfaced to the model per lookup.
const MaxNearbyResults = 5

// PlacesClient queries the Google Places nearby-search endpoint.
type PlacesClient struct {
	apiKey       string
	baseURL      string
	radiusMeters int
	httpClient   *http.Client
}

func NewPlacesClient(cfg model.PlacesConfig) *PlacesClient {
	return &PlacesClient{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		radiusMeters: cfg.RadiusMeters,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// googlePlacesResponse mirrors the subset of the provider payload we consume.
type googlePlacesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string  `json:"name"`
		Rating   float64 `json:"rating"`
		Vicinity string  `json:"vicinity"`
	} `json:"results"`
}

// Nearby finds places of the given type around the coordinates using the
// configured fixed radius, truncated to MaxNearbyResults entries.
func (c *PlacesClient) Nearby(ctx context.Context, lat, lon float64, placeType string) ([]model.Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%.6f,%.6f", lat, lon))
	params.Set("radius", fmt.Sprintf("%d", c.radiusMeters))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errx.WrapUpstream("google-places", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errx.WrapUpstream("google-places", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var payload googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errx.WrapUpstream("google-places", fmt.Errorf("decode response: %w", err))
	}

	// ZERO_RESULTS is a valid empty answer, everything else non-OK is a failure.
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, errx.WrapUpstream("google-places", fmt.Errorf("provider status %s", payload.Status))
	}

	places := make([]model.Place, 0, MaxNearbyResults)
	for _, result := range payload.Results {
		if len(places) >= MaxNearbyResults {
			break
		}
		places = append(places, model.Place{
			Name:    result.Name,
			Rating:  result.Rating,
			Address: result.Vicinity,
		})
	}
	return places, nil
}
