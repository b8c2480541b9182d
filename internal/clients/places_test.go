package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kochi-guide/bot/internal/agent/model"
)

func newPlacesTestClient(baseURL string) *PlacesClient {
	return NewPlacesClient(model.PlacesConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		RadiusMeters: 1500,
	})
}

func placesPayload(n int) string {
	results := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, map[string]any{
			"name":     fmt.Sprintf("Place %d", i+1),
			"rating":   4.0 + float64(i)*0.1,
			"vicinity": fmt.Sprintf("Street %d, Fort Kochi", i+1),
		})
	}
	b, _ := json.Marshal(map[string]any{"status": "OK", "results": results})
	return string(b)
}

func TestPlacesClientNearbyTruncatesToMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(placesPayload(9)))
	}))
	defer srv.Close()

	places, err := newPlacesTestClient(srv.URL).Nearby(context.Background(), 9.9312, 76.2673, "restaurant")
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(places) != MaxNearbyResults {
		t.Fatalf("got %d places, want %d", len(places), MaxNearbyResults)
	}
}

func TestPlacesClientNearbyFieldMapping(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"location": r.URL.Query().Get("location"),
			"radius":   r.URL.Query().Get("radius"),
			"type":     r.URL.Query().Get("type"),
			"key":      r.URL.Query().Get("key"),
		}
		w.Write([]byte(placesPayload(2)))
	}))
	defer srv.Close()

	places, err := newPlacesTestClient(srv.URL).Nearby(context.Background(), 9.9312, 76.2673, "museum")
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	want := model.Place{Name: "Place 1", Rating: 4.0, Address: "Street 1, Fort Kochi"}
	if places[0] != want {
		t.Errorf("places[0] = %+v, want %+v", places[0], want)
	}

	if gotQuery["location"] != "9.931200,76.267300" {
		t.Errorf("location param = %q, want %q", gotQuery["location"], "9.931200,76.267300")
	}
	if gotQuery["radius"] != "1500" {
		t.Errorf("radius param = %q, want %q", gotQuery["radius"], "1500")
	}
	if gotQuery["type"] != "museum" {
		t.Errorf("type param = %q, want %q", gotQuery["type"], "museum")
	}
	if gotQuery["key"] != "test-key" {
		t.Errorf("key param = %q, want %q", gotQuery["key"], "test-key")
	}
}

func TestPlacesClientNearbyZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	places, err := newPlacesTestClient(srv.URL).Nearby(context.Background(), 9.9312, 76.2673, "planetarium")
	if err != nil {
		t.Fatalf("Nearby returned error: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("got %d places, want 0", len(places))
	}
}

func TestPlacesClientNearbyProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	}))
	defer srv.Close()

	if _, err := newPlacesTestClient(srv.URL).Nearby(context.Background(), 9.9312, 76.2673, "cafe"); err == nil {
		t.Fatal("expected error for REQUEST_DENIED status, got nil")
	}
}

func TestPlacesClientNearbyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newPlacesTestClient(srv.URL).Nearby(context.Background(), 9.9312, 76.2673, "cafe"); err == nil {
		t.Fatal("expected error for non-200 response, got nil")
	}
}
