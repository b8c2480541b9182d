package model

import "context"

// Coordinates is a user's last shared position. Last write wins, no expiry
// semantics beyond the store's own TTL.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRepository stores the last-known coordinates per user.
type LocationRepository interface {
	// Save stores the coordinates for the user, replacing any previous value
	Save(ctx context.Context, userID string, coords Coordinates) error

	// Load returns the stored coordinates, or (nil, nil) when none are stored
	Load(ctx context.Context, userID string) (*Coordinates, error)

	// Clear removes the stored coordinates for the user
	Clear(ctx context.Context, userID string) error
}
