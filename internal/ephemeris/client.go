// Package ephemeris talks to the remote ephemeris service that computes
// tropical planetary longitudes. This system consumes those longitudes;
// it never performs orbital mechanics itself.
package ephemeris

import (
	"context"

	"astro-chart-lab/internal/domain"
)

// PositionRequest identifies the exact moment and location the ephemeris
// should evaluate. The service resolves the local date/time through the
// timezone identifier; the response reflects the exact derived UTC
// instant, not a rounded reference instant.
type PositionRequest struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	TimezoneID string  `json:"timezone_id"`

	Planets []domain.Planet `json:"planets"`
}

// Client fetches tropical positions for a birth moment.
type Client interface {
	// Positions returns one TropicalPosition per requested planet, each
	// longitude in degrees [0, 360). A short or mismatched response is
	// returned as-is; completeness validation belongs to the assembler.
	Positions(ctx context.Context, req PositionRequest) ([]domain.TropicalPosition, error)
}

// PositionFrame is one live update from the streaming feed: the current
// tropical longitude of a planet at a sample instant.
type PositionFrame struct {
	Planet            domain.Planet `json:"planet"`
	TimestampMs       int64         `json:"timestamp_ms"`
	TropicalLongitude float64       `json:"tropical_longitude"`
}

// StreamClient subscribes to live position frames, used for transit
// timeseries ingestion.
type StreamClient interface {
	// SubscribePositions subscribes to frames for the given planets.
	// The returned channel is closed when the client shuts down.
	SubscribePositions(ctx context.Context, planets []domain.Planet) (<-chan PositionFrame, error)

	// Close terminates the connection and all subscriptions.
	Close() error
}
