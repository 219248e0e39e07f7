// Package stub provides a fixture-backed ephemeris client for tests and
// offline chart generation.
package stub

import (
	"context"
	"errors"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris"
)

// ErrNoFixture is returned when no longitude fixture exists for a
// requested planet.
var ErrNoFixture = errors.New("no fixture for planet")

// Client implements ephemeris.Client from a fixed longitude table,
// ignoring the requested moment. Deterministic by construction.
type Client struct {
	Longitudes map[domain.Planet]float64
}

// NewClient creates a stub client with an empty longitude table.
func NewClient() *Client {
	return &Client{Longitudes: make(map[domain.Planet]float64)}
}

// Compile-time interface check.
var _ ephemeris.Client = (*Client)(nil)

// SetLongitude sets the tropical longitude returned for a planet.
func (c *Client) SetLongitude(p domain.Planet, deg float64) {
	c.Longitudes[p] = deg
}

// Positions returns fixture longitudes for the requested planets, in
// request order. Returns ErrNoFixture when a planet has no entry.
func (c *Client) Positions(_ context.Context, req ephemeris.PositionRequest) ([]domain.TropicalPosition, error) {
	positions := make([]domain.TropicalPosition, 0, len(req.Planets))
	for _, p := range req.Planets {
		deg, ok := c.Longitudes[p]
		if !ok {
			return nil, ErrNoFixture
		}
		positions = append(positions, domain.TropicalPosition{
			Planet:           p,
			LongitudeDegrees: deg,
		})
	}
	return positions, nil
}
