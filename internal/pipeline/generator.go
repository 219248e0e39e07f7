// Package pipeline wires the full chart generation flow: normalize raw
// birth data, fetch tropical positions from the ephemeris service,
// assemble the sidereal chart, and cache the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"astro-chart-lab/internal/birth"
	"astro-chart-lab/internal/chart"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris"
	"astro-chart-lab/internal/idhash"
	"astro-chart-lab/internal/observability"
	"astro-chart-lab/internal/storage"
)

// Generator runs the chart generation pipeline. The ephemeris fetch is
// the only suspension point; everything around it is pure computation.
type Generator struct {
	client     ephemeris.Client
	chartStore storage.ChartStore
	planets    []domain.Planet
	clock      func() time.Time
	metrics    *observability.Metrics
}

// NewGenerator creates a pipeline generator for the default planet set.
func NewGenerator(client ephemeris.Client, chartStore storage.ChartStore) *Generator {
	return &Generator{
		client:     client,
		chartStore: chartStore,
		planets:    domain.DefaultPlanets,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// WithPlanets overrides the requested planet set.
func (g *Generator) WithPlanets(planets []domain.Planet) *Generator {
	g.planets = planets
	return g
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(clock func() time.Time) *Generator {
	g.clock = clock
	return g
}

// WithMetrics attaches metrics for cache hits and ephemeris call latency.
func (g *Generator) WithMetrics(m *observability.Metrics) *Generator {
	g.metrics = m
	return g
}

// Generate runs the pipeline for raw birth data. The returned error is
// either a validation error from internal/birth (caller input problem) or
// chart.ErrIncompleteEphemerisData / a transport error (external data
// problem); callers pick their fallback by class.
//
// Identical raw input plus an identical ephemeris response always yields
// an identical bundle apart from GeneratedAt, and an identical ChartID.
// A bundle already cached under that ChartID is returned as-is, making
// repeat generation byte-identical.
func (g *Generator) Generate(ctx context.Context, raw birth.RawBirthData) (*domain.ChartBundle, error) {
	moment, err := birth.Normalize(raw, g.clock())
	if err != nil {
		return nil, err
	}
	if err := birth.RequireComplete(moment); err != nil {
		return nil, err
	}

	if g.chartStore != nil {
		cached, err := g.chartStore.GetByID(ctx, idhash.ComputeChartID(moment))
		if err == nil {
			if g.metrics != nil {
				g.metrics.ChartCacheHits.Inc()
			}
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("chart cache lookup: %w", err)
		}
	}

	// The service receives the local date/time and resolves UTC itself
	// through the timezone identifier; the response reflects that exact
	// instant.
	fetchStart := time.Now()
	tropical, err := g.client.Positions(ctx, ephemeris.PositionRequest{
		Year:       moment.Year,
		Month:      moment.Month,
		Day:        moment.Day,
		Hour:       moment.Hour,
		Minute:     moment.Minute,
		Latitude:   moment.Place.Latitude,
		Longitude:  moment.Place.Longitude,
		TimezoneID: moment.Place.ResolvedTimezoneID,
		Planets:    g.planets,
	})
	if err != nil {
		return nil, fmt.Errorf("ephemeris fetch: %w", err)
	}
	if g.metrics != nil {
		g.metrics.EphemerisCallLatency.Observe(time.Since(fetchStart).Seconds())
	}

	bundle, err := chart.NewAssembler().WithClock(g.clock).Assemble(moment, g.planets, tropical)
	if err != nil {
		return nil, err
	}

	if g.chartStore != nil {
		if err := g.chartStore.Insert(ctx, bundle); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("cache chart bundle: %w", err)
		}
	}
	return bundle, nil
}

// IsValidationError reports whether err came from birth-data validation,
// as opposed to missing or malformed external ephemeris data. The UI
// falls back to illustrative data on either, but renders different
// messaging for each.
func IsValidationError(err error) bool {
	return errors.Is(err, birth.ErrFutureBirthDate) ||
		errors.Is(err, birth.ErrBirthDateTooOld) ||
		errors.Is(err, birth.ErrIncompleteBirthData) ||
		errors.Is(err, birth.ErrMalformedPlaceName) ||
		errors.Is(err, birth.ErrInvalidDate)
}
