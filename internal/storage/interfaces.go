package storage

import (
	"context"

	"astro-chart-lab/internal/domain"
)

// ChartStore provides access to chart_bundles storage. It is the
// caller-owned cache the compute core stays independent of: keys are
// chart IDs derived from exact BirthMoment values.
type ChartStore interface {
	// Insert adds a new bundle. Returns ErrDuplicateKey if chart_id exists.
	Insert(ctx context.Context, b *domain.ChartBundle) error

	// GetByID retrieves a bundle by chart ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, chartID string) (*domain.ChartBundle, error)

	// GetByFullName retrieves all bundles for a profile name,
	// ordered by generated_at ASC, chart_id ASC.
	GetByFullName(ctx context.Context, fullName string) ([]*domain.ChartBundle, error)
}

// TransitStore provides access to transit_timeseries storage.
type TransitStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate
	// (planet, timestamp_ms).
	InsertBulk(ctx context.Context, points []*domain.TransitPoint) error

	// GetByPlanet retrieves all points for a planet, ordered by timestamp ASC.
	GetByPlanet(ctx context.Context, planet domain.Planet) ([]*domain.TransitPoint, error)

	// GetByTimeRange retrieves points for a planet within [start, end]
	// (inclusive), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, planet domain.Planet, start, end int64) ([]*domain.TransitPoint, error)
}
