package clickhouse

import (
	"context"
	"fmt"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

// TransitStore implements storage.TransitStore using ClickHouse.
type TransitStore struct {
	conn *Conn
}

// NewTransitStore creates a new TransitStore.
func NewTransitStore(conn *Conn) *TransitStore {
	return &TransitStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TransitStore = (*TransitStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (planet, timestamp_ms). ClickHouse MergeTree does not enforce
// uniqueness, so duplicates are checked explicitly before insert.
func (s *TransitStore) InsertBulk(ctx context.Context, points []*domain.TransitPoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		planet      domain.Planet
		timestampMs int64
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		k := key{p.Planet, p.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.Planet, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO transit_timeseries (
			planet, timestamp_ms, tropical_longitude, sidereal_longitude
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			string(p.Planet), uint64(p.TimestampMs),
			p.TropicalLongitude, p.SiderealLongitude,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByPlanet retrieves all points for a planet, ordered by timestamp ASC.
func (s *TransitStore) GetByPlanet(ctx context.Context, planet domain.Planet) ([]*domain.TransitPoint, error) {
	query := `
		SELECT planet, timestamp_ms, tropical_longitude, sidereal_longitude
		FROM transit_timeseries
		WHERE planet = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, string(planet))
	if err != nil {
		return nil, fmt.Errorf("get transits by planet: %w", err)
	}
	defer rows.Close()

	return scanTransitPoints(rows)
}

// GetByTimeRange retrieves points for a planet within [start, end] (inclusive).
func (s *TransitStore) GetByTimeRange(ctx context.Context, planet domain.Planet, start, end int64) ([]*domain.TransitPoint, error) {
	query := `
		SELECT planet, timestamp_ms, tropical_longitude, sidereal_longitude
		FROM transit_timeseries
		WHERE planet = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, string(planet), uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("get transits by time range: %w", err)
	}
	defer rows.Close()

	return scanTransitPoints(rows)
}

// exists checks whether a point already exists for (planet, timestamp_ms).
func (s *TransitStore) exists(ctx context.Context, planet domain.Planet, timestampMs int64) (bool, error) {
	query := `
		SELECT count() FROM transit_timeseries
		WHERE planet = ? AND timestamp_ms = ?
	`

	var count uint64
	row := s.conn.QueryRow(ctx, query, string(planet), uint64(timestampMs))
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// rowScanner abstracts driver.Rows iteration for scanning.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTransitPoints(rows rowScanner) ([]*domain.TransitPoint, error) {
	var points []*domain.TransitPoint
	for rows.Next() {
		var planet string
		var ts uint64
		p := &domain.TransitPoint{}
		if err := rows.Scan(&planet, &ts, &p.TropicalLongitude, &p.SiderealLongitude); err != nil {
			return nil, fmt.Errorf("scan transit point: %w", err)
		}
		p.Planet = domain.Planet(planet)
		p.TimestampMs = int64(ts)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transit points: %w", err)
	}
	return points, nil
}
