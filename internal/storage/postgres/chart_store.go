package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

// ChartStore implements storage.ChartStore using PostgreSQL. A bundle
// spans two tables: chart_bundles for the profile and chart-level values,
// chart_positions for the per-planet rows. Both are written in one
// transaction so a bundle is never half-visible.
type ChartStore struct {
	pool *Pool
}

// NewChartStore creates a new ChartStore.
func NewChartStore(pool *Pool) *ChartStore {
	return &ChartStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ChartStore = (*ChartStore)(nil)

// Insert adds a new bundle. Returns ErrDuplicateKey if chart_id exists.
func (s *ChartStore) Insert(ctx context.Context, b *domain.ChartBundle) error {
	if b == nil || b.ChartID == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	bundleQuery := `
		INSERT INTO chart_bundles (
			chart_id, full_name,
			birth_year, birth_month, birth_day,
			birth_hour, birth_minute, has_time,
			tz_offset_minutes,
			place_raw, place_city, place_state, place_country,
			latitude, longitude, timezone_id,
			julian_date, ayanamsa, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	m := b.Moment
	_, err = tx.Exec(ctx, bundleQuery,
		b.ChartID, m.FullName,
		m.Year, m.Month, m.Day,
		m.Hour, m.Minute, m.HasTime,
		m.TimezoneOffsetMinutes,
		m.Place.RawName, m.Place.City, m.Place.State, m.Place.Country,
		m.Place.Latitude, m.Place.Longitude, m.Place.ResolvedTimezoneID,
		b.JulianDate, b.Ayanamsa, b.GeneratedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert chart bundle: %w", err)
	}

	positionQuery := `
		INSERT INTO chart_positions (
			chart_id, position_index, planet, longitude_degrees, sign_index, degree_in_sign
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, p := range b.Positions {
		_, err = tx.Exec(ctx, positionQuery,
			b.ChartID, i, string(p.Planet), p.LongitudeDegrees, int(p.SignIndex), p.DegreeInSign,
		)
		if err != nil {
			return fmt.Errorf("insert chart position: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a bundle by chart ID. Returns ErrNotFound if not exists.
func (s *ChartStore) GetByID(ctx context.Context, chartID string) (*domain.ChartBundle, error) {
	query := `
		SELECT chart_id, full_name,
			birth_year, birth_month, birth_day,
			birth_hour, birth_minute, has_time,
			tz_offset_minutes,
			place_raw, place_city, place_state, place_country,
			latitude, longitude, timezone_id,
			julian_date, ayanamsa, generated_at
		FROM chart_bundles
		WHERE chart_id = $1
	`

	row := s.pool.QueryRow(ctx, query, chartID)
	b, err := scanBundle(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get chart by id: %w", err)
	}

	if err := s.loadPositions(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByFullName retrieves all bundles for a profile name,
// ordered by generated_at ASC, chart_id ASC.
func (s *ChartStore) GetByFullName(ctx context.Context, fullName string) ([]*domain.ChartBundle, error) {
	query := `
		SELECT chart_id, full_name,
			birth_year, birth_month, birth_day,
			birth_hour, birth_minute, has_time,
			tz_offset_minutes,
			place_raw, place_city, place_state, place_country,
			latitude, longitude, timezone_id,
			julian_date, ayanamsa, generated_at
		FROM chart_bundles
		WHERE full_name = $1
		ORDER BY generated_at ASC, chart_id ASC
	`

	rows, err := s.pool.Query(ctx, query, fullName)
	if err != nil {
		return nil, fmt.Errorf("get charts by full name: %w", err)
	}
	defer rows.Close()

	var bundles []*domain.ChartBundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart bundle: %w", err)
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart bundles: %w", err)
	}

	for _, b := range bundles {
		if err := s.loadPositions(ctx, b); err != nil {
			return nil, err
		}
	}
	return bundles, nil
}

// loadPositions fills b.Positions in stored order.
func (s *ChartStore) loadPositions(ctx context.Context, b *domain.ChartBundle) error {
	query := `
		SELECT planet, longitude_degrees, sign_index, degree_in_sign
		FROM chart_positions
		WHERE chart_id = $1
		ORDER BY position_index ASC
	`

	rows, err := s.pool.Query(ctx, query, b.ChartID)
	if err != nil {
		return fmt.Errorf("get chart positions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var planet string
		var signIndex int
		var p domain.SiderealPosition
		if err := rows.Scan(&planet, &p.LongitudeDegrees, &signIndex, &p.DegreeInSign); err != nil {
			return fmt.Errorf("scan chart position: %w", err)
		}
		p.Planet = domain.Planet(planet)
		p.SignIndex = domain.ZodiacSign(signIndex)
		b.Positions = append(b.Positions, p)
	}
	return rows.Err()
}

// scanBundle reads the chart_bundles columns from a row.
func scanBundle(row pgx.Row) (*domain.ChartBundle, error) {
	var b domain.ChartBundle
	m := &b.Moment
	err := row.Scan(
		&b.ChartID, &m.FullName,
		&m.Year, &m.Month, &m.Day,
		&m.Hour, &m.Minute, &m.HasTime,
		&m.TimezoneOffsetMinutes,
		&m.Place.RawName, &m.Place.City, &m.Place.State, &m.Place.Country,
		&m.Place.Latitude, &m.Place.Longitude, &m.Place.ResolvedTimezoneID,
		&b.JulianDate, &b.Ayanamsa, &b.GeneratedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
