package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

func testPoint(planet domain.Planet, ts int64, sidereal float64) *domain.TransitPoint {
	return &domain.TransitPoint{
		Planet:            planet,
		TimestampMs:       ts,
		TropicalLongitude: sidereal + 23.85,
		SiderealLongitude: sidereal,
	}
}

func TestTransitStore_InsertBulkAndGetByPlanet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)
	ctx := context.Background()

	points := []*domain.TransitPoint{
		testPoint(domain.PlanetSun, 1700000000000, 247.8),
		testPoint(domain.PlanetSun, 1700003600000, 247.9),
		testPoint(domain.PlanetMoon, 1700000000000, 130.0),
	}

	err := store.InsertBulk(ctx, points)
	require.NoError(t, err)

	retrieved, err := store.GetByPlanet(ctx, domain.PlanetSun)
	require.NoError(t, err)
	require.Len(t, retrieved, 2)

	// Ordered by timestamp ASC
	assert.Equal(t, int64(1700000000000), retrieved[0].TimestampMs)
	assert.Equal(t, int64(1700003600000), retrieved[1].TimestampMs)
	assert.Equal(t, domain.PlanetSun, retrieved[0].Planet)
	assert.InDelta(t, 247.8, retrieved[0].SiderealLongitude, 1e-9)
	assert.InDelta(t, 247.8+23.85, retrieved[0].TropicalLongitude, 1e-9)
}

func TestTransitStore_InsertBulkEmptyBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)

	err := store.InsertBulk(context.Background(), nil)
	assert.NoError(t, err)
}

func TestTransitStore_DuplicateWithinBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)
	ctx := context.Background()

	points := []*domain.TransitPoint{
		testPoint(domain.PlanetSun, 1700000000000, 247.8),
		testPoint(domain.PlanetSun, 1700000000000, 999.0),
	}

	err := store.InsertBulk(ctx, points)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Nothing from the failed batch is visible
	retrieved, err := store.GetByPlanet(ctx, domain.PlanetSun)
	require.NoError(t, err)
	assert.Empty(t, retrieved)
}

func TestTransitStore_DuplicateAcrossBatches(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.TransitPoint{testPoint(domain.PlanetSun, 1700000000000, 247.8)})
	require.NoError(t, err)

	err = store.InsertBulk(ctx, []*domain.TransitPoint{
		testPoint(domain.PlanetSun, 1700003600000, 247.9),
		testPoint(domain.PlanetSun, 1700000000000, 247.8),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	retrieved, err := store.GetByPlanet(ctx, domain.PlanetSun)
	require.NoError(t, err)
	assert.Len(t, retrieved, 1)
}

func TestTransitStore_GetByTimeRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)
	ctx := context.Background()

	points := []*domain.TransitPoint{
		testPoint(domain.PlanetSun, 1000, 247.8),
		testPoint(domain.PlanetSun, 2000, 247.9),
		testPoint(domain.PlanetSun, 3000, 248.0),
		testPoint(domain.PlanetMoon, 2000, 130.0),
	}
	require.NoError(t, store.InsertBulk(ctx, points))

	// Bounds are inclusive
	retrieved, err := store.GetByTimeRange(ctx, domain.PlanetSun, 1000, 2000)
	require.NoError(t, err)
	require.Len(t, retrieved, 2)
	assert.Equal(t, int64(1000), retrieved[0].TimestampMs)
	assert.Equal(t, int64(2000), retrieved[1].TimestampMs)

	empty, err := store.GetByTimeRange(ctx, domain.PlanetSun, 4000, 5000)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransitStore_GetByPlanetEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransitStore(conn)

	retrieved, err := store.GetByPlanet(context.Background(), domain.PlanetSaturn)
	require.NoError(t, err)
	assert.Empty(t, retrieved)
}
