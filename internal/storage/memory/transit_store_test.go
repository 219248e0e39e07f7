package memory

import (
	"context"
	"errors"
	"testing"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

func point(planet domain.Planet, ts int64, sidereal float64) *domain.TransitPoint {
	return &domain.TransitPoint{
		Planet:            planet,
		TimestampMs:       ts,
		TropicalLongitude: sidereal + 23.85,
		SiderealLongitude: sidereal,
	}
}

func TestTransitStore_InsertBulkAndGetByPlanet(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	points := []*domain.TransitPoint{
		point(domain.PlanetSun, 3000, 248.1),
		point(domain.PlanetSun, 1000, 247.9),
		point(domain.PlanetMoon, 1000, 130.0),
		point(domain.PlanetSun, 2000, 248.0),
	}
	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPlanet(ctx, domain.PlanetSun)
	if err != nil {
		t.Fatalf("GetByPlanet failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d points, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].TimestampMs >= got[i].TimestampMs {
			t.Errorf("points not ordered by timestamp ASC: %d then %d",
				got[i-1].TimestampMs, got[i].TimestampMs)
		}
	}
}

func TestTransitStore_EmptyBatch(t *testing.T) {
	store := NewTransitStore()

	if err := store.InsertBulk(context.Background(), nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestTransitStore_DuplicateAcrossBatches(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.TransitPoint{point(domain.PlanetSun, 1000, 247.9)}); err != nil {
		t.Fatalf("first InsertBulk failed: %v", err)
	}

	batch := []*domain.TransitPoint{
		point(domain.PlanetSun, 2000, 248.0),
		point(domain.PlanetSun, 1000, 247.9), // duplicate of stored point
	}
	if err := store.InsertBulk(ctx, batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// The failed batch must not have been partially applied
	got, err := store.GetByPlanet(ctx, domain.PlanetSun)
	if err != nil {
		t.Fatalf("GetByPlanet failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d points after failed batch, want 1", len(got))
	}
}

func TestTransitStore_DuplicateWithinBatch(t *testing.T) {
	store := NewTransitStore()

	batch := []*domain.TransitPoint{
		point(domain.PlanetSun, 1000, 247.9),
		point(domain.PlanetSun, 1000, 999.9),
	}
	if err := store.InsertBulk(context.Background(), batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestTransitStore_SamePlanetDifferentTimestamps(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	// Same timestamp on different planets is not a duplicate
	batch := []*domain.TransitPoint{
		point(domain.PlanetSun, 1000, 247.9),
		point(domain.PlanetMoon, 1000, 130.0),
	}
	if err := store.InsertBulk(ctx, batch); err != nil {
		t.Errorf("InsertBulk failed: %v", err)
	}
}

func TestTransitStore_InvalidInput(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.TransitPoint{nil}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil point, got %v", err)
	}
	if err := store.InsertBulk(ctx, []*domain.TransitPoint{point("", 1000, 1.0)}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty planet, got %v", err)
	}
}

func TestTransitStore_GetByTimeRange(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	points := []*domain.TransitPoint{
		point(domain.PlanetSun, 1000, 247.9),
		point(domain.PlanetSun, 2000, 248.0),
		point(domain.PlanetSun, 3000, 248.1),
		point(domain.PlanetMoon, 2000, 130.0),
	}
	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	// Bounds are inclusive on both ends
	got, err := store.GetByTimeRange(ctx, domain.PlanetSun, 1000, 2000)
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if got[0].TimestampMs != 1000 || got[1].TimestampMs != 2000 {
		t.Errorf("got timestamps %d, %d, want 1000, 2000", got[0].TimestampMs, got[1].TimestampMs)
	}

	empty, err := store.GetByTimeRange(ctx, domain.PlanetSun, 4000, 5000)
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d points outside range, want 0", len(empty))
	}
}

func TestTransitStore_CopyOnReturn(t *testing.T) {
	store := NewTransitStore()
	ctx := context.Background()

	original := point(domain.PlanetSun, 1000, 247.9)
	if err := store.InsertBulk(ctx, []*domain.TransitPoint{original}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	original.SiderealLongitude = 0

	got, err := store.GetByPlanet(ctx, domain.PlanetSun)
	if err != nil {
		t.Fatalf("GetByPlanet failed: %v", err)
	}
	if got[0].SiderealLongitude != 247.9 {
		t.Error("store contents were mutated through the caller's reference")
	}

	got[0].SiderealLongitude = 1
	again, err := store.GetByPlanet(ctx, domain.PlanetSun)
	if err != nil {
		t.Fatalf("GetByPlanet failed: %v", err)
	}
	if again[0].SiderealLongitude != 247.9 {
		t.Error("store contents were mutated through a returned copy")
	}
}
