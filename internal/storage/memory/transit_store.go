package memory

import (
	"context"
	"sort"
	"sync"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

// transitKey uniquely identifies a transit point.
type transitKey struct {
	planet      domain.Planet
	timestampMs int64
}

// TransitStore is an in-memory implementation of storage.TransitStore.
type TransitStore struct {
	mu   sync.RWMutex
	data map[transitKey]*domain.TransitPoint
}

// NewTransitStore creates a new in-memory transit store.
func NewTransitStore() *TransitStore {
	return &TransitStore{
		data: make(map[transitKey]*domain.TransitPoint),
	}
}

// Compile-time interface check.
var _ storage.TransitStore = (*TransitStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (planet, timestamp_ms), leaving the store unchanged.
func (s *TransitStore) InsertBulk(_ context.Context, points []*domain.TransitPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before mutating anything
	seen := make(map[transitKey]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Planet == "" {
			return storage.ErrInvalidInput
		}
		k := transitKey{p.Planet, p.TimestampMs}
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, p := range points {
		pointCopy := *p
		s.data[transitKey{p.Planet, p.TimestampMs}] = &pointCopy
	}
	return nil
}

// GetByPlanet retrieves all points for a planet, ordered by timestamp ASC.
func (s *TransitStore) GetByPlanet(_ context.Context, planet domain.Planet) ([]*domain.TransitPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TransitPoint
	for k, p := range s.data {
		if k.planet == planet {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}

// GetByTimeRange retrieves points for a planet within [start, end] (inclusive).
func (s *TransitStore) GetByTimeRange(_ context.Context, planet domain.Planet, start, end int64) ([]*domain.TransitPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TransitPoint
	for k, p := range s.data {
		if k.planet == planet && p.TimestampMs >= start && p.TimestampMs <= end {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}
