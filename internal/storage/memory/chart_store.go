package memory

import (
	"context"
	"sort"
	"sync"

	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/storage"
)

// ChartStore is an in-memory implementation of storage.ChartStore.
type ChartStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ChartBundle // keyed by chart_id
}

// NewChartStore creates a new in-memory chart store.
func NewChartStore() *ChartStore {
	return &ChartStore{
		data: make(map[string]*domain.ChartBundle),
	}
}

// Compile-time interface check.
var _ storage.ChartStore = (*ChartStore)(nil)

// Insert adds a new bundle. Returns ErrDuplicateKey if chart_id exists.
func (s *ChartStore) Insert(_ context.Context, b *domain.ChartBundle) error {
	if b == nil || b.ChartID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[b.ChartID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[b.ChartID] = copyBundle(b)
	return nil
}

// GetByID retrieves a bundle by chart ID. Returns ErrNotFound if not exists.
func (s *ChartStore) GetByID(_ context.Context, chartID string) (*domain.ChartBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.data[chartID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyBundle(b), nil
}

// GetByFullName retrieves all bundles for a profile name,
// ordered by generated_at ASC, chart_id ASC.
func (s *ChartStore) GetByFullName(_ context.Context, fullName string) ([]*domain.ChartBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ChartBundle
	for _, b := range s.data {
		if b.Moment.FullName == fullName {
			result = append(result, copyBundle(b))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].GeneratedAt != result[j].GeneratedAt {
			return result[i].GeneratedAt < result[j].GeneratedAt
		}
		return result[i].ChartID < result[j].ChartID
	})
	return result, nil
}

// copyBundle returns a deep copy to prevent external mutation.
func copyBundle(b *domain.ChartBundle) *domain.ChartBundle {
	bundleCopy := *b
	bundleCopy.Positions = append([]domain.SiderealPosition(nil), b.Positions...)
	return &bundleCopy
}
