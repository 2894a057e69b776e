package adapters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"courier-rates/internal/features/rates/domain"
)

// MemoryStore keeps each slab run as a sorted slice.
// It implements ports.RateRepository and is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[domain.SlabKey][]domain.RateSlab
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[domain.SlabKey][]domain.RateSlab)}
}

// search returns the index of the first row with slab >= weightSlab.
func search(run []domain.RateSlab, weightSlab float64) int {
	return sort.Search(len(run), func(i int) bool { return run[i].WeightSlab >= weightSlab })
}

// Exact returns the row at weightSlab.
func (s *MemoryStore) Exact(_ context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := s.runs[key]
	if i := search(run, weightSlab); i < len(run) && run[i].WeightSlab == weightSlab {
		row := run[i]
		return &row, nil
	}
	return nil, nil
}

// NearestBelow returns the largest slab strictly below weightSlab.
func (s *MemoryStore) NearestBelow(_ context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := s.runs[key]
	if i := search(run, weightSlab); i > 0 {
		row := run[i-1]
		return &row, nil
	}
	return nil, nil
}

// NearestAbove returns the smallest slab strictly above weightSlab.
func (s *MemoryStore) NearestAbove(_ context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := s.runs[key]
	i := search(run, weightSlab)
	if i < len(run) && run[i].WeightSlab == weightSlab {
		i++
	}
	if i < len(run) {
		row := run[i]
		return &row, nil
	}
	return nil, nil
}

// Slabs returns a copy of the run.
func (s *MemoryStore) Slabs(_ context.Context, key domain.SlabKey) ([]domain.RateSlab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := s.runs[key]
	out := make([]domain.RateSlab, len(run))
	copy(out, run)
	return out, nil
}

// Upsert validates every row first and writes nothing if any is invalid.
func (s *MemoryStore) Upsert(_ context.Context, slabs []domain.RateSlab) (int, error) {
	for i, row := range slabs {
		if err := row.Validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range slabs {
		key := row.Key()
		run := s.runs[key]
		i := search(run, row.WeightSlab)
		if i < len(run) && run[i].WeightSlab == row.WeightSlab {
			run[i].Rate = row.Rate
			continue
		}
		run = append(run, domain.RateSlab{})
		copy(run[i+1:], run[i:])
		run[i] = row
		s.runs[key] = run
	}
	return len(slabs), nil
}

// DeleteScope drops the run.
func (s *MemoryStore) DeleteScope(_ context.Context, key domain.SlabKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, key)
	return nil
}
