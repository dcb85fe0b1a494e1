package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/calclab/calc-engine/internal/model"
)

// MemoryStore implements Store with an in-memory slice. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu    sync.RWMutex
	calcs []model.Calculation
	byID  map[string]int
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

func (s *MemoryStore) SaveCalculation(_ context.Context, c *model.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.ID]; ok {
		return fmt.Errorf("calculation %s already exists", c.ID)
	}

	// Store a copy to avoid external mutation.
	s.byID[c.ID] = len(s.calcs)
	s.calcs = append(s.calcs, cloneCalculation(c))
	return nil
}

func (s *MemoryStore) GetCalculation(_ context.Context, id string) (*model.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c := cloneCalculation(&s.calcs[i])
	return &c, nil
}

func (s *MemoryStore) ListCalculations(_ context.Context, f model.CalculationFilter) ([]model.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Calculation
	// Walk backwards so equal timestamps list the latest insert first.
	for i := len(s.calcs) - 1; i >= 0; i-- {
		if f.Matches(&s.calcs[i]) {
			result = append(result, cloneCalculation(&s.calcs[i]))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit := listLimit(f); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *MemoryStore) CountByKind(_ context.Context) ([]model.KindCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, c := range s.calcs {
		counts[c.Kind]++
	}

	result := make([]model.KindCount, 0, len(counts))
	for kind, n := range counts {
		result = append(result, model.KindCount{Kind: kind, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Kind < result[j].Kind })
	return result, nil
}

func (s *MemoryStore) PruneCalculations(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.calcs[:0]
	var removed int64
	for _, c := range s.calcs {
		if c.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.calcs = kept

	s.byID = make(map[string]int, len(s.calcs))
	for i, c := range s.calcs {
		s.byID[c.ID] = i
	}
	return removed, nil
}

func cloneCalculation(c *model.Calculation) model.Calculation {
	out := *c
	if c.Inputs != nil {
		out.Inputs = make(map[string]float64, len(c.Inputs))
		for k, v := range c.Inputs {
			out.Inputs[k] = v
		}
	}
	if c.Percent != nil {
		p := *c.Percent
		out.Percent = &p
	}
	return out
}
