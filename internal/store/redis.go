package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calclab/calc-engine/internal/model"
)

// CachedStore wraps a primary Store with a Redis read-through cache.
// Calculations are immutable, so entries are written once on save and only
// expire by TTL. Listing and aggregation always go to the primary.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Write-through ---

func (s *CachedStore) SaveCalculation(ctx context.Context, c *model.Calculation) error {
	if err := s.primary.SaveCalculation(ctx, c); err != nil {
		return err
	}
	s.cacheCalculation(ctx, c)
	return nil
}

// --- Read-through ---

func (s *CachedStore) GetCalculation(ctx context.Context, id string) (*model.Calculation, error) {
	data, err := s.rdb.Get(ctx, calcKey(id)).Bytes()
	if err == nil {
		var c model.Calculation
		if json.Unmarshal(data, &c) == nil {
			return &c, nil
		}
	}

	c, err := s.primary.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheCalculation(ctx, c)
	return c, nil
}

// --- Passthrough ---

func (s *CachedStore) ListCalculations(ctx context.Context, f model.CalculationFilter) ([]model.Calculation, error) {
	return s.primary.ListCalculations(ctx, f)
}

func (s *CachedStore) CountByKind(ctx context.Context) ([]model.KindCount, error) {
	return s.primary.CountByKind(ctx)
}

// PruneCalculations deletes from the primary only. Pruned records may still
// be served from the cache until their TTL elapses.
func (s *CachedStore) PruneCalculations(ctx context.Context, before time.Time) (int64, error) {
	return s.primary.PruneCalculations(ctx, before)
}

func (s *CachedStore) cacheCalculation(ctx context.Context, c *model.Calculation) {
	if data, err := json.Marshal(c); err == nil {
		s.rdb.Set(ctx, calcKey(c.ID), data, s.ttl)
	}
}

func calcKey(id string) string { return fmt.Sprintf("calc:%s", id) }
