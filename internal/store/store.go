// Package store defines the persistence interface for calculation history.
// Implementations include PostgreSQL, SQLite, a Redis read-through cache and
// an in-memory store for tests and development.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/calclab/calc-engine/internal/model"
)

// ErrNotFound is returned when a calculation does not exist.
var ErrNotFound = errors.New("store: calculation not found")

// DefaultListLimit caps ListCalculations when the filter sets no limit.
const DefaultListLimit = 100

// Store persists the append-only calculation history.
type Store interface {
	// SaveCalculation appends an immutable calculation record.
	SaveCalculation(ctx context.Context, c *model.Calculation) error

	// GetCalculation retrieves a calculation by ID.
	GetCalculation(ctx context.Context, id string) (*model.Calculation, error)

	// ListCalculations returns matching calculations, newest first.
	ListCalculations(ctx context.Context, f model.CalculationFilter) ([]model.Calculation, error)

	// CountByKind returns the number of stored calculations per kind,
	// ordered by kind.
	CountByKind(ctx context.Context) ([]model.KindCount, error)

	// PruneCalculations deletes calculations created before the cutoff and
	// returns how many were removed.
	PruneCalculations(ctx context.Context, before time.Time) (int64, error)
}

func listLimit(f model.CalculationFilter) int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}
