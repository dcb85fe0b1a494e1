package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calclab/calc-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL. Results are stored as
// TEXT so that NaN and ±Inf survive exactly.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the calculations table if it does not exist. seq records
// insertion order so that equal timestamps list the latest insert first.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calculations (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			client_id  TEXT NOT NULL DEFAULT '',
			inputs     JSONB NOT NULL,
			value      TEXT NOT NULL,
			percent    TEXT,
			verdict    TEXT NOT NULL,
			finite     BOOLEAN NOT NULL,
			display    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			seq        BIGSERIAL
		)`,
		// Tables created before seq existed.
		`ALTER TABLE calculations ADD COLUMN IF NOT EXISTS seq BIGSERIAL`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_created_seq ON calculations (created_at DESC, seq DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_kind_seq ON calculations (kind, created_at DESC, seq DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate calculations: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveCalculation(ctx context.Context, c *model.Calculation) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO calculations (id, kind, client_id, inputs, value, percent, verdict, finite, display, created_at)
		 VALUES ($1, $2, $3, $4::JSONB, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Kind, c.ClientID, row.inputs, row.value, row.percent,
		c.Verdict, c.Finite, c.Display, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save calculation %s: %w", c.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetCalculation(ctx context.Context, id string) (*model.Calculation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, client_id, inputs::TEXT, value, percent, verdict, finite, display, created_at
		 FROM calculations WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get calculation %s: %w", id, err)
	}
	defer rows.Close()

	calcs, err := scanCalculations(rows, timeDest)
	if err != nil {
		return nil, fmt.Errorf("get calculation %s: %w", id, err)
	}
	if len(calcs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &calcs[0], nil
}

func (s *PostgresStore) ListCalculations(ctx context.Context, f model.CalculationFilter) ([]model.Calculation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, client_id, inputs::TEXT, value, percent, verdict, finite, display, created_at
		 FROM calculations
		 WHERE ($1 = '' OR kind = $1) AND ($2 = '' OR client_id = $2)
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $3`, f.Kind, f.ClientID, listLimit(f))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCalculations(rows, timeDest)
}

func (s *PostgresStore) CountByKind(ctx context.Context) ([]model.KindCount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT kind, COUNT(*) FROM calculations GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.KindCount
	for rows.Next() {
		var kc model.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, kc)
	}
	return counts, rows.Err()
}

func (s *PostgresStore) PruneCalculations(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calculations WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("prune calculations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
