package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/calclab/calc-engine/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS calculations (
    id         TEXT PRIMARY KEY,
    kind       TEXT    NOT NULL,
    client_id  TEXT    NOT NULL DEFAULT '',
    inputs     TEXT    NOT NULL,
    value      TEXT    NOT NULL,
    percent    TEXT,
    verdict    TEXT    NOT NULL,
    finite     INTEGER NOT NULL,
    display    TEXT    NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_calculations_kind    ON calculations(kind, created_at DESC);
`

// SQLiteStore implements Store on an embedded SQLite file (pure Go, no CGo).
// Timestamps are stored as unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single writer
	db.SetMaxIdleConns(1)

	if path != ":memory:" {
		if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
			db.Close()
			return nil, fmt.Errorf("store.NewSQLiteStore: enable wal: %w", err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCalculation(ctx context.Context, c *model.Calculation) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calculations (id, kind, client_id, inputs, value, percent, verdict, finite, display, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Kind, c.ClientID, row.inputs, row.value, row.percent,
		c.Verdict, c.Finite, c.Display, c.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store.SaveCalculation %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetCalculation(ctx context.Context, id string) (*model.Calculation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, client_id, inputs, value, percent, verdict, finite, display, created_at
		 FROM calculations WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetCalculation %s: %w", id, err)
	}
	defer rows.Close()

	calcs, err := scanCalculations(rows, nanosDest)
	if err != nil {
		return nil, fmt.Errorf("store.GetCalculation %s: %w", id, err)
	}
	if len(calcs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &calcs[0], nil
}

func (s *SQLiteStore) ListCalculations(ctx context.Context, f model.CalculationFilter) ([]model.Calculation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, client_id, inputs, value, percent, verdict, finite, display, created_at
		 FROM calculations
		 WHERE (? = '' OR kind = ?) AND (? = '' OR client_id = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		f.Kind, f.Kind, f.ClientID, f.ClientID, listLimit(f))
	if err != nil {
		return nil, fmt.Errorf("store.ListCalculations: %w", err)
	}
	defer rows.Close()

	return scanCalculations(rows, nanosDest)
}

func (s *SQLiteStore) CountByKind(ctx context.Context) ([]model.KindCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM calculations GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("store.CountByKind: %w", err)
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

func (s *SQLiteStore) PruneCalculations(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM calculations WHERE created_at < ?`, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("store.PruneCalculations: %w", err)
	}
	return res.RowsAffected()
}

// unixNanos scans an INTEGER unix-nanosecond column into a time.Time.
type unixNanos struct{ t *time.Time }

func (u unixNanos) Scan(src any) error {
	n, ok := src.(int64)
	if !ok {
		return errors.New("store: created_at is not an integer")
	}
	*u.t = time.Unix(0, n)
	return nil
}

func nanosDest(t *time.Time) any { return unixNanos{t: t} }
