package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calclab/calc-engine/internal/model"
	"github.com/calclab/calc-engine/internal/store"
)

// testDatabaseEnv names a scratch PostgreSQL database for the Postgres cases.
const testDatabaseEnv = "CALCLAB_TEST_DATABASE_URL"

// assertLatestInsertFirst saves three calculations with one timestamp and
// checks every backend lists them in reverse insertion order.
func assertLatestInsertFirst(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()
	client := "tie-" + uuid.NewString()

	var want []string
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		require.NoError(t, st.SaveCalculation(ctx, calc(id, "roi", client, float64(i), base)))
		want = append([]string{id}, want...)
	}

	got, err := st.ListCalculations(ctx, model.CalculationFilter{ClientID: client})
	require.NoError(t, err)
	assert.Equal(t, want, ids(got))

	first, err := st.ListCalculations(ctx, model.CalculationFilter{ClientID: client, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, want[:1], ids(first))
}

func TestMemoryStore_EqualTimestampsLatestFirst(t *testing.T) {
	assertLatestInsertFirst(t, store.NewMemoryStore())
}

func TestSQLiteStore_EqualTimestampsLatestFirst(t *testing.T) {
	assertLatestInsertFirst(t, newSQLite(t))
}

func TestPostgresStore_EqualTimestampsLatestFirst(t *testing.T) {
	url := os.Getenv(testDatabaseEnv)
	if url == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	pg := store.NewPostgresStore(pool)
	require.NoError(t, pg.Migrate(ctx))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM calculations WHERE client_id LIKE 'tie-%'`)
	})

	assertLatestInsertFirst(t, pg)
}
