package store_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calclab/calc-engine/internal/model"
	"github.com/calclab/calc-engine/internal/store"
)

func newSQLite(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	pct := model.Float(116.66666666666667)
	c := calc("c1", "roi", "alice", 35000, base)
	c.Inputs = map[string]float64{"entry_price": 30000, "exit_price": 65000, "units": 1}
	c.Percent = &pct
	require.NoError(t, db.SaveCalculation(ctx, c))

	got, err := db.GetCalculation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "roi", got.Kind)
	assert.Equal(t, "alice", got.ClientID)
	assert.Equal(t, model.Float(35000), got.Value)
	require.NotNil(t, got.Percent)
	assert.Equal(t, pct, *got.Percent)
	assert.Equal(t, c.Inputs, got.Inputs)
	assert.True(t, got.Finite)
	assert.True(t, base.Equal(got.CreatedAt))
}

func TestSQLiteStore_NonFiniteRoundTrip(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	require.NoError(t, db.SaveCalculation(ctx, calc("nan", "apy", "", math.NaN(), base)))
	require.NoError(t, db.SaveCalculation(ctx, calc("inf", "roi", "", math.Inf(1), base)))

	got, err := db.GetCalculation(ctx, "nan")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Value.Float64()))
	assert.False(t, got.Finite)
	assert.Nil(t, got.Percent)

	got, err = db.GetCalculation(ctx, "inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Value.Float64(), 1))
}

func TestSQLiteStore_NotFound(t *testing.T) {
	db := newSQLite(t)
	_, err := db.GetCalculation(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteStore_ListCountPrune(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	require.NoError(t, db.SaveCalculation(ctx, calc("a", "roi", "alice", 1, base.Add(-48*time.Hour))))
	require.NoError(t, db.SaveCalculation(ctx, calc("b", "apy", "bob", 2, base)))
	require.NoError(t, db.SaveCalculation(ctx, calc("c", "roi", "bob", 3, base.Add(time.Minute))))

	all, err := db.ListCalculations(ctx, model.CalculationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))

	roi, err := db.ListCalculations(ctx, model.CalculationFilter{Kind: "roi", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(roi))

	bob, err := db.ListCalculations(ctx, model.CalculationFilter{ClientID: "bob"})
	require.NoError(t, err)
	assert.Len(t, bob, 2)

	counts, err := db.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.KindCount{{Kind: "apy", Count: 1}, {Kind: "roi", Count: 2}}, counts)

	n, err := db.PruneCalculations(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = db.GetCalculation(ctx, "a")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
