package main

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calclab/calc-engine/internal/calculator"
)

func TestRun_CalcWithOverrides(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-calc", "ROI", "-set", "entry_price=20000", "-set", "units=2"}, &buf)
	require.NoError(t, err)

	// (65000-20000)*2/20000 = 4.5
	assert.Contains(t, buf.String(), "Profit: $4.50")
	assert.Contains(t, buf.String(), "225.00% ROI")
}

func TestRun_CalcDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"-calc", "fv"}, &buf))
	assert.Contains(t, buf.String(), "Future Value")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown kind", []string{"-calc", "sharpe"}, calculator.ErrUnknownKind},
		{"unknown param", []string{"-calc", "apy", "-set", "rate=1"}, calculator.ErrUnknownParam},
		{"no action", nil, flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRun_BadAssignment(t *testing.T) {
	assert.Error(t, run([]string{"-calc", "roi", "-set", "units"}, &bytes.Buffer{}))
	assert.Error(t, run([]string{"-calc", "roi", "-set", "units=lots"}, &bytes.Buffer{}))
}

func TestRun_Show(t *testing.T) {
	for _, dataset := range []string{"calculators", "invoices", "transactions", "news", "dashboard"} {
		var buf bytes.Buffer
		require.NoError(t, run([]string{"-show", dataset}, &buf), dataset)
		assert.NotEmpty(t, buf.String(), dataset)
	}
	assert.Error(t, run([]string{"-show", "portfolio"}, &bytes.Buffer{}))
}

func TestRun_ShowNewsFiltered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run([]string{"-show", "news", "-category", "Solana", "-trending"}, &buf))
	assert.Contains(t, buf.String(), "No articles found")
}

func TestAssignments(t *testing.T) {
	a := assignments{}
	require.NoError(t, a.Set("units = 2"))
	require.NoError(t, a.Set("entry_price=1e3"))
	assert.Equal(t, "entry_price=1000,units=2", a.String())
}
