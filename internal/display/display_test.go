package display

import (
	"math"
	"testing"
	"time"

	"github.com/calclab/calc-engine/internal/calculator"
)

func TestFixed2(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{35000, "35000.00"},
		{16.180, "16.18"},
		{-13.397459, "-13.40"},
		{0.005, "0.01"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := Fixed2(tt.v); got != tt.want {
			t.Errorf("Fixed2(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAmount_ThousandsSeparators(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{8450, "8,450"},
		{12300, "12,300"},
		{5670.5, "5,670.5"},
		{890, "890"},
	}
	for _, tt := range tests {
		if got := Amount(tt.v); got != tt.want {
			t.Errorf("Amount(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestDollars(t *testing.T) {
	if got := Dollars(34500); got != "$34,500.00" {
		t.Errorf("Dollars(34500) = %q", got)
	}
	if got := Dollars(-5319.41); got != "-$5,319.41" {
		t.Errorf("Dollars(-5319.41) = %q", got)
	}
}

func TestDates(t *testing.T) {
	ts := time.Date(2025, 3, 15, 14, 5, 9, 0, time.UTC)
	if got := Date(ts); got != "Mar 15, 2025" {
		t.Errorf("Date = %q", got)
	}
	if got := ShortDate(ts); got != "Mar 15" {
		t.Errorf("ShortDate = %q", got)
	}
	if got := Stamp(ts); got != "Mar 15, 2025, 2:05:09 PM" {
		t.Errorf("Stamp = %q", got)
	}
}

func TestHeadline_DefaultCards(t *testing.T) {
	tests := []struct {
		kind calculator.Kind
		want string
	}{
		{calculator.KindROI, "Profit: $1.17"},
		{calculator.KindAPY, "APY: 16.18%"},
		{calculator.KindImpermanentLoss, "IL: -13.40%"},
	}
	for _, tt := range tests {
		in, err := calculator.Bind(tt.kind, nil)
		if err != nil {
			t.Fatalf("Bind(%s): %v", tt.kind, err)
		}
		if got := Headline(tt.kind, calculator.Evaluate(in)); got != tt.want {
			t.Errorf("Headline(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestHeadline_NonFinite(t *testing.T) {
	in, _ := calculator.Bind(calculator.KindROI, map[string]float64{"entry_price": 0})
	if got := Headline(calculator.KindROI, calculator.Evaluate(in)); got != "Profit: $Infinity" {
		t.Errorf("unexpected headline for zero entry: %q", got)
	}
}

func TestDetail(t *testing.T) {
	in, _ := calculator.Bind(calculator.KindROI, nil)
	if got := Detail(calculator.KindROI, in.Values, calculator.Evaluate(in)); got != "116.67% ROI" {
		t.Errorf("ROI detail = %q", got)
	}

	in, _ = calculator.Bind(calculator.KindImpermanentLoss, nil)
	if got := Detail(calculator.KindImpermanentLoss, in.Values, calculator.Evaluate(in)); got != "3x price change → Loss" {
		t.Errorf("IL detail = %q", got)
	}

	in, _ = calculator.Bind(calculator.KindImpermanentLoss, map[string]float64{"price_ratio": 1})
	if got := Detail(calculator.KindImpermanentLoss, in.Values, calculator.Evaluate(in)); got != "1x price change → Gain" {
		t.Errorf("IL detail at ratio 1 = %q", got)
	}

	in, _ = calculator.Bind(calculator.KindAPY, nil)
	if got := Detail(calculator.KindAPY, in.Values, calculator.Evaluate(in)); got != "" {
		t.Errorf("APY has no detail line, got %q", got)
	}
}
