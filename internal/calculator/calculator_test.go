package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/calclab/calc-engine/internal/finmath"
)

func TestParseKind_CanonicalAndChip(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"roi", KindROI},
		{"ROI", KindROI},
		{"apy", KindAPY},
		{"IL", KindImpermanentLoss},
		{"impermanent_loss", KindImpermanentLoss},
		{" fv ", KindFutureValue},
		{"Future_Value", KindFutureValue},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, in := range []string{"", "npv", "irr", "roi2"} {
		_, err := ParseKind(in)
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("ParseKind(%q): expected ErrUnknownKind, got %v", in, err)
		}
	}
}

func TestAll_DisplayOrder(t *testing.T) {
	all := All()
	want := []Kind{KindROI, KindAPY, KindImpermanentLoss, KindFutureValue}
	if len(all) != len(want) {
		t.Fatalf("expected %d calculators, got %d", len(want), len(all))
	}
	for i, k := range want {
		if all[i].Kind != k {
			t.Errorf("position %d: expected %s, got %s", i, k, all[i].Kind)
		}
	}

	// Mutating the returned slice must not affect the registry.
	all[0].Title = "changed"
	if d, _ := Lookup(KindROI); d.Title != "Return on Investment" {
		t.Errorf("registry was mutated through All(): %q", d.Title)
	}
}

func TestBind_DefaultsFillMissing(t *testing.T) {
	in, err := Bind(KindFutureValue, map[string]float64{"principal": 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Values["principal"] != 100 {
		t.Errorf("expected principal=100, got %v", in.Values["principal"])
	}
	if in.Values["annual_rate"] != 0.8 {
		t.Errorf("expected default annual_rate=0.8, got %v", in.Values["annual_rate"])
	}
	if in.Values["compounds_per_year"] != 12 {
		t.Errorf("expected default compounds_per_year=12, got %v", in.Values["compounds_per_year"])
	}
}

func TestBind_UnknownParam(t *testing.T) {
	_, err := Bind(KindROI, map[string]float64{"entry_price": 1, "leverage": 10})
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestBind_UnknownKind(t *testing.T) {
	_, err := Bind(Kind("npv"), nil)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestBind_NoRangeValidation(t *testing.T) {
	// Zero and negative inputs are accepted; the formula decides.
	in, err := Bind(KindROI, map[string]float64{"entry_price": 0})
	if err != nil {
		t.Fatalf("zero entry price should bind, got %v", err)
	}
	r := Evaluate(in)
	if !math.IsInf(r.Value, 1) {
		t.Errorf("expected +Inf profit for zero entry, got %v", r.Value)
	}
	if r.Finite {
		t.Error("expected Finite=false")
	}
}

func TestEvaluate_DefaultCards(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
	}{
		{KindROI, finmath.ROI(30000, 65000, 1)},
		{KindAPY, finmath.APY(1000, 150, 365)},
		{KindImpermanentLoss, finmath.ImpermanentLoss(3)},
		{KindFutureValue, finmath.FutureValue(5000, 0.8, 1, 12)},
	}
	for _, tt := range tests {
		in, err := Bind(tt.kind, nil)
		if err != nil {
			t.Fatalf("Bind(%s): %v", tt.kind, err)
		}
		r := Evaluate(in)
		if r.Value != tt.want {
			t.Errorf("%s default: got %v, want %v", tt.kind, r.Value, tt.want)
		}
		if !r.Finite {
			t.Errorf("%s default should be finite", tt.kind)
		}
	}
}

func TestEvaluate_ROIPercentOnlyForROI(t *testing.T) {
	in, _ := Bind(KindROI, nil)
	r := Evaluate(in)
	if r.Percent == nil {
		t.Fatal("expected ROI percent to be set")
	}
	if math.Abs(*r.Percent-116.67) > 0.005 {
		t.Errorf("expected ROI percent ≈116.67, got %v", *r.Percent)
	}
	if r.Verdict != finmath.Gain {
		t.Errorf("expected gain verdict, got %s", r.Verdict)
	}

	in, _ = Bind(KindAPY, nil)
	if r := Evaluate(in); r.Percent != nil {
		t.Errorf("APY should not carry a percent, got %v", *r.Percent)
	}
}

func TestEvaluate_ImpermanentLossVerdict(t *testing.T) {
	in, _ := Bind(KindImpermanentLoss, map[string]float64{"price_ratio": 3})
	if r := Evaluate(in); r.Verdict != finmath.Loss {
		t.Errorf("3x price change should be a loss, got %s", r.Verdict)
	}

	in, _ = Bind(KindImpermanentLoss, map[string]float64{"price_ratio": -2})
	r := Evaluate(in)
	if !math.IsNaN(r.Value) || r.Verdict != finmath.Undefined {
		t.Errorf("negative ratio should be NaN/undefined, got %v/%s", r.Value, r.Verdict)
	}
}
