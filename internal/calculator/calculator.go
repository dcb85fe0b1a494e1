// Package calculator binds named, user-editable fields to the finmath
// formulas. It owns the card metadata (title, formula text, default inputs)
// and dispatches evaluations; it never alters the arithmetic.
package calculator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/calclab/calc-engine/internal/finmath"
)

// Kind identifies one calculator card.
type Kind string

const (
	KindROI             Kind = "roi"
	KindAPY             Kind = "apy"
	KindImpermanentLoss Kind = "impermanent_loss"
	KindFutureValue     Kind = "future_value"
)

// Units of a calculator's headline value.
const (
	UnitCurrency = "currency"
	UnitPercent  = "percent"
)

var (
	ErrUnknownKind  = errors.New("calculator: unknown calculator kind")
	ErrUnknownParam = errors.New("calculator: unknown input parameter")
)

// Param is one editable input field.
type Param struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Default float64 `json:"default"`
}

// Descriptor describes a calculator card.
type Descriptor struct {
	Kind    Kind    `json:"kind"`
	Chip    string  `json:"chip"`
	Title   string  `json:"title"`
	Formula string  `json:"formula"`
	Unit    string  `json:"unit"`
	Params  []Param `json:"params"`
}

// Defaults returns the default value of every parameter.
func (d Descriptor) Defaults() map[string]float64 {
	out := make(map[string]float64, len(d.Params))
	for _, p := range d.Params {
		out[p.Name] = p.Default
	}
	return out
}

// registry lists the cards in display order.
var registry = []Descriptor{
	{
		Kind:    KindROI,
		Chip:    "ROI",
		Title:   "Return on Investment",
		Formula: "(exit - entry) × amount / entry",
		Unit:    UnitCurrency,
		Params: []Param{
			{Name: "entry_price", Label: "Entry Price", Default: 30000},
			{Name: "exit_price", Label: "Exit Price", Default: 65000},
			{Name: "units", Label: "BTC Amount", Default: 1},
		},
	},
	{
		Kind:    KindAPY,
		Chip:    "APY",
		Title:   "Compound Interest (APY)",
		Formula: "(1 + r/n)^(nt) - 1",
		Unit:    UnitPercent,
		Params: []Param{
			{Name: "principal", Label: "Principal", Default: 1000},
			{Name: "yearly_interest", Label: "Yearly Interest", Default: 150},
			{Name: "compounds_per_year", Label: "Compounds/Year", Default: 365},
		},
	},
	{
		Kind:    KindImpermanentLoss,
		Chip:    "IL",
		Title:   "Impermanent Loss (LP)",
		Formula: "2√k/(1+k) - 1",
		Unit:    UnitPercent,
		Params: []Param{
			{Name: "price_ratio", Label: "Price Change Ratio (e.g. 3 = 3x)", Default: 3},
		},
	},
	{
		Kind:    KindFutureValue,
		Chip:    "FV",
		Title:   "Future Value (Staking)",
		Formula: "P × (1 + r/n)^(nt)",
		Unit:    UnitCurrency,
		Params: []Param{
			{Name: "principal", Label: "Principal", Default: 5000},
			{Name: "annual_rate", Label: "APY", Default: 0.8},
			{Name: "years", Label: "Years", Default: 1},
			{Name: "compounds_per_year", Label: "Compounds", Default: 12},
		},
	},
}

// All returns every calculator in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// ParseKind resolves a canonical kind name or a card chip label
// (ROI, APY, IL, FV), case-insensitively.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, d := range registry {
		if key == string(d.Kind) || key == strings.ToLower(d.Chip) {
			return d.Kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Lookup returns the descriptor for kind.
func Lookup(kind Kind) (Descriptor, error) {
	for _, d := range registry {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Inputs is a fully bound set of parameters for one calculator.
type Inputs struct {
	Kind   Kind
	Values map[string]float64
}

// Bind merges values over the calculator defaults. Parameters that are not
// supplied take their default; unknown names are rejected. Values are not
// range-checked.
func Bind(kind Kind, values map[string]float64) (Inputs, error) {
	d, err := Lookup(kind)
	if err != nil {
		return Inputs{}, err
	}

	bound := d.Defaults()
	var unknown []string
	for name, v := range values {
		if _, ok := bound[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		bound[name] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Inputs{}, fmt.Errorf("%w for %s: %s", ErrUnknownParam, kind, strings.Join(unknown, ", "))
	}

	return Inputs{Kind: kind, Values: bound}, nil
}

// Result is the outcome of one evaluation.
type Result struct {
	Value   float64
	Percent *float64 // relative ROI in percent; roi only
	Verdict finmath.Outcome
	Finite  bool
}

// Evaluate runs the formula for in.Kind. in must come from Bind.
func Evaluate(in Inputs) Result {
	v := in.Values
	var r Result

	switch in.Kind {
	case KindROI:
		r.Value = finmath.ROI(v["entry_price"], v["exit_price"], v["units"])
		pct := finmath.ROIPercent(v["entry_price"], v["exit_price"])
		r.Percent = &pct
	case KindAPY:
		r.Value = finmath.APY(v["principal"], v["yearly_interest"], v["compounds_per_year"])
	case KindImpermanentLoss:
		r.Value = finmath.ImpermanentLoss(v["price_ratio"])
	case KindFutureValue:
		r.Value = finmath.FutureValue(v["principal"], v["annual_rate"], v["years"], v["compounds_per_year"])
	}

	r.Verdict = finmath.Verdict(r.Value)
	r.Finite = finmath.IsFinite(r.Value)
	return r
}
