// Package model defines the domain types shared across the calc engine.
// Formula inputs and results are float64 so that non-finite results survive
// end to end; money in the sample datasets uses shopspring/decimal.
package model

import (
	"time"
)

// Calculation is an immutable record of one calculator evaluation.
// Once created it is never modified; retention may delete it.
type Calculation struct {
	ID        string             `json:"id" db:"id"`
	Kind      string             `json:"kind" db:"kind"`
	ClientID  string             `json:"client_id,omitempty" db:"client_id"`
	Inputs    map[string]float64 `json:"inputs" db:"inputs"`
	Value     Float              `json:"value" db:"value"`
	Percent   *Float             `json:"percent,omitempty" db:"percent"` // ROI% for roi only
	Verdict   string             `json:"verdict" db:"verdict"`
	Finite    bool               `json:"finite" db:"finite"`
	Display   string             `json:"display" db:"display"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}

// CalculationFilter narrows ListCalculations. Zero values mean "any".
type CalculationFilter struct {
	Kind     string
	ClientID string
	Limit    int
}

// Matches reports whether c passes the kind and client filters.
func (f CalculationFilter) Matches(c *Calculation) bool {
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.ClientID != "" && c.ClientID != f.ClientID {
		return false
	}
	return true
}

// KindCount is one row of the per-kind evaluation statistics.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}
