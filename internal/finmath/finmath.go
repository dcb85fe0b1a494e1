// Package finmath implements the closed-form financial formulas behind the
// calculator cards: return on investment, annual percentage yield,
// impermanent loss and compound future value.
//
// Every function is pure and safe for concurrent use. Inputs are not
// validated: a zero divisor or a negative radicand yields the IEEE-754
// result (±Inf or NaN) and the caller decides how to present it.
package finmath

import "math"

// ROI returns the absolute profit of a position of units bought at
// entryPrice and sold at exitPrice:
//
//	profit = (exitPrice - entryPrice) * units / entryPrice
//
// entryPrice == 0 yields ±Inf (or NaN when exitPrice is also 0).
func ROI(entryPrice, exitPrice, units float64) float64 {
	return (exitPrice - entryPrice) * units / entryPrice
}

// ROIPercent returns the relative price change in percent:
//
//	pct = (exitPrice / entryPrice - 1) * 100
func ROIPercent(entryPrice, exitPrice float64) float64 {
	return (exitPrice/entryPrice - 1) * 100
}

// APY returns the annual percentage yield, in percent, of a yearly interest
// amount earned on principal and compounded compoundsPerYear times:
//
//	apy = ((1 + yearlyInterest / principal / compoundsPerYear) ^ compoundsPerYear - 1) * 100
//
// yearlyInterest is an absolute amount, turned into a rate by dividing by
// principal before compounding.
func APY(principal, yearlyInterest, compoundsPerYear float64) float64 {
	return (math.Pow(1+yearlyInterest/principal/compoundsPerYear, compoundsPerYear) - 1) * 100
}

// ImpermanentLoss returns, in percent, the value a constant-product liquidity
// position loses against simply holding when the pooled asset price moves by
// priceRatio (new price / old price):
//
//	il = (2 * sqrt(priceRatio) / (1 + priceRatio) - 1) * 100
//
// The result is never positive for priceRatio > 0. A negative ratio yields NaN.
func ImpermanentLoss(priceRatio float64) float64 {
	return (2*math.Sqrt(priceRatio)/(1+priceRatio) - 1) * 100
}

// FutureValue returns principal compounded at annualRate, compoundsPerYear
// times a year, for years:
//
//	fv = principal * (1 + annualRate / compoundsPerYear) ^ (compoundsPerYear * years)
func FutureValue(principal, annualRate, years, compoundsPerYear float64) float64 {
	return principal * math.Pow(1+annualRate/compoundsPerYear, compoundsPerYear*years)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Outcome classifies the sign of a formula result.
type Outcome string

const (
	Gain      Outcome = "gain"
	Loss      Outcome = "loss"
	Flat      Outcome = "flat"
	Undefined Outcome = "undefined"
)

// Verdict classifies v by sign. NaN is Undefined; ±Inf follow their sign.
func Verdict(v float64) Outcome {
	switch {
	case math.IsNaN(v):
		return Undefined
	case v > 0:
		return Gain
	case v < 0:
		return Loss
	default:
		return Flat
	}
}
