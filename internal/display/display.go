// Package display formats formula results and sample data the way the
// dashboard cards show them. Formulas return raw float64; everything here is
// presentation.
package display

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/calclab/calc-engine/internal/calculator"
)

// Date layouts used by the cards.
const (
	LayoutDate      = "Jan 2, 2006"
	LayoutShortDate = "Jan 2"
	LayoutStamp     = "Jan 2, 2006, 3:04:05 PM"
)

// Fixed2 renders v with exactly two decimals. Non-finite values are spelled
// Infinity, -Infinity and NaN.
func Fixed2(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Money renders v as dollars with two decimals, e.g. "$1.17".
func Money(v float64) string {
	return "$" + Fixed2(v)
}

// Percent renders v with two decimals and a percent suffix.
func Percent(v float64) string {
	return Fixed2(v) + "%"
}

// Amount renders v with thousands separators and at most three decimals,
// e.g. 12300 -> "12,300", 5670.5 -> "5,670.5".
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fixed2(v)
	}
	return humanize.CommafWithDigits(v, 3)
}

// Dollars renders v as "$12,300.00", or "-$5,319.41" when negative.
func Dollars(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money(v)
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func Date(t time.Time) string      { return t.Format(LayoutDate) }
func ShortDate(t time.Time) string { return t.Format(LayoutShortDate) }
func Stamp(t time.Time) string     { return t.Format(LayoutStamp) }

// Headline returns the result line printed on a calculator card.
func Headline(kind calculator.Kind, r calculator.Result) string {
	switch kind {
	case calculator.KindROI:
		return "Profit: " + Money(r.Value)
	case calculator.KindAPY:
		return "APY: " + Percent(r.Value)
	case calculator.KindImpermanentLoss:
		return "IL: " + Percent(r.Value)
	case calculator.KindFutureValue:
		return Money(r.Value)
	}
	return Fixed2(r.Value)
}

// Detail returns the secondary line of a card, or "" when the card has none.
// For impermanent loss anything not strictly negative reads as "Gain".
func Detail(kind calculator.Kind, inputs map[string]float64, r calculator.Result) string {
	switch kind {
	case calculator.KindROI:
		if r.Percent != nil {
			return Percent(*r.Percent) + " ROI"
		}
	case calculator.KindImpermanentLoss:
		label := "Gain"
		if r.Value < 0 {
			label = "Loss"
		}
		return strconv.FormatFloat(inputs["price_ratio"], 'g', -1, 64) + "x price change → " + label
	}
	return ""
}
