package sample

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Statement is one card billing cycle.
type Statement struct {
	Name    string          `json:"name"`
	Limit   decimal.Decimal `json:"limit"`
	Spent   decimal.Decimal `json:"spent"`
	Minimum decimal.Decimal `json:"minimum"`
	Paid    bool            `json:"paid"`
	Date    time.Time       `json:"date"` // paid-on date when Paid, due date otherwise
}

// Utilization returns spent as a percentage of the limit, rounded to two
// places. It exceeds 100 when the card is over its limit.
func (s Statement) Utilization() decimal.Decimal {
	if s.Limit.IsZero() {
		return decimal.Zero
	}
	return s.Spent.Div(s.Limit).Mul(hundred).Round(2)
}

// BarPercent returns the whole-number fill of the progress bar, capped at 100.
func (s Statement) BarPercent() int64 {
	u := s.Utilization().Round(0)
	if u.GreaterThan(hundred) {
		return 100
	}
	return u.IntPart()
}

// OverLimit returns how far spending exceeds the limit, or zero.
func (s Statement) OverLimit() decimal.Decimal {
	over := s.Spent.Sub(s.Limit)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}

// AccountBalance is the balance card.
type AccountBalance struct {
	Window           string          `json:"window"`
	AvgMonthlyGrowth decimal.Decimal `json:"avg_monthly_growth"` // percent
	AvgMonthlyIncome decimal.Decimal `json:"avg_monthly_income"`
}

// Payment is a row of the recent payments table.
type Payment struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

// Budget is the budget overview card.
type Budget struct {
	Savings      decimal.Decimal `json:"savings"`
	Expenses     decimal.Decimal `json:"expenses"`
	ExpenseCount int             `json:"expense_count"`
	SavingsCount int             `json:"savings_count"`
}

// SavingsShare returns savings as a percentage of savings plus expenses.
func (b Budget) SavingsShare() decimal.Decimal {
	total := b.Savings.Add(b.Expenses)
	if total.IsZero() {
		return decimal.Zero
	}
	return b.Savings.Div(total).Mul(hundred).Round(2)
}

// Dashboard is the finance summary page.
type Dashboard struct {
	Previous Statement      `json:"previous"`
	Current  Statement      `json:"current"`
	Balance  AccountBalance `json:"balance"`
	Payments []Payment      `json:"payments"`
	Budget   Budget         `json:"budget"`
}

// FinanceDashboard returns the summary page data.
func FinanceDashboard() Dashboard {
	return Dashboard{
		Previous: Statement{
			Name:    "Previous Statement",
			Limit:   dec("34500.00"),
			Spent:   dec("27221.21"),
			Minimum: dec("7331.94"),
			Paid:    true,
			Date:    day(2022, time.February, 6),
		},
		Current: Statement{
			Name:    "Current Statement",
			Limit:   dec("34500.00"),
			Spent:   dec("39819.41"),
			Minimum: dec("9112.51"),
			Date:    day(2022, time.March, 6),
		},
		Balance: AccountBalance{
			Window:           "12 months",
			AvgMonthlyGrowth: dec("38.33"),
			AvgMonthlyIncome: dec("45332.00"),
		},
		Payments: []Payment{
			{ID: "52865157INT", Date: day(2019, time.October, 8), Name: "Morgan Page", Amount: dec("1358.75"), Status: StatusCompleted},
			{ID: "685377421YT", Date: day(2019, time.December, 25), Name: "Marsha Chambers", Amount: dec("1828.16"), Status: StatusPending},
			{ID: "773829104AB", Date: day(2020, time.January, 14), Name: "Devon Lane", Amount: dec("2104.50"), Status: StatusCompleted},
		},
		Budget: Budget{
			Savings:      dec("10974"),
			Expenses:     dec("11763"),
			ExpenseCount: 223,
			SavingsCount: 12,
		},
	}
}

// CountByStatus tallies payments per status.
func CountByStatus(payments []Payment) map[string]int {
	counts := make(map[string]int)
	for _, p := range payments {
		counts[p.Status]++
	}
	return counts
}
