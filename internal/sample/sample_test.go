package sample

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTokenColor(t *testing.T) {
	tests := map[string]string{
		"BTC":  "#f7931a",
		"ETH":  "#62688f",
		"USDT": "#26a17b",
		"USDC": "#2775ca",
		"SOL":  "#14f195",
		"DOGE": "#8b5cf6",
		"":     "#8b5cf6",
	}
	for token, want := range tests {
		if got := TokenColor(token); got != want {
			t.Errorf("TokenColor(%q) = %s, want %s", token, got, want)
		}
	}
}

func TestStatusIcon(t *testing.T) {
	if got := StatusIcon(StatusCompleted).Name; got != "check_circle" {
		t.Errorf("completed icon = %s", got)
	}
	if got := StatusIcon(StatusPending).Color; got != "#f59e0b" {
		t.Errorf("pending colour = %s", got)
	}
	if got := StatusIcon("failed").Name; got != "access_time" {
		t.Errorf("fallback icon = %s", got)
	}
}

func TestNews_FilterByCategory(t *testing.T) {
	got := News(NewsFilter{Category: "ethereum"})
	if len(got) != 2 {
		t.Fatalf("expected 2 Ethereum articles, got %d", len(got))
	}
	for _, a := range got {
		if a.Category != "Ethereum" {
			t.Errorf("unexpected category %s", a.Category)
		}
	}
	if !got[0].Date.After(got[1].Date) {
		t.Error("articles should be newest first")
	}
}

func TestNews_TrendingOnly(t *testing.T) {
	got := News(NewsFilter{TrendingOnly: true})
	if len(got) != 4 {
		t.Fatalf("expected 4 trending articles, got %d", len(got))
	}
	for _, a := range got {
		if !a.Trending {
			t.Errorf("article %d is not trending", a.ID)
		}
	}
}

func TestNews_NoFilter(t *testing.T) {
	if got := News(NewsFilter{}); len(got) != len(Articles()) {
		t.Errorf("expected all %d articles, got %d", len(Articles()), len(got))
	}
	if got := News(NewsFilter{Category: "Cardano"}); len(got) != 0 {
		t.Errorf("expected no Cardano articles, got %d", len(got))
	}
}

func TestCategories(t *testing.T) {
	want := []string{"Bitcoin", "Ethereum", "Solana", "Stablecoins", "XRP"}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestStatement_PreviousWithinLimit(t *testing.T) {
	s := FinanceDashboard().Previous
	if !s.Utilization().Equal(d("78.9")) {
		t.Errorf("expected utilization 78.90, got %s", s.Utilization())
	}
	if s.BarPercent() != 79 {
		t.Errorf("expected bar 79%%, got %d", s.BarPercent())
	}
	if !s.OverLimit().IsZero() {
		t.Errorf("expected no overage, got %s", s.OverLimit())
	}
}

func TestStatement_CurrentOverLimit(t *testing.T) {
	s := FinanceDashboard().Current
	if !s.OverLimit().Equal(d("5319.41")) {
		t.Errorf("expected over limit by 5319.41, got %s", s.OverLimit())
	}
	if s.BarPercent() != 100 {
		t.Errorf("bar should be capped at 100, got %d", s.BarPercent())
	}
	if !s.Utilization().GreaterThan(d("100")) {
		t.Errorf("utilization should exceed 100, got %s", s.Utilization())
	}
}

func TestStatement_ZeroLimit(t *testing.T) {
	s := Statement{Spent: d("10")}
	if !s.Utilization().IsZero() {
		t.Errorf("zero limit should report zero utilization, got %s", s.Utilization())
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(FinanceDashboard().Payments)
	if counts[StatusPending] != 1 || counts[StatusCompleted] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestBudget_SavingsShare(t *testing.T) {
	b := FinanceDashboard().Budget
	if !b.SavingsShare().Equal(d("48.26")) {
		t.Errorf("expected savings share 48.26, got %s", b.SavingsShare())
	}
	if !(Budget{}).SavingsShare().IsZero() {
		t.Error("empty budget should have zero share")
	}
}
