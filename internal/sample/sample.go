// Package sample holds the literal datasets behind the dashboard pages:
// invoices and on-chain transfers, the news feed and the finance summary.
// Money uses shopspring/decimal.
package sample

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuses used across the datasets.
const (
	StatusPaid      = "paid"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Invoice is a crypto-settled invoice.
type Invoice struct {
	ID      string          `json:"id"`
	Client  string          `json:"client"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
	Token   string          `json:"token"`
	TxHash  string          `json:"tx_hash"`
}

// Transfer is an on-chain wallet-to-wallet transaction.
type Transfer struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Token  string          `json:"token"`
	Status string          `json:"status"`
}

// Article is one news feed entry.
type Article struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	ReadTime string    `json:"read_time"`
	Trending bool      `json:"trending"`
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Invoices returns the invoice list.
func Invoices() []Invoice {
	return []Invoice{
		{ID: "INV-2025-001", Client: "Acme Corp", Amount: dec("8450.00"), DueDate: day(2025, time.March, 15), Status: StatusPaid, Token: "USDC", TxHash: "0xabc...123"},
		{ID: "INV-2025-002", Client: "Stark Industries", Amount: dec("12300.00"), DueDate: day(2025, time.April, 1), Status: StatusPending, Token: "ETH", TxHash: "0xdef...456"},
		{ID: "INV-2025-003", Client: "Wayne Enterprises", Amount: dec("5670.50"), DueDate: day(2025, time.February, 28), Status: StatusPaid, Token: "BTC", TxHash: "0xghi...789"},
	}
}

// Transfers returns the recent on-chain transactions, newest first.
func Transfers() []Transfer {
	return []Transfer{
		{ID: "52865157INT", Date: day(2025, time.November, 13), From: "0x71C7...a1F3", To: "0x9Ba2...e8D4", Amount: dec("1.35875"), Token: "BTC", Status: StatusCompleted},
		{ID: "685377421YT", Date: day(2025, time.November, 12), From: "0x4fE1...c9B2", To: "0x2dF5...7aC1", Amount: dec("1828.16"), Token: "USDT", Status: StatusPending},
		{ID: "773829104AB", Date: day(2025, time.November, 11), From: "0x8aD3...f5E9", To: "0x1bC4...d6F7", Amount: dec("2104.5"), Token: "ETH", Status: StatusCompleted},
		{ID: "991234567CD", Date: day(2025, time.November, 10), From: "0x6eF2...a3B8", To: "0x5cA1...b9D0", Amount: dec("890.0"), Token: "SOL", Status: StatusCompleted},
	}
}

// Articles returns the news feed, newest first.
func Articles() []Article {
	return []Article{
		{
			ID:       1,
			Title:    "Bitcoin ETF Inflows Hit Record $1.2B in Single Day",
			Summary:  "Institutional investors poured over $1.2 billion into spot Bitcoin ETFs on Wednesday, marking the highest single-day inflow since launch.",
			Category: "Bitcoin",
			Date:     day(2025, time.November, 13),
			ReadTime: "3 min",
			Trending: true,
		},
		{
			ID:       2,
			Title:    "Ethereum Shanghai Upgrade Successfully Activated",
			Summary:  "The long-awaited Shanghai upgrade has been successfully deployed on mainnet, enabling staked ETH withdrawals for the first time.",
			Category: "Ethereum",
			Date:     day(2025, time.November, 12),
			ReadTime: "5 min",
			Trending: true,
		},
		{
			ID:       3,
			Title:    "Solana Outperforms Ethereum in Daily Active Users",
			Summary:  "Solana has surpassed Ethereum in daily active addresses for the third consecutive week, driven by meme coin frenzy and DeFi growth.",
			Category: "Solana",
			Date:     day(2025, time.November, 11),
			ReadTime: "4 min",
		},
		{
			ID:       4,
			Title:    "Tether Mints $1 Billion USDT on Tron Network",
			Summary:  "Tether has issued another $1 billion in USDT on the Tron blockchain to replenish liquidity for market operations.",
			Category: "Stablecoins",
			Date:     day(2025, time.November, 10),
			ReadTime: "2 min",
		},
		{
			ID:       5,
			Title:    "Ripple Wins Partial Victory in SEC Lawsuit",
			Summary:  "Federal judge rules that XRP sales on exchanges are not securities, delivering a major win for Ripple Labs.",
			Category: "XRP",
			Date:     day(2025, time.November, 9),
			ReadTime: "6 min",
			Trending: true,
		},
		{
			ID:       6,
			Title:    "BlackRock Files for Ethereum ETF with Staking",
			Summary:  "The world’s largest asset manager has filed an S-1 for a spot Ethereum ETF that includes native staking yields.",
			Category: "Ethereum",
			Date:     day(2025, time.November, 8),
			ReadTime: "4 min",
			Trending: true,
		},
	}
}
