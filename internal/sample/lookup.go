package sample

import (
	"sort"
	"strings"
)

const defaultTokenColor = "#8b5cf6"

var tokenColors = map[string]string{
	"BTC":  "#f7931a",
	"ETH":  "#62688f",
	"USDT": "#26a17b",
	"USDC": "#2775ca",
	"SOL":  "#14f195",
}

// TokenColor returns the brand colour for a token symbol.
func TokenColor(token string) string {
	if c, ok := tokenColors[token]; ok {
		return c
	}
	return defaultTokenColor
}

// Icon is a named status glyph with its colour.
type Icon struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// StatusIcon maps a transfer status to its icon.
func StatusIcon(status string) Icon {
	switch status {
	case StatusCompleted:
		return Icon{Name: "check_circle", Color: "#10b981"}
	case StatusPending:
		return Icon{Name: "pending", Color: "#f59e0b"}
	default:
		return Icon{Name: "access_time", Color: "#94a3b8"}
	}
}

// NewsFilter narrows the news feed. Zero values match everything.
type NewsFilter struct {
	Category     string
	TrendingOnly bool
}

// News returns the articles matching f, newest first. Category matching is
// case-insensitive.
func News(f NewsFilter) []Article {
	var out []Article
	for _, a := range Articles() {
		if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
			continue
		}
		if f.TrendingOnly && !a.Trending {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Categories returns the distinct news categories in first-seen order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range Articles() {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}
