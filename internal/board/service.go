// Package board serves the read-only dashboard pages: invoices, on-chain
// transactions, the news feed and the finance summary. Every response
// carries the display strings the pages render next to the raw values.
package board

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calclab/calc-engine/internal/display"
	"github.com/calclab/calc-engine/internal/sample"
)

// Service handles the dashboard endpoints. It holds no data; the clock only
// feeds the "updated" stamp on each page.
type Service struct {
	now func() time.Time
}

// NewService creates a new board service.
func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock creates a board service that stamps responses with now.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// --- Response types ---

// InvoiceView is an invoice row with its token colour and formatted fields.
type InvoiceView struct {
	sample.Invoice
	TokenColor    string `json:"token_color"`
	AmountDisplay string `json:"amount_display"`
	DueDisplay    string `json:"due_display"`
}

// TransactionView is a transfer row with its status icon.
type TransactionView struct {
	sample.Transfer
	TokenColor    string      `json:"token_color"`
	Icon          sample.Icon `json:"icon"`
	AmountDisplay string      `json:"amount_display"`
	DateDisplay   string      `json:"date_display"`
}

// TransactionsResponse is the transfer list with its refresh stamp.
type TransactionsResponse struct {
	Transactions []TransactionView `json:"transactions"`
	Updated      string            `json:"updated"`
}

// NewsResponse is the news feed plus the category chips.
type NewsResponse struct {
	Categories []string      `json:"categories"`
	Articles   []ArticleView `json:"articles"`
	Updated    string        `json:"updated"`
}

// ArticleView is a news entry with a formatted date.
type ArticleView struct {
	sample.Article
	DateDisplay string `json:"date_display"`
}

// StatementView is a billing cycle with its derived figures.
type StatementView struct {
	sample.Statement
	Utilization  decimal.Decimal `json:"utilization"`
	BarPercent   int64           `json:"bar_percent"`
	OverLimit    decimal.Decimal `json:"over_limit"`
	SpentDisplay string          `json:"spent_display"`
	DateDisplay  string          `json:"date_display"`
}

// PaymentView is a recent payment with formatted fields.
type PaymentView struct {
	sample.Payment
	Icon          sample.Icon `json:"icon"`
	AmountDisplay string      `json:"amount_display"`
	DateDisplay   string      `json:"date_display"`
}

// DashboardResponse is the finance summary page.
type DashboardResponse struct {
	Previous      StatementView         `json:"previous"`
	Current       StatementView         `json:"current"`
	Balance       sample.AccountBalance `json:"balance"`
	Payments      []PaymentView         `json:"payments"`
	PaymentCounts map[string]int        `json:"payment_counts"`
	Budget        sample.Budget         `json:"budget"`
	SavingsShare  decimal.Decimal       `json:"savings_share"`
	Updated       string                `json:"updated,omitempty"`
}

// --- HTTP Handlers ---

// ListInvoices handles GET /api/v1/invoices
// Optional filter: ?status=paid|pending.
func (s *Service) ListInvoices(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	out := []InvoiceView{}
	for _, inv := range sample.Invoices() {
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, InvoiceView{
			Invoice:       inv,
			TokenColor:    sample.TokenColor(inv.Token),
			AmountDisplay: display.Amount(inv.Amount.InexactFloat64()),
			DueDisplay:    display.Date(inv.DueDate),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListTransactions handles GET /api/v1/transactions
func (s *Service) ListTransactions(w http.ResponseWriter, _ *http.Request) {
	transfers := sample.Transfers()
	resp := TransactionsResponse{
		Transactions: make([]TransactionView, 0, len(transfers)),
		Updated:      display.Stamp(s.now()),
	}
	for _, tr := range transfers {
		resp.Transactions = append(resp.Transactions, TransactionView{
			Transfer:      tr,
			TokenColor:    sample.TokenColor(tr.Token),
			Icon:          sample.StatusIcon(tr.Status),
			AmountDisplay: display.Amount(tr.Amount.InexactFloat64()) + " " + tr.Token,
			DateDisplay:   display.ShortDate(tr.Date),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListNews handles GET /api/v1/news
// Optional filters: ?category=<name>&trending=true.
func (s *Service) ListNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := sample.NewsFilter{Category: q.Get("category")}
	if t := q.Get("trending"); t != "" {
		trending, err := strconv.ParseBool(t)
		if err != nil {
			writeError(w, "trending must be a boolean", http.StatusBadRequest)
			return
		}
		f.TrendingOnly = trending
	}

	resp := NewsResponse{
		Categories: sample.Categories(),
		Articles:   []ArticleView{},
		Updated:    display.Stamp(s.now()),
	}
	for _, a := range sample.News(f) {
		resp.Articles = append(resp.Articles, ArticleView{Article: a, DateDisplay: display.ShortDate(a.Date)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDashboard handles GET /api/v1/dashboard
func (s *Service) GetDashboard(w http.ResponseWriter, _ *http.Request) {
	resp := BuildDashboard(sample.FinanceDashboard())
	resp.Updated = display.Stamp(s.now())
	writeJSON(w, http.StatusOK, resp)
}

// BuildDashboard derives the display figures of d.
func BuildDashboard(d sample.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Previous:      statementView(d.Previous),
		Current:       statementView(d.Current),
		Balance:       d.Balance,
		Payments:      make([]PaymentView, 0, len(d.Payments)),
		PaymentCounts: sample.CountByStatus(d.Payments),
		Budget:        d.Budget,
		SavingsShare:  d.Budget.SavingsShare(),
	}
	for _, p := range d.Payments {
		resp.Payments = append(resp.Payments, PaymentView{
			Payment:       p,
			Icon:          sample.StatusIcon(p.Status),
			AmountDisplay: display.Dollars(p.Amount.InexactFloat64()),
			DateDisplay:   display.Date(p.Date),
		})
	}
	return resp
}

func statementView(st sample.Statement) StatementView {
	return StatementView{
		Statement:    st,
		Utilization:  st.Utilization(),
		BarPercent:   st.BarPercent(),
		OverLimit:    st.OverLimit(),
		SpentDisplay: display.Dollars(st.Spent.InexactFloat64()),
		DateDisplay:  display.Date(st.Date),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
