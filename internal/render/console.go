// Package render prints calculator results and dashboard data as console
// tables.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/calclab/calc-engine/internal/board"
	"github.com/calclab/calc-engine/internal/calculator"
	"github.com/calclab/calc-engine/internal/display"
	"github.com/calclab/calc-engine/internal/sample"
)

// Console writes human-readable output.
type Console struct {
	out io.Writer
	now func() time.Time
}

// NewConsole writes to stdout.
func NewConsole() *Console {
	return NewConsoleWriter(os.Stdout)
}

// NewConsoleWriter writes to w. Used by tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w, now: time.Now}
}

// WithClock sets the clock behind the "Updated" footer.
func (c *Console) WithClock(now func() time.Time) *Console {
	c.now = now
	return c
}

// Calculators lists the available calculator cards and their defaults.
func (c *Console) Calculators(descs []calculator.Descriptor) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("Chip", "Kind", "Title", "Formula", "Defaults")
	for _, d := range descs {
		params := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			params = append(params, p.Name+"="+formatInput(p.Default))
		}
		table.Append(d.Chip, string(d.Kind), d.Title, d.Formula, strings.Join(params, " "))
	}
	return table.Render()
}

// Evaluation prints a calculator card: bound inputs, headline and detail.
func (c *Console) Evaluation(d calculator.Descriptor, in calculator.Inputs, r calculator.Result) error {
	fmt.Fprintf(c.out, "%s  %s\n", d.Chip, d.Title)

	table := tablewriter.NewWriter(c.out)
	table.Header("Input", "Value")
	for _, p := range d.Params {
		table.Append(p.Label, formatInput(in.Values[p.Name]))
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s\n", display.Headline(d.Kind, r))
	if detail := display.Detail(d.Kind, in.Values, r); detail != "" {
		fmt.Fprintf(c.out, "%s\n", detail)
	}
	if !r.Finite {
		fmt.Fprintf(c.out, "result is not finite (%s)\n", r.Verdict)
	}
	return nil
}

// Invoices prints the invoice list.
func (c *Console) Invoices(invoices []sample.Invoice) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("Invoice", "Client", "Amount", "Token", "Due", "Status", "Tx")
	for _, inv := range invoices {
		table.Append(
			inv.ID,
			inv.Client,
			display.Amount(inv.Amount.InexactFloat64()),
			inv.Token,
			display.Date(inv.DueDate),
			inv.Status,
			inv.TxHash,
		)
	}
	return table.Render()
}

// Transactions prints the on-chain transfers.
func (c *Console) Transactions(transfers []sample.Transfer) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Date", "From", "To", "Amount", "Status")
	for _, tr := range transfers {
		table.Append(
			tr.ID,
			display.ShortDate(tr.Date),
			tr.From,
			tr.To,
			display.Amount(tr.Amount.InexactFloat64())+" "+tr.Token,
			tr.Status,
		)
	}
	if err := table.Render(); err != nil {
		return err
	}
	c.updated()
	return nil
}

// News prints the news feed.
func (c *Console) News(articles []sample.Article) error {
	if len(articles) == 0 {
		fmt.Fprintln(c.out, "No articles found.")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Category", "Title", "Read", "Trending")
	for _, a := range articles {
		trending := ""
		if a.Trending {
			trending = "yes"
		}
		table.Append(display.ShortDate(a.Date), a.Category, a.Title, a.ReadTime, trending)
	}
	if err := table.Render(); err != nil {
		return err
	}
	c.updated()
	return nil
}

func (c *Console) updated() {
	fmt.Fprintf(c.out, "Updated %s\n", display.Stamp(c.now()))
}

// Dashboard prints the finance summary.
func (c *Console) Dashboard(d board.DashboardResponse) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("Statement", "Spent", "Limit", "Used", "Minimum", "Date")
	for _, st := range []board.StatementView{d.Previous, d.Current} {
		table.Append(
			st.Name,
			st.SpentDisplay,
			display.Dollars(st.Limit.InexactFloat64()),
			st.Utilization.StringFixed(2)+"%",
			display.Dollars(st.Minimum.InexactFloat64()),
			st.DateDisplay,
		)
	}
	if err := table.Render(); err != nil {
		return err
	}
	if d.Current.OverLimit.IsPositive() {
		fmt.Fprintf(c.out, "Over limit by %s\n", display.Dollars(d.Current.OverLimit.InexactFloat64()))
	}

	fmt.Fprintf(c.out, "Avg monthly growth %s%% over %s, avg monthly income %s\n",
		d.Balance.AvgMonthlyGrowth.StringFixed(2),
		d.Balance.Window,
		display.Dollars(d.Balance.AvgMonthlyIncome.InexactFloat64()),
	)

	payments := tablewriter.NewWriter(c.out)
	payments.Header("ID", "Date", "Name", "Amount", "Status")
	for _, p := range d.Payments {
		payments.Append(p.ID, p.DateDisplay, p.Name, p.AmountDisplay, p.Status)
	}
	if err := payments.Render(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n", statusSummary(d.PaymentCounts))

	fmt.Fprintf(c.out, "Savings %s (%d)  Expenses %s (%d)  Savings share %s%%\n",
		display.Dollars(d.Budget.Savings.InexactFloat64()), d.Budget.SavingsCount,
		display.Dollars(d.Budget.Expenses.InexactFloat64()), d.Budget.ExpenseCount,
		d.SavingsShare.StringFixed(2),
	)
	return nil
}

// statusOrder is the order the payments card lists statuses in.
var statusOrder = []string{sample.StatusPending, sample.StatusCompleted, sample.StatusPaid}

// statusSummary renders counts as "1 pending, 2 completed". Known statuses
// come first in statusOrder; any others follow alphabetically.
func statusSummary(counts map[string]int) string {
	rank := func(s string) int {
		for i, known := range statusOrder {
			if s == known {
				return i
			}
		}
		return len(statusOrder)
	}
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		ri, rj := rank(statuses[i]), rank(statuses[j])
		if ri != rj {
			return ri < rj
		}
		return statuses[i] < statuses[j]
	})

	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, strconv.Itoa(counts[s])+" "+s)
	}
	return strings.Join(parts, ", ")
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
