// Command calclab evaluates calculator cards and prints the dashboard
// datasets in the terminal.
//
//	calclab -calc roi -set entry_price=20000 -set exit_price=65000
//	calclab -show dashboard
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/calclab/calc-engine/internal/board"
	"github.com/calclab/calc-engine/internal/calculator"
	"github.com/calclab/calc-engine/internal/render"
	"github.com/calclab/calc-engine/internal/sample"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("calclab failed", "err", err)
		os.Exit(1)
	}
}

// assignments collects repeated -set name=value flags.
type assignments map[string]float64

func (a assignments) String() string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+"="+strconv.FormatFloat(a[n], 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

func (a assignments) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a[name] = v
	return nil
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("calclab", flag.ContinueOnError)
	fs.SetOutput(out)
	calc := fs.String("calc", "", "calculator to evaluate: roi|apy|impermanent_loss|future_value (or ROI, APY, IL, FV)")
	show := fs.String("show", "", "dataset to print: calculators|invoices|transactions|news|dashboard")
	category := fs.String("category", "", "news category filter (with -show news)")
	trending := fs.Bool("trending", false, "only trending news (with -show news)")
	values := assignments{}
	fs.Var(values, "set", "override a calculator input, name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	console := render.NewConsoleWriter(out)

	switch {
	case *calc != "":
		kind, err := calculator.ParseKind(*calc)
		if err != nil {
			return err
		}
		d, err := calculator.Lookup(kind)
		if err != nil {
			return err
		}
		in, err := calculator.Bind(kind, values)
		if err != nil {
			return err
		}
		return console.Evaluation(d, in, calculator.Evaluate(in))

	case *show != "":
		switch *show {
		case "calculators":
			return console.Calculators(calculator.All())
		case "invoices":
			return console.Invoices(sample.Invoices())
		case "transactions":
			return console.Transactions(sample.Transfers())
		case "news":
			return console.News(sample.News(sample.NewsFilter{Category: *category, TrendingOnly: *trending}))
		case "dashboard":
			return console.Dashboard(board.BuildDashboard(sample.FinanceDashboard()))
		}
		return fmt.Errorf("unknown dataset %q", *show)

	default:
		fs.Usage()
		return flag.ErrHelp
	}
}
