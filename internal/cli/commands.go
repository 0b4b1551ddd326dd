package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/Tafita-R/Examen-Web2/internal/report"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

type valueCmd struct {
	ledgerFlags
	label string
	date  string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value one possession on a date" }
func (*valueCmd) Usage() string {
	return `patrimoine value -label <label> [-d <date>] [-f <file>]

  Displays the value of a single possession. A closed possession reports the
  value frozen at its end date.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.label, "label", "", "Label of the possession to value")
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today)")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.label == "" {
		fmt.Fprintln(os.Stderr, "Error: -label is required")
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := ledger.Find(c.label)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no possession labelled %q\n", c.label)
		return subcommands.ExitFailure
	}
	value, err := valuation.ValueAt(p, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := "active"
	if !p.ActiveAt(on) {
		status = "closed"
	}
	md := fmt.Sprintf("**%s** on %s: %s (%s, %s)\n", p.Label, on, report.FormatAmount(value, c.currency), p.Mode(), status)
	return c.print(md)
}

type totalCmd struct {
	ledgerFlags
	date string
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "display the patrimony on a date" }
func (*totalCmd) Usage() string {
	return `patrimoine total [-d <date>] [-owner <owner>] [-f <file>]

  Displays the sum of the values of every possession active on the date.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today)")
}

func (c *totalCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	total, err := ledger.TotalAt(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return c.print(fmt.Sprintf("Patrimony on %s: **%s**\n", on, report.FormatAmount(total, c.currency)))
}

type rangeCmd struct {
	ledgerFlags
	start string
	end   string
}

func (*rangeCmd) Name() string     { return "range" }
func (*rangeCmd) Synopsis() string { return "display the patrimony over a date range" }
func (*rangeCmd) Usage() string {
	return `patrimoine range [-start <date>] -end <date> [-f <file>]

  Displays the patrimony over a range, which is the patrimony on its end date.
`
}

func (c *rangeCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.start, "start", "", "Start of the range")
	f.StringVar(&c.end, "end", "", "End of the range (defaults to today)")
}

func (c *rangeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var start valuation.Date
	if c.start != "" {
		if start, err = valuation.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	total, err := ledger.TotalOverRange(start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	from := "the beginning"
	if !start.IsZero() {
		from = start.String()
	}
	return c.print(fmt.Sprintf("Patrimony from %s to %s: **%s**\n", from, end, report.FormatAmount(total, c.currency)))
}

type seriesCmd struct {
	ledgerFlags
	start string
	end   string
	step  int
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "sample the patrimony across a date range" }
func (*seriesCmd) Usage() string {
	return `patrimoine series -start <date> [-end <date>] [-step <days>] [-f <file>]

  Displays the patrimony every step days from start, finishing on end.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.start, "start", "", "First sampled date")
	f.StringVar(&c.end, "end", "", "Last sampled date (defaults to today)")
	f.IntVar(&c.step, "step", valuation.PeriodDays, "Days between two samples")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.start == "" {
		fmt.Fprintln(os.Stderr, "Error: -start is required")
		return subcommands.ExitUsageError
	}
	start, err := valuation.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := parseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	points, err := ledger.Series(start, end, c.step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var sb strings.Builder
	sb.WriteString("| Date | Patrimony |\n|:---|---:|\n")
	for _, point := range points {
		fmt.Fprintf(&sb, "| %s | %s |\n", point.Date, report.FormatAmount(point.Value, c.currency))
	}
	return c.print(sb.String())
}

type breakdownCmd struct {
	ledgerFlags
	date string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "list every possession with its value on a date" }
func (*breakdownCmd) Usage() string {
	return `patrimoine breakdown [-d <date>] [-owner <owner>] [-f <file>]

  Displays one row per possession and the patrimony total. Closed possessions are
  listed with their frozen value but left out of the total.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today)")
}

func (c *breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	breakdown, err := ledger.Breakdown(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return c.print(report.Markdown(breakdown, c.owner, c.currency))
}
