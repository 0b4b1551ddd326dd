// Package cli implements the patrimoine command line tool: offline valuation of a
// possessions file, without a database or a server.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, "valuation")
	}
}

// Commands returns a fresh instance of every subcommand.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&valueCmd{},
		&totalCmd{},
		&rangeCmd{},
		&seriesCmd{},
		&breakdownCmd{},
	}
}

// DefaultFile is the possessions file read when -f is not given.
const DefaultFile = "possessions.json"

// ledgerFlags are the flags shared by every subcommand: where the possessions come
// from and how the result is printed.
type ledgerFlags struct {
	file     string
	path     string
	owner    string
	currency string
	raw      bool

	out io.Writer
}

func (l *ledgerFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&l.file, "f", DefaultFile, "Path to the possessions JSON file")
	f.StringVar(&l.path, "path", "$", "JSONPath of the possession array inside the file")
	f.StringVar(&l.owner, "owner", "", "Only value the possessions of this owner")
	f.StringVar(&l.currency, "currency", "MGA", "ISO 4217 code used to format amounts")
	f.BoolVar(&l.raw, "raw", false, "Print plain markdown instead of rendering it")
}

func (l *ledgerFlags) load() (valuation.Ledger, error) {
	file, err := os.Open(l.file)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ledger, err := LoadLedger(file, l.path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", l.file, err)
	}
	if l.owner != "" {
		ledger = ledger.ForOwner(l.owner)
	}
	return ledger, nil
}

func (l *ledgerFlags) print(md string) subcommands.ExitStatus {
	out := l.out
	if out == nil {
		out = os.Stdout
	}
	if err := printMarkdown(out, md, l.raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseDate parses a -d flag, defaulting to today.
func parseDate(value string) (valuation.Date, error) {
	if value == "" {
		return valuation.Today(), nil
	}
	return valuation.ParseDate(value)
}
