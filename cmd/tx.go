package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/satfolio/date"
	"github.com/etnz/satfolio/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	period string
	start  string
	date   string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*txCmd) Usage() string {
	return `sfc tx [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.date, "d", "", "The end date for the range.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	ledger, err := env.loadLedger()
	if err != nil {
		return fail("%v", err)
	}

	title := "Transactions"
	entries := ledger.Entries()
	// If no date range flags are provided, use the full range of the ledger.
	if p.start != "" || p.date != "" || p.period != "" {
		r, err := p.dateRange(env.today())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		entries = ledger.Between(r, env.loc)
		title = "Transactions " + r.String()
	}

	if p.head > 0 && len(entries) > p.head {
		entries = entries[:p.head]
	}
	if p.tail > 0 && len(entries) > p.tail {
		entries = entries[len(entries)-p.tail:]
	}

	printMarkdown(renderer.RenderTransactions(renderer.NewTransactions(title, entries, env.settings.Unit(), env.settings.NumberFormat(), env.loc)))
	return subcommands.ExitSuccess
}

// dateRange returns the range selected by the flags, ending today unless -d is set.
func (p *txCmd) dateRange(today date.Date) (date.Range, error) {
	end := today
	if p.date != "" {
		d, err := date.Parse(p.date)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing end date: %w", err)
		}
		end = d
	}
	if p.start != "" {
		start, err := date.Parse(p.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		return date.Range{From: start, To: end}, nil
	}
	if p.period == "" {
		return date.Range{From: end, To: end}, nil
	}
	period, err := date.ParsePeriod(p.period)
	if err != nil {
		return date.Range{}, err
	}
	return period.Range(end), nil
}
