package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
	"github.com/etnz/satfolio/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type portfolioCmd struct {
	date    string
	offline bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display holdings, cost and profit of the portfolio" }
func (*portfolioCmd) Usage() string {
	return `sfc portfolio [-d <date>] [-offline]

  Displays the bitcoin held, the net invested amount, the average cost and,
  when a price is available, the current value and the unrealized profit.

  With -d the portfolio is computed at the end of that day, without valuation.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Compute the portfolio at the end of this day. Defaults to today.")
	f.BoolVar(&c.offline, "offline", false, "Do not fetch the price, skip the valuation.")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	on := env.today()
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := env.loadLedger()
	if err != nil {
		return fail("%v", err)
	}

	var price *satfolio.Price
	if !c.offline && on == env.today() {
		if price, err = env.currentPrice(ctx); err != nil {
			return fail("%v", err)
		}
	}

	md, err := env.portfolioMarkdown(ledger, on, price)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// currentPrice returns the current price, or nil when none can be used.
func (e *env) currentPrice(ctx context.Context) (*satfolio.Price, error) {
	p, err := e.priceService().Current(ctx, e.settings.FiatCurrency)
	switch {
	case errors.Is(err, satfolio.ErrNoPrice), errors.Is(err, satfolio.ErrStalePrice):
		e.logger.Warn("valuation skipped", zap.Error(err))
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &p, nil
}

// portfolioMarkdown renders the portfolio at the end of the day on.
func (e *env) portfolioMarkdown(ledger *satfolio.Ledger, on date.Date, price *satfolio.Price) (string, error) {
	entries := e.entriesUntil(ledger, on)
	stats, err := satfolio.ComputeStats(entries, e.settings.FiatCurrency, price)
	if err != nil {
		return "", err
	}
	if !stats.Complete() {
		e.logger.Warn("entries in another currency left out of the cost",
			zap.Int("entries", stats.Excluded), zap.String("currency", stats.Currency))
	}
	view := renderer.NewPortfolio(stats, on, len(entries), e.settings.Unit(), e.settings.NumberFormat(), e.loc)
	return renderer.RenderPortfolio(view), nil
}

// entriesUntil returns the entries recorded up to the end of the day on, in the settings timezone.
func (e *env) entriesUntil(ledger *satfolio.Ledger, on date.Date) []satfolio.Entry {
	var entries []satfolio.Entry
	for _, x := range ledger.All() {
		if date.FromMillis(x.Timestamp, e.loc).After(on) {
			break
		}
		entries = append(entries, x)
	}
	return entries
}
