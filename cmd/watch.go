package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/satfolio"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type watchCmd struct {
	every time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh the portfolio periodically" }
func (*watchCmd) Usage() string {
	return `sfc watch [-every <duration>]

  Displays the portfolio and refreshes it with the current price every
  refresh_interval (45s by default) until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.every, "every", 0, "Refresh interval. Defaults to the refresh_interval setting.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	every := c.every
	if every <= 0 {
		every = env.settings.GetRefreshInterval()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = env.priceService().Watch(ctx, env.settings.FiatCurrency, every, func(p satfolio.Price, err error) {
		var price *satfolio.Price
		if err == nil {
			price = &p
		} else {
			env.logger.Warn("valuation skipped", zap.Error(err))
		}
		// The ledger is read again so that entries recorded meanwhile show up.
		ledger, err := env.loadLedger()
		if err != nil {
			env.logger.Error("cannot load ledger", zap.Error(err))
			return
		}
		md, err := env.portfolioMarkdown(ledger, env.today(), price)
		if err != nil {
			env.logger.Error("cannot compute portfolio", zap.Error(err))
			return
		}
		printMarkdown(md)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fail("%v", err)
	}
	fmt.Fprintln(os.Stderr, "Stopped.")
	return subcommands.ExitSuccess
}
