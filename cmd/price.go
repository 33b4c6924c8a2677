package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type priceCmd struct {
	currency string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "display the current price of bitcoin" }
func (*priceCmd) Usage() string {
	return `sfc price [-c <currency>]

  Fetches the current price of one bitcoin. When the price source is
  unavailable, the last known price is displayed if it is recent enough.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Fiat currency. Defaults to the configured one.")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	currency := env.settings.FiatCurrency
	if c.currency != "" {
		currency = strings.ToUpper(c.currency)
	}
	p, err := env.priceService().Current(ctx, currency)
	if err != nil {
		return fail("%v", err)
	}

	status := ""
	if p.Stale {
		status = " (last known price, the source is unavailable)"
	}
	fmt.Printf("1 BTC = %s, updated %s%s\n", p.Money(), p.UpdatedAt.In(env.loc).Format("2006-01-02 15:04:05"), status)
	return subcommands.ExitSuccess
}
