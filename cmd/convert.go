package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/renderer"
	"github.com/google/subcommands"
)

type convertCmd struct {
	sats bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert between fiat and bitcoin at the current price" }
func (*convertCmd) Usage() string {
	return `sfc convert [-sats] <amount>

  Converts a fiat amount to bitcoin, rounded down to the satoshi.
  With -sats, converts an amount of satoshis to fiat.

Usage Examples:
$ sfc convert 1,000
$ sfc convert -sats 50000
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.sats, "sats", false, "The amount is in satoshis, convert it to fiat.")
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one amount is expected")
		return subcommands.ExitUsageError
	}
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	price, err := env.priceService().Current(ctx, env.settings.FiatCurrency)
	if err != nil {
		return fail("%v", err)
	}
	nf := env.settings.NumberFormat()

	var fiat satfolio.Money
	var sats satfolio.Sats
	if c.sats {
		if sats, err = satfolio.ParseAmount(f.Arg(0), satfolio.Satoshi); err != nil {
			return fail("%v", err)
		}
		if fiat, err = satfolio.SatsToFiat(sats, price); err != nil {
			return fail("%v", err)
		}
	} else {
		v, err := satfolio.ParseDecimal(f.Arg(0))
		if err != nil {
			return fail("%v", err)
		}
		fiat = satfolio.M(v, price.Currency)
		if sats, err = satfolio.FiatToSats(v, price); err != nil {
			return fail("%v", err)
		}
	}

	printMarkdown(renderer.ConversionMarkdown(fiat, sats, price, nf, env.loc))
	return subcommands.ExitSuccess
}
