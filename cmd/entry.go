package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// entryCmd records a buy or a sell, depending on kind.
type entryCmd struct {
	kind  satfolio.Kind
	unit  string
	fiat  string
	price string
	at    string
	memo  string
}

func (c *entryCmd) Name() string { return c.kind.String() }
func (c *entryCmd) Synopsis() string {
	if c.kind == satfolio.Dispose {
		return "record a sale of bitcoin"
	}
	return "record a purchase of bitcoin"
}
func (c *entryCmd) Usage() string {
	return fmt.Sprintf(`sfc %[1]s [-unit <unit>] [-fiat <amount>] [-price <btc price>] [-at <time>] [-memo <text>] [<amount>]

  Records a %[1]s in the ledger.

  <amount> is the bitcoin amount, in the configured unit or -unit.
  -fiat is the fiat amount, in the configured currency.
  -price is the price of one bitcoin.

  Any one of the three can be omitted: it is derived from the others. When
  both -fiat and -price are omitted, the current price is fetched.

Usage Examples:
$ sfc %[1]s 0.01 -fiat 25000
$ sfc %[1]s -fiat 1000
$ sfc %[1]s -unit sats 150000 -at "2025-03-01 09:30"
`, c.kind)
}

func (c *entryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "unit", "", "Unit of the amount: BTC or sats. Defaults to the configured unit.")
	f.StringVar(&c.fiat, "fiat", "", "Fiat amount paid or received.")
	f.StringVar(&c.price, "price", "", "Price of one bitcoin. Fetched when omitted.")
	f.StringVar(&c.at, "at", "", "Time of the entry, as \"2006-01-02 15:04\" or \"2006-01-02\". Defaults to now.")
	f.StringVar(&c.memo, "memo", "", "Free text attached to the entry.")
}

// Execute runs the command.
func (c *entryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one amount is expected")
		return subcommands.ExitUsageError
	}
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	unit := env.settings.Unit()
	if c.unit != "" {
		if unit, err = satfolio.ParseUnit(c.unit); err != nil {
			return fail("%v", err)
		}
	}
	when := time.Now()
	if c.at != "" {
		if when, err = parseTime(c.at, env.loc); err != nil {
			return fail("%v", err)
		}
	}

	in := entryInput{currency: env.settings.FiatCurrency}
	if f.NArg() == 1 {
		sats, err := satfolio.ParseAmount(f.Arg(0), unit)
		if err != nil {
			return fail("%v", err)
		}
		in.sats = &sats
	}
	if c.fiat != "" {
		v, err := satfolio.ParseDecimal(c.fiat)
		if err != nil {
			return fail("%v", err)
		}
		in.fiat = &v
	}
	if c.price != "" {
		v, err := satfolio.ParseDecimal(c.price)
		if err != nil {
			return fail("%v", err)
		}
		in.price = &v
	}
	if in.sats == nil && in.fiat == nil {
		fmt.Fprintln(os.Stderr, "Error: give the bitcoin amount, -fiat, or both")
		return subcommands.ExitUsageError
	}
	if in.needsPrice() {
		p, err := env.priceService().Current(ctx, env.settings.FiatCurrency)
		if err != nil {
			return fail("%v", err)
		}
		in.price = &p.Value
	}

	e, err := in.entry(c.kind, when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	e.Memo = c.memo

	if err := satfolio.AppendEntryFile(ledgerPath(), e); err != nil {
		return fail("%v", err)
	}
	env.logger.Info("entry recorded", zap.String("id", e.ID), zap.Stringer("kind", e.Kind), zap.Int64("sats", int64(e.Sats)))
	fmt.Println(renderer.Transaction(e, unit, env.settings.NumberFormat()))
	return subcommands.ExitSuccess
}

// entryInput holds the amounts given by the user, any of them may be missing.
type entryInput struct {
	currency string
	sats     *satfolio.Sats
	fiat     *decimal.Decimal
	price    *decimal.Decimal
}

// needsPrice reports whether the price has to be fetched.
func (in entryInput) needsPrice() bool {
	if in.price != nil {
		return false
	}
	return in.sats == nil || in.fiat == nil || *in.sats == 0
}

// entry derives the missing amount and returns the entry.
func (in entryInput) entry(kind satfolio.Kind, when time.Time) (satfolio.Entry, error) {
	var sats satfolio.Sats
	var fiat, price decimal.Decimal
	switch {
	case in.sats != nil && in.fiat != nil && in.price != nil:
		sats, fiat, price = *in.sats, *in.fiat, *in.price
	case in.sats != nil && in.fiat != nil:
		if *in.sats == 0 {
			return satfolio.Entry{}, fmt.Errorf("cannot derive a price from a zero amount")
		}
		sats, fiat = *in.sats, *in.fiat
		price = fiat.Div(sats.BTC()).Round(2)
	case in.sats != nil && in.price != nil:
		sats, price = *in.sats, *in.price
		fiat = price.Mul(sats.BTC()).Round(2)
	case in.fiat != nil && in.price != nil:
		fiat, price = *in.fiat, *in.price
		var err error
		if sats, err = satfolio.FiatToSats(fiat, satfolio.Price{Value: price, Currency: in.currency}); err != nil {
			return satfolio.Entry{}, err
		}
	default:
		return satfolio.Entry{}, fmt.Errorf("give at least two of the amount, -fiat and -price")
	}

	money := satfolio.M(fiat, in.currency)
	if kind == satfolio.Dispose {
		return satfolio.NewSell(when, sats, money, price), nil
	}
	return satfolio.NewBuy(when, sats, money, price), nil
}

// parseTime parses a date or a date and time, in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, want \"2006-01-02 15:04\" or \"2006-01-02\"", s)
}
