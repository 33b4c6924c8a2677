package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/satfolio"
	"github.com/google/subcommands"
	toml "github.com/pelletier/go-toml/v2"
)

// assignments collects repeated key=value flags.
type assignments []string

func (a *assignments) String() string     { return strings.Join(*a, ",") }
func (a *assignments) Set(v string) error { *a = append(*a, v); return nil }

type settingsCmd struct {
	set assignments
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or update the settings" }
func (*settingsCmd) Usage() string {
	return `sfc settings [-set <key>=<value>]...

  Without flags, prints the effective settings in TOML.
  With -set, updates the settings file. Keys are the TOML keys, for instance
  fiat_currency, btc_unit, locale, timezone, max_price_age, refresh_interval,
  chart.width, chart.height, chart.padding.left (right, top, bottom),
  chart.time_ticks, coingecko.base_url, logging.level.

Usage Examples:
$ sfc settings -set fiat_currency=USD -set btc_unit=sats
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.set, "set", "Setting to update, as key=value. Can be repeated.")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := satfolio.LoadSettings(settingsPath())
	if err != nil {
		return fail("%v", err)
	}

	if len(c.set) == 0 {
		data, err := toml.Marshal(s)
		if err != nil {
			return fail("%v", err)
		}
		fmt.Print(string(data))
		return subcommands.ExitSuccess
	}

	for _, kv := range c.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid assignment %q, want key=value\n", kv)
			return subcommands.ExitUsageError
		}
		if err := s.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fail("%v", err)
		}
	}
	if err := satfolio.SaveSettings(settingsPath(), s); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Settings saved to %s.\n", settingsPath())
	return subcommands.ExitSuccess
}
