// Package cmd implements the sfc command line application.
package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// EnvDataDir overrides the default data directory.
const EnvDataDir = "SATFOLIO_HOME"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", defaultDataDir(), "Directory holding the ledger, the settings and the price cache.")
var verbose = flag.Bool("v", false, "Log debug information to stderr.")

func defaultDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return ".satfolio"
}

// Commands lists all the sfc subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"ledger": {
		&entryCmd{kind: satfolio.Acquire},
		&entryCmd{kind: satfolio.Dispose},
		&txCmd{},
		&fmtCmd{},
	},
	"reports": {
		&portfolioCmd{},
		&chartCmd{},
		&watchCmd{},
	},
	"price": {
		&priceCmd{},
		&convertCmd{},
	},
	"misc": {
		&settingsCmd{},
		&topicCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

func ledgerPath() string   { return filepath.Join(*dataDir, "ledger.jsonl") }
func settingsPath() string { return filepath.Join(*dataDir, "settings.toml") }

// env is what every command needs: settings and a logger.
type env struct {
	settings *satfolio.Settings
	logger   *zap.Logger
	loc      *time.Location
}

// loadEnv loads the settings from the data directory and builds the logger.
func loadEnv() (*env, error) {
	s, err := satfolio.LoadSettings(settingsPath())
	if err != nil {
		return nil, err
	}
	level := s.Logging.Level
	if *verbose {
		level = "debug"
	}
	logger, err := satfolio.NewLogger(level, s.Logging.JSON)
	if err != nil {
		return nil, err
	}
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	logger.Debug("settings loaded", zap.String("data", *dataDir), zap.String("fiat", s.FiatCurrency))
	return &env{settings: s, logger: logger, loc: loc}, nil
}

// today returns the current day in the settings timezone.
func (e *env) today() date.Date { return date.Today(e.loc) }

// priceService returns the price service configured by the settings.
func (e *env) priceService() *satfolio.PriceService {
	cg := e.settings.CoinGecko
	opts := []satfolio.CoinGeckoOption{
		satfolio.WithHTTPClient(&http.Client{Timeout: cg.GetTimeout()}),
	}
	if cg.BaseURL != "" {
		opts = append(opts, satfolio.WithBaseURL(cg.BaseURL))
	}
	if cg.RequestsPerMinute > 0 {
		opts = append(opts, satfolio.WithRateLimit(rate.Limit(cg.RequestsPerMinute/60)))
	}
	cache := satfolio.NewPriceCache(*dataDir)
	return satfolio.NewPriceService(satfolio.NewCoinGecko(opts...), cache, e.settings.GetMaxPriceAge(), e.logger)
}

// loadLedger loads the ledger of the data directory.
func (e *env) loadLedger() (*satfolio.Ledger, error) {
	ledger, err := satfolio.LoadLedger(ledgerPath())
	if err != nil {
		return nil, err
	}
	e.logger.Debug("ledger loaded", zap.String("path", ledgerPath()), zap.Int("entries", ledger.Len()))
	return ledger, nil
}

// printMarkdown renders md for the terminal on stdout.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints err to stderr and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
