package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/satfolio"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `sfc fmt

  Validates and formats the ledger file. This command reads all entries,
  validates them, sorts them by time, and writes them back in a canonical
  JSONL format.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	ledger, err := env.loadLedger()
	if err != nil {
		return fail("could not load ledger: %v", err)
	}
	if ledger.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no entries found to format.\n")
		return subcommands.ExitSuccess
	}
	if err := satfolio.SaveLedger(ledgerPath(), ledger); err != nil {
		return fail("saving formatted ledger: %v", err)
	}
	env.logger.Info("ledger formatted", zap.String("path", ledgerPath()), zap.Int("entries", ledger.Len()))
	fmt.Fprintf(os.Stderr, "Formatted %d entries in %s.\n", ledger.Len(), ledgerPath())
	return subcommands.ExitSuccess
}
