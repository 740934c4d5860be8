package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ycwu/stockfolio"
)

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	file     string
	currency string
	asOf     string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "currency ledger balance and cost basis" }
func (*ledgerCmd) Usage() string {
	return `stf ledger [-l <file>] [-currency <code>] [-date <date>]

  Replays the currency ledger into its balance, moving-average cost and
  realized exchange gain, optionally as of a date.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.StringVar(&c.currency, "currency", "USD", "Ledger currency")
	f.StringVar(&c.asOf, "date", "", "Report the state as of this date")
}

func (c *ledgerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger := stockfolio.NewLedger(1, 1, c.currency, true, recs.Currencies...)

	var state stockfolio.LedgerState
	if c.asOf == "" {
		state = ledger.State()
	} else {
		on, err := stockfolio.ParseDate(c.asOf)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		state = ledger.StateAsOf(on)
	}

	fmt.Printf("balance:  %s %s\n", state.Balance, state.Currency)
	fmt.Printf("cost:     %s\n", state.Cost)
	fmt.Printf("avg cost: %s\n", state.AverageCost())
	fmt.Printf("realized: %s\n", state.Realized.SignedString())
	return subcommands.ExitSuccess
}
