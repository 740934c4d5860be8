package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ycwu/stockfolio"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	file     string
	currency string
	amount   float64
	on       string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "imputed exchange rate for a ledger-funded purchase" }
func (*rateCmd) Usage() string {
	return `stf rate -amount <foreign amount> -date <date> [-l <file>]

  Traces which historical currency tranches funded a purchase of the
  given amount on the given date (newest funds first) and reports the
  weighted exchange rate of the exchange-sourced portions.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.StringVar(&c.currency, "currency", "USD", "Ledger currency")
	f.Float64Var(&c.amount, "amount", 0, "Foreign amount of the purchase")
	f.StringVar(&c.on, "date", stockfolio.Today().String(), "Purchase date")
}

func (c *rateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "-amount must be positive")
		return subcommands.ExitUsageError
	}
	on, err := stockfolio.ParseDate(c.on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger := stockfolio.NewLedger(1, 1, c.currency, true, recs.Currencies...)

	rate := ledger.ImputedRate(stockfolio.Q(c.amount), on)
	if rate.IsZero() {
		fmt.Println("no exchange-sourced funds drawn")
		return subcommands.ExitSuccess
	}
	fmt.Printf("imputed rate: %s\n", rate)
	return subcommands.ExitSuccess
}
