package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ycwu/stockfolio"
)

// dietzCmd holds the flags for the 'dietz' subcommand.
type dietzCmd struct {
	file        string
	start       float64
	end         float64
	from        string
	to          string
	userID      int64
	portfolioID int64
}

func (*dietzCmd) Name() string     { return "dietz" }
func (*dietzCmd) Synopsis() string { return "Modified Dietz return over a period" }
func (*dietzCmd) Usage() string {
	return `stf dietz -start <value> -end <value> -from <date> -to <date> [-l <file>]

  Computes the Modified Dietz money-weighted return between two
  valuations, weighting the period's external cash flows by the fraction
  of the period they were at work.
`
}

func (c *dietzCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.Float64Var(&c.start, "start", 0, "Portfolio value at the period start")
	f.Float64Var(&c.end, "end", 0, "Portfolio value at the period end")
	f.StringVar(&c.from, "from", "", "Period start date")
	f.StringVar(&c.to, "to", stockfolio.Today().String(), "Period end date")
	f.Int64Var(&c.userID, "user", 1, "Owner of the portfolio")
	f.Int64Var(&c.portfolioID, "portfolio", 1, "Portfolio id")
}

func (c *dietzCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := stockfolio.ParseDate(c.from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	to, err := stockfolio.ParseDate(c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	book := newBook(recs)

	var ledger *stockfolio.Ledger
	if len(recs.Currencies) > 0 {
		ledger = stockfolio.NewLedger(1, c.userID, "USD", true, recs.Currencies...)
	}
	source := stockfolio.SelectCashFlowSource(c.portfolioID, c.userID, book, ledger)

	// Keep only the flows interior to the period.
	var flows []stockfolio.CashFlow
	for _, f := range source.Flows() {
		if f.Date.After(from) && !f.Date.After(to) {
			flows = append(flows, f)
		}
	}

	ret, ok := stockfolio.ModifiedDietz(c.start, c.end, from, to, flows)
	if !ok {
		fmt.Println("undefined")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Modified Dietz (%s flows): %s\n", source.Source(), stockfolio.Percent(ret*100).SignedString())
	return subcommands.ExitSuccess
}
