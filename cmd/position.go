package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

// positionCmd holds the flags for the 'position' subcommand.
type positionCmd struct {
	file     string
	ticker   string
	adjusted bool
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "current positions with average cost" }
func (*positionCmd) Usage() string {
	return `stf position [-l <file>] [-t <ticker>] [-adjusted]

  Replays the transaction history into moving-average-cost positions.
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.StringVar(&c.ticker, "t", "", "Only report this ticker")
	f.BoolVar(&c.adjusted, "adjusted", false, "Report split-adjusted share counts and prices")
}

func (c *positionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	book := newBook(recs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tMARKET\tSHARES\tCOST\tAVG COST")
	for _, pos := range book.Holdings() {
		if c.ticker != "" && pos.Ticker != c.ticker {
			continue
		}
		if c.adjusted {
			pos = book.AdjustedPosition(pos.Ticker, pos.Market)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			pos.Ticker, pos.Market, pos.Shares, pos.Cost, pos.AverageCost())
	}
	w.Flush()
	return subcommands.ExitSuccess
}
