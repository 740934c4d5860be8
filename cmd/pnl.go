package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

// pnlCmd holds the flags for the 'pnl' subcommand.
type pnlCmd struct {
	file   string
	quotes string
	ticker string
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "unrealized and realized profit and loss" }
func (*pnlCmd) Usage() string {
	return `stf pnl -q <quotes> [-l <file>] [-t <ticker>]

  Values every position at the quoted price and exchange rate, and sums
  the gains realized by past sells.
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.StringVar(&c.quotes, "q", "quotes.json", "Quotes JSON document")
	f.StringVar(&c.ticker, "t", "", "Only report this ticker")
}

func (c *pnlCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	quotes, err := loadQuotes(c.quotes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	book := newBook(recs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tVALUE\tUNREALIZED\t%\tREALIZED")
	for _, pos := range book.Holdings() {
		if c.ticker != "" && pos.Ticker != c.ticker {
			continue
		}
		realized := book.RealizedGains(pos.Ticker, pos.Market)
		if !pos.Shares.IsPositive() {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", pos.Ticker, realized)
			continue
		}
		quote, err := quotes.Quote(pos.Ticker, pos.Market)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		pnl := book.Unrealized(pos.Ticker, pos.Market, quote)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			pos.Ticker, pnl.MarketValue, pnl.Gain.SignedString(), pnl.Percent.SignedString(), realized)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
