package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ycwu/stockfolio"
)

// xirrCmd holds the flags for the 'xirr' subcommand.
type xirrCmd struct {
	file           string
	quotes         string
	value          float64
	userID         int64
	portfolioID    int64
	ledgerID       int64
	ledgerCurrency string
}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "annualized money-weighted return (XIRR)" }
func (*xirrCmd) Usage() string {
	return `stf xirr [-l <file>] [-q <quotes>] [-value <amount>]

  Derives the portfolio's external cash flows (from trades, or from the
  funding ledger when one is recorded) and solves the internal rate of
  return against the current portfolio value.
`
}

func (c *xirrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "l", "portfolio.jsonl", "Portfolio transactions file (JSONL format)")
	f.StringVar(&c.quotes, "q", "", "Quotes JSON document used to value open positions")
	f.Float64Var(&c.value, "value", 0, "Current portfolio value; overrides the quote-based valuation")
	f.Int64Var(&c.userID, "user", 1, "Owner of the portfolio")
	f.Int64Var(&c.portfolioID, "portfolio", 1, "Portfolio id")
	f.Int64Var(&c.ledgerID, "ledger", 1, "Funding ledger id")
	f.StringVar(&c.ledgerCurrency, "ledger-currency", "USD", "Funding ledger currency")
}

func (c *xirrCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	recs, err := loadRecords(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	book := newBook(recs)

	var ledger *stockfolio.Ledger
	if len(recs.Currencies) > 0 {
		ledger = stockfolio.NewLedger(c.ledgerID, c.userID, c.ledgerCurrency, true, recs.Currencies...)
	}
	source := stockfolio.SelectCashFlowSource(c.portfolioID, c.userID, book, ledger)
	flows := source.Flows()

	value := c.value
	if value == 0 && c.quotes != "" {
		if value, err = c.currentValue(book); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	if value > 0 {
		flows = append(flows, stockfolio.CashFlow{
			PortfolioID: c.portfolioID,
			Date:        stockfolio.Today(),
			Amount:      value,
			Source:      source.Source(),
		})
	}

	rate, ok := stockfolio.XIRR(flows)
	if !ok {
		fmt.Println("no solution")
		return subcommands.ExitSuccess
	}
	fmt.Printf("XIRR (%s flows): %s\n", source.Source(), stockfolio.Percent(rate*100).SignedString())
	return subcommands.ExitSuccess
}

// currentValue marks every open position to market using the quotes file.
func (c *xirrCmd) currentValue(book *stockfolio.Book) (float64, error) {
	quotes, err := loadQuotes(c.quotes)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, pos := range book.Holdings() {
		if !pos.Shares.IsPositive() {
			continue
		}
		quote, err := quotes.Quote(pos.Ticker, pos.Market)
		if err != nil {
			return 0, err
		}
		total += book.Unrealized(pos.Ticker, pos.Market, quote).MarketValue.AsFloat()
	}
	return total, nil
}
