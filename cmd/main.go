// Package cmd implements the stf subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ycwu/stockfolio"
)

// Commands lists every subcommand the stf binary registers.
var Commands = []subcommands.Command{
	&positionCmd{},
	&pnlCmd{},
	&xirrCmd{},
	&dietzCmd{},
	&ledgerCmd{},
	&rateCmd{},
}

// loadRecords reads a JSONL portfolio file.
func loadRecords(path string) (*stockfolio.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open portfolio file: %w", err)
	}
	defer f.Close()
	return stockfolio.DecodeRecords(f)
}

// newBook builds a Book from decoded records, wiring in the split events.
func newBook(recs *stockfolio.Records) *stockfolio.Book {
	return stockfolio.NewBook(recs.Stocks,
		stockfolio.WithSplits(stockfolio.NewSplitResolver(recs.Splits...)))
}

// loadQuotes reads a quotes JSON document.
func loadQuotes(path string) (*stockfolio.JSONQuotes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open quotes file: %w", err)
	}
	defer f.Close()
	return stockfolio.NewJSONQuotes(f)
}
