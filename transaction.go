package stockfolio

import (
	"fmt"
	"sort"
)

// TxType identifies the kind of a stock transaction.
type TxType string

const (
	TxBuy        TxType = "buy"
	TxSell       TxType = "sell"
	TxSplit      TxType = "split"
	TxAdjustment TxType = "adjustment"
)

// ParseTxType parses a stock transaction type.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxBuy, TxSell, TxSplit, TxAdjustment:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// StockTransaction is one append-only row of trading history. Rows are
// never mutated; a soft-deleted row stays in place and is skipped by every
// fold.
//
// For TxSplit rows the Shares field carries the split ratio.
type StockTransaction struct {
	ID      int64
	Ticker  string
	Market  Market
	Type    TxType
	Shares  Quantity
	Price   Money    // per share, in the market currency
	Fee     Money    // in the market currency
	Rate    Quantity // exchange rate to home currency; zero means unknown
	Date    Date
	Deleted bool
}

// gross is shares × price in the market currency.
func (t StockTransaction) gross() Money { return t.Price.Mul(t.Shares) }

// saleSubtotal is the pre-fee sale amount, floored on markets that use the
// whole-unit settlement convention.
func (t StockTransaction) saleSubtotal() Money {
	g := t.gross()
	if t.Market.floorsSaleSubtotal() {
		return g.Floor()
	}
	return g
}

// SourceCost is the total acquisition cost in the market currency:
// shares × price + fee.
func (t StockTransaction) SourceCost() Money { return t.gross().Add(t.Fee) }

// NetProceeds is the sale amount net of fee in the market currency, with
// the market's subtotal rounding convention applied.
func (t StockTransaction) NetProceeds() Money { return t.saleSubtotal().Sub(t.Fee) }

// rate resolves the exchange rate to the home currency: the rate recorded
// on the transaction, then the historical lookup, then 1.
func (t StockTransaction) rate(rates RateLookup) Quantity {
	if !t.Rate.IsZero() {
		return t.Rate
	}
	if rates != nil {
		if r, ok := rates.Rate(t.Market.Currency(), HomeCurrency, t.Date); ok {
			return r
		}
	}
	return Q(1)
}

// sortStockTransactions sorts rows in (date, creation order) ascending
// order. The sort is stable so same-day rows keep their insertion order,
// which makes every fold deterministic.
func sortStockTransactions(txs []StockTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}
