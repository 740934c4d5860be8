package stockfolio

import (
	"math"

	"github.com/ycwu/stockfolio/date"
)

// day is a compact date literal for tests.
func day(s string) Date { return date.MustParse(s) }

// almostEqual compares floats with an absolute tolerance.
func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }

// buyTx builds a buy row; the market is detected from the ticker.
func buyTx(id int64, on, ticker string, shares, price, fee, rate float64) StockTransaction {
	return stockTx(id, on, ticker, TxBuy, shares, price, fee, rate)
}

// sellTx builds a sell row; the market is detected from the ticker.
func sellTx(id int64, on, ticker string, shares, price, fee, rate float64) StockTransaction {
	return stockTx(id, on, ticker, TxSell, shares, price, fee, rate)
}

func stockTx(id int64, on, ticker string, typ TxType, shares, price, fee, rate float64) StockTransaction {
	market := DetectMarket(ticker)
	return StockTransaction{
		ID:     id,
		Ticker: ticker,
		Market: market,
		Type:   typ,
		Shares: Q(shares),
		Price:  M(price, market.Currency()),
		Fee:    M(fee, market.Currency()),
		Rate:   Q(rate),
		Date:   day(on),
	}
}

// fxTx builds a currency-ledger row. A zero home amount is left unset so
// the rate (or par) fallback applies.
func fxTx(id int64, on string, typ CurrencyTxType, amount, home float64) CurrencyTransaction {
	tx := CurrencyTransaction{
		ID:     id,
		Date:   day(on),
		Type:   typ,
		Amount: Q(amount),
	}
	if home != 0 {
		tx.HomeAmount = M(home, HomeCurrency)
	}
	return tx
}
