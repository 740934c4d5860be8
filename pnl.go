package stockfolio

import "fmt"

// UnrealizedPnL is the mark-to-market gain of a position at a given quote.
type UnrealizedPnL struct {
	MarketValue Money // home currency
	Gain        Money // home currency
	Percent     Percent
}

// Unrealized computes the mark-to-market gain of a position: the position
// valued at price × rate in the home currency, against its home cost. The
// percentage is zero for a costless position.
func Unrealized(p Position, price Money, rate Quantity) UnrealizedPnL {
	value := price.Mul(p.Shares).Convert(rate, HomeCurrency)
	gain := value.Sub(p.Cost)
	var pct Percent
	if !p.Cost.IsZero() {
		pct = Percent(gain.AsFloat() / p.Cost.AsFloat() * 100)
	}
	return UnrealizedPnL{MarketValue: value, Gain: gain, Percent: pct}
}

// Unrealized values the split-adjusted position of a ticker at a quote.
func (b *Book) Unrealized(ticker string, market Market, q Quote) UnrealizedPnL {
	return Unrealized(b.AdjustedPosition(ticker, market), q.Price, q.Rate)
}

// RealizedOnSell computes the home-currency gain locked in by one sell:
// net proceeds converted at the sell's rate, minus the shares sold at the
// average cost per share held just before the sell.
//
// Calling it with anything but a sell is a programming error and panics.
func (b *Book) RealizedOnSell(sell StockTransaction) Money {
	if sell.Type != TxSell {
		panic(fmt.Sprintf("realized PnL requires a sell transaction, got %q", sell.Type))
	}
	pos := b.positionBefore(sell)
	proceeds := sell.NetProceeds().Convert(sell.rate(b.rates), HomeCurrency)
	return proceeds.Sub(pos.AverageCost().Mul(sell.Shares))
}

// positionBefore replays the history into the position held just before
// the given transaction. When the transaction carries an ID the replay
// stops right at that row, so same-day earlier rows are included;
// otherwise every row dated strictly before is folded.
func (b *Book) positionBefore(t StockTransaction) Position {
	pos := Position{Ticker: t.Ticker, Market: t.Market,
		Cost:       M(0, HomeCurrency),
		SourceCost: M(0, t.Market.Currency()),
	}
	for _, tx := range b.transactions {
		if t.ID != 0 && tx.ID == t.ID {
			break
		}
		if t.ID == 0 && !tx.Date.Before(t.Date) {
			break
		}
		if tx.Deleted || tx.Ticker != t.Ticker || tx.Market != t.Market {
			continue
		}
		pos = foldPosition(pos, tx, b.rates)
	}
	return pos
}

// RealizedGains accumulates the realized gain of every non-deleted sell of
// a ticker over the full history.
func (b *Book) RealizedGains(ticker string, market Market) Money {
	pos := Position{Ticker: ticker, Market: market,
		Cost:       M(0, HomeCurrency),
		SourceCost: M(0, market.Currency()),
	}
	total := M(0, HomeCurrency)
	for _, tx := range b.transactions {
		if tx.Deleted || tx.Ticker != ticker || tx.Market != market {
			continue
		}
		if tx.Type == TxSell && pos.Shares.IsPositive() {
			proceeds := tx.NetProceeds().Convert(tx.rate(b.rates), HomeCurrency)
			total = total.Add(proceeds.Sub(pos.AverageCost().Mul(tx.Shares)))
		}
		pos = foldPosition(pos, tx, b.rates)
	}
	return total
}
