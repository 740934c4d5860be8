package stockfolio

// SplitEvent records a share split for a security. A split affects only
// transactions dated strictly before the split date: future splits inflate
// historical share counts.
type SplitEvent struct {
	Symbol string
	Market Market
	Date   Date
	Ratio  Quantity
}

// SplitResolver answers cumulative split-ratio lookups for a
// (symbol, market, date). It is pure and side-effect free.
type SplitResolver struct {
	events []SplitEvent
}

// NewSplitResolver builds a resolver over a set of split events.
func NewSplitResolver(events ...SplitEvent) *SplitResolver {
	return &SplitResolver{events: events}
}

// CumulativeRatio returns the product of the ratios of every split for the
// security dated strictly after on. With no applicable split the ratio
// is 1. Ratios compose multiplicatively: a 2-for-1 followed by a 3-for-1
// yields 6.
func (r *SplitResolver) CumulativeRatio(symbol string, market Market, on Date) Quantity {
	ratio := Q(1)
	for _, ev := range r.events {
		if ev.Symbol == symbol && ev.Market == market && ev.Date.After(on) {
			ratio = ratio.Mul(ev.Ratio)
		}
	}
	return ratio
}

// Adjust returns a copy of the transaction with split-adjusted shares and
// price: shares × ratio and price ÷ ratio. A zero cumulative ratio keeps
// the original price. Split rows are returned unchanged, the ratio they
// encode is already in post-event terms.
func (r *SplitResolver) Adjust(tx StockTransaction) StockTransaction {
	if tx.Type == TxSplit {
		return tx
	}
	ratio := r.CumulativeRatio(tx.Ticker, tx.Market, tx.Date)
	if ratio.Equal(Q(1)) {
		return tx
	}
	tx.Shares = tx.Shares.Mul(ratio)
	if !ratio.IsZero() {
		tx.Price = tx.Price.Div(ratio)
	}
	return tx
}
