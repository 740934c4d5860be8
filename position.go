package stockfolio

import "sort"

// Position is the derived state of a holding: total shares and total cost
// in both the home and the market (source) currency. It is never
// persisted, always recomputed from the full transaction history, which
// eliminates drift between stored and actual state.
type Position struct {
	Ticker     string
	Market     Market
	Shares     Quantity
	Cost       Money // home currency
	SourceCost Money // market currency
}

// AverageCost is the blended home-currency cost per share, zero when the
// position holds no shares.
func (p Position) AverageCost() Money {
	if !p.Shares.IsPositive() {
		return M(0, HomeCurrency)
	}
	return p.Cost.Div(p.Shares)
}

// AverageSourceCost is the blended cost per share in the market currency.
func (p Position) AverageSourceCost() Money {
	if !p.Shares.IsPositive() {
		return M(0, p.Market.Currency())
	}
	return p.SourceCost.Div(p.Shares)
}

// Book is an immutable snapshot of a portfolio's trading history together
// with its split events and an optional historical rate lookup. All
// computations on a Book are pure and deterministic; independent Books can
// be used from concurrent goroutines without synchronization.
type Book struct {
	transactions []StockTransaction
	splits       *SplitResolver
	rates        RateLookup
}

// BookOption configures a Book.
type BookOption func(*Book)

// WithSplits attaches split events for split-adjusted computations.
func WithSplits(r *SplitResolver) BookOption {
	return func(b *Book) { b.splits = r }
}

// WithRates attaches a historical rate lookup used when a transaction
// lacks its own exchange rate.
func WithRates(r RateLookup) BookOption {
	return func(b *Book) { b.rates = r }
}

// NewBook copies and sorts the transactions into a Book. Soft-deleted rows
// are kept in place but excluded from every fold.
func NewBook(txs []StockTransaction, opts ...BookOption) *Book {
	b := &Book{transactions: make([]StockTransaction, len(txs))}
	copy(b.transactions, txs)
	sortStockTransactions(b.transactions)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Position replays the full history of a ticker into its current position.
func (b *Book) Position(ticker string, market Market) Position {
	return b.position(ticker, market, Date{}, false)
}

// PositionAsOf replays the history up to and including a date.
func (b *Book) PositionAsOf(ticker string, market Market, on Date) Position {
	return b.position(ticker, market, on, false)
}

// AdjustedPosition replays the history with each transaction's shares and
// price substituted by their split-adjusted values, making the share count
// comparable with current post-split market prices.
func (b *Book) AdjustedPosition(ticker string, market Market) Position {
	return b.position(ticker, market, Date{}, true)
}

func (b *Book) position(ticker string, market Market, max Date, adjusted bool) Position {
	pos := Position{Ticker: ticker, Market: market,
		Cost:       M(0, HomeCurrency),
		SourceCost: M(0, market.Currency()),
	}
	for _, tx := range b.transactions {
		if tx.Deleted || tx.Ticker != ticker || tx.Market != market {
			continue
		}
		if !max.IsZero() && tx.Date.After(max) {
			// Transactions are sorted by date, safe to stop here.
			break
		}
		if adjusted && b.splits != nil {
			tx = b.splits.Adjust(tx)
		}
		pos = foldPosition(pos, tx, b.rates)
	}
	return pos
}

// foldPosition applies one transaction to a position snapshot using the
// moving-average cost method.
func foldPosition(p Position, t StockTransaction, rates RateLookup) Position {
	switch t.Type {
	case TxBuy, TxAdjustment:
		src := t.SourceCost()
		p.Shares = p.Shares.Add(t.Shares)
		p.SourceCost = p.SourceCost.Add(src)
		p.Cost = p.Cost.Add(src.Convert(t.rate(rates), HomeCurrency))
	case TxSell:
		if p.Shares.IsPositive() {
			p.Cost = p.Cost.Sub(p.AverageCost().Mul(t.Shares))
			p.SourceCost = p.SourceCost.Sub(p.AverageSourceCost().Mul(t.Shares))
			p.Shares = p.Shares.Sub(t.Shares)
		}
	case TxSplit:
		// The split ratio rides in the Shares field; cost is unchanged.
		p.Shares = p.Shares.Mul(t.Shares)
	}
	// Negative leftovers are decimal-rounding noise, clamp them away.
	if p.Shares.IsNegative() {
		p.Shares = Quantity{}
	}
	if p.Cost.IsNegative() {
		p.Cost = M(0, HomeCurrency)
	}
	if p.SourceCost.IsNegative() {
		p.SourceCost = M(0, p.Market.Currency())
	}
	return p
}

// Holdings computes the current position of every (ticker, market) pair
// that appears in the book, sorted by ticker. Empty positions are kept so
// callers can still show fully-sold holdings alongside realized gains.
func (b *Book) Holdings() []Position {
	type key struct {
		ticker string
		market Market
	}
	seen := make(map[key]struct{})
	var keys []key
	for _, tx := range b.transactions {
		if tx.Deleted {
			continue
		}
		k := key{tx.Ticker, tx.Market}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ticker != keys[j].ticker {
			return keys[i].ticker < keys[j].ticker
		}
		return keys[i].market < keys[j].market
	})
	holdings := make([]Position, 0, len(keys))
	for _, k := range keys {
		holdings = append(holdings, b.Position(k.ticker, k.market))
	}
	return holdings
}

// hasTradingActivity reports whether the book contains at least one
// non-deleted buy or sell.
func (b *Book) hasTradingActivity() bool {
	for _, tx := range b.transactions {
		if !tx.Deleted && (tx.Type == TxBuy || tx.Type == TxSell) {
			return true
		}
	}
	return false
}
