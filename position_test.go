package stockfolio

import "testing"

func TestBook_Position_BuyOnly(t *testing.T) {
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-10", "2330", 10, 100, 1, 30),
		buyTx(2, "2025-02-10", "2330", 20, 110, 2, 30),
	})

	pos := book.Position("2330", TWSE)
	if !pos.Shares.Equal(Q(30)) {
		t.Fatalf("shares = %s, want 30", pos.Shares)
	}
	// (10×100+1)×30 + (20×110+2)×30 = 30030 + 66060
	if !pos.Cost.Equal(M(96090, "TWD")) {
		t.Errorf("cost = %s, want 96090", pos.Cost)
	}
	if !pos.SourceCost.Equal(M(3203, "TWD")) {
		t.Errorf("source cost = %s, want 3203", pos.SourceCost)
	}
	// For a buy-only history the average is exactly cost/shares.
	if !pos.AverageCost().Equal(pos.Cost.Div(pos.Shares)) {
		t.Errorf("average cost = %s, want cost/shares", pos.AverageCost())
	}
}

func TestBook_Position_SellAtAverageCost(t *testing.T) {
	// Buy 10 @ 100 (fee 1, rate 30), then sell 5 @ 120 (fee 1, rate 31):
	// the position keeps 5 shares at exactly half the original cost.
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 10, 100, 1, 30),
		sellTx(2, "2025-06-01", "2330", 5, 120, 1, 31),
	})

	pos := book.Position("2330", TWSE)
	if !pos.Shares.Equal(Q(5)) {
		t.Fatalf("shares = %s, want 5", pos.Shares)
	}
	if !pos.Cost.Equal(M(15015, "TWD")) {
		t.Errorf("cost = %s, want 15015", pos.Cost)
	}
	if !pos.SourceCost.Equal(M(500.5, "TWD")) {
		t.Errorf("source cost = %s, want 500.5", pos.SourceCost)
	}
	if !pos.AverageCost().Equal(M(3003, "TWD")) {
		t.Errorf("average cost = %s, want 3003", pos.AverageCost())
	}
}

func TestBook_Position_NeverNegative(t *testing.T) {
	// Overselling is rounding noise territory: shares and cost clamp at 0.
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 10, 100, 0, 30),
		sellTx(2, "2025-02-01", "2330", 15, 100, 0, 30),
	})
	pos := book.Position("2330", TWSE)
	if pos.Shares.IsNegative() || pos.Cost.IsNegative() || pos.SourceCost.IsNegative() {
		t.Errorf("position went negative: %+v", pos)
	}
	if !pos.AverageCost().IsZero() {
		t.Errorf("average cost of empty position = %s, want 0", pos.AverageCost())
	}
}

func TestBook_Position_ManualSplit(t *testing.T) {
	// A split row carries its ratio in the shares field; cost is unchanged.
	split := StockTransaction{ID: 2, Ticker: "2330", Market: TWSE, Type: TxSplit,
		Shares: Q(2), Date: day("2025-03-01")}
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 100, 500, 0, 1),
		split,
	})
	pos := book.Position("2330", TWSE)
	if !pos.Shares.Equal(Q(200)) {
		t.Errorf("shares after split = %s, want 200", pos.Shares)
	}
	if !pos.Cost.Equal(M(50000, "TWD")) {
		t.Errorf("cost after split = %s, want unchanged 50000", pos.Cost)
	}
}

func TestBook_Position_SkipsDeleted(t *testing.T) {
	deleted := buyTx(2, "2025-02-01", "2330", 100, 100, 0, 1)
	deleted.Deleted = true
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 10, 100, 0, 1),
		deleted,
	})
	if pos := book.Position("2330", TWSE); !pos.Shares.Equal(Q(10)) {
		t.Errorf("shares = %s, want 10 (deleted row must be ignored)", pos.Shares)
	}
}

func TestBook_PositionAsOf(t *testing.T) {
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 10, 100, 0, 1),
		buyTx(2, "2025-03-01", "2330", 10, 100, 0, 1),
	})
	testCases := []struct {
		on   string
		want Quantity
	}{
		{on: "2024-12-31", want: Q(0)},
		{on: "2025-01-01", want: Q(10)},
		{on: "2025-02-15", want: Q(10)},
		{on: "2025-03-01", want: Q(20)},
	}
	for _, tc := range testCases {
		if got := book.PositionAsOf("2330", TWSE, day(tc.on)); !got.Shares.Equal(tc.want) {
			t.Errorf("PositionAsOf(%s) shares = %s, want %s", tc.on, got.Shares, tc.want)
		}
	}
}

func TestBook_AdjustedPosition(t *testing.T) {
	resolver := NewSplitResolver(
		SplitEvent{Symbol: "2330", Market: TWSE, Date: day("2025-02-01"), Ratio: Q(2)},
	)
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "2330", 100, 500, 0, 1),
	}, WithSplits(resolver))

	plain := book.Position("2330", TWSE)
	adjusted := book.AdjustedPosition("2330", TWSE)
	if !plain.Shares.Equal(Q(100)) {
		t.Errorf("plain shares = %s, want 100", plain.Shares)
	}
	if !adjusted.Shares.Equal(Q(200)) {
		t.Errorf("adjusted shares = %s, want 200", adjusted.Shares)
	}
	// Adjustment rescales shares and price together; cost is invariant.
	if !adjusted.Cost.Equal(plain.Cost) {
		t.Errorf("adjusted cost = %s, want %s", adjusted.Cost, plain.Cost)
	}
}

func TestBook_Position_RateLookupFallback(t *testing.T) {
	rates := NewRateTable()
	rates.Add("USD", "TWD", day("2025-01-01"), Q(31))

	// The transaction has no recorded rate; the historical lookup fills in.
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "AAPL", 10, 200, 0, 0),
	}, WithRates(rates))

	pos := book.Position("AAPL", NASDAQ)
	if !pos.Cost.Equal(M(62000, "TWD")) {
		t.Errorf("cost = %s, want 10×200×31 = 62000", pos.Cost)
	}
	if !pos.SourceCost.Equal(M(2000, "USD")) {
		t.Errorf("source cost = %s, want 2000", pos.SourceCost)
	}
}

func TestBook_Holdings(t *testing.T) {
	book := NewBook([]StockTransaction{
		buyTx(1, "2025-01-01", "AAPL", 10, 200, 0, 30),
		buyTx(2, "2025-01-02", "2330", 100, 500, 0, 1),
		sellTx(3, "2025-02-01", "2330", 100, 600, 0, 1),
	})
	holdings := book.Holdings()
	if len(holdings) != 2 {
		t.Fatalf("len(holdings) = %d, want 2", len(holdings))
	}
	if holdings[0].Ticker != "2330" || holdings[1].Ticker != "AAPL" {
		t.Errorf("holdings not sorted by ticker: %v, %v", holdings[0].Ticker, holdings[1].Ticker)
	}
	// Fully sold positions are kept, with zero shares.
	if !holdings[0].Shares.IsZero() {
		t.Errorf("sold-out holding shares = %s, want 0", holdings[0].Shares)
	}
}
