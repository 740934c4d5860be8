package stockfolio

import "testing"

func TestSplitResolver_CumulativeRatio(t *testing.T) {
	resolver := NewSplitResolver(
		SplitEvent{Symbol: "2330", Market: TWSE, Date: day("2024-06-01"), Ratio: Q(2)},
		SplitEvent{Symbol: "2330", Market: TWSE, Date: day("2025-06-01"), Ratio: Q(3)},
		SplitEvent{Symbol: "AAPL", Market: NASDAQ, Date: day("2024-06-01"), Ratio: Q(4)},
	)

	testCases := []struct {
		name   string
		symbol string
		market Market
		on     string
		want   Quantity
	}{
		{name: "before both splits, ratios compose", symbol: "2330", market: TWSE, on: "2024-01-01", want: Q(6)},
		{name: "between the splits", symbol: "2330", market: TWSE, on: "2024-12-31", want: Q(3)},
		{name: "on the split date is unaffected", symbol: "2330", market: TWSE, on: "2025-06-01", want: Q(1)},
		{name: "after every split", symbol: "2330", market: TWSE, on: "2025-07-01", want: Q(1)},
		{name: "other market does not leak", symbol: "2330", market: TPEx, on: "2024-01-01", want: Q(1)},
		{name: "unknown symbol", symbol: "0050", market: TWSE, on: "2024-01-01", want: Q(1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolver.CumulativeRatio(tc.symbol, tc.market, day(tc.on))
			if !got.Equal(tc.want) {
				t.Errorf("CumulativeRatio(%s, %s, %s) = %s, want %s", tc.symbol, tc.market, tc.on, got, tc.want)
			}
		})
	}
}

func TestSplitResolver_Adjust(t *testing.T) {
	resolver := NewSplitResolver(
		SplitEvent{Symbol: "2330", Market: TWSE, Date: day("2025-01-01"), Ratio: Q(2)},
	)

	tx := buyTx(1, "2024-06-01", "2330", 100, 500, 0, 1)
	adjusted := resolver.Adjust(tx)
	if !adjusted.Shares.Equal(Q(200)) {
		t.Errorf("adjusted shares = %s, want 200", adjusted.Shares)
	}
	if !adjusted.Price.Equal(M(250, "TWD")) {
		t.Errorf("adjusted price = %s, want 250", adjusted.Price)
	}

	// A transaction after the split is untouched.
	later := buyTx(2, "2025-02-01", "2330", 100, 250, 0, 1)
	if got := resolver.Adjust(later); !got.Shares.Equal(Q(100)) || !got.Price.Equal(M(250, "TWD")) {
		t.Errorf("post-split transaction was adjusted: %+v", got)
	}
}

func TestSplitResolver_AdjustZeroRatio(t *testing.T) {
	// A zero ratio is defensive only: shares collapse but the price must
	// fall back to the original instead of dividing by zero.
	resolver := NewSplitResolver(
		SplitEvent{Symbol: "2330", Market: TWSE, Date: day("2025-01-01"), Ratio: Q(0)},
	)
	tx := buyTx(1, "2024-06-01", "2330", 100, 500, 0, 1)
	adjusted := resolver.Adjust(tx)
	if !adjusted.Price.Equal(M(500, "TWD")) {
		t.Errorf("zero-ratio adjusted price = %s, want the original 500", adjusted.Price)
	}
}
