package stockfolio

import (
	"fmt"
	"strings"
)

// HomeCurrency is the currency every home-side amount is denominated in.
const HomeCurrency = "TWD"

// Market identifies the exchange a security trades on.
type Market string

const (
	TWSE   Market = "TSE"    // Taiwan Stock Exchange (listed)
	TPEx   Market = "OTC"    // Taipei Exchange (over the counter)
	NASDAQ Market = "NASDAQ" //
	NYSE   Market = "NYSE"   //
	AMEX   Market = "AMEX"   //
)

// marketAliases maps user-facing spellings to canonical markets.
var marketAliases = map[string]Market{
	"tse":    TWSE,
	"twse":   TWSE,
	"otc":    TPEx,
	"tpex":   TPEx,
	"nasdaq": NASDAQ,
	"nyse":   NYSE,
	"amex":   AMEX,
}

// marketCurrencies maps each market to its trading currency.
var marketCurrencies = map[Market]string{
	TWSE:   "TWD",
	TPEx:   "TWD",
	NASDAQ: "USD",
	NYSE:   "USD",
	AMEX:   "USD",
}

// flooredMarkets holds the markets whose convention floors the pre-fee sale
// subtotal to a whole currency unit before fees and rate conversion.
var flooredMarkets = map[Market]struct{}{
	TWSE: {},
	TPEx: {},
}

// ParseMarket resolves a market name or alias.
func ParseMarket(s string) (Market, error) {
	if m, ok := marketAliases[strings.ToLower(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown market %q", s)
}

// DetectMarket guesses the market of a bare symbol. Taiwanese tickers are
// numeric ("2330", "0050"), so a digit-leading symbol maps to the Taiwan
// listed market; everything else defaults to NASDAQ.
func DetectMarket(symbol string) Market {
	if symbol != "" && symbol[0] >= '0' && symbol[0] <= '9' {
		return TWSE
	}
	return NASDAQ
}

// Currency returns the trading currency of the market, defaulting to USD
// for markets outside the table.
func (m Market) Currency() string {
	if cur, ok := marketCurrencies[m]; ok {
		return cur
	}
	return "USD"
}

// floorsSaleSubtotal reports whether sale subtotals on this market are
// floored before the fee and rate steps.
func (m Market) floorsSaleSubtotal() bool {
	_, ok := flooredMarkets[m]
	return ok
}

func (m Market) String() string { return string(m) }
