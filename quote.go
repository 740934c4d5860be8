package stockfolio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Quote is the current price and home-currency exchange rate for a ticker,
// as supplied by an external quote provider.
type Quote struct {
	Price Money
	Rate  Quantity
}

// QuoteProvider supplies the current quote for a ticker. Implementations
// live outside the engine; the engine only consumes the result.
type QuoteProvider interface {
	Quote(ticker string, market Market) (Quote, error)
}

// RateLookup resolves a historical exchange rate. It is consulted when a
// transaction lacks its own recorded rate.
type RateLookup interface {
	Rate(from, to string, on Date) (Quantity, bool)
}

// RateTable is an in-memory RateLookup. When a direct pair is missing the
// inverse pair is tried and reciprocated.
type RateTable struct {
	rates map[string]Quantity
}

// NewRateTable creates an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[string]Quantity)}
}

func rateKey(from, to string, on Date) string {
	return from + "/" + to + "@" + on.String()
}

// Add records the rate for a currency pair on a date.
func (t *RateTable) Add(from, to string, on Date, rate Quantity) {
	t.rates[rateKey(from, to, on)] = rate
}

// Rate implements RateLookup.
func (t *RateTable) Rate(from, to string, on Date) (Quantity, bool) {
	if from == to {
		return Q(1), true
	}
	if r, ok := t.rates[rateKey(from, to, on)]; ok {
		return r, true
	}
	if r, ok := t.rates[rateKey(to, from, on)]; ok && !r.IsZero() {
		return Q(1).Div(r), true
	}
	return Quantity{}, false
}

// JSONQuotes is a QuoteProvider reading from a quotes JSON document of the
// form {"2330": {"price": 600, "rate": 30.5}, ...}. The rate defaults to 1
// when absent, which is the natural value for home-market tickers.
type JSONQuotes struct {
	doc interface{}
}

// NewJSONQuotes parses a quotes document from r.
func NewJSONQuotes(r io.Reader) (*JSONQuotes, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse quotes document: %w", err)
	}
	return &JSONQuotes{doc: doc}, nil
}

// Quote implements QuoteProvider.
func (q *JSONQuotes) Quote(ticker string, market Market) (Quote, error) {
	price, err := q.lookup(fmt.Sprintf("$[%q].price", ticker))
	if err != nil {
		return Quote{}, fmt.Errorf("no price for %s: %w", ticker, err)
	}
	rate := 1.0
	if r, err := q.lookup(fmt.Sprintf("$[%q].rate", ticker)); err == nil {
		rate = r
	}
	return Quote{Price: M(price, market.Currency()), Rate: Q(rate)}, nil
}

// lookup extracts a single float at a JSON path. The jsonpath library may
// return either a single value or a list of one, so both are handled.
func (q *JSONQuotes) lookup(path string) (float64, error) {
	jval, err := jsonpath.Get(path, q.doc)
	if err != nil {
		return 0, err
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case []interface{}:
		if len(v) == 1 {
			if f, ok := v[0].(float64); ok {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("value at %q is not a number", path)
}
