package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value in a given currency.
type Money struct {
	value decimal.Decimal // major unit value
	cur   string
}

// M builds a Money from any supported numeric type.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the full go-money currency metadata, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString renders the value with an explicit sign, "-" when zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string     { return m.cur }
func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsPositive() bool     { return m.value.IsPositive() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) Neg() Money           { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }
func (m Money) Floor() Money         { return Money{value: m.value.Floor(), cur: m.cur} }
func (m Money) AsFloat() float64     { return m.value.InexactFloat64() }
func (m Money) Amount() Quantity     { return Quantity{value: m.value} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Convert applies an exchange rate, re-denominating the value in currency.
func (m Money) Convert(rate Quantity, currency string) Money {
	return Money{value: m.value.Mul(rate.value), cur: currency}
}

// cur resolves the currency of a binary operation. The "" currency is weak
// so that zero values combine with anything.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
