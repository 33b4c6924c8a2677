package satfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a fiat monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of value in currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// MF returns a Money from a float value, mostly for tests and literals.
func MF(value float64, currency string) Money { return M(decimal.NewFromFloat(value), currency) }

// IsCurrency reports whether code is a known ISO 4217 currency.
func IsCurrency(code string) bool { return money.GetCurrency(code) != nil }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value formatted with the currency symbol, e.g. "฿1,500.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation with an explicit sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string            { return m.cur }
func (m Money) Decimal() decimal.Decimal    { return m.value }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsPositive() bool            { return m.value.IsPositive() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) Mul(d decimal.Decimal) Money { return Money{value: m.value.Mul(d), cur: m.cur} }
func (m Money) Div(d decimal.Decimal) Money { return Money{value: m.value.Div(d), cur: m.cur} }
func (m Money) Add(n Money) Money           { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money           { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Float64() float64            { return m.value.InexactFloat64() }
func (m Money) Round(places int32) Money    { return Money{value: m.value.Round(places), cur: m.cur} }

// makes the "" currency totally weak.
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
