package satfolio

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// THB returns a Money in Thai baht.
func THB(v float64) Money { return MF(v, "THB") }

// USD returns a Money in US dollar.
func USD(v float64) Money { return MF(v, "USD") }

// dec returns a decimal from a float literal.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

var bangkok = time.FixedZone("ICT", 7*3600)

func at(y int, m time.Month, d, h int) time.Time { return time.Date(y, m, d, h, 0, 0, 0, bangkok) }

// equateDecimals compares decimals by value, regardless of their exponent.
var equateDecimals = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// exampleEntries is a buy of 1 BTC, a sale of 0.4 BTC the same day and a buy of
// 0.2 BTC two days later.
func exampleEntries() []Entry {
	return []Entry{
		NewBuy(at(2025, time.March, 1, 9), 100_000_000, THB(1_000_000), dec(1_000_000)),
		NewSell(at(2025, time.March, 1, 18), 40_000_000, THB(500_000), dec(1_250_000)),
		NewBuy(at(2025, time.March, 3, 12), 20_000_000, THB(300_000), dec(1_500_000)),
	}
}
