package satfolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// Sats is an amount of satoshis, the smallest indivisible unit of bitcoin.
type Sats int64

// FromBTC converts a BTC amount into satoshis, rounded to the nearest satoshi.
func FromBTC(btc decimal.Decimal) Sats { return Sats(btc.Shift(8).Round(0).IntPart()) }

// BTC returns the amount in bitcoins.
func (s Sats) BTC() decimal.Decimal { return decimal.New(int64(s), -8) }

// Float64 returns the amount in bitcoins as a float, for display and charting only.
func (s Sats) Float64() float64 { return float64(s) / SatsPerBTC }

// Unit is the denomination used to display and input bitcoin amounts.
type Unit int

const (
	// BTC displays amounts in bitcoins, with 8 decimals.
	BTC Unit = iota
	// Satoshi displays amounts in whole satoshis.
	Satoshi
)

func (u Unit) String() string {
	switch u {
	case BTC:
		return "BTC"
	case Satoshi:
		return "Satoshi"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit name, case insensitive. "sat" and "sats" are accepted for Satoshi.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "btc":
		return BTC, nil
	case "satoshi", "sat", "sats":
		return Satoshi, nil
	default:
		return BTC, fmt.Errorf("unknown unit %q, want BTC or Satoshi", s)
	}
}

// ParseDecimal parses a user typed, non-negative number. Thousands separators
// (",") and spaces are ignored.
func ParseDecimal(text string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", " ", "", "_", "").Replace(text)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", text, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid number %q: must not be negative", text)
	}
	return d, nil
}

// ParseAmount parses a bitcoin amount expressed in unit.
func ParseAmount(text string, unit Unit) (Sats, error) {
	d, err := ParseDecimal(text)
	if err != nil {
		return 0, err
	}
	if unit == BTC {
		return FromBTC(d), nil
	}
	return Sats(d.Round(0).IntPart()), nil
}

// FormatSats formats an amount in the given unit, using the locale number format.
func FormatSats(s Sats, unit Unit, nf NumberFormat) string {
	if unit == Satoshi {
		return nf.Format(float64(s), 0) + " Satoshi"
	}
	return nf.Format(s.Float64(), 8) + " BTC"
}
