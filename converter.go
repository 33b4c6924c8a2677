package satfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FiatToSats returns how many whole satoshis fiat buys at price, rounded down.
func FiatToSats(fiat decimal.Decimal, price Price) (Sats, error) {
	if !price.Value.IsPositive() {
		return 0, fmt.Errorf("cannot convert %s: %w", price.Currency, ErrNoPrice)
	}
	sats := fiat.Div(price.Value).Shift(8).Floor()
	if sats.IsNegative() {
		return 0, nil
	}
	return Sats(sats.IntPart()), nil
}

// SatsToFiat returns the fiat value of sats at price.
func SatsToFiat(sats Sats, price Price) (Money, error) {
	if !price.Value.IsPositive() {
		return Money{}, fmt.Errorf("cannot convert to %s: %w", price.Currency, ErrNoPrice)
	}
	return price.Money().Mul(sats.BTC()), nil
}
