package satfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Stats summarizes a portfolio at a given price.
type Stats struct {
	Currency    string
	TotalSats   Sats  // satoshis currently held
	NetInvested Money // fiat paid for buys minus fiat received from sells
	AverageCost Money // fiat paid per BTC bought, zero if nothing was bought

	// Excluded counts the entries recorded in another currency. Their satoshis
	// are held, but their fiat amounts are left out of NetInvested and AverageCost.
	Excluded int

	// Valuation fields are only meaningful when Priced is true. PnL and
	// PnLPercent are also left at zero when some entries are Excluded.
	Priced       bool
	Price        Price
	CurrentValue Money
	PnL          Money
	PnLPercent   decimal.Decimal
}

// Complete reports whether every entry contributed to the fiat totals.
func (s Stats) Complete() bool { return s.Excluded == 0 }

// TotalBTC returns the holdings in bitcoins.
func (s Stats) TotalBTC() decimal.Decimal { return s.TotalSats.BTC() }

var hundred = decimal.NewFromInt(100)

// ComputeStats aggregates entries into portfolio statistics in currency.
//
// price may be nil when no exchange rate is available: holdings and cost are
// still computed, but the valuation is left empty. Entries in another currency
// count in the holdings only.
func ComputeStats(entries []Entry, currency string, price *Price) (Stats, error) {
	if price != nil && price.Currency != currency {
		return Stats{}, fmt.Errorf("price is in %s, cannot value a portfolio in %s", price.Currency, currency)
	}

	zero := M(decimal.Zero, currency)
	s := Stats{Currency: currency, NetInvested: zero, AverageCost: zero}

	var boughtSats Sats
	boughtFiat := zero
	for _, e := range entries {
		s.TotalSats += e.Signed()
		if e.Currency != currency {
			s.Excluded++
			continue
		}
		switch e.Kind {
		case Acquire:
			s.NetInvested = s.NetInvested.Add(e.Amount())
			boughtSats += e.Sats
			boughtFiat = boughtFiat.Add(e.Amount())
		case Dispose:
			s.NetInvested = s.NetInvested.Sub(e.Amount())
		}
	}
	if boughtSats > 0 {
		s.AverageCost = boughtFiat.Div(boughtSats.BTC())
	}

	if price == nil {
		s.CurrentValue, s.PnL = zero, zero
		return s, nil
	}

	s.Priced = true
	s.Price = *price
	s.CurrentValue = price.Money().Mul(s.TotalBTC())
	s.PnL = zero
	if !s.Complete() {
		return s, nil
	}
	s.PnL = s.CurrentValue.Sub(s.NetInvested)
	if !s.NetInvested.IsZero() {
		s.PnLPercent = s.PnL.Decimal().Div(s.NetInvested.Decimal()).Mul(hundred)
	}
	return s, nil
}
