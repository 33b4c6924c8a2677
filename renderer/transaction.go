package renderer

import (
	"fmt"

	"github.com/etnz/satfolio"
)

// Transaction renders a ledger entry to a one line string.
func Transaction(e satfolio.Entry, unit satfolio.Unit, nf satfolio.NumberFormat) string {
	amount := satfolio.FormatSats(e.Sats, unit, nf)
	price := satfolio.M(e.Price, e.Currency)
	switch e.Kind {
	case satfolio.Acquire:
		return fmt.Sprintf("Bought %s for %s at %s/BTC", amount, e.Amount(), price)
	case satfolio.Dispose:
		return fmt.Sprintf("Sold %s for %s at %s/BTC", amount, e.Amount(), price)
	default:
		return e.Kind.String()
	}
}
