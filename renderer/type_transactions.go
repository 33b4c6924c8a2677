package renderer

import (
	"time"

	"github.com/etnz/satfolio"
)

// Transactions is the view of a list of ledger entries.
type Transactions struct {
	Title string           `json:"title"`
	Rows  []TransactionRow `json:"rows"`
}

// TransactionRow is one ledger entry, formatted for display.
type TransactionRow struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Fiat   string `json:"fiat"`
	Price  string `json:"price"`
	Memo   string `json:"memo,omitempty"`
}

// shortID is the length of displayed entry ids.
const shortID = 8

// NewTransactions builds the view of entries, dates being displayed in loc.
func NewTransactions(title string, entries []satfolio.Entry, unit satfolio.Unit, nf satfolio.NumberFormat, loc *time.Location) *Transactions {
	t := &Transactions{Title: title}
	for _, e := range entries {
		id := e.ID
		if len(id) > shortID {
			id = id[:shortID]
		}
		t.Rows = append(t.Rows, TransactionRow{
			ID:     id,
			Date:   e.When().In(loc).Format("2006-01-02 15:04"),
			Kind:   e.Kind.String(),
			Amount: satfolio.FormatSats(e.Sats, unit, nf),
			Fiat:   e.Amount().String(),
			Price:  satfolio.M(e.Price, e.Currency).String(),
			Memo:   e.Memo,
		})
	}
	return t
}
