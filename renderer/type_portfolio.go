package renderer

import (
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
)

// Portfolio is the view of a portfolio summary.
// Amounts are already formatted for display.
type Portfolio struct {
	Date     string `json:"date"`
	Currency string `json:"currency"`
	Entries  int    `json:"entries"`

	Holdings    string `json:"holdings"`
	NetInvested string `json:"netInvested"`
	AverageCost string `json:"averageCost"`
	Excluded    int    `json:"excluded,omitempty"`

	Priced       bool   `json:"priced"`
	Stale        bool   `json:"stale,omitempty"`
	Price        string `json:"price,omitempty"`
	PriceUpdated string `json:"priceUpdated,omitempty"`
	CurrentValue string `json:"currentValue,omitempty"`
	PnL          string `json:"pnl,omitempty"`
	PnLPercent   string `json:"pnlPercent,omitempty"`
}

// NewPortfolio builds the portfolio view of s, computed over entries ledger entries.
func NewPortfolio(s satfolio.Stats, on date.Date, entries int, unit satfolio.Unit, nf satfolio.NumberFormat, loc *time.Location) *Portfolio {
	p := &Portfolio{
		Date:        on.String(),
		Currency:    s.Currency,
		Entries:     entries,
		Holdings:    satfolio.FormatSats(s.TotalSats, unit, nf),
		NetInvested: s.NetInvested.String(),
		AverageCost: s.AverageCost.String(),
		Excluded:    s.Excluded,
	}
	if !s.Priced {
		return p
	}
	p.Priced = true
	p.Stale = s.Price.Stale
	p.Price = s.Price.Money().String()
	p.PriceUpdated = s.Price.UpdatedAt.In(loc).Format("2006-01-02 15:04")
	p.CurrentValue = s.CurrentValue.String()
	if !s.Complete() {
		return p
	}
	p.PnL = s.PnL.SignedString()
	sign := ""
	if s.PnLPercent.IsPositive() {
		sign = "+"
	}
	p.PnLPercent = sign + s.PnLPercent.StringFixed(2) + "%"
	return p
}
