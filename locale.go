package satfolio

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormat formats numbers following a locale's conventions.
type NumberFormat struct {
	p *message.Printer
}

// NewNumberFormat returns the number format of a BCP 47 locale such as "th-TH".
func NewNumberFormat(locale string) (NumberFormat, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return NumberFormat{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return NumberFormat{p: message.NewPrinter(tag)}, nil
}

// MustNumberFormat is like NewNumberFormat but panics on error.
func MustNumberFormat(locale string) NumberFormat {
	nf, err := NewNumberFormat(locale)
	if err != nil {
		panic(err)
	}
	return nf
}

// Format formats v with grouping and at most maxFraction fraction digits.
func (nf NumberFormat) Format(v float64, maxFraction int) string {
	p := nf.p
	if p == nil {
		p = message.NewPrinter(language.Und)
	}
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFraction)))
}
