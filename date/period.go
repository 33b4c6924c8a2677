package date

import (
	"fmt"
	"strings"
)

// Period is a standard calendar period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// ParsePeriod parses a period name, accepting both "monthly" and "month" forms.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Range returns the period to date range ending on d, e.g. month to date.
func (p Period) Range(d Date) Range { return Range{From: d.StartOf(p), To: d} }
