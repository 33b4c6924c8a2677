package satfolio

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/etnz/satfolio/date"
)

// Ledger represents the list of entries of a portfolio.
//
// In a Ledger entries are always in chronological order; entries recorded at
// the same instant keep their insertion order.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// Append validates and appends entries to this ledger. Nothing is appended if
// any entry is invalid.
func (l *Ledger) Append(entries ...Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	l.entries = append(l.entries, entries...)
	l.stableSort()
	return nil
}

// stableSort sorts the entries by timestamp, preserving the order of simultaneous entries.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.entries, func(a, b Entry) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entries, in chronological order.
func (l *Ledger) Entries() []Entry { return slices.Clone(l.entries) }

// All iterates over the entries in chronological order.
func (l *Ledger) All() iter.Seq2[int, Entry] { return slices.All(l.entries) }

// Between returns the entries recorded on a day of r, days being evaluated in loc.
func (l *Ledger) Between(r date.Range, loc *time.Location) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if r.ContainsMillis(e.Timestamp, loc) {
			out = append(out, e)
		}
	}
	return out
}

// Currencies returns the distinct fiat currencies used in the ledger.
func (l *Ledger) Currencies() []string {
	var curs []string
	for _, e := range l.entries {
		if !slices.Contains(curs, e.Currency) {
			curs = append(curs, e.Currency)
		}
	}
	slices.Sort(curs)
	return curs
}

// Find returns the entry with this id.
func (l *Ledger) Find(id string) (Entry, error) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("no entry with id %q", id)
}
