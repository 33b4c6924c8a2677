package satfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidEntry is returned, wrapped, when a ledger entry breaks the ledger's invariants.
var ErrInvalidEntry = errors.New("invalid entry")

// Kind classifies a ledger entry as an acquisition or a disposal of bitcoin.
type Kind int

const (
	// Acquire is a buy: satoshis come in, fiat goes out.
	Acquire Kind = iota + 1
	// Dispose is a sell: satoshis go out, fiat comes in.
	Dispose
)

func (k Kind) String() string {
	switch k {
	case Acquire:
		return "buy"
	case Dispose:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseKind parses "buy" or "sell".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "buy":
		return Acquire, nil
	case "sell":
		return Dispose, nil
	default:
		return 0, fmt.Errorf("%w: unknown type %q, want \"buy\" or \"sell\"", ErrInvalidEntry, s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != Acquire && k != Dispose {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidEntry, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Entry is a single buy or sell recorded in the ledger.
//
// Amounts are never negative: the direction of the movement is given by Kind.
type Entry struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"type"`
	Sats      Sats            `json:"sats"`
	Fiat      decimal.Decimal `json:"fiat"`
	Currency  string          `json:"currency"`
	Price     decimal.Decimal `json:"btcPrice"`
	Timestamp int64           `json:"createdAt"` // epoch milliseconds
	Memo      string          `json:"memo,omitempty"`
}

// NewBuy returns a buy entry of sats, paid fiat at price, recorded at 'at'.
func NewBuy(at time.Time, sats Sats, fiat Money, price decimal.Decimal) Entry {
	return newEntry(Acquire, at, sats, fiat, price)
}

// NewSell returns a sell entry of sats, received fiat at price, recorded at 'at'.
func NewSell(at time.Time, sats Sats, fiat Money, price decimal.Decimal) Entry {
	return newEntry(Dispose, at, sats, fiat, price)
}

func newEntry(kind Kind, at time.Time, sats Sats, fiat Money, price decimal.Decimal) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Sats:      sats,
		Fiat:      fiat.Decimal(),
		Currency:  fiat.Currency(),
		Price:     price,
		Timestamp: at.UnixMilli(),
	}
}

// When returns the instant the entry was recorded.
func (e Entry) When() time.Time { return time.UnixMilli(e.Timestamp) }

// Amount returns the fiat amount paid or received.
func (e Entry) Amount() Money { return M(e.Fiat, e.Currency) }

// Signed returns the satoshis added to (positive) or removed from (negative) the holdings.
func (e Entry) Signed() Sats {
	if e.Kind == Dispose {
		return -e.Sats
	}
	return e.Sats
}

// Validate checks the entry invariants.
func (e Entry) Validate() error {
	var errs error
	if e.Kind != Acquire && e.Kind != Dispose {
		errs = errors.Join(errs, fmt.Errorf("unknown kind %d", int(e.Kind)))
	}
	if e.Sats < 0 {
		errs = errors.Join(errs, fmt.Errorf("negative quantity %d", e.Sats))
	}
	if e.Fiat.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("negative fiat amount %v", e.Fiat))
	}
	if e.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("negative price %v", e.Price))
	}
	if e.Currency != "" && !IsCurrency(e.Currency) {
		errs = errors.Join(errs, fmt.Errorf("unknown currency %q", e.Currency))
	}
	if errs != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidEntry, e.ID, errs)
	}
	return nil
}
