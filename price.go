package satfolio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

var (
	// ErrNoPrice is returned when no exchange rate is available at all.
	ErrNoPrice = errors.New("no price available")
	// ErrStalePrice is returned when the only known exchange rate is older than the accepted age.
	ErrStalePrice = errors.New("price is too old")
)

// Price is the value of one bitcoin in a fiat currency.
type Price struct {
	Value     decimal.Decimal `json:"value"`
	Currency  string          `json:"currency"`
	UpdatedAt time.Time       `json:"updatedAt"`
	// Stale is set when the price comes from the cache because the source failed.
	Stale bool `json:"-"`
}

// Money returns the price as an amount of fiat.
func (p Price) Money() Money { return M(p.Value, p.Currency) }

// Age returns how old the price is at now.
func (p Price) Age(now time.Time) time.Duration { return now.Sub(p.UpdatedAt) }

// PriceSource fetches the latest BTC exchange rate.
type PriceSource interface {
	Latest(ctx context.Context, currency string) (decimal.Decimal, error)
}

const (
	// DefaultCoinGeckoURL is the public CoinGecko API.
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	// DefaultCoinGeckoRate is the sustained request rate allowed by the public API tier.
	DefaultCoinGeckoRate = rate.Limit(0.5)
)

// CoinGecko fetches prices from the CoinGecko simple price endpoint.
type CoinGecko struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// CoinGeckoOption configures a CoinGecko source.
type CoinGeckoOption func(*CoinGecko)

// WithBaseURL sets the API base URL.
func WithBaseURL(baseURL string) CoinGeckoOption {
	return func(c *CoinGecko) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient sets the http client used for requests.
func WithHTTPClient(client *http.Client) CoinGeckoOption {
	return func(c *CoinGecko) { c.client = client }
}

// WithRateLimit sets the maximum sustained request rate.
func WithRateLimit(limit rate.Limit) CoinGeckoOption {
	return func(c *CoinGecko) { c.limiter = rate.NewLimiter(limit, 1) }
}

// NewCoinGecko returns a CoinGecko price source.
func NewCoinGecko(opts ...CoinGeckoOption) *CoinGecko {
	c := &CoinGecko{
		baseURL: DefaultCoinGeckoURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(DefaultCoinGeckoRate, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the current price of one BTC in currency.
func (c *CoinGecko) Latest(ctx context.Context, currency string) (decimal.Decimal, error) {
	cur := strings.ToLower(currency)
	if err := c.limiter.Wait(ctx); err != nil {
		return decimal.Zero, err
	}

	q := url.Values{}
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", cur)
	addr := c.baseURL + "/simple/price?" + q.Encode()

	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error fetching BTC/%s: %w", currency, err)
	}

	path := "$.bitcoin." + cur
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing BTC/%s: %q %w", currency, path, err)
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Zero, fmt.Errorf("error parsing BTC/%s: %q is not a positive number: %v", currency, path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
