package satfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxPriceAge is how old a cached price can be and still be used when the source fails.
const DefaultMaxPriceAge = 24 * time.Hour

// PriceService returns the current exchange rate, falling back to the last
// known one when the source is unavailable.
//
// A cached price is only used while it is younger than the maximum age; it is
// then returned with Stale set so callers can warn the user.
type PriceService struct {
	source PriceSource
	cache  *PriceCache
	maxAge time.Duration
	logger *zap.Logger
	now    func() time.Time // injectable clock for testing
}

// NewPriceService creates a price service. cache may be nil, disabling the fallback.
func NewPriceService(source PriceSource, cache *PriceCache, maxAge time.Duration, logger *zap.Logger) *PriceService {
	if maxAge <= 0 {
		maxAge = DefaultMaxPriceAge
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{
		source: source,
		cache:  cache,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Current returns the price of one BTC in currency.
func (s *PriceService) Current(ctx context.Context, currency string) (Price, error) {
	currency = strings.ToUpper(currency)
	value, fetchErr := s.source.Latest(ctx, currency)
	if fetchErr == nil {
		p := Price{Value: value, Currency: currency, UpdatedAt: s.now()}
		if s.cache != nil {
			if err := s.cache.Store(p); err != nil {
				s.logger.Warn("cannot cache price", zap.String("currency", currency), zap.Error(err))
			}
		}
		s.logger.Debug("price fetched", zap.String("currency", currency), zap.Stringer("value", value))
		return p, nil
	}
	if ctx.Err() != nil {
		return Price{}, ctx.Err()
	}

	s.logger.Warn("price fetch failed", zap.String("currency", currency), zap.Error(fetchErr))
	if s.cache == nil {
		return Price{}, fmt.Errorf("%w for %s: %w", ErrNoPrice, currency, fetchErr)
	}
	cached, err := s.cache.Load(currency)
	if errors.Is(err, fs.ErrNotExist) {
		return Price{}, fmt.Errorf("%w for %s: %w", ErrNoPrice, currency, fetchErr)
	}
	if err != nil {
		return Price{}, errors.Join(fmt.Errorf("%w for %s", ErrNoPrice, currency), fetchErr, err)
	}

	age := cached.Age(s.now())
	if age > s.maxAge {
		return Price{}, fmt.Errorf("%w: cached %s price is %v old, more than %v: %w",
			ErrStalePrice, currency, age.Round(time.Minute), s.maxAge, fetchErr)
	}
	cached.Stale = true
	s.logger.Warn("using cached price",
		zap.String("currency", currency),
		zap.Duration("age", age),
		zap.Time("updatedAt", cached.UpdatedAt))
	return cached, nil
}

// Watch calls fn with the current price immediately, then every interval,
// until ctx is done. It returns ctx's error.
func (s *PriceService) Watch(ctx context.Context, currency string, every time.Duration, fn func(Price, error)) error {
	if every <= 0 {
		return fmt.Errorf("invalid refresh interval %v", every)
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		p, err := s.Current(ctx, currency)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(p, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
