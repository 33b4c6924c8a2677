package satfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PriceCache persists the last known price of each currency, one JSON file per currency.
type PriceCache struct {
	dir string
}

// NewPriceCache returns a cache storing its files in dir.
func NewPriceCache(dir string) *PriceCache { return &PriceCache{dir: dir} }

func (c *PriceCache) path(currency string) string {
	return filepath.Join(c.dir, "price_"+strings.ToUpper(currency)+".json")
}

// Load returns the cached price for currency. A missing entry wraps fs.ErrNotExist.
func (c *PriceCache) Load(currency string) (Price, error) {
	data, err := os.ReadFile(c.path(currency))
	if err != nil {
		return Price{}, fmt.Errorf("no cached %s price: %w", currency, err)
	}
	var p Price
	if err := json.Unmarshal(data, &p); err != nil {
		return Price{}, fmt.Errorf("corrupted %s price cache: %w", currency, err)
	}
	p.Currency = strings.ToUpper(currency)
	return p, nil
}

// Store saves p as the last known price of its currency.
func (c *PriceCache) Store(p Price) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return writeFileAtomic(c.path(p.Currency), data)
}
