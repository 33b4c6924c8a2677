package satfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds the user preferences and tuning of satfolio.
type Settings struct {
	FiatCurrency    string            `toml:"fiat_currency"`
	BTCUnit         string            `toml:"btc_unit"` // "BTC" or "Satoshi"
	Locale          string            `toml:"locale"`   // BCP 47 tag used to format numbers
	Timezone        string            `toml:"timezone"` // IANA name, empty for the local timezone
	MaxPriceAge     string            `toml:"max_price_age"`
	RefreshInterval string            `toml:"refresh_interval"`
	Chart           ChartSettings     `toml:"chart"`
	CoinGecko       CoinGeckoSettings `toml:"coingecko"`
	Logging         LoggingSettings   `toml:"logging"`
}

// ChartSettings holds the drawing surface used to render the holdings chart.
type ChartSettings struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Padding   Padding `toml:"padding"`
	TimeTicks int     `toml:"time_ticks"`
}

// Padding holds the insets between the drawing surface and the plot area.
type Padding struct {
	Left   int `toml:"left"`
	Right  int `toml:"right"`
	Top    int `toml:"top"`
	Bottom int `toml:"bottom"`
}

// CoinGeckoSettings configures the price source.
type CoinGeckoSettings struct {
	BaseURL           string  `toml:"base_url"`
	Timeout           string  `toml:"timeout"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// NewDefaultSettings returns the settings used when nothing is configured.
func NewDefaultSettings() *Settings {
	return &Settings{
		FiatCurrency:    "THB",
		BTCUnit:         "BTC",
		Locale:          "th-TH",
		MaxPriceAge:     "24h",
		RefreshInterval: "45s",
		Chart: ChartSettings{
			Width:     640,
			Height:    240,
			Padding:   Padding{Left: 48, Right: 16, Top: 16, Bottom: 32},
			TimeTicks: 6,
		},
		CoinGecko: CoinGeckoSettings{
			BaseURL:           DefaultCoinGeckoURL,
			Timeout:           "10s",
			RequestsPerMinute: 30,
		},
		Logging: LoggingSettings{Level: "warn"},
	}
}

// LoadSettings loads the defaults, merges the settings file if it exists, and
// applies SATFOLIO_* environment overrides.
func LoadSettings(path string) (*Settings, error) {
	s := NewDefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSettings writes s to path in TOML.
func SaveSettings(path string, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return writeFileAtomic(path, data)
}

// applyEnvOverrides applies environment variable overrides to settings
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("SATFOLIO_FIAT"); v != "" {
		s.FiatCurrency = v
	}
	if v := os.Getenv("SATFOLIO_UNIT"); v != "" {
		s.BTCUnit = v
	}
	if v := os.Getenv("SATFOLIO_LOCALE"); v != "" {
		s.Locale = v
	}
	if v := os.Getenv("SATFOLIO_TZ"); v != "" {
		s.Timezone = v
	}
	if v := os.Getenv("SATFOLIO_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("SATFOLIO_COINGECKO_URL"); v != "" {
		s.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("SATFOLIO_CHART_WIDTH"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			s.Chart.Width = w
		}
	}
}

// Validate normalizes and checks the settings.
func (s *Settings) Validate() error {
	var errs error
	s.FiatCurrency = strings.ToUpper(strings.TrimSpace(s.FiatCurrency))
	if !IsCurrency(s.FiatCurrency) {
		errs = errors.Join(errs, fmt.Errorf("unknown fiat currency %q", s.FiatCurrency))
	}
	if u, err := ParseUnit(s.BTCUnit); err != nil {
		errs = errors.Join(errs, err)
	} else {
		s.BTCUnit = u.String()
	}
	if _, err := NewNumberFormat(s.Locale); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := s.Location(); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := s.Chart.validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	if s.Chart.TimeTicks < 2 {
		errs = errors.Join(errs, fmt.Errorf("chart time_ticks must be at least 2, got %d", s.Chart.TimeTicks))
	}
	if errs != nil {
		return fmt.Errorf("invalid settings: %w", errs)
	}
	return nil
}

// validate checks that the padding leaves a plot area.
func (c ChartSettings) validate() error {
	p := c.Padding
	if p.Left < 0 || p.Right < 0 || p.Top < 0 || p.Bottom < 0 {
		return fmt.Errorf("chart padding must not be negative, got %+v", p)
	}
	if c.Width <= p.Left+p.Right {
		return fmt.Errorf("chart width %d leaves no room for a padding of %d+%d", c.Width, p.Left, p.Right)
	}
	if c.Height <= p.Top+p.Bottom {
		return fmt.Errorf("chart height %d leaves no room for a padding of %d+%d", c.Height, p.Top, p.Bottom)
	}
	return nil
}

// Unit returns the display unit.
func (s *Settings) Unit() Unit {
	u, _ := ParseUnit(s.BTCUnit)
	return u
}

// NumberFormat returns the number format of the configured locale.
func (s *Settings) NumberFormat() NumberFormat {
	nf, err := NewNumberFormat(s.Locale)
	if err != nil {
		return MustNumberFormat("en")
	}
	return nf
}

// Location returns the timezone used to bucket entries into days.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// GetMaxPriceAge parses and returns the maximum age of a cached price.
func (s *Settings) GetMaxPriceAge() time.Duration {
	return parseDuration(s.MaxPriceAge, DefaultMaxPriceAge)
}

// GetRefreshInterval parses and returns the price refresh interval.
func (s *Settings) GetRefreshInterval() time.Duration {
	return parseDuration(s.RefreshInterval, 45*time.Second)
}

// GetTimeout parses and returns the timeout of price requests.
func (c *CoinGeckoSettings) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Set updates the setting named by its TOML key, e.g. "fiat_currency" or
// "chart.width", and validates the result.
func (s *Settings) Set(key, value string) error {
	atoi := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		*dst = v
		return nil
	}
	duration := func(dst *string) error {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		*dst = value
		return nil
	}

	var err error
	switch key {
	case "fiat_currency":
		s.FiatCurrency = value
	case "btc_unit":
		s.BTCUnit = value
	case "locale":
		s.Locale = value
	case "timezone":
		s.Timezone = value
	case "max_price_age":
		err = duration(&s.MaxPriceAge)
	case "refresh_interval":
		err = duration(&s.RefreshInterval)
	case "chart.width":
		err = atoi(&s.Chart.Width)
	case "chart.height":
		err = atoi(&s.Chart.Height)
	case "chart.padding.left":
		err = atoi(&s.Chart.Padding.Left)
	case "chart.padding.right":
		err = atoi(&s.Chart.Padding.Right)
	case "chart.padding.top":
		err = atoi(&s.Chart.Padding.Top)
	case "chart.padding.bottom":
		err = atoi(&s.Chart.Padding.Bottom)
	case "chart.time_ticks":
		err = atoi(&s.Chart.TimeTicks)
	case "coingecko.base_url":
		s.CoinGecko.BaseURL = value
	case "logging.level":
		s.Logging.Level = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return err
	}
	return s.Validate()
}
