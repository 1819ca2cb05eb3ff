// Package config loads run parameters from the environment, with an optional
// .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults reproduce the reference dataset shape.
const (
	DefaultCustomers  = 50000
	DefaultMerchants  = 5000
	DefaultDrawCount  = 500000
	DefaultWindowDays = 180
	DefaultSeed       = 42

	DefaultDomesticCountry = "FR"
	DefaultCurrency        = "EUR"

	DefaultOutputDir = "data"
	DefaultHTTPAddr  = ":8080"
)

// Config holds everything a run needs. One instance per process, built once
// at startup and passed down read-only.
type Config struct {
	Customers  int
	Merchants  int
	DrawCount  int
	WindowDays int
	Seed       int64

	// EndDate is the newest possible timestamp. Zero means midnight UTC of
	// the current day, which keeps default runs anchored to "today" while a
	// pinned value keeps them reproducible.
	EndDate time.Time

	DomesticCountry string
	Currency        string

	OutputDir string
	HTTPAddr  string

	PostgresDSN   string
	ClickHouseDSN string
}

// Load reads the environment, preceded by a best-effort .env load. Missing
// variables fall back to defaults; malformed numeric values are an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DomesticCountry: envString("SHIELD_DOMESTIC_COUNTRY", DefaultDomesticCountry),
		Currency:        envString("SHIELD_CURRENCY", DefaultCurrency),
		OutputDir:       envString("SHIELD_OUTPUT_DIR", DefaultOutputDir),
		HTTPAddr:        envString("SHIELD_HTTP_ADDR", DefaultHTTPAddr),
		PostgresDSN:     os.Getenv("SHIELD_POSTGRES_DSN"),
		ClickHouseDSN:   os.Getenv("SHIELD_CLICKHOUSE_DSN"),
	}

	var err error
	if cfg.Customers, err = envInt("SHIELD_CUSTOMERS", DefaultCustomers); err != nil {
		return nil, err
	}
	if cfg.Merchants, err = envInt("SHIELD_MERCHANTS", DefaultMerchants); err != nil {
		return nil, err
	}
	if cfg.DrawCount, err = envInt("SHIELD_DRAW_COUNT", DefaultDrawCount); err != nil {
		return nil, err
	}
	if cfg.WindowDays, err = envInt("SHIELD_WINDOW_DAYS", DefaultWindowDays); err != nil {
		return nil, err
	}

	seed, err := envInt("SHIELD_SEED", DefaultSeed)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)

	if raw := os.Getenv("SHIELD_END_DATE"); raw != "" {
		cfg.EndDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("parse SHIELD_END_DATE: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a coherent dataset.
func (c *Config) Validate() error {
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive, got %d", c.Customers)
	}
	if c.Merchants <= 0 {
		return fmt.Errorf("merchants must be positive, got %d", c.Merchants)
	}
	if c.DrawCount <= 0 {
		return fmt.Errorf("draw count must be positive, got %d", c.DrawCount)
	}
	if c.WindowDays <= 0 {
		return fmt.Errorf("window must be positive, got %d days", c.WindowDays)
	}
	if len(c.DomesticCountry) != 2 {
		return fmt.Errorf("domestic country must be ISO2, got %q", c.DomesticCountry)
	}
	return nil
}

// ResolvedEndDate returns the configured end date, or midnight UTC today.
func (c *Config) ResolvedEndDate() time.Time {
	if !c.EndDate.IsZero() {
		return c.EndDate
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
