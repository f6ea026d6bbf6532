package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// Environment variables that override tripsplit.yaml.
const (
	EnvCurrency     = "TRIPSPLIT_CURRENCY"
	EnvHomeCurrency = "TRIPSPLIT_HOME_CURRENCY"
	EnvRate         = "TRIPSPLIT_RATE"
	EnvLogLevel     = "TRIPSPLIT_LOG_LEVEL"
	EnvEnvironment  = "TRIPSPLIT_ENV"
)

// Config represents the top-level tripsplit.yaml configuration.
type Config struct {
	Trip     TripConfig     `yaml:"trip"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Log      LogConfig      `yaml:"log"`
}

// TripConfig names the trip file and its spending currency.
type TripConfig struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Currency string `yaml:"currency"` // ISO 4217, e.g. "JPY"
}

// ExchangeConfig is the fixed rate used by the convert command.
type ExchangeConfig struct {
	HomeCurrency string `yaml:"home_currency"`
	Rate         string `yaml:"rate"` // home units per trip unit, kept as a string for exact decimals
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"` // "production" or "development"
}

// Load reads a tripsplit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new trip.
func Default(tripName string) *Config {
	return &Config{
		Trip: TripConfig{
			Name:     tripName,
			File:     "trip.yaml",
			Currency: "JPY",
		},
		Exchange: ExchangeConfig{
			HomeCurrency: "MYR",
			Rate:         "0.032",
		},
		Log: LogConfig{
			Level:       "info",
			Environment: "production",
		},
	}
}

// ApplyEnv loads dotenvPath (if it exists) into the process environment
// without overriding variables that are already set, then copies any
// TRIPSPLIT_* values onto cfg.
func ApplyEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}

	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Trip.Currency = v
	}
	if v := os.Getenv(EnvHomeCurrency); v != "" {
		cfg.Exchange.HomeCurrency = v
	}
	if v := os.Getenv(EnvRate); v != "" {
		cfg.Exchange.Rate = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Log.Environment = v
	}
	return nil
}

// Validate checks currency codes and the exchange rate.
func (c *Config) Validate() error {
	if _, err := money.Lookup(c.Trip.Currency); err != nil {
		return fmt.Errorf("trip currency: %w", err)
	}
	if _, err := money.Lookup(c.Exchange.HomeCurrency); err != nil {
		return fmt.Errorf("home currency: %w", err)
	}
	if _, err := c.ExchangeRate(); err != nil {
		return err
	}
	return nil
}

// ExchangeRate parses the configured rate. It must be positive.
func (c *Config) ExchangeRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Exchange.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing exchange rate %q: %w", c.Exchange.Rate, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("exchange rate %s must be positive", rate)
	}
	return rate, nil
}
