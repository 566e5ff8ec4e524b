// Package config assembles runtime configuration from .env files,
// environment variables, an optional YAML config file, and flag overrides,
// in that increasing priority order.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/termopark/finboard/pkg/transform"
)

// Config is everything outside the transform core needs to run.
type Config struct {
	RevenueSheetID          string
	ExpenseSheetID          string
	BreakfastSheetID        string
	GoogleServiceAccountKey string
	LayoutFile              string
	Port                    int
	CacheTTL                time.Duration
	ValidationMode          string
	RateLimitBurst          int
	RateLimitPerSec         float64
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"port":   "port",
	"layout": "layout_file",
}

// Build loads configuration. An explicit cfgFile must exist; otherwise a
// config.yaml in the working directory is used when present.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// .env.local wins over .env, the way the dashboard has always been
	// deployed.
	_ = gotenv.Load(".env.local")
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("port", 4000)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("validation_mode", string(transform.ModeStrict))
	v.SetDefault("rate_limit_burst", 30)
	v.SetDefault("rate_limit_per_sec", 1.0)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{
		RevenueSheetID:          v.GetString("revenue_sheet_id"),
		ExpenseSheetID:          v.GetString("expense_sheet_id"),
		BreakfastSheetID:        v.GetString("breakfast_sheet_id"),
		GoogleServiceAccountKey: v.GetString("google_service_account_key"),
		LayoutFile:              v.GetString("layout_file"),
		Port:                    v.GetInt("port"),
		CacheTTL:                v.GetDuration("cache_ttl"),
		ValidationMode:          v.GetString("validation_mode"),
		RateLimitBurst:          v.GetInt("rate_limit_burst"),
		RateLimitPerSec:         v.GetFloat64("rate_limit_per_sec"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch transform.ValidationMode(c.ValidationMode) {
	case transform.ModeStrict, transform.ModeLenient, "":
	default:
		return fmt.Errorf("unknown validation mode %q", c.ValidationMode)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("negative cache TTL")
	}
	return nil
}

// Mode returns the money-cell validation mode for the parser.
func (c *Config) Mode() transform.ValidationMode {
	if c.ValidationMode == "" {
		return transform.ModeStrict
	}
	return transform.ValidationMode(c.ValidationMode)
}

// ValidateServe checks the extra requirements of the HTTP server: at least
// one sheet to read and credentials to read it with.
func (c *Config) ValidateServe() error {
	if c.RevenueSheetID == "" && c.ExpenseSheetID == "" {
		return fmt.Errorf("REVENUE_SHEET_ID or EXPENSE_SHEET_ID is required")
	}
	if c.GoogleServiceAccountKey == "" {
		return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_KEY is required")
	}
	return nil
}
