// Package config handles configuration loading for AIRE.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig holds the default underwriting assumptions applied when a
// request leaves them unspecified.
type EngineConfig struct {
	RateEnv    string           `mapstructure:"rate_env"   yaml:"rate_env"` // "HIGH" or "NORMAL"
	Modules    []string         `mapstructure:"modules"    yaml:"modules"`  // default included modules
	Projection ProjectionConfig `mapstructure:"projection" yaml:"projection"`
	Shocks     ShockConfig      `mapstructure:"shocks"     yaml:"shocks"`
}

// ProjectionConfig holds the default cash-flow model assumptions.
type ProjectionConfig struct {
	HoldYears     int     `mapstructure:"hold_years"     yaml:"hold_years"`
	RentGrowth    float64 `mapstructure:"rent_growth"    yaml:"rent_growth"`
	ExpenseGrowth float64 `mapstructure:"expense_growth" yaml:"expense_growth"`
	Appreciation  float64 `mapstructure:"appreciation"   yaml:"appreciation"`
	SaleCostPct   float64 `mapstructure:"sale_cost_pct"  yaml:"sale_cost_pct"`
	UseExitCap    bool    `mapstructure:"use_exit_cap"   yaml:"use_exit_cap"`
	ExitCapRate   float64 `mapstructure:"exit_cap_rate"  yaml:"exit_cap_rate"`
	DiscountRate  float64 `mapstructure:"discount_rate"  yaml:"discount_rate"`
}

// ShockConfig holds the default sensitivity-grid spans.
type ShockConfig struct {
	RentSpan    float64 `mapstructure:"rent_span"     yaml:"rent_span"`     // e.g. 0.10 => ±10% rent
	RateSpanPct float64 `mapstructure:"rate_span_pct" yaml:"rate_span_pct"` // percentage points
	Steps       int     `mapstructure:"steps"         yaml:"steps"`         // points per axis
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.aire/config.yaml (home directory)
//  3. /etc/aire/config.yaml (system)
//
// Environment variables override config file values.
// Format: AIRE_<SECTION>_<KEY>, e.g., AIRE_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".aire"))
	v.AddConfigPath("/etc/aire")

	v.SetEnvPrefix("AIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("AIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Engine defaults: the stock underwriting assumptions
	v.SetDefault("engine.rate_env", "HIGH")
	v.SetDefault("engine.modules", []string{
		"Rent & Price", "Expenses", "Vacancy", "Financing",
		"Yield", "Liquidity", "Last Sale",
	})
	v.SetDefault("engine.projection.hold_years", 5)
	v.SetDefault("engine.projection.rent_growth", 0.03)
	v.SetDefault("engine.projection.expense_growth", 0.03)
	v.SetDefault("engine.projection.appreciation", 0.03)
	v.SetDefault("engine.projection.sale_cost_pct", 0.07)
	v.SetDefault("engine.projection.use_exit_cap", false)
	v.SetDefault("engine.projection.exit_cap_rate", 0.065)
	v.SetDefault("engine.projection.discount_rate", 0.10)
	v.SetDefault("engine.shocks.rent_span", 0.10)
	v.SetDefault("engine.shocks.rate_span_pct", 1.00)
	v.SetDefault("engine.shocks.steps", 7)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
