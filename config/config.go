package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Deals     DealsConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// InferenceConfig holds variant price-bracket inference configuration
type InferenceConfig struct {
	// PriceTolerance is the relative band for bracket matching; a variant
	// is a candidate when the observed price is within this fraction of
	// its estimated price.
	PriceTolerance float64 `mapstructure:"price_tolerance"`
}

// DealsConfig holds deal discovery configuration
type DealsConfig struct {
	MinSavingsPercent float64 `mapstructure:"min_savings_percent"`
	MaxResults        int     `mapstructure:"max_results"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second
	Burst int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Inference defaults
	v.SetDefault("inference.price_tolerance", 0.20)

	// Deal discovery defaults
	v.SetDefault("deals.min_savings_percent", 5.0)
	v.SetDefault("deals.max_results", 20)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10.0)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Inference.PriceTolerance <= 0 || config.Inference.PriceTolerance >= 1 {
		return fmt.Errorf("inference price tolerance must be in (0, 1), got: %v", config.Inference.PriceTolerance)
	}

	if config.Deals.MinSavingsPercent < 0 || config.Deals.MinSavingsPercent > 100 {
		return fmt.Errorf("deals min savings percent must be in [0, 100], got: %v", config.Deals.MinSavingsPercent)
	}

	if config.Deals.MaxResults <= 0 {
		return fmt.Errorf("deals max results must be positive, got: %d", config.Deals.MaxResults)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %v", config.RateLimit.PerIP)
	}

	return nil
}
