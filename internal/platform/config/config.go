package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate limiting for the API surface, e.g. "100-M" for 100 requests
	// per minute per client IP.
	RateLimit string

	// MigrationsPath is the file:// source golang-migrate reads from.
	MigrationsPath string

	// SeedTimeout bounds the startup chart-of-accounts seeding.
	SeedTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SEED_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	seedTimeoutStr := viper.GetString("SEED_TIMEOUT")
	seedTimeout, err := time.ParseDuration(seedTimeoutStr)
	if err != nil {
		seedTimeout = 30 * time.Second
		if seedTimeoutStr != "" {
			log.Printf("Warning: Invalid value for SEED_TIMEOUT ('%s'). Defaulting to %s.\n", seedTimeoutStr, seedTimeout.String())
		}
	}
	cfg.SeedTimeout = seedTimeout

	return cfg, nil
}
