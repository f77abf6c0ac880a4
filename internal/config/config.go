package config

import (
	"os"
	"strconv"

	"gocopula/internal/errors"
	"gocopula/internal/reorder"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Reorder  ReorderConfig
	Paths    PathConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings.
// An empty URL disables run persistence entirely.
type DatabaseConfig struct {
	URL string
}

// ReorderConfig holds reordering settings
type ReorderConfig struct {
	TiePolicy    reorder.TiePolicy
	Workers      int
	TailQuantile float64
	Seed         int64
}

// PathConfig holds file system paths for the file pipeline
type PathConfig struct {
	MarginalFile string
	CopulaFile   string
	OutputFile   string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Reorder: ReorderConfig{
			TiePolicy:    reorder.TiePolicy(getEnv("TIE_POLICY", string(reorder.TieFirstWins))),
			Workers:      getEnvInt("REORDER_WORKERS", 1),
			TailQuantile: getEnvFloat("TAIL_QUANTILE", 0.05),
			Seed:         int64(getEnvInt("SAMPLE_SEED", 42)),
		},
		Paths: PathConfig{
			MarginalFile: os.Getenv("MARGINAL_FILE"),
			CopulaFile:   os.Getenv("COPULA_FILE"),
			OutputFile:   getEnv("OUTPUT_FILE", "reordered.xlsx"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("SERVER_PORT cannot be empty")
	}
	if !cfg.Reorder.TiePolicy.Valid() {
		return errors.ConfigInvalid("TIE_POLICY must be first_wins or last_wins")
	}
	if cfg.Reorder.Workers < 1 {
		return errors.ConfigInvalid("REORDER_WORKERS must be at least 1")
	}
	if cfg.Reorder.TailQuantile <= 0 || cfg.Reorder.TailQuantile >= 0.5 {
		return errors.ConfigInvalid("TAIL_QUANTILE must be in (0, 0.5)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
