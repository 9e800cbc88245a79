package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	ServicePort int
	Stores      StoresConfig
}

// StoresConfig holds the DSN for every store alias. The default DSN is
// required; brise and pavimentos are optional and fall back to the
// default store when unset.
type StoresConfig struct {
	DefaultURL    string
	BriseURL      string
	PavimentosURL string
}

// DSNs returns the alias table to build connection pools from,
// containing only the aliases that were actually configured.
func (s StoresConfig) DSNs() map[string]string {
	dsns := map[string]string{"default": s.DefaultURL}
	if s.BriseURL != "" {
		dsns["brise"] = s.BriseURL
	}
	if s.PavimentosURL != "" {
		dsns["pavimentos"] = s.PavimentosURL
	}
	return dsns
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "ecoview-server"),
		ServicePort: getEnvAsInt("SERVICE_PORT", 8000),
		Stores: StoresConfig{
			DefaultURL:    getEnv("DATABASE_URL", ""),
			BriseURL:      getEnv("BRISE_DATABASE_URL", ""),
			PavimentosURL: getEnv("PAVIMENTOS_DATABASE_URL", ""),
		},
	}

	if cfg.Stores.DefaultURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set in environment variables")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
