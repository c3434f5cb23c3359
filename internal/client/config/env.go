package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config with values from environment variables:
//
//	MEMENTO_API_URL          base URL of the backend
//	MEMENTO_DB_PATH          local database path
//	MEMENTO_REQUEST_TIMEOUT  duration string, e.g. "15s"
//	MEMENTO_PAGE_LIMIT       positive integer
//
// Malformed values are ignored and the previous value kept.
func parseEnv(cfg *Config) {
	if v := os.Getenv("MEMENTO_API_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("MEMENTO_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("MEMENTO_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("MEMENTO_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageLimit = n
		}
	}
}
