// Package config loads runtime settings for the memento CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerBaseURL: base URL of the journal backend, e.g. "http://localhost:8000".
//   - DatabasePath: path of the local sqlite database holding the credential.
//   - RequestTimeout: per-request HTTP timeout.
//   - PageLimit: page size used when loading entries.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
	PageLimit      int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DatabasePath = "memento.db"
	c.RequestTimeout = 10 * time.Second
	c.PageLimit = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
