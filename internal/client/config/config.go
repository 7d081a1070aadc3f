// Package config handles configuration for the CLI client component.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the travelog CLI client.
//
// Fields:
//   - ServerAddr: base URL of the travelog server.
//   - SessionCookieName: name of the session cookie the server sets; must
//     match the server configuration.
//   - StateFile: path where the session token is persisted between commands.
//   - KDF: account-key derivation function, "sha256" or "argon2id".
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerAddr        string
	SessionCookieName string
	StateFile         string
	KDF               string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.SessionCookieName = "travelog_session"
	c.StateFile = defaultStateFile()
	c.KDF = "sha256"
	c.RequestTimeout = 10 * time.Second
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "travelog_session.json"
	}
	return filepath.Join(home, ".travelog", "session.json")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file if path is non-empty. Command-line overrides are applied by the
// CLI layer on top of the result.
func LoadConfig(path string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, path)
	return cfg
}
