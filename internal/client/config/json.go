package config

import (
	"encoding/json"
	"os"

	"github.com/avoronov/travelog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerAddr        string         `json:"server_addr"`
	SessionCookieName string         `json:"session_cookie_name"`
	StateFile         string         `json:"state_file"`
	KDF               string         `json:"kdf"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// An empty path means no JSON is loaded. Empty fields in the file keep
// their current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.SessionCookieName != "" {
		cfg.SessionCookieName = jc.SessionCookieName
	}
	if jc.StateFile != "" {
		cfg.StateFile = jc.StateFile
	}
	if jc.KDF != "" {
		cfg.KDF = jc.KDF
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
