package config

import (
	"encoding/json"
	"os"

	"github.com/avoronov/travelog/internal/flagx"
	"github.com/avoronov/travelog/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	ChallengeSecret             string         `json:"challenge_secret"`
	ChallengeIssuer             string         `json:"challenge_issuer"`
	ChallengeValidityDuration   timex.Duration `json:"challenge_validity_duration"`
	SessionSecret               string         `json:"session_secret"`
	SessionCookieName           string         `json:"session_cookie_name"`
	SessionValidityDuration     timex.Duration `json:"session_validity_duration"`
	StaySessionValidityDuration timex.Duration `json:"stay_session_validity_duration"`
	AccountKeySalt              string         `json:"account_key_salt"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.ChallengeSecret = c.ChallengeSecret
	config.ChallengeIssuer = c.ChallengeIssuer
	config.ChallengeValidityDuration = c.ChallengeValidityDuration.Duration
	config.SessionSecret = c.SessionSecret
	config.SessionCookieName = c.SessionCookieName
	config.SessionValidityDuration = c.SessionValidityDuration.Duration
	config.StaySessionValidityDuration = c.StaySessionValidityDuration.Duration
	config.AccountKeySalt = c.AccountKeySalt
}
