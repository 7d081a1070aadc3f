package config

import (
	"flag"
	"os"
	"time"

	"github.com/avoronov/travelog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   challenge-signing secret
//	-i string   challenge issuer
//	-t int      challenge validity, minutes
//	-k string   session-signing secret
//	-n string   session cookie name
//	-e int      session validity, hours
//	-y int      "stay signed in" session validity, hours
//	-p string   account-key derivation salt
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration flags
// are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-i", "-t", "-k", "-n", "-e", "-y", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ChallengeSecret, "s", config.ChallengeSecret, "challenge signing secret")
	fs.StringVar(&config.ChallengeIssuer, "i", config.ChallengeIssuer, "challenge issuer")
	fs.StringVar(&config.SessionSecret, "k", config.SessionSecret, "session signing secret")
	fs.StringVar(&config.SessionCookieName, "n", config.SessionCookieName, "session cookie name")
	fs.StringVar(&config.AccountKeySalt, "p", config.AccountKeySalt, "account key derivation salt")

	challengeValidity := fs.Int("t", int(config.ChallengeValidityDuration.Minutes()), "challenge_validity_duration (in minutes)")
	sessionValidity := fs.Int("e", int(config.SessionValidityDuration.Hours()), "session_validity_duration (in hours)")
	stayValidity := fs.Int("y", int(config.StaySessionValidityDuration.Hours()), "stay_session_validity_duration (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ChallengeValidityDuration = time.Duration(*challengeValidity) * time.Minute
	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Hour
	config.StaySessionValidityDuration = time.Duration(*stayValidity) * time.Hour
}
