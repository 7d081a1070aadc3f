package cli

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/avoronov/travelog/internal/cryptox"
)

// deriveKeyHex derives the account key for username from a passphrase, using
// the salt published by the server and the configured KDF. The caller owns
// wiping the passphrase.
func (a *App) deriveKeyHex(ctx context.Context, username string, passphrase []byte) (string, error) {
	salt, err := a.api.Params(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching derivation params: %w", err)
	}

	kdf, err := cryptox.ParseKDF(a.cfg.KDF)
	if err != nil {
		return "", err
	}

	key := kdf.Derive(username, string(passphrase), salt)
	return hex.EncodeToString(key), nil
}

// answerChallenge requests a challenge for the identity and computes the
// response with the given key. The challenge string is returned unchanged so
// the server can verify the HMAC over the exact bytes it issued.
func (a *App) answerChallenge(ctx context.Context, username, role, keyHex string) (challenge, response string, err error) {
	challenge, err = a.api.Challenge(ctx, username, role)
	if err != nil {
		return "", "", fmt.Errorf("error requesting challenge: %w", err)
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return "", "", err
	}

	return challenge, cryptox.RespondHex([]byte(challenge), key), nil
}
