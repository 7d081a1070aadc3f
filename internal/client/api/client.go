// Package api is the HTTP client for the travelog auth endpoint. It speaks
// the challenge–response protocol: the passphrase is turned into an account
// key locally and only challenge answers cross the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avoronov/travelog/internal/common"
)

type Client struct {
	baseURL    string
	cookieName string
	http       *http.Client
}

func NewClient(baseURL, cookieName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		cookieName: cookieName,
		http:       &http.Client{Timeout: timeout},
	}
}

// SessionInfo mirrors the server's session payload.
type SessionInfo struct {
	AccountID    string `json:"account_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"token_version"`
}

type paramsResponse struct {
	Salt string `json:"salt"`
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Params fetches the server-side key derivation salt.
func (c *Client) Params(ctx context.Context) (string, error) {
	var resp paramsResponse
	if err := c.call(ctx, http.MethodGet, "/api/auth/params", nil, "", &resp); err != nil {
		return "", err
	}
	return resp.Salt, nil
}

// Register creates an account for username/role with the given derived key
// (64 hex characters).
func (c *Client) Register(ctx context.Context, username, role, keyHex string) error {
	body := map[string]string{"username": username, "role": role, "key": keyHex}
	return c.call(ctx, http.MethodPost, "/api/auth/register", body, "", nil)
}

// Challenge requests a signed challenge for the claimed identity. The returned
// string must be passed back to Login byte-for-byte.
func (c *Client) Challenge(ctx context.Context, username, role string) (string, error) {
	body := map[string]string{"username": username, "role": role}
	var resp challengeResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/challenge", body, "", &resp); err != nil {
		return "", err
	}
	return resp.Challenge, nil
}

// Login submits a challenge answer and returns the session token from the
// cookie the server sets.
func (c *Client) Login(ctx context.Context, challenge, responseHex string, stay bool) (token string, expiresAt time.Time, err error) {
	body := map[string]any{"challenge": challenge, "response": responseHex, "stay": stay}

	httpResp, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "")
	if err != nil {
		return "", time.Time{}, err
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return "", time.Time{}, err
	}

	for _, cookie := range httpResp.Cookies() {
		if cookie.Name == c.cookieName {
			return cookie.Value, cookie.Expires, nil
		}
	}
	return "", time.Time{}, fmt.Errorf("server did not set a %s cookie", c.cookieName)
}

// Logout revokes every session issued for the account behind token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.call(ctx, http.MethodPost, "/api/auth/logout", nil, token, nil)
}

// Session returns the identity behind token, or ErrorUnauthorized if the
// token is no longer accepted.
func (c *Client) Session(ctx context.Context, token string) (*SessionInfo, error) {
	var resp SessionInfo
	if err := c.call(ctx, http.MethodGet, "/api/auth/session", nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword proves possession of the old key via a challenge answer and
// installs the new derived key.
func (c *Client) ChangePassword(ctx context.Context, challenge, responseHex, newKeyHex string) error {
	body := map[string]string{"challenge": challenge, "response": responseHex, "new_key": newKeyHex}
	return c.call(ctx, http.MethodPost, "/api/auth/password", body, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}

	return c.http.Do(req)
}

// call runs a request and decodes a JSON response into out (if non-nil).
func (c *Client) call(ctx context.Context, method, path string, body any, token string, out any) error {
	resp, err := c.do(ctx, method, path, body, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

// checkStatus maps HTTP error statuses back to the shared sentinels so the
// CLI can branch on them the same way server code does.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	msg := "request failed"
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		msg = er.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, common.ErrorUnauthorized)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, common.ErrorAlreadyExists)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, common.ErrorValidation)
	default:
		return fmt.Errorf("%s (status %d): %w", msg, resp.StatusCode, common.ErrorInternal)
	}
}
