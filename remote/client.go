// Package remote is the HTTP client for the authoritative state service. The
// service stores the envelope verbatim and knows nothing about its contents.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finance-advisor/api/models"
)

// ErrSessionExpired is returned on a 401; callers clear cached credentials
// and force re-authentication. It is the only remote error class that may
// interrupt the user flow.
var ErrSessionExpired = errors.New("session expired, please log in again")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentialsRequest struct {
	Username      string          `json:"username"`
	Password      string          `json:"password"`
	PreferredLang models.Language `json:"preferredLang,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Signup registers a new account and returns the bearer token.
func (c *Client) Signup(ctx context.Context, username, password string, preferredLang models.Language) (*models.AuthResponse, error) {
	body := credentialsRequest{Username: username, Password: password, PreferredLang: preferredLang}
	var out models.AuthResponse
	if err := c.postJSON(ctx, "/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	body := credentialsRequest{Username: username, Password: password}
	var out models.AuthResponse
	if err := c.postJSON(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MeRaw is GET /me with the state left undecoded. The raw bytes go through
// migrate before anything trusts their shape; State is nil for a brand-new
// account, which signals onboarding.
type MeRaw struct {
	User  models.AuthUser `json:"user"`
	State json.RawMessage `json:"state"`
}

// FetchMe loads the account record and the stored envelope.
func (c *Client) FetchMe(ctx context.Context, token string) (*MeRaw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch remote state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch remote state: unexpected status %d", resp.StatusCode)
	}

	var out MeRaw
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode /me response: %w", err)
	}
	// RawMessage keeps a JSON null as literal bytes; normalize so callers can
	// test State == nil for the brand-new-account case.
	if string(out.State) == "null" {
		out.State = nil
	}
	return &out, nil
}

// SaveState PUTs the full envelope. The write is an unconditional overwrite:
// last write received by the server wins, no conflict detection. Callers
// treat failures as best-effort and never retry.
func (c *Client) SaveState(ctx context.Context, token string, state models.PersistedState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/me", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("save remote state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save remote state: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	// Signup answers 201, login 200.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("post %s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
