package musicapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultSpotifyTokenURL = "https://accounts.spotify.com/api/token"

	// refreshMargin is subtracted from a token's expiry so a token is never
	// sent in the last seconds of its life.
	refreshMargin = 30 * time.Second
)

// AccessToken is a bearer token and the instant it stops being accepted.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token can still be sent at now.
func (t AccessToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt.Add(-refreshMargin))
}

// TokenProvider hands out a bearer token for catalog requests.
type TokenProvider interface {
	AccessToken(ctx context.Context) (AccessToken, error)
}

// ClientCredentials exchanges an application's client id and secret for an
// access token and caches it until shortly before it expires.
type ClientCredentials struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	now          func() time.Time

	mu    sync.RWMutex
	token AccessToken
}

// NewClientCredentials creates a token provider. An empty tokenURL selects the
// Spotify accounts service.
func NewClientCredentials(clientID, clientSecret, tokenURL string, httpClient *http.Client) *ClientCredentials {
	if tokenURL == "" {
		tokenURL = defaultSpotifyTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClientCredentials{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns the cached token or performs a fresh exchange. Concurrent
// callers that find the cache stale wait for a single exchange.
func (c *ClientCredentials) AccessToken(ctx context.Context) (AccessToken, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token.Valid(c.now()) {
		return token, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.token.Valid(c.now()) {
		return c.token, nil
	}

	fresh, err := c.exchange(ctx)
	if err != nil {
		return AccessToken{}, err
	}
	c.token = fresh
	log.Debug().Time("expires_at", fresh.ExpiresAt).Msg("catalog access token refreshed")
	return fresh, nil
}

func (c *ClientCredentials) exchange(ctx context.Context) (AccessToken, error) {
	authString := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return AccessToken{}, fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+authString)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	issuedAt := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AccessToken{}, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return AccessToken{}, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return AccessToken{}, &AuthError{Status: resp.StatusCode, Err: fmt.Errorf("decode auth response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return AccessToken{}, &AuthError{Status: resp.StatusCode, Body: "empty access_token"}
	}

	return AccessToken{
		Value:     tokenResp.AccessToken,
		ExpiresAt: issuedAt.Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}
