package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const tokenPath = "/v1/security/oauth2/token"

// tokenExpiryMargin is subtracted from the reported token lifetime so a
// token is refreshed before the upstream actually rejects it.
const tokenExpiryMargin = 30 * time.Second

// tokenManager obtains and caches OAuth2 client-credentials tokens.
// Amadeus tokens are opaque bearer strings valid for ~30 minutes.
type tokenManager struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenManager(baseURL, clientID, clientSecret string, httpClient *http.Client) *tokenManager {
	return &tokenManager{
		endpoint:     baseURL + tokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
	}
}

// Token returns a valid bearer token, fetching a fresh one when the cached
// token is missing or about to expire. Concurrent callers share one fetch.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiresAt) {
		return m.token, nil
	}

	token, expiresIn, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiresAt = time.Now().Add(expiresIn - tokenExpiryMargin)
	return token, nil
}

// Invalidate drops the cached token so the next call fetches a new one.
func (m *tokenManager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.expiresAt = time.Time{}
	m.mu.Unlock()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (m *tokenManager) fetch(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("amadeus: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("amadeus: token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("amadeus: read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, parseError(resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", 0, fmt.Errorf("amadeus: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, fmt.Errorf("amadeus: token response missing access_token")
	}

	expiresIn := time.Duration(tr.ExpiresIn) * time.Second
	if expiresIn <= tokenExpiryMargin {
		expiresIn = tokenExpiryMargin + time.Minute
	}

	return tr.AccessToken, expiresIn, nil
}
