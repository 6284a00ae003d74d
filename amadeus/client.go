package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/markesphere/amadeus-mcp-server-standalone/cache"
	"github.com/markesphere/amadeus-mcp-server-standalone/observe"
	"github.com/markesphere/amadeus-mcp-server-standalone/resilience"
)

// API hosts for the two Amadeus environments.
const (
	TestHost       = "https://test.api.amadeus.com"
	ProductionHost = "https://api.amadeus.com"
)

// Config configures the Amadeus client.
type Config struct {
	// ClientID and ClientSecret are the API credentials. Required.
	ClientID     string
	ClientSecret string

	// BaseURL overrides the API host. Default: TestHost.
	BaseURL string

	// HTTPTimeout bounds a single HTTP round trip, including the token
	// request. Default: 30s. The executor's per-attempt timeout should
	// stay below this.
	HTTPTimeout time.Duration
}

func (c *Config) validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	if c.BaseURL == "" {
		c.BaseURL = TestHost
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	return nil
}

// Client calls the Amadeus API through the resilient executor.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenManager
	exec       *resilience.Executor
	keyer      cache.Keyer
	policy     cache.Policy
	obs        *observe.Observer
}

// Option configures a Client.
type Option func(*Client)

// WithExecutor sets the call executor. Without it a default executor with
// no cache is used.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *Client) {
		c.exec = e
	}
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithKeyer sets the cache key derivation.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		c.keyer = k
	}
}

// WithCachePolicy sets the TTL tiers applied to operations.
func WithCachePolicy(p cache.Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithObserver attaches telemetry.
func WithObserver(o *observe.Observer) Option {
	return func(c *Client) {
		c.obs = o
	}
}

// NewClient creates a new Amadeus client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		keyer:   cache.NewDefaultKeyer(),
		policy:  cache.DefaultPolicy(),
		obs:     observe.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if c.exec == nil {
		c.exec = resilience.NewExecutor(resilience.WithObserver(c.obs))
	}

	c.tokens = newTokenManager(cfg.BaseURL, cfg.ClientID, cfg.ClientSecret, c.httpClient)
	return c, nil
}

// Ping verifies the upstream is reachable by acquiring a token.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

// get executes a cached GET against the API through the executor.
// An empty ttl disables caching for the call.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, ttl time.Duration) (json.RawMessage, error) {
	key, err := c.keyer.Key(operation, flatten(query))
	if err != nil {
		// Undeterminable identity: run the call uncached.
		c.obs.Logger().Warn("cache key derivation failed",
			observe.F("operation", operation),
			observe.F("error", err.Error()))
		key = ""
	}

	body, err := c.exec.Execute(ctx, operation, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, query)
	}, resilience.WithCacheKey(key, ttl))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// do performs one authenticated HTTP round trip.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			// Token may have been revoked early; force a refresh for
			// the next attempt.
			c.tokens.Invalidate()
		}
		return nil, parseError(resp.StatusCode, body)
	}

	return body, nil
}

// flatten converts url.Values into the flat parameter map that cache keys
// are derived from.
func flatten(query url.Values) map[string]string {
	params := make(map[string]string, len(query))
	for k := range query {
		params[k] = query.Get(k)
	}
	return params
}
