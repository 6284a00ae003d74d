package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/markesphere/amadeus-mcp-server-standalone/amadeus"
)

// Environments selecting the upstream host.
const (
	EnvTest       = "test"
	EnvProduction = "production"
)

// Config holds all service configuration.
type Config struct {
	// ClientID and ClientSecret are the Amadeus API credentials. Required.
	ClientID     string
	ClientSecret string

	// Environment selects the upstream host: test or production.
	// Default: test.
	Environment string

	// HTTPTimeout bounds a single HTTP round trip. Default: 30s.
	HTTPTimeout time.Duration

	// CallTimeout is the per-attempt deadline of the call executor.
	// Default: 25s, sized to stay under the protocol response budget.
	CallTimeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Default: 2.
	MaxRetries int

	// InitialDelay is the first retry backoff. Default: 1s.
	InitialDelay time.Duration

	// CacheSweepInterval is how often expired cache entries are reclaimed.
	// Default: 5m.
	CacheSweepInterval time.Duration

	// LogLevel is one of debug|info|warn|error. Default: info.
	LogLevel string
}

// Load reads configuration from the environment. If envFile is non-empty
// and exists, it is loaded first without overriding already-set variables.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix("AMADEUS")
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", EnvTest)
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("CALL_TIMEOUT", "25s")
	v.SetDefault("MAX_RETRIES", 2)
	v.SetDefault("INITIAL_DELAY", "1s")
	v.SetDefault("CACHE_SWEEP_INTERVAL", "5m")
	v.SetDefault("LOG_LEVEL", "info")

	clientID, err := expandValue(v.GetString("CLIENT_ID"))
	if err != nil {
		return Config{}, fmt.Errorf("config: client id: %w", err)
	}
	clientSecret, err := expandValue(v.GetString("CLIENT_SECRET"))
	if err != nil {
		return Config{}, fmt.Errorf("config: client secret: %w", err)
	}

	cfg := Config{
		ClientID:           clientID,
		ClientSecret:       clientSecret,
		Environment:        v.GetString("ENVIRONMENT"),
		HTTPTimeout:        v.GetDuration("HTTP_TIMEOUT"),
		CallTimeout:        v.GetDuration("CALL_TIMEOUT"),
		MaxRetries:         v.GetInt("MAX_RETRIES"),
		InitialDelay:       v.GetDuration("INITIAL_DELAY"),
		CacheSweepInterval: v.GetDuration("CACHE_SWEEP_INTERVAL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and normalizes defaults.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return errors.New("config: AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required")
	}

	switch c.Environment {
	case "":
		c.Environment = EnvTest
	case EnvTest, EnvProduction:
	default:
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 25 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = time.Second
	}
	if c.CacheSweepInterval <= 0 {
		c.CacheSweepInterval = 5 * time.Minute
	}

	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}

	return nil
}

// Host returns the upstream base URL for the configured environment.
func (c Config) Host() string {
	if c.Environment == EnvProduction {
		return amadeus.ProductionHost
	}
	return amadeus.TestHost
}
