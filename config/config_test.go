package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markesphere/amadeus-mcp-server-standalone/amadeus"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Errorf("credentials = %q/%q", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.Environment != EnvTest {
		t.Errorf("Environment = %q, want test", cfg.Environment)
	}
	if cfg.CallTimeout != 25*time.Second {
		t.Errorf("CallTimeout = %v, want 25s", cfg.CallTimeout)
	}
	if cfg.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.MaxRetries)
	}
	if cfg.InitialDelay != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", cfg.InitialDelay)
	}
	if cfg.CacheSweepInterval != 5*time.Minute {
		t.Errorf("CacheSweepInterval = %v, want 5m", cfg.CacheSweepInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("AMADEUS_ENVIRONMENT", EnvProduction)
	t.Setenv("AMADEUS_CALL_TIMEOUT", "10s")
	t.Setenv("AMADEUS_MAX_RETRIES", "5")
	t.Setenv("AMADEUS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != EnvProduction {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.CallTimeout != 10*time.Second {
		t.Errorf("CallTimeout = %v", cfg.CallTimeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Error("Load without credentials should error")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "")
	t.Setenv("AMADEUS_CLIENT_SECRET", "")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "AMADEUS_CLIENT_ID=file-id\nAMADEUS_CLIENT_SECRET=file-secret\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv does not override variables already set; clear them so the
	// file values win.
	os.Unsetenv("AMADEUS_CLIENT_ID")
	os.Unsetenv("AMADEUS_CLIENT_SECRET")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClientID != "file-id" || cfg.ClientSecret != "file-secret" {
		t.Errorf("credentials = %q/%q, want values from .env", cfg.ClientID, cfg.ClientSecret)
	}
}

func TestLoad_ExpandsReferences(t *testing.T) {
	t.Setenv("VAULT_AMADEUS_SECRET", "resolved-secret")
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "${VAULT_AMADEUS_SECRET}")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ClientSecret != "resolved-secret" {
		t.Errorf("ClientSecret = %q, want expanded value", cfg.ClientSecret)
	}
}

func TestLoad_MissingReferenceErrors(t *testing.T) {
	setCredentials(t)
	t.Setenv("AMADEUS_CLIENT_SECRET", "${DEFINITELY_NOT_SET_ANYWHERE}")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load with dangling reference should error")
	}
	if !strings.Contains(err.Error(), "DEFINITELY_NOT_SET_ANYWHERE") {
		t.Errorf("error should name the missing variable, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"negative retries normalized", func(c *Config) { c.MaxRetries = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{ClientID: "id", ClientSecret: "secret"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Host(t *testing.T) {
	if (Config{Environment: EnvTest}).Host() != amadeus.TestHost {
		t.Error("test environment should use the test host")
	}
	if (Config{Environment: EnvProduction}).Host() != amadeus.ProductionHost {
		t.Error("production environment should use the production host")
	}
}
