package observe

import (
	"bytes"
	"context"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{ServiceName: "svc", LogLevel: "debug"}, false},
		{"empty level ok", Config{ServiceName: "svc"}, false},
		{"missing service name", Config{LogLevel: "info"}, true},
		{"bad level", Config{ServiceName: "svc", LogLevel: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver(t *testing.T) {
	var buf bytes.Buffer
	obs, err := NewObserver(Config{
		ServiceName: "amadeus-call-layer",
		LogLevel:    "info",
		LogWriter:   &buf,
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Logger() == nil || obs.Meter() == nil || obs.Tracer() == nil || obs.Metrics() == nil {
		t.Error("all telemetry primitives must be non-nil")
	}

	obs.Logger().Info("hello")
	if buf.Len() == 0 {
		t.Error("logger should write to the configured writer")
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(Config{}); err == nil {
		t.Error("NewObserver with empty config should error")
	}
}

func TestNop(t *testing.T) {
	obs := Nop()

	if obs.Logger() == nil || obs.Meter() == nil || obs.Tracer() == nil || obs.Metrics() == nil {
		t.Error("Nop observer must provide all primitives")
	}

	// Everything is a no-op; none of this may panic.
	ctx := context.Background()
	obs.Logger().Info("ignored")
	obs.Metrics().RecordCacheHit(ctx, "op")
	obs.Metrics().RecordCall(ctx, "op", 0, nil)
}
