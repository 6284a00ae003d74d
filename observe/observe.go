package observe

import (
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config holds configuration for the Observer.
type Config struct {
	// ServiceName names the tracer and meter scopes.
	ServiceName string

	// LogLevel is one of debug|info|warn|error. Default: info.
	LogLevel string

	// LogWriter receives log output. Default: os.Stderr.
	LogWriter io.Writer

	// Metrics enables metric recording via the global otel MeterProvider.
	Metrics bool

	// Tracing enables span creation via the global otel TracerProvider.
	Tracing bool
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("observe: service name is required")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observe: unknown log level: %q", c.LogLevel)
	}
	return nil
}

// Observer provides access to telemetry primitives. The zero value is not
// usable; use NewObserver or Nop.
type Observer struct {
	logger  Logger
	meter   metric.Meter
	tracer  trace.Tracer
	metrics *Metrics
}

// NewObserver creates an Observer from the given configuration. Disabled
// subsystems are replaced with noop implementations, never nil.
func NewObserver(cfg Config) (*Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Observer{}

	if cfg.LogWriter != nil {
		o.logger = NewLoggerWithWriter(cfg.LogLevel, cfg.LogWriter)
	} else {
		o.logger = NewLogger(cfg.LogLevel)
	}

	if cfg.Metrics {
		o.meter = otel.GetMeterProvider().Meter(cfg.ServiceName)
	} else {
		o.meter = metricnoop.NewMeterProvider().Meter(cfg.ServiceName)
	}

	if cfg.Tracing {
		o.tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	} else {
		o.tracer = tracenoop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	m, err := newMetrics(o.meter)
	if err != nil {
		return nil, fmt.Errorf("observe: failed to create metrics: %w", err)
	}
	o.metrics = m

	return o, nil
}

// Nop returns an Observer that records nothing. Useful as a default and
// in tests.
func Nop() *Observer {
	o := &Observer{
		logger: NopLogger(),
		meter:  metricnoop.NewMeterProvider().Meter("nop"),
		tracer: tracenoop.NewTracerProvider().Tracer("nop"),
	}
	// Instrument creation on a noop meter cannot fail.
	o.metrics, _ = newMetrics(o.meter)
	return o
}

// Logger returns the configured logger.
func (o *Observer) Logger() Logger {
	return o.logger
}

// Meter returns the configured meter.
func (o *Observer) Meter() metric.Meter {
	return o.meter
}

// Tracer returns the configured tracer.
func (o *Observer) Tracer() trace.Tracer {
	return o.tracer
}

// Metrics returns the call-layer metric instruments.
func (o *Observer) Metrics() *Metrics {
	return o.metrics
}
