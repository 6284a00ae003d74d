package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records telemetry for upstream calls and the response cache.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics struct {
	callCount    metric.Int64Counter
	callErrors   metric.Int64Counter
	retryCount   metric.Int64Counter
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newMetrics creates metric instruments on the given meter.
func newMetrics(meter metric.Meter) (*Metrics, error) {
	callCount, err := meter.Int64Counter(
		"upstream.calls.total",
		metric.WithDescription("Total number of upstream call executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter(
		"upstream.call.errors",
		metric.WithDescription("Total number of upstream calls that ended in failure"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"upstream.call.retries",
		metric.WithDescription("Total number of retry attempts"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"cache.hits",
		metric.WithDescription("Cache lookups that returned an unexpired entry"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"cache.misses",
		metric.WithDescription("Cache lookups that found no usable entry"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"upstream.call.duration_ms",
		metric.WithDescription("Upstream call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		callCount:    callCount,
		callErrors:   callErrors,
		retryCount:   retryCount,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		durationHist: durationHist,
	}, nil
}

func opAttrs(operation string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("operation", operation))
}

// RecordCall records the outcome of one logical upstream call.
func (m *Metrics) RecordCall(ctx context.Context, operation string, duration time.Duration, err error) {
	opt := opAttrs(operation)
	m.callCount.Add(ctx, 1, opt)
	if err != nil {
		m.callErrors.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordRetry records a single retry attempt.
func (m *Metrics) RecordRetry(ctx context.Context, operation string) {
	m.retryCount.Add(ctx, 1, opAttrs(operation))
}

// RecordCacheHit records a cache hit for the operation.
func (m *Metrics) RecordCacheHit(ctx context.Context, operation string) {
	m.cacheHits.Add(ctx, 1, opAttrs(operation))
}

// RecordCacheMiss records a cache miss for the operation.
func (m *Metrics) RecordCacheMiss(ctx context.Context, operation string) {
	m.cacheMisses.Add(ctx, 1, opAttrs(operation))
}
