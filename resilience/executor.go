package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/markesphere/amadeus-mcp-server-standalone/cache"
	"github.com/markesphere/amadeus-mcp-server-standalone/observe"
)

// CallFunc is the opaque upstream call. It must honor ctx cancellation if
// the underlying transport allows it; otherwise an abandoned attempt keeps
// running until it settles and its result is discarded.
type CallFunc func(ctx context.Context) ([]byte, error)

// Executor runs upstream calls under a per-attempt deadline with bounded
// retry and optional response caching. Safe for concurrent use; concurrent
// Execute invocations are independent.
type Executor struct {
	policy Policy
	store  cache.Store
	obs    *observe.Observer
	group  *singleflight.Group
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPolicy sets the call policy. Zero fields are filled with defaults.
func WithPolicy(p Policy) ExecutorOption {
	return func(e *Executor) {
		e.policy = p.withDefaults()
	}
}

// WithStore attaches a response cache. Without a store, cache keys supplied
// per call are ignored.
func WithStore(s cache.Store) ExecutorOption {
	return func(e *Executor) {
		e.store = s
	}
}

// WithObserver attaches telemetry.
func WithObserver(o *observe.Observer) ExecutorOption {
	return func(e *Executor) {
		e.obs = o
	}
}

// WithSingleflight coalesces concurrent cache-missing calls that share a
// cache key into one in-flight attempt. Off by default: without it, two
// concurrent callers that both miss the cache both invoke the upstream,
// which is wasteful but correct.
func WithSingleflight() ExecutorOption {
	return func(e *Executor) {
		e.group = new(singleflight.Group)
	}
}

// NewExecutor creates a new call executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		policy: DefaultPolicy(),
		obs:    observe.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the executor's call policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

type callConfig struct {
	cacheKey string
	ttl      time.Duration
}

// CallOption configures a single Execute invocation.
type CallOption func(*callConfig)

// WithCacheKey enables caching for this call. On a hit the cached value is
// returned and the call never runs; on success the value is stored under
// key for ttl. Failures never touch the cache.
func WithCacheKey(key string, ttl time.Duration) CallOption {
	return func(c *callConfig) {
		c.cacheKey = key
		c.ttl = ttl
	}
}

// Execute runs one logical upstream call to completion: cached value,
// success, terminal failure, or exhausted retries. Attempts are strictly
// sequential; attempt n+1 never starts before attempt n's outcome and its
// backoff delay have resolved.
func (e *Executor) Execute(ctx context.Context, operation string, call CallFunc, opts ...CallOption) ([]byte, error) {
	var cc callConfig
	for _, opt := range opts {
		opt(&cc)
	}
	if cc.cacheKey != "" && cache.ValidateKey(cc.cacheKey) != nil {
		// Unusable key: run uncached rather than fail the call.
		cc.cacheKey = ""
	}

	ctx, span := e.obs.Tracer().Start(ctx, "upstream."+operation)
	defer span.End()

	if cc.cacheKey != "" && e.store != nil {
		if value, ok := e.store.Get(ctx, cc.cacheKey); ok {
			e.obs.Metrics().RecordCacheHit(ctx, operation)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return value, nil
		}
		e.obs.Metrics().RecordCacheMiss(ctx, operation)
	}

	if e.group != nil && cc.cacheKey != "" {
		v, err, shared := e.group.Do(cc.cacheKey, func() (any, error) {
			return e.run(ctx, operation, call, cc)
		})
		span.SetAttributes(attribute.Bool("singleflight.shared", shared))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return v.([]byte), nil
	}

	value, err := e.run(ctx, operation, call, cc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return value, err
}

// run performs the attempt loop and, on success, populates the cache.
func (e *Executor) run(ctx context.Context, operation string, call CallFunc, cc callConfig) ([]byte, error) {
	start := time.Now()
	value, err := e.attempts(ctx, operation, call)
	e.obs.Metrics().RecordCall(ctx, operation, time.Since(start), err)

	if err != nil {
		return nil, err
	}

	if cc.cacheKey != "" && e.store != nil {
		if serr := e.store.Set(ctx, cc.cacheKey, value, cc.ttl); serr != nil {
			e.obs.Logger().Warn("failed to cache upstream response",
				observe.F("operation", operation),
				observe.F("error", serr.Error()))
		}
	}
	return value, nil
}

func (e *Executor) attempts(ctx context.Context, operation string, call CallFunc) ([]byte, error) {
	log := e.obs.Logger().With(observe.F("operation", operation))

	var lastErr error
	for attempt := 0; ; attempt++ {
		value, err := e.attempt(ctx, call)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if Classify(err) != ClassTransient {
			log.Debug("terminal upstream failure",
				observe.F("attempt", attempt+1),
				observe.F("error", err.Error()))
			return nil, err
		}

		if attempt >= e.policy.MaxRetries {
			break
		}

		delay := e.policy.Backoff(attempt)
		log.Warn("transient upstream failure, retrying",
			observe.F("attempt", attempt+1),
			observe.F("delay", delay.String()),
			observe.F("error", err.Error()))
		e.obs.Metrics().RecordRetry(ctx, operation)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w",
		ErrMaxRetriesExceeded, e.policy.MaxRetries+1, lastErr)
}

// attempt races one call invocation against the policy timeout.
func (e *Executor) attempt(ctx context.Context, call CallFunc) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.policy.Timeout)
	defer cancel()

	type outcome struct {
		value []byte
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		value, err := call(attemptCtx)
		// Buffered send: if the attempt was abandoned, the eventual
		// settlement is discarded and the goroutine still exits.
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}
