// Package resilience executes outbound upstream calls with bounded retry,
// a hard per-attempt deadline, and optional response caching.
//
// The Executor makes exactly one logical call succeed, fail terminally, or
// time out. Each attempt races the call against the policy timeout; failures
// are classified as transient or terminal, and only transient failures are
// retried, with exponential backoff between attempts.
//
// Typical usage:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithStore(store),
//	    resilience.WithPolicy(resilience.Policy{
//	        MaxRetries:   2,
//	        InitialDelay: time.Second,
//	        Timeout:      25 * time.Second,
//	    }),
//	)
//
//	body, err := exec.Execute(ctx, "flight-offers", func(ctx context.Context) ([]byte, error) {
//	    return callUpstream(ctx)
//	}, resilience.WithCacheKey(key, 10*time.Minute))
//
// A cache hit short-circuits all retry and timeout machinery; the call
// function is never invoked. The cache is populated only on success, so a
// stale-but-valid cached value is never overwritten by a failed refresh.
package resilience
