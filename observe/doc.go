// Package observe provides telemetry for the upstream call layer.
//
// It bundles a zerolog-backed structured logger with OpenTelemetry
// metrics and tracing behind a single Observer, with noop defaults so
// components can always log and measure without nil checks.
package observe
