// Package amadeus is a client for the Amadeus self-service travel APIs
// (flights, airports and cities, hotels).
//
// Every operation is routed through the resilience executor: responses are
// cached by logical request identity, transient upstream failures are
// retried with exponential backoff, and each attempt runs under a hard
// deadline. Search results use the general TTL tier; reference data
// (locations, hotel lists) uses the long-lived reference tier.
//
// Response payloads are returned as raw JSON; shaping them into
// human-readable output is the caller's concern.
package amadeus
