// Package health provides liveness checks for the call layer's
// collaborators: the response cache and the upstream API.
package health
