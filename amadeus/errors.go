package amadeus

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client operations.
var (
	ErrMissingCredentials = errors.New("amadeus: client id and secret are required")
	ErrInvalidRequest     = errors.New("amadeus: invalid request")
)

// Error is a failure reported by the Amadeus API. Status carries the
// HTTP status code and is the primary signal for retry classification.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int

	// Code is the Amadeus issue code, when present.
	Code int

	// Title is the short error title, e.g. "INVALID FORMAT".
	Title string

	// Detail is the human-readable description.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Title
	if e.Detail != "" {
		if msg != "" {
			msg += ": "
		}
		msg += e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("amadeus: upstream error (status %d): %s", e.Status, msg)
}

// StatusCode returns the HTTP status code. It satisfies the classifier's
// StatusCoder so rate limits and server errors are retried.
func (e *Error) StatusCode() int {
	return e.Status
}

// IsRateLimited reports whether err is an upstream rate-limiting response.
func IsRateLimited(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusTooManyRequests
}

// IsNotFound reports whether err is an upstream not-found response.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// IsAuthFailure reports whether err is an authentication or authorization
// failure.
func IsAuthFailure(err error) bool {
	var ae *Error
	return errors.As(err, &ae) &&
		(ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden)
}

// errorResponse is the Amadeus error envelope:
//
//	{"errors": [{"status": 429, "code": 38194, "title": "...", "detail": "..."}]}
type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// parseError builds an *Error from a non-2xx response body. The status
// code from the transport wins over the body's claim.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		e.Code = first.Code
		e.Title = first.Title
		e.Detail = first.Detail
	}
	return e
}
