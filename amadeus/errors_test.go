package amadeus

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestParseError_Envelope(t *testing.T) {
	body := []byte(`{"errors":[{"status":429,"code":38194,"title":"QUOTA LIMIT EXCEEDED","detail":"too many requests"}]}`)
	e := parseError(http.StatusTooManyRequests, body)

	if e.Status != 429 {
		t.Errorf("Status = %d, want 429", e.Status)
	}
	if e.Code != 38194 {
		t.Errorf("Code = %d, want 38194", e.Code)
	}
	if e.Title != "QUOTA LIMIT EXCEEDED" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Detail != "too many requests" {
		t.Errorf("Detail = %q", e.Detail)
	}
}

func TestParseError_TransportStatusWins(t *testing.T) {
	// The body claims a different status; the transport's code is kept.
	body := []byte(`{"errors":[{"status":500,"title":"SERVER ERROR"}]}`)
	e := parseError(http.StatusBadGateway, body)

	if e.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", e.Status)
	}
}

func TestParseError_MalformedBody(t *testing.T) {
	e := parseError(http.StatusInternalServerError, []byte("<html>gateway error</html>"))

	if e.Status != 500 {
		t.Errorf("Status = %d, want 500", e.Status)
	}
	if !strings.Contains(e.Error(), "500") {
		t.Errorf("Error() = %q, should mention the status", e.Error())
	}
}

func TestError_Message(t *testing.T) {
	e := &Error{Status: 400, Title: "INVALID FORMAT", Detail: "invalid date"}
	msg := e.Error()

	if !strings.Contains(msg, "INVALID FORMAT") || !strings.Contains(msg, "invalid date") {
		t.Errorf("Error() = %q, want title and detail", msg)
	}

	bare := &Error{Status: 404}
	if !strings.Contains(bare.Error(), "Not Found") {
		t.Errorf("Error() = %q, want status text fallback", bare.Error())
	}
}

func TestError_StatusCode(t *testing.T) {
	e := &Error{Status: 429}
	if e.StatusCode() != 429 {
		t.Errorf("StatusCode() = %d, want 429", e.StatusCode())
	}
}

func TestErrorHelpers(t *testing.T) {
	rateLimited := fmt.Errorf("call failed: %w", &Error{Status: 429})
	notFound := &Error{Status: 404}
	unauthorized := &Error{Status: 401}
	forbidden := &Error{Status: 403}
	other := errors.New("boom")

	if !IsRateLimited(rateLimited) {
		t.Error("IsRateLimited should unwrap")
	}
	if IsRateLimited(notFound) || IsRateLimited(other) {
		t.Error("IsRateLimited false positives")
	}
	if !IsNotFound(notFound) {
		t.Error("IsNotFound failed")
	}
	if !IsAuthFailure(unauthorized) || !IsAuthFailure(forbidden) {
		t.Error("IsAuthFailure failed")
	}
	if IsAuthFailure(notFound) {
		t.Error("IsAuthFailure false positive")
	}
}
