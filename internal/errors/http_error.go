package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// FallbackMessage is shown when a request failed without a usable HTTP
// response (connection refused, timeout, undecodable body).
const FallbackMessage = "Request failed"

// RequestError is the single error kind returned for calls to the backend.
// Status is zero when no response was received.
type RequestError struct {
	Status     int
	StatusText string
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusText != "" {
		return "API Error: " + e.StatusText
	}
	return FallbackMessage
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewStatusError builds the error for a non-2xx response. status is the raw
// "404 Not Found" form found on http.Response.Status.
func NewStatusError(code int, status string) *RequestError {
	text := strings.TrimSpace(strings.TrimPrefix(status, fmt.Sprintf("%d", code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return &RequestError{Status: code, StatusText: text}
}

// NewTransportError wraps a failure that produced no HTTP status.
func NewTransportError(err error) *RequestError {
	return &RequestError{Err: err}
}

// NewMessageError builds a request error with a caller-chosen message, used
// for checks that fail before anything is sent.
func NewMessageError(msg string) *RequestError {
	return &RequestError{Message: msg}
}

// Message returns the text to display for err, or fallback when err is not
// a RequestError.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if stderrors.As(err, &re) {
		return re.Error()
	}
	if fallback != "" {
		return fallback
	}
	return FallbackMessage
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var re *RequestError
	if stderrors.As(err, &re) {
		return re.Status
	}
	return 0
}

// IsUnauthorized reports whether the backend rejected the caller's token.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
