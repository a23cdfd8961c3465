package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the failure classification.
type Kind string

const (
	KindInvalidAPIKey Kind = "INVALID_API_KEY"
	KindInvalidToken  Kind = "INVALID_TOKEN"
	KindTokenExpired  Kind = "TOKEN_EXPIRED"
	KindNotFound      Kind = "NOT_FOUND"
	KindNetworkError  Kind = "NETWORK_ERROR"
	KindRateLimited   Kind = "RATE_LIMITED"
	KindTimeout       Kind = "TIMEOUT"
	KindServerError   Kind = "SERVER_ERROR"
	KindUnknown       Kind = "UNKNOWN"
)

// typeTokenExpired is the body hint that turns a 401 into KindTokenExpired.
const typeTokenExpired = "TOKEN_EXPIRED"

// Error is an immutable (kind, status, message) record. StatusCode 0 means
// no HTTP response was received.
type Error struct {
	Kind       Kind
	StatusCode int

	// Code is the numeric code from the error body, if any.
	Code int

	Message string

	cause error
}

// New returns an Error of the given kind.
func New(kind Kind, statusCode int, message string) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// Network records a failure that produced no HTTP response.
func Network(cause error) *Error {
	return &Error{Kind: KindNetworkError, Message: causeMessage(cause, "network error"), cause: cause}
}

// Timeout records an attempt whose deadline elapsed before a response.
func Timeout(cause error) *Error {
	return &Error{Kind: KindTimeout, Message: causeMessage(cause, "request timed out"), cause: cause}
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("learnkit: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("learnkit: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsAuthError reports whether the credential or API key was rejected.
func (e *Error) IsAuthError() bool {
	switch e.Kind {
	case KindInvalidAPIKey, KindInvalidToken, KindTokenExpired:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether the condition is transient.
func (e *Error) IsRetryable() bool {
	switch e.Kind {
	case KindNetworkError, KindTimeout, KindServerError, KindRateLimited:
		return true
	default:
		return false
	}
}

// KindFromStatus maps an HTTP status and the body "type" hint to a Kind.
func KindFromStatus(statusCode int, typeHint string) Kind {
	switch {
	case statusCode == http.StatusUnauthorized && typeHint == typeTokenExpired:
		return KindTokenExpired
	case statusCode == http.StatusUnauthorized:
		return KindInvalidToken
	case statusCode == http.StatusForbidden:
		return KindInvalidAPIKey
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusTooManyRequests:
		return KindRateLimited
	case statusCode >= 500:
		return KindServerError
	default:
		return KindUnknown
	}
}

// FromResponse builds an Error from a non-2xx status and its body. The body
// is parsed best-effort as {code?, type?, message?}; empty or invalid bodies
// fall back to the status text.
func FromResponse(statusCode int, body []byte) *Error {
	var wire struct {
		Code    int    `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &wire); err != nil {
			wire.Message = strings.TrimSpace(string(body))
			wire.Type = ""
			wire.Code = 0
		}
	}

	message := wire.Message
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", statusCode)
	}

	return &Error{
		Kind:       KindFromStatus(statusCode, wire.Type),
		StatusCode: statusCode,
		Code:       wire.Code,
		Message:    message,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsAuthError reports whether err carries an authentication failure.
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// IsRetryable reports whether err carries a transient failure.
func IsRetryable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsRetryable()
}

// IsNotFound reports whether err is a NOT_FOUND response.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func causeMessage(cause error, fallback string) string {
	if cause == nil {
		return fallback
	}
	return cause.Error()
}
