package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a gateway failure.
type Kind string

const (
	KindConfiguration  Kind = "CONFIGURATION"   // 500
	KindUpstream       Kind = "UPSTREAM"        // provider status
	KindTransport      Kind = "TRANSPORT"       // 500
	KindInvalidRequest Kind = "INVALID_REQUEST" // 400
)

// Messages returned to callers. Provider bodies are never exposed.
const (
	MessageUpstream = "Failed to get response from AI"
	MessageInternal = "Internal server error"
	MessageNoAPIKey = "API key not configured"
	MessageBadRoles = "messages must have role user or assistant"
)

// Error is a classified gateway failure with the HTTP status it maps to.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfiguration creates a 500 error for a missing provider or credential.
func NewConfiguration(err error) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Status:  http.StatusInternalServerError,
		Message: MessageNoAPIKey,
		Err:     err,
	}
}

// NewUpstream creates an error carrying the provider's status code.
func NewUpstream(status int, err error) *Error {
	if status < 400 {
		status = http.StatusBadGateway
	}
	return &Error{
		Kind:    KindUpstream,
		Status:  status,
		Message: MessageUpstream,
		Err:     err,
	}
}

// NewTransport creates a 500 error for network or decoding failures.
func NewTransport(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Status:  http.StatusInternalServerError,
		Message: MessageInternal,
		Err:     err,
	}
}

// NewInvalidRequest creates a 400 error for a malformed history.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Status:  http.StatusBadRequest,
		Message: msg,
	}
}

// Is checks if err is, or wraps, a gateway Error of the given kind.
func Is(err error, kind Kind) bool {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Kind == kind
	}
	return false
}

// StatusOf returns the HTTP status for err, or 500 for unclassified errors.
func StatusOf(err error) int {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Status
	}
	return http.StatusInternalServerError
}
