package phiremock

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against the typed errors below.
var (
	// ErrSerialization is returned when an outgoing entity cannot be encoded.
	ErrSerialization = errors.New("serialization failed")
	// ErrRemoteRequest is returned when the server answers with a 4xx status.
	ErrRemoteRequest = errors.New("request error")
	// ErrRemoteServer is returned when the server answers with a 5xx status.
	ErrRemoteServer = errors.New("server error")
	// ErrUnexpectedStatus is returned when a payload call gets a non-error status other than 200.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrInvalidResponse is returned when a 200 body does not have the expected shape.
	ErrInvalidResponse = errors.New("invalid response body")
)

// SerializationError reports an entity that could not be encoded. No request
// was sent when it is returned.
type SerializationError struct {
	Cause error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("error generating json body for request: %v", e.Cause)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// Is matches ErrSerialization.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// RequestError reports a 4xx answer. The server's body is not interpreted in
// this band.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error calling %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Is matches ErrRemoteRequest.
func (e *RequestError) Is(target error) bool {
	return target == ErrRemoteRequest
}

// ServerError reports a 5xx answer.
type ServerError struct {
	Method     string
	Path       string
	StatusCode int

	// Details is the "details" field of the JSON body, or nil when the body
	// is not a JSON object or has no such field.
	Details interface{}

	// Body is the raw response body.
	Body string
}

// HasDetails reports whether the server supplied a details field.
func (e *ServerError) HasDetails() bool {
	return e.Details != nil
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("an error occurred calling %s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.HasDetails() {
		msg += fmt.Sprintf(": details: %v", e.Details)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is matches ErrRemoteServer.
func (e *ServerError) Is(target error) bool {
	return target == ErrRemoteServer
}

// UnexpectedStatusError reports a status below 400 other than 200 on a call
// that needs a 200 payload.
type UnexpectedStatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status calling %s %s: got %d, want 200", e.Method, e.Path, e.StatusCode)
}

// Is matches ErrUnexpectedStatus.
func (e *UnexpectedStatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
