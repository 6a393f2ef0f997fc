package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes why an analysis call failed
type ErrorKind string

const (
	// KindTransport means no HTTP response was received
	KindTransport ErrorKind = "transport"

	// KindStatus means the service answered with a non-2xx status
	KindStatus ErrorKind = "status"

	// KindDecode means the response body was not the expected shape
	KindDecode ErrorKind = "decode"

	// KindRequest means the request could not be built
	KindRequest ErrorKind = "request"
)

// Error is returned by Client.Analyze for every failed call.
// Its message is meant to be shown to the user as-is.
type Error struct {
	// Kind categorizes the failure
	Kind ErrorKind `json:"kind"`

	// StatusCode is set for KindStatus
	StatusCode int `json:"status_code,omitempty"`

	// Body holds the (trimmed) response body for KindStatus
	Body string `json:"body,omitempty"`

	// Message is the human readable description
	Message string `json:"message"`

	// Cause is the underlying error, if any
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil && e.Kind != KindStatus {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels usable with errors.Is
var (
	ErrTransport = &Error{Kind: KindTransport}
	ErrStatus    = &Error{Kind: KindStatus}
	ErrDecode    = &Error{Kind: KindDecode}
)

func newTransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: "analysis request failed", Cause: cause}
}

func newDecodeError(message string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: message, Cause: cause}
}

func newRequestError(message string, cause error) *Error {
	return &Error{Kind: KindRequest, Message: message, Cause: cause}
}

// newStatusError builds "API <status>: <body or status text>"
func newStatusError(code int, status, body string) *Error {
	body = strings.TrimSpace(body)
	detail := body
	if detail == "" {
		detail = statusText(code, status)
	}
	return &Error{
		Kind:       KindStatus,
		StatusCode: code,
		Body:       body,
		Message:    fmt.Sprintf("API %d: %s", code, detail),
	}
}

// statusText strips the numeric prefix net/http puts in Response.Status
func statusText(code int, status string) string {
	prefix := fmt.Sprintf("%d ", code)
	if strings.HasPrefix(status, prefix) {
		return strings.TrimPrefix(status, prefix)
	}
	if status == "" {
		return "unexpected status"
	}
	return status
}

// KindOf returns the kind of an analysis error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
