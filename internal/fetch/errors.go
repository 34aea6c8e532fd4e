package fetch

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTimeout is returned when no response arrived within the request's time bound.
	ErrTimeout = zerr.New("request timed out")

	// ErrCancelled is returned when the caller cancelled the request, usually because a newer request superseded it.
	ErrCancelled = zerr.New("request cancelled")

	// ErrNetwork is returned when the transport failed before a response was read.
	ErrNetwork = zerr.New("network failure")

	// ErrHTTPStatus is returned when the remote service answered with a non-2xx status.
	ErrHTTPStatus = zerr.New("unexpected http status")

	// ErrDecode is returned when the response body is not the expected JSON.
	ErrDecode = zerr.New("malformed response body")
)

// StatusError carries the status code of a non-2xx response.
// It matches ErrHTTPStatus with errors.Is.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

// Unwrap exposes ErrHTTPStatus to errors.Is.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Kind classifies a failure for internal branching.
type Kind int

const (
	KindNone Kind = iota
	KindTimeout
	KindCancelled
	KindNetwork
	KindHTTPStatus
	KindDecode
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// KindOf reports which failure condition err represents.
// A bare context.Canceled counts as cancellation.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// IsCancelled reports whether err is the expected outcome of superseding a request.
func IsCancelled(err error) bool {
	return KindOf(err) == KindCancelled
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
