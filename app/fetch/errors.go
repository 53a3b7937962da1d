package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind string

const (
	KindTimeout Kind = "timeout"
	KindHTTP    Kind = "http"
	KindNetwork Kind = "network"
)

// Error is a typed fetch failure. Status is set for KindHTTP only.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("HTTP %d error fetching %s", e.Status, e.URL)
	case KindTimeout:
		return fmt.Sprintf("timeout fetching %s", e.URL)
	default:
		return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// retryable reports whether the failure is transient: timeouts, network
// errors and the throttling/server status codes. Client errors are not.
func (e *Error) retryable() bool {
	if e.Kind != KindHTTP {
		return true
	}
	switch e.Status {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
