package referralapi

import (
	"errors"
	"fmt"
)

// ErrNoBearerToken is returned before any network I/O when the caller
// identity carries no token. A protected endpoint is never called
// unauthenticated.
var ErrNoBearerToken = errors.New("caller identity has no bearer token")

// TransportError wraps a network-level failure reaching the referral
// service. It is never retried by this layer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("referral service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response from the referral service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("referral service returned status %d", e.StatusCode)
}

// DecodeError reports a response body that could not be deserialised
// into the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode referral service response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports caller-supplied parameters that are out of
// range. These are caller bugs, not service failures.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request parameters: %s", e.Reason)
}
