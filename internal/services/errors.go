package services

import "fmt"

type ErrorKind string

const (
	ErrorInvalidInput           ErrorKind = "INVALID_INPUT"
	ErrorUpstream               ErrorKind = "UPSTREAM_ERROR"
	ErrorEmptyResponse          ErrorKind = "EMPTY_RESPONSE"
	ErrorMalformedUpstreamShape ErrorKind = "MALFORMED_UPSTREAM_SHAPE"
)

// RelayError is the only error type Relay returns.
type RelayError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *RelayError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("relay: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("relay: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *RelayError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newRelayError(kind ErrorKind, reason string, err error) *RelayError {
	return &RelayError{Kind: kind, Reason: reason, Err: err}
}
