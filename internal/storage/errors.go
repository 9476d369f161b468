// Package storage defines the typed errors shared by the question and
// session stores so that drivers can tell "store unreachable" apart from
// normal empty results.
package storage

import (
	"errors"
	"fmt"
)

// UnavailableError wraps a backend failure that is fatal for the current
// message. The outer event loop decides whether to continue.
type UnavailableError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying backend error.
func (e *UnavailableError) Unwrap() error { return e.Err }

// Code returns the stable error code used in structured logs.
func (e *UnavailableError) Code() string { return "STORE_UNAVAILABLE" }

// IntegrityError reports a question key present without a matching answer,
// or the reverse. Fatal for the current draw; the draw may be retried.
type IntegrityError struct {
	Key string
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity gap: no answer for question %q", e.Key)
}

// Code returns the stable error code used in structured logs.
func (e *IntegrityError) Code() string { return "DATA_INTEGRITY" }

// Unavailable wraps err into an UnavailableError for the given operation.
func Unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

// IsUnavailable reports whether err carries a store connectivity failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsIntegrity reports whether err carries a data integrity gap.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
