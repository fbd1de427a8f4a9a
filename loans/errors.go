/*
errors.go - Centralized error types for the loan book

ERROR CATEGORIES:
  1. Input errors - malformed create parameters
  2. Ledger errors - name collisions, unknown clients, settled debts
  3. Store errors - slot read/write and decoding failures

USAGE:
  if errors.Is(err, loans.ErrDuplicateName) {
      // ask for another name
  }

All Ledger errors are returned synchronously. How they are surfaced to a
user is the caller's decision.
*/
package loans

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when create parameters are missing or malformed.
	// Nothing is created.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateName is returned when a client with the same exact name exists.
	ErrDuplicateName = errors.New("client already exists")

	// ErrNotFound is returned when no client has the given name.
	ErrNotFound = errors.New("client not found")

	// ErrAlreadySettled is returned when paying a client with no unpaid installments.
	ErrAlreadySettled = errors.New("debt already settled")

	// ErrCorruptSlot is returned when the storage slot cannot be decoded.
	ErrCorruptSlot = errors.New("corrupt storage slot")

	// ErrStoreFailed is returned when the Ledger could not mirror a mutation to its store.
	// The in-memory mutation is kept.
	ErrStoreFailed = errors.New("store write failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError names the offending create parameter.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// ClientError ties a ledger error to the client name it concerns.
type ClientError struct {
	Name string
	Err  error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Name)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is caused by the caller's request.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrAlreadySettled)
}

// IsNotFound returns true if the error indicates a missing client.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
