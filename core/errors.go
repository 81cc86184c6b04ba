/*
errors.go - Centralized error types for the chore engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Other packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Decode errors   - malformed file records (skipped on load, never fatal)
  2. NotFound errors - lookups by id/username with no match
  3. Validation errors - invalid input or business rule violations
  4. Auth errors     - bad credentials or role mismatch

USAGE:
  Callers should branch with errors.Is:

    if errors.Is(err, core.ErrInsufficientPoints) {
        // surface "not enough points" to the user
    }
*/
package core

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDecode is returned when a stored record line cannot be parsed.
	// Loads skip such lines with a warning rather than aborting.
	ErrDecode = errors.New("malformed record")

	// ErrUserNotFound is returned when no user has the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when no task has the given id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrWishNotFound is returned when no wish has the given id.
	ErrWishNotFound = errors.New("wish not found")

	// ErrInsufficientPoints is returned when a wish costs more than the
	// owner's spendable balance.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrInvalidTransition is returned when a task operation is attempted
	// from a status that does not allow it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotPermitted is returned when the acting user's role or identity
	// does not allow the operation.
	ErrNotPermitted = errors.New("operation not permitted")

	// ErrValidation is returned for invalid user input (empty title,
	// negative points, out-of-range rating). No state is mutated.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRoleMismatch is returned when credentials are valid but the user's
	// role differs from the one selected at login.
	ErrRoleMismatch = errors.New("role mismatch")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DecodeError describes a record line that failed to parse.
type DecodeError struct {
	Entity string // "user", "task", "wish", "achievement"
	Line   string // offending record, may be empty at enum-parse depth
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("decode %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("decode %s: %s: %q", e.Entity, e.Reason, e.Line)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// TransitionError describes a rejected task state change.
type TransitionError struct {
	TaskID    int
	From      TaskStatus
	Attempted string // operation name: "complete", "approve", "reject", "rate"
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("task %d: cannot %s from %s", e.TaskID, e.Attempted, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// InsufficientPointsError describes a balance shortage on wish creation.
type InsufficientPointsError struct {
	Owner     string
	Available int
	Requested int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points for %s: have %d, need %d",
		e.Owner, e.Available, e.Requested)
}

func (e *InsufficientPointsError) Unwrap() error { return ErrInsufficientPoints }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrWishNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientPoints) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotPermitted) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrRoleMismatch)
}
