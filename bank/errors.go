/*
errors.go - Centralized error types for the banking ledger

PURPOSE:
  One place for the whole failure taxonomy so callers can branch with
  errors.Is / errors.As instead of matching strings.

ERROR CATEGORIES:
  1. NotFound          - missing entity, or an entity that fails a required
                         relational check (e.g. transaction not on the named
                         account, account not owned by the customer)
  2. InvalidArgument   - malformed input (bad enum value, non-positive amount)
  3. PreconditionFailed - valid entities in the wrong state for the requested
                         transition (authorize on a non-awaiting request,
                         cancel on a settled one)

  Insufficient funds at settlement is deliberately NOT an error: it is a
  reported business outcome carried on PaymentResult (see payment.go).

USAGE:
  if bank.IsNotFound(err) { ... 404 ... }

  var pe *bank.PreconditionError
  if errors.As(err, &pe) { ... pe.Current ... }
*/
package bank

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced entity does not exist or
	// fails a required relational check.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed input. No mutation is
	// performed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPreconditionFailed is returned when entities are valid but in the
	// wrong state for the requested transition. Retrying will not help.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError names the entity kind and id that failed lookup. Scope, when
// set, records the relational check that failed (ownership, pairing).
type NotFoundError struct {
	Kind  EntityKind
	ID    string
	Scope string
}

func (e *NotFoundError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s %s not found for %s", e.Kind, e.ID, e.Scope)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidArgumentError names the offending argument.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// PreconditionError records the state that blocked a transition.
type PreconditionError struct {
	Entity  string // e.g. "payment request PR_1a2b3c4d"
	Current string // status the entity is currently in, if relevant
	Message string
}

func (e *PreconditionError) Error() string {
	if e.Current != "" {
		return fmt.Sprintf("%s: %s (current status: %s)", e.Entity, e.Message, e.Current)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return e.Message
}

func (e *PreconditionError) Unwrap() error { return ErrPreconditionFailed }

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsNotFound(err error) bool           { return errors.Is(err, ErrNotFound) }
func IsInvalidArgument(err error) bool    { return errors.Is(err, ErrInvalidArgument) }
func IsPreconditionFailed(err error) bool { return errors.Is(err, ErrPreconditionFailed) }

func notFound(kind EntityKind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
