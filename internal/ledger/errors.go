package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Ledger operation matches exactly one
// of these with errors.Is.
var (
	// ErrValidation means caller input violates a field constraint.
	ErrValidation = errors.New("validation error")
	// ErrNotFound means a participant or transaction id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConstraint means the operation would break referential integrity.
	ErrConstraint = errors.New("constraint violation")
	// ErrInvariant means an internal invariant was found broken. It signals a
	// defect; retrying will not help.
	ErrInvariant = errors.New("invariant violation")
)

// Error describes a failed ledger operation.
type Error struct {
	Op     string // "add participant", "remove transaction", ...
	Kind   error  // one of the Err* sentinels
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Invariant returns an ErrInvariant error for op. Used by the balance and
// settlement packages.
func Invariant(op, format string, args ...any) error {
	return newError(op, ErrInvariant, format, args...)
}

// IsUserError reports whether err is correctable by changing the input, as
// opposed to an invariant violation.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraint)
}
