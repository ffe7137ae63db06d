package core

import "fmt"

// Kind classifies an operation failure. The caller-facing contract surfaces
// only the message; the kind is tracked so transports can map failures to a
// status without parsing prose.
type Kind int

const (
	// KindValidation marks malformed or missing input.
	KindValidation Kind = iota
	// KindConflict marks a uniqueness violation on registration.
	KindConflict
	// KindAuth marks a bad credential or OTP.
	KindAuth
	// KindState marks an operation that violates a business invariant.
	KindState
	// KindStorage marks unreadable or unwritable persisted data.
	KindStorage
)

// Error is the single failure type returned by every engine operation. All
// errors are local and recoverable; the engine has no fatal path and never
// retries on the caller's behalf.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is an *Error of the same kind, so callers can
// match with errors.Is against sentinel kinds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func authErr(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func stateErr(format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func storageErr(err error) *Error {
	return &Error{Kind: KindStorage, Message: err.Error()}
}

// KindOf returns the kind carried by err, or KindStorage when err is not an
// engine error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindStorage
}
