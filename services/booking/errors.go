package booking

import (
	"errors"
	"fmt"
)

// Kind classifies lifecycle failures.
type Kind int

const (
	// KindNotFound: the booking is not part of the session's partition or store.
	KindNotFound Kind = iota + 1
	// KindGateway: the store failed, timed out or returned an unreadable record.
	KindGateway
	// KindPrecondition: the actor may not perform the action right now.
	KindPrecondition
	// KindValidation: the request itself is malformed.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindGateway:
		return "gateway"
	case KindPrecondition:
		return "precondition"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinels matching every Error of the same kind through errors.Is.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrGateway      = &Error{Kind: KindGateway}
	ErrPrecondition = &Error{Kind: KindPrecondition}
	ErrValidation   = &Error{Kind: KindValidation}
)

// Error is returned by every engine operation that fails.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func newError(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: msg, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Retryable reports whether nothing happened and the caller may try again.
func (e *Error) Retryable() bool {
	return e.Kind == KindGateway || e.Kind == KindNotFound
}

// IsRetryable separates "nothing happened, try again" failures from
// "this action isn't allowed" ones.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}
