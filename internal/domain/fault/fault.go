package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP adapter can map it to a status code
// and callers can decide whether a retry makes sense.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: bad input or a role/identity mismatch.
	KindValidation
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindPrecondition: the entity exists but is in the wrong state.
	KindPrecondition
	// KindConflict: a genuinely contradictory duplicate attempt.
	KindConflict
	// KindTransient: store or gateway unreachable; safe to retry.
	KindTransient
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) *Error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Transient(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Msg: msg, Err: err}
}

// KindOf walks the wrap chain and returns the first fault kind found,
// or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
