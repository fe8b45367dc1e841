package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindRangeExceeded    ErrorKind = "range_exceeded"
	KindConflict         ErrorKind = "conflict"
	KindStoreUnavailable ErrorKind = "store_unavailable"
)

// Error is the failure type returned across the service boundary. Every
// kind is recoverable at the caller; none of them terminate the process.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func InvalidInput(format string, args ...any) *Error {
	return NewError(KindInvalidInput, format, args...)
}

func RangeExceeded(format string, args ...any) *Error {
	return NewError(KindRangeExceeded, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return NewError(KindConflict, format, args...)
}

func StoreUnavailable(cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: fmt.Sprintf("store unavailable: %v", cause), cause: cause}
}

// KindOf reports the kind of err, or KindStoreUnavailable for errors that
// did not originate in this package (unexpected driver failures).
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStoreUnavailable
}
