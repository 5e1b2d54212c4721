package pkg

import (
	"errors"
	"log/slog"
	"strings"
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Every Error descends from a sentinel created with [NewError] or
// [Error.Sub]. Values derived from a sentinel with [Error.Wrap] or
// [Error.With] still match it (and each of its ancestors) with [errors.Is].
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	kind   *Error      // Sentinel this error was derived from
	parent *Error      // Enclosing class of a sentinel
	attrs  []slog.Attr // Attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an Error, that Error is returned.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Sub creates a new sentinel Error that belongs to the class of e.
//
//	ErrScope     = pkg.NewError("scope error")
//	ErrSlotEmpty = ErrScope.Sub("slot empty")
//
//	errors.Is(ErrSlotEmpty.With(attrs...), ErrScope) // true
func (e *Error) Sub(msg string) *Error {
	return &Error{msg: msg, parent: e.sentinel()}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> [<attrs>]: <err>" // base and wrapped error both set
	//   2. "<msg> [<attrs>]"        // wrapped error is nil
	//   3. "<err>"                  // base error message is empty
	//   4. ""                       // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg+formatAttrs(e.attrs))
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or one of
// the classes enclosing that sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	for k := e.sentinel(); k != nil; k = k.parent {
		if k == t {
			return true
		}
	}

	return false
}

// Message returns the message of e without attributes or wrapped errors.
func (e *Error) Message() string { return e.msg }

// Attr returns the value of the last attribute of e with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		kind:  e.sentinel(),
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		kind:  e.sentinel(),
		attrs: newAttrs,
	}
}

// sentinel returns the sentinel e was derived from, or e itself if e is a
// sentinel.
func (e *Error) sentinel() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

func formatAttrs(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(" [")

	for i, a := range attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(a.String())
	}

	sb.WriteByte(']')

	return sb.String()
}
