package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR       int = 0
	EMISSING      int = 122 // resource does not exist
	EINVALID      int = 123 // validation failed
	EINTERNAL     int = 125 // internal error
	EUNKNOWNGLYPH int = 130 // character not covered by the alphabet
	EGLYPHSHAPE   int = 131 // glyph cannot be connected cursively
	EMALFORMED    int = 132 // motion command cannot be parsed
	EOUTOFBOUNDS  int = 133 // coordinate outside of page limits
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case EINTERNAL:
		return "internal error"
	case EUNKNOWNGLYPH:
		return "unknown glyph"
	case EGLYPHSHAPE:
		return "unsupported glyph shape"
	case EMALFORMED:
		return "malformed command"
	case EOUTOFBOUNDS:
		return "coordinate out of bounds"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg == "" || e.msg == e.error.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.error)
	}
	return fmt.Sprintf("[%d] %v: %s", e.code, e.error, e.msg)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

// Is reports whether target is a core error carrying the same code. This
// makes sentinel comparisons like
//
//     errors.Is(err, core.ErrUnknownGlyph)
//
// work for every error created with the same code.
func (e coreError) Is(target error) bool {
	if t, ok := target.(coreError); ok {
		return t.code == e.code
	}
	return false
}

var _ AppError = coreError{}

// Sentinel errors for the error kinds of the layout engine. Use them with
// errors.Is; they match every error carrying the same code.
var (
	ErrUnknownGlyph          = ErrorWithCode(nil, EUNKNOWNGLYPH)
	ErrUnsupportedGlyphShape = ErrorWithCode(nil, EGLYPHSHAPE)
	ErrMalformedCommand      = ErrorWithCode(nil, EMALFORMED)
	ErrCoordinateOutOfBounds = ErrorWithCode(nil, EOUTOFBOUNDS)
)

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting NOERROR is returned.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// UserError prints an error to stderr, preferring the user message of
// application errors.
func UserError(err error) {
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
