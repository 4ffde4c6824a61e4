package sitescout

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These map failures to coarse categories that callers can act on: batch
// orchestration converts any of them into a per-request result record, the
// CLI and HTTP API translate them into exit codes and status codes.
const (
	ECANCELED  = "canceled"   // batch deadline expired before the request started
	EEXTRACT   = "extract"    // inference output failed schema validation after retry
	EFETCH     = "fetch"      // direct and fallback fetch paths exhausted
	EINTERNAL  = "internal"   // unexpected internal error
	EINVALID   = "invalid"    // validation failed on caller input
	ELOCATOR   = "locator"    // invalid or missing section choice
	ENOTFOUND  = "not_found"  // entity does not exist
	ERATELIMIT = "rate_limit" // call budget exhausted within the deadline
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitescout error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code.
// Returns the empty string for nil errors and EINTERNAL for non-application
// errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message.
// Returns the empty string for nil errors and a generic message for
// non-application errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsTransient reports whether err represents a failure worth retrying:
// rate limiting or a fetch-level failure such as a timeout. Validation and
// schema errors are permanent.
func IsTransient(err error) bool {
	switch ErrorCode(err) {
	case ERATELIMIT, EFETCH:
		return true
	}
	return false
}
