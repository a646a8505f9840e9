package rssfixer

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"

	// ECONFIG reports an unusable extraction or job configuration.
	ECONFIG = "config"
	// ENETWORK reports a failed page fetch.
	ENETWORK = "network"
	// EHTML reports a document that could not be parsed or filtered.
	EHTML = "html"
	// EJSON reports embedded JSON without usable entries.
	EJSON = "json"
	// ENOLINKS reports an extraction that produced zero entries.
	ENOLINKS = "no_links"
	// EWRITE reports a feed that could not be persisted.
	EWRITE = "write"
)

// Error represents an application-specific error. The code is meant for
// programmatic handling, the message for the end user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rssfixer error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
