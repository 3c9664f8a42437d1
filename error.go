package sitetext

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ENETWORK  = "network"
	EHTTP     = "http"
	ECONTENT  = "content_type"
	EROBOTS   = "robots"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitetext error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Fetch outcome errors map to ENETWORK, EHTTP and ECONTENT.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	var httpErr *HTTPError
	var ctErr *ContentTypeError
	var netErr *NetworkError
	switch {
	case errors.As(err, &e):
		return e.Code
	case errors.As(err, &httpErr):
		return EHTTP
	case errors.As(err, &ctErr):
		return ECONTENT
	case errors.As(err, &netErr):
		return ENETWORK
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var httpErr *HTTPError
	var ctErr *ContentTypeError
	var netErr *NetworkError
	if errors.As(err, &httpErr) || errors.As(err, &ctErr) || errors.As(err, &netErr) {
		return err.Error()
	}
	return "Internal error."
}
