package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies request failures.
type Kind int

const (
	// KindNetwork means the request never produced a server response.
	KindNetwork Kind = iota
	// KindRemote means the server answered with an application-level rejection.
	KindRemote
)

// Error is the uniform failure type returned by Service calls.
type Error struct {
	Kind    Kind
	Op      string // attempted operation, e.g. "fetch todos"
	Status  int    // HTTP status for remote rejections, 0 otherwise
	Message string // server-provided message, verbatim, may be empty
	Err     error  // underlying transport error, if any
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRemote && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Kind == KindRemote:
		return fmt.Sprintf("%s: server rejected request (status %d)", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the text to show the user: the server's message
// verbatim when present, otherwise a generic per-operation notice.
func (e *Error) UserMessage() string {
	if e.Kind == KindRemote && e.Message != "" {
		return e.Message
	}
	return "Failed to " + e.Op
}

// Message extracts the user-facing text from any Service error.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// IsNotFound reports whether err is a remote rejection with HTTP 404.
// A repeated delete of the same id lands here and is treated as a no-op
// by callers rather than an alarming failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRemote && apiErr.Status == http.StatusNotFound
}

// IsAuth reports whether err is an authentication rejection.
func IsAuth(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindRemote {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}
