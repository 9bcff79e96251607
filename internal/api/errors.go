package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an operation needs a session token
// and none is present. No request is made in that case.
var ErrUnauthenticated = errors.New("not logged in")

// Error is a remote rejection: the server responded and said no, either
// with a non-2xx status or a success=false envelope. Transport failures
// (no usable response at all) are returned as ordinary wrapped errors and
// never as *Error, so callers can tell the two apart.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// IsRejection reports whether err is an explicit remote rejection rather
// than a transport failure.
func IsRejection(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// Message extracts the human-readable message from err, falling back to
// err.Error() for non-rejection failures.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
