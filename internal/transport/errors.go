package transport

import (
	"errors"
	"fmt"
)

// Kind tags where a failure came from.
type Kind string

const (
	// KindTransport covers everything that happened on the wire: the server
	// answered with an unexpected status, or the request never completed.
	KindTransport Kind = "transport"
	// KindGeneric covers failures on the client side of the boundary.
	KindGeneric Kind = "generic"
)

// Error is the failure returned by the transport and by every store
// operation. Message holds the server-supplied text when there was one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s error: unexpected status %d", e.Kind, e.Status)
	}

	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// StatusError builds a transport error for a response that did not carry
// the expected status.
func StatusError(resp *Response) *Error {
	return &Error{Kind: KindTransport, Status: resp.Status, Message: resp.Message()}
}

// Generic wraps a client-side failure.
func Generic(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}

	return &Error{Kind: KindGeneric, Err: err}
}

// IsStatus reports whether err is a transport error with the given status.
func IsStatus(err error, status int) bool {
	var te *Error
	return errors.As(err, &te) && te.Status == status
}
