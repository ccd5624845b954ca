package exchange

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the chat service answered with a body that
// is not JSON or has no "response" string.
var ErrMalformedResponse = errors.New("malformed response")

// ServerError is returned when the chat service answers with a non-2xx status.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chat service error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("chat service error (HTTP %d): %s", e.Status, e.Body)
}

// NetworkError is returned when a request never produced an HTTP response:
// DNS failure, refused connection, TLS failure, interrupted body.
type NetworkError struct {
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach chat service: %s", e.Detail)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether err is (or wraps) a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// IsNetworkError reports whether err is (or wraps) a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
