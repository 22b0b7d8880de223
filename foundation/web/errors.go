package web

import "errors"

// ErrWebValueMissing is returned by GetValues when the context carries no
// request-scoped Values, which only happens if a handler is invoked
// outside of App.Handle.
var ErrWebValueMissing = errors.New("web value missing from context")

// shutdownError is a type used to help with the graceful termination of
// the service when an integrity issue is identified.
type shutdownError struct {
	Message string
}

// NewShutdownError returns an error that causes the framework to signal
// a graceful shutdown.
func NewShutdownError(message string) error {
	return &shutdownError{message}
}

func (e *shutdownError) Error() string {
	return e.Message
}

// IsShutdown checks to see if the shutdown error is contained in the
// specified error value.
func IsShutdown(err error) bool {
	var se *shutdownError
	return errors.As(err, &se)
}
