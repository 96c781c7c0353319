package coordination

import "errors"

// Transport-agnostic sentinel errors returned by [Client] implementations.
var (
	// ErrNotConnected indicates an operation was attempted on a client
	// whose connection was never established or already closed.
	ErrNotConnected = errors.New("coordination client is not connected")

	// ErrUnavailable indicates the coordination service could not be
	// reached or did not answer in time (network error, timeout, dead
	// endpoint).
	ErrUnavailable = errors.New("coordination service unavailable")

	// ErrPermissionDenied indicates the service refused the operation
	// on the given key.
	ErrPermissionDenied = errors.New("coordination service denied the operation")
)
