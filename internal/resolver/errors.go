package resolver

import "errors"

// Error taxonomy of the resolver. Only [ErrInvalidConfiguration] crosses the
// Initialize boundary; every other kind is recovered locally (logged and
// counted) so that a flaky coordination service degrades the subsystem to
// default/ambient values instead of failing the dependent process.
var (
	// ErrInvalidConfiguration indicates a missing directory name or an empty
	// parameter manifest. Fatal to Initialize.
	ErrInvalidConfiguration = errors.New("invalid resolver configuration")

	// ErrNotInitialized indicates a watch or client operation was attempted
	// before a coordination client exists. Fatal to that operation only.
	ErrNotInitialized = errors.New("resolver is not initialized")

	// ErrRemoteUnavailable indicates a get/put round trip to the
	// coordination service failed. Recovered by the fallback chain.
	ErrRemoteUnavailable = errors.New("remote configuration unavailable")

	// ErrOutOfScopeWrite indicates a generation write targeted a key path
	// outside the service's writable scope without the override flag.
	// Recovered by skipping the write.
	ErrOutOfScopeWrite = errors.New("key path is out of the writable scope")
)
