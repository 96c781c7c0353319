package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidCoordinationConfigs indicates invalid coordination-service
	// settings (for example, an unknown backend or no endpoints for etcd).
	ErrInvalidCoordinationConfigs = errors.New("invalid coordination configuration")
	// ErrInvalidResolverConfigs indicates invalid resolver driver settings
	// (for example, a missing directory name).
	ErrInvalidResolverConfigs = errors.New("invalid resolver configuration")
	// ErrInvalidManifest indicates the parameter manifest file could not be
	// loaded or contained no parameters.
	ErrInvalidManifest = errors.New("invalid parameter manifest")
)
