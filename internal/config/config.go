// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-config-keeper/models"
)

// StructuredConfig is the top-level configuration container for the
// go-config-keeper daemon. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the application version.
	App App `envPrefix:"APP_"`

	// Coordination holds connection settings for the distributed key-value
	// coordination service backing remote configuration.
	Coordination Coordination `envPrefix:"COORDINATION_"`

	// Resolver holds the driver options controlling how the parameter
	// manifest is resolved against the coordination service.
	Resolver Resolver `envPrefix:"RESOLVER_"`

	// Server holds network address and timeout settings for the ops HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// ManifestPath is the path to the JSON parameter manifest the daemon
	// resolves at startup.
	// Env: MANIFEST
	ManifestPath string `env:"MANIFEST"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Coordination holds connection settings for the coordination service.
type Coordination struct {
	// Backend selects the client implementation: "etcd" (default), "http"
	// for a Consul-style REST KV API, or "memory" for local development.
	// Env: COORDINATION_BACKEND
	Backend string `env:"BACKEND"`

	// Endpoints is the list of etcd gRPC endpoints in "host:port" format,
	// comma-separated in the environment variable.
	// Env: COORDINATION_ENDPOINTS
	Endpoints []string `env:"ENDPOINTS" envSeparator:","`

	// BaseURL is the root URL of the HTTP KV API; used only by the "http"
	// backend (e.g. "http://localhost:8500").
	// Env: COORDINATION_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// DialTimeout bounds the initial connection attempt (e.g. "5s").
	// Env: COORDINATION_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`

	// RequestTimeout is the maximum duration of a single get/put/delete
	// round trip (e.g. "5s"). Watch streams are not subject to it.
	// Env: COORDINATION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Resolver holds the parameter-resolution driver options. Field semantics
// match [models.DriverConfig].
type Resolver struct {
	// DirectoryName is the service's root segment in the coordination
	// namespace. Required.
	// Env: RESOLVER_DIRECTORY_NAME
	DirectoryName string `env:"DIRECTORY_NAME"`

	// Environment is the runtime environment name used for per-environment
	// key subdirectories (e.g. "prod").
	// Env: RESOLVER_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// GenerateMissingKeys back-fills keys absent from the coordination
	// service with locally resolved values.
	// Env: RESOLVER_GENERATE_MISSING_KEYS
	GenerateMissingKeys bool `env:"GENERATE_MISSING_KEYS"`

	// MirrorToEnvironment copies resolved values into the process
	// environment.
	// Env: RESOLVER_MIRROR_TO_ENVIRONMENT
	MirrorToEnvironment bool `env:"MIRROR_TO_ENVIRONMENT"`

	// WatchKeys keeps resolved values live via change notifications.
	// Env: RESOLVER_WATCH_KEYS
	WatchKeys bool `env:"WATCH_KEYS"`

	// AllowOutOfScopeWrites permits generated keys outside the service's
	// writable subtree.
	// Env: RESOLVER_ALLOW_OUT_OF_SCOPE_WRITES
	AllowOutOfScopeWrites bool `env:"ALLOW_OUT_OF_SCOPE_WRITES"`

	// UseEnvironmentSubdirs namespaces derived keys by environment.
	// Env: RESOLVER_USE_ENVIRONMENT_SUBDIRECTORIES
	UseEnvironmentSubdirs bool `env:"USE_ENVIRONMENT_SUBDIRECTORIES"`
}

// Server holds network and timeout settings for the ops HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the ops HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DriverConfig converts the resolver section into the driver options the
// resolver package consumes.
func (r Resolver) DriverConfig() models.DriverConfig {
	return models.DriverConfig{
		DirectoryName:         r.DirectoryName,
		Environment:           r.Environment,
		GenerateMissingKeys:   r.GenerateMissingKeys,
		MirrorToEnvironment:   r.MirrorToEnvironment,
		WatchKeys:             r.WatchKeys,
		AllowOutOfScopeWrites: r.AllowOutOfScopeWrites,
		UseEnvironmentSubdirs: r.UseEnvironmentSubdirs,
	}
}

// GetStructuredConfig loads, merges, and validates the daemon configuration
// from all available sources in the following priority order (an earlier
// source wins for any field it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
