// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Property describes how a single configuration parameter is resolved.
//
// RemotePath, when non-empty, is used verbatim as the coordination-service
// key for the parameter and suppresses key derivation. Default is the value
// of last resort in the fallback chain (remote value → ambient environment →
// Default). An empty Default means the parameter has no local fallback and
// may legitimately resolve to no value at all.
type Property struct {
	// RemotePath is an explicit coordination-service key overriding the
	// derived `/{directory}/[{environment}/]{name}` path.
	RemotePath string `json:"remote_path,omitempty"`

	// Default is the fallback value used when neither the coordination
	// service nor the ambient environment provides one.
	Default string `json:"default,omitempty"`
}

// Value wraps a bare literal default into a [Property]. It mirrors the
// manifest shorthand where a parameter maps straight to its default string
// instead of a full property definition.
func Value(def string) Property {
	return Property{Default: def}
}

// UnmarshalJSON accepts both manifest forms: a bare string literal
// (treated as the default value with no explicit remote path) and a full
// property object.
func (p *Property) UnmarshalJSON(b []byte) error {
	var literal string
	if err := json.Unmarshal(b, &literal); err == nil {
		*p = Property{Default: literal}
		return nil
	}

	type alias Property
	var full alias
	if err := json.Unmarshal(b, &full); err != nil {
		return fmt.Errorf("error decoding property definition: %w", err)
	}

	*p = Property(full)
	return nil
}

// Manifest is the caller-supplied set of managed configuration parameters,
// keyed by parameter name. It is supplied once at initialization and never
// mutated afterwards.
type Manifest map[string]Property

// Names returns the manifest's parameter names in sorted order.
// Maps iterate in random order; resolution must be deterministic per
// manifest so that repeated runs produce identical logs and side effects.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DriverConfig controls how a [Manifest] is resolved against the
// coordination service.
type DriverConfig struct {
	// DirectoryName is the service's root segment in the coordination
	// namespace. Required; initialization fails when empty.
	DirectoryName string `json:"directory_name"`

	// Environment is the runtime environment name (e.g. "prod") inserted
	// as a path segment when UseEnvironmentSubdirs is set. When empty, the
	// resolver falls back to the ambient ENVIRONMENT variable.
	Environment string `json:"environment,omitempty"`

	// GenerateMissingKeys causes keys absent from the coordination service
	// to be created with the locally resolved value, subject to scope rules.
	GenerateMissingKeys bool `json:"generate_missing_keys,omitempty"`

	// MirrorToEnvironment copies every resolved value into the ambient
	// environment sink under the parameter name.
	MirrorToEnvironment bool `json:"mirror_to_environment,omitempty"`

	// WatchKeys registers a live change subscription for every resolved key.
	WatchKeys bool `json:"watch_keys,omitempty"`

	// AllowOutOfScopeWrites permits generated keys outside the service's
	// writable subtree (see the scope rules in the resolver package).
	AllowOutOfScopeWrites bool `json:"allow_out_of_scope_writes,omitempty"`

	// UseEnvironmentSubdirs namespaces derived keys by environment:
	// `/{directory}/{environment}/{name}` instead of `/{directory}/{name}`.
	UseEnvironmentSubdirs bool `json:"use_environment_subdirectories,omitempty"`
}

// Params bundles the driver options with the parameter manifest. It is the
// bundled layout of a manifest document: a file may carry its own driver
// options next to the parameters it declares.
type Params struct {
	// Driver holds the resolution options.
	Driver DriverConfig `json:"driver"`

	// EnvParams is the managed parameter manifest.
	EnvParams Manifest `json:"env_params"`
}
