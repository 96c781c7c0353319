// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// daemon invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Resolver.DirectoryName == "" {
		return fmt.Errorf("%w: directory name is required", ErrInvalidResolverConfigs)
	}

	switch cfg.Coordination.Backend {
	case "", "etcd", "http", "memory":
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidCoordinationConfigs, cfg.Coordination.Backend)
	}

	if cfg.Coordination.Backend == "http" && cfg.Coordination.BaseURL == "" {
		return fmt.Errorf("%w: http backend requires a base URL", ErrInvalidCoordinationConfigs)
	}

	return nil
}
