// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-config-keeper/internal/coordination"
	"github.com/MKhiriev/go-config-keeper/internal/environ"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/metrics"
	"github.com/MKhiriev/go-config-keeper/models"
)

// Resolver computes the effective value of every parameter in a manifest by
// walking the fallback chain
//
//	remote value → ambient environment value → declared default
//
// (first non-empty wins), stores the result in its [Store], optionally
// mirrors it into the ambient environment sink, lazily creates missing
// remote keys, and keeps values live through per-key watches.
type Resolver struct {
	client coordination.Client
	sink   environ.Sink
	store  *Store
	log    *logger.Logger

	mu          sync.Mutex
	initialized bool
	watches     *watchManager
}

// New constructs a Resolver over the given coordination client and
// environment sink. Pass [environ.NewMap] as the sink to resolve without
// process-wide side effects.
func New(client coordination.Client, sink environ.Sink, log *logger.Logger) *Resolver {
	return &Resolver{
		client: client,
		sink:   sink,
		store:  NewStore(),
		log:    log,
	}
}

// Store exposes the resolved-parameter store for readers (ops endpoints,
// dependent services).
func (r *Resolver) Store() *Store {
	return r.store
}

// Initialize resolves every manifest entry once and, when configured,
// registers live watches that keep the store current for the rest of the
// process lifetime (bounded by ctx).
//
// Only precondition violations surface as errors: an empty directory name or
// an empty manifest fail with [ErrInvalidConfiguration] and the caller must
// not assume any parameter was resolved. Every per-parameter remote failure
// is logged, counted and degraded to the next link of the fallback chain.
//
// Initialize is one-shot: a second call on the same Resolver is an
// idempotent no-op returning nil.
func (r *Resolver) Initialize(ctx context.Context, manifest models.Manifest, driver models.DriverConfig) error {
	if driver.DirectoryName == "" {
		return fmt.Errorf("%w: directory name is required", ErrInvalidConfiguration)
	}
	if len(manifest) == 0 {
		return fmt.Errorf("%w: parameter manifest is empty", ErrInvalidConfiguration)
	}

	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		r.log.Warn().Msg("resolver is already initialized, skipping")
		return nil
	}
	r.initialized = true
	r.watches = newWatchManager(r.client, r.store, r.sink, driver.MirrorToEnvironment, r.log)
	r.mu.Unlock()

	environment := r.environmentSegment(driver)

	// Sorted order: map iteration is random and resolution must be
	// reproducible per manifest.
	for _, name := range manifest.Names() {
		r.resolveParameter(ctx, name, manifest[name], driver, environment)
	}

	r.log.Info().
		Str("directory", driver.DirectoryName).
		Int("parameters", len(manifest)).
		Int("resolved", r.store.Len()).
		Msg("parameter manifest resolved")

	return nil
}

// Close cancels all active watches and waits for their goroutines to exit.
func (r *Resolver) Close() {
	r.mu.Lock()
	watches := r.watches
	r.mu.Unlock()

	if watches != nil {
		watches.stop()
	}
}

// environmentSegment returns the environment path segment for key
// derivation, or "" when per-environment subdirectories are disabled or no
// environment name is available. The driver's explicit setting wins over the
// ambient ENVIRONMENT variable.
func (r *Resolver) environmentSegment(driver models.DriverConfig) string {
	if !driver.UseEnvironmentSubdirs {
		return ""
	}
	if driver.Environment != "" {
		return driver.Environment
	}

	ambient, _ := r.sink.Lookup("ENVIRONMENT")
	return ambient
}

// resolveParameter runs the full per-entry pipeline: key computation, remote
// read, fallback chain, mirroring, store update, watch registration and lazy
// key generation. It never returns an error; everything below the
// initialization preconditions degrades locally.
func (r *Resolver) resolveParameter(ctx context.Context, name string, prop models.Property, driver models.DriverConfig, environment string) {
	keyPath := prop.RemotePath
	if keyPath == "" {
		keyPath = DerivePath(driver.DirectoryName, name, environment)
	}

	remote, found, err := r.remoteValue(ctx, keyPath)
	if err != nil {
		found = false
	}

	effective, source := fallback(remote, r.ambientValue(name), prop.Default)

	if effective != "" {
		if driver.MirrorToEnvironment {
			if err := r.sink.Set(name, effective); err != nil {
				r.log.Error().Err(err).Str("parameter", name).Msg("error mirroring resolved value")
			}
		}

		r.store.set(name, effective)
		metrics.ResolvedValues.WithLabelValues(source).Inc()
	} else {
		r.log.Debug().Str("parameter", name).Str("key", keyPath).Msg("parameter resolved to no value")
	}

	if driver.WatchKeys {
		if err := r.watches.register(ctx, keyPath, name); err != nil {
			r.log.Error().Err(err).Str("parameter", name).Str("key", keyPath).Msg("error registering watch")
		}
	}

	// Lazy key creation: only when the remote side had nothing, and never
	// with an empty value — a parameter without any resolved value is not
	// materialized remotely.
	if !found && err == nil && driver.GenerateMissingKeys && effective != "" {
		r.generateKey(ctx, keyPath, name, effective, driver.AllowOutOfScopeWrites)
	}
}

// remoteValue reads one key, degrading transport failures to "no remote
// value" after logging and counting them.
func (r *Resolver) remoteValue(ctx context.Context, keyPath string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("%w: no coordination client", ErrNotInitialized)
	}

	value, found, err := r.client.Get(ctx, keyPath)
	if err != nil {
		metrics.RemoteFailures.WithLabelValues("get").Inc()
		r.log.Warn().Err(err).Str("key", keyPath).Msgf("%v, falling back", ErrRemoteUnavailable)
		return "", false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	return value, found, nil
}

func (r *Resolver) ambientValue(name string) string {
	value, _ := r.sink.Lookup(name)
	return value
}

// generateKey back-fills a missing remote key with the locally resolved
// value, subject to the scope guard. The value written is the effective one
// (possibly ambient- or default-sourced), not the untouched declared
// default; see the out-of-scope skip below for the only case where nothing
// is written.
func (r *Resolver) generateKey(ctx context.Context, keyPath, name, value string, allowOutOfScope bool) {
	if !InScope(keyPath) && !allowOutOfScope {
		metrics.OutOfScopeSkips.Inc()
		r.log.Warn().
			Str("key", keyPath).
			Str("parameter", name).
			Msgf("%v, skipping key generation", ErrOutOfScopeWrite)
		return
	}

	if err := r.client.Put(ctx, keyPath, value); err != nil {
		metrics.RemoteFailures.WithLabelValues("put").Inc()
		r.log.Warn().Err(err).Str("key", keyPath).Msgf("%v, key not generated", ErrRemoteUnavailable)
		return
	}

	metrics.GeneratedKeys.Inc()
	r.log.Info().Str("key", keyPath).Str("parameter", name).Msg("missing remote key generated")
}

// fallback returns the first non-empty candidate and a label naming the
// chain link it came from.
func fallback(remote, ambient, declared string) (string, string) {
	switch {
	case remote != "":
		return remote, "remote"
	case ambient != "":
		return ambient, "environment"
	default:
		return declared, "default"
	}
}
