// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics defines the Prometheus instruments for the configuration
// resolver. Counters are registered on the default registry in init() and
// exposed by the ops HTTP server's /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ResolvedValues counts resolved parameter values by the fallback-chain
	// source that produced them: "remote", "environment" or "default".
	ResolvedValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "config_resolved_values_total", Help: "Resolved parameter values by source"},
		[]string{"source"},
	)

	// RemoteFailures counts coordination-service round trips that failed
	// and were degraded locally, by operation ("get", "put").
	RemoteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "config_remote_failures_total", Help: "Failed coordination-service operations"},
		[]string{"op"},
	)

	// GeneratedKeys counts missing remote keys back-filled from locally
	// resolved values.
	GeneratedKeys = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "config_generated_keys_total", Help: "Remote keys created from local values"},
	)

	// OutOfScopeSkips counts generation writes skipped because the key path
	// was outside the service's writable scope.
	OutOfScopeSkips = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "config_out_of_scope_skips_total", Help: "Key generations skipped by the scope guard"},
	)

	// WatchEvents counts applied live-watch notifications by kind
	// ("put", "delete").
	WatchEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "config_watch_events_total", Help: "Applied watch notifications by kind"},
		[]string{"kind"},
	)

	// ActiveWatches tracks the number of currently active key subscriptions.
	ActiveWatches = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "config_active_watches", Help: "Currently active key subscriptions"},
	)
)

func init() {
	prometheus.MustRegister(
		ResolvedValues,
		RemoteFailures,
		GeneratedKeys,
		OutOfScopeSkips,
		WatchEvents,
		ActiveWatches,
	)
}
