// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package coordination provides the client capability over the distributed
// key-value store that backs remote configuration.
//
// The primary abstraction is [Client], which decouples the resolver from the
// underlying protocol. The package ships three implementations: an etcd
// adapter ([NewEtcdClient]), an HTTP/REST adapter for Consul-style KV
// endpoints ([NewHTTPClient]), and an in-memory store ([NewMemory]) used in
// tests and local development mode.
//
// Error values defined in errors.go are mapped from transport-level failures
// by each adapter so that callers can use [errors.Is] for protocol-agnostic
// error handling (e.g. [ErrUnavailable] for a dead endpoint).
package coordination

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/coordination_client_mock.go -package=mock

// EventKind discriminates watch notifications.
type EventKind int

const (
	// EventPut reports that a watched key was created or overwritten.
	EventPut EventKind = iota

	// EventDelete reports that a watched key was removed.
	EventDelete
)

// String returns a human-readable kind label for logs.
func (k EventKind) String() string {
	switch k {
	case EventPut:
		return "put"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is a single immutable change notification delivered on a watch
// stream.
type Event struct {
	// Kind tells whether the key was written or removed.
	Kind EventKind

	// Key is the full key path the event applies to.
	Key string

	// Value is the new value for [EventPut] events; empty for deletes.
	Value string
}

// Client is the capability the resolver requires from a coordination
// service. Implementations are responsible for serialisation, connection
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type Client interface {
	// Get returns the value stored at key. A missing key is not an error:
	// found is false and err is nil. err is non-nil only for transport
	// failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Put upserts value at key. Idempotent.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Watch subscribes to changes of key. A key ending in "/" is treated
	// as a prefix subscription. The returned channel is closed when ctx is
	// cancelled or the underlying stream ends; reconnection policy belongs
	// to the implementation, not the consumer.
	Watch(ctx context.Context, key string) (<-chan Event, error)

	// Close releases the underlying connection. Safe to call once.
	Close() error
}
