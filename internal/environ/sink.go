// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package environ abstracts the ambient process environment behind an
// explicit key-value sink.
//
// The resolver mirrors resolved parameters into a [Sink] instead of calling
// os.Setenv directly, which decouples it from the process-global environment
// table and makes mirroring testable in isolation. [OS] returns the real
// process environment; [NewMap] returns an in-memory sink for tests and for
// callers that want resolution without process-wide side effects.
package environ

import (
	"fmt"
	"os"
	"sync"
)

// Sink is a mutable string-keyed mapping the resolver reads fallback values
// from and mirrors resolved values into.
type Sink interface {
	// Lookup returns the value stored under name and whether it was present.
	Lookup(name string) (string, bool)

	// Set stores value under name, replacing any previous value.
	Set(name, value string) error

	// Unset removes name from the sink. Removing an absent name is a no-op.
	Unset(name string) error
}

type osSink struct{}

// OS returns a [Sink] backed by the real process environment.
func OS() Sink {
	return osSink{}
}

func (osSink) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (osSink) Set(name, value string) error {
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("error setting environment variable %q: %w", name, err)
	}

	return nil
}

func (osSink) Unset(name string) error {
	if err := os.Unsetenv(name); err != nil {
		return fmt.Errorf("error unsetting environment variable %q: %w", name, err)
	}

	return nil
}

// Map is an in-memory [Sink] safe for concurrent use.
type Map struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMap returns an empty in-memory sink.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Lookup implements [Sink].
func (m *Map) Lookup(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[name]
	return value, ok
}

// Set implements [Sink].
func (m *Map) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[name] = value
	return nil
}

// Unset implements [Sink].
func (m *Map) Unset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, name)
	return nil
}
