// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import "sync"

// Store holds the last-resolved value of every managed parameter,
// independent of whether the value is mirrored into the ambient
// environment. It is written by the resolver during initial resolution and
// by the watch apply loop afterwards; readers never observe a torn update.
//
// A parameter whose whole fallback chain came up empty has NO entry here —
// absence is the one and only "no value" marker, there is no empty-string
// placeholder.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore returns an empty resolved-parameter store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the current value of the named parameter and whether one is
// present.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]
	return value, ok
}

// Snapshot returns a copy of all currently resolved parameters.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}

	return out
}

// Len returns the number of currently resolved parameters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

func (s *Store) set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
}

func (s *Store) remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, name)
}
