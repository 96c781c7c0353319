// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordination

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process [Client] used by tests and by the daemon's local
// development mode. All operations are safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	watchers []*memoryWatcher
	closed   bool
}

type memoryWatcher struct {
	key    string
	events chan Event
	done   <-chan struct{}
}

// NewMemory returns an empty in-memory coordination store, optionally
// pre-seeded with initial key-value pairs.
func NewMemory(seed map[string]string) *Memory {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}

	return &Memory{values: values}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", false, ErrNotConnected
	}

	value, found := m.values[key]
	return value, found, nil
}

func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrNotConnected
	}

	m.values[key] = value
	m.notify(Event{Kind: EventPut, Key: key, Value: value})

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrNotConnected
	}

	if _, found := m.values[key]; !found {
		return nil
	}

	delete(m.values, key)
	m.notify(Event{Kind: EventDelete, Key: key})

	return nil
}

// Watch implements [Client]. A key ending in "/" subscribes to the whole
// prefix; otherwise only exact matches are delivered.
func (m *Memory) Watch(ctx context.Context, key string) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrNotConnected
	}

	w := &memoryWatcher{
		key:    key,
		events: make(chan Event, 16),
		done:   ctx.Done(),
	}
	m.watchers = append(m.watchers, w)

	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case ev := <-w.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// notify fans an event out to matching watchers. Caller holds m.mu.
// Delivery is best effort: a watcher whose buffer is full or whose context
// is done is skipped, never blocked on.
func (m *Memory) notify(ev Event) {
	for _, w := range m.watchers {
		if !w.matches(ev.Key) {
			continue
		}

		select {
		case <-w.done:
		case w.events <- ev:
		default:
		}
	}
}

func (w *memoryWatcher) matches(key string) bool {
	if strings.HasSuffix(w.key, "/") {
		return strings.HasPrefix(key, w.key)
	}

	return key == w.key
}
