// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-config-keeper/internal/coordination"
	"github.com/MKhiriev/go-config-keeper/internal/environ"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/metrics"
)

// notification is the immutable message a per-key watch goroutine hands to
// the apply loop. Watch callbacks never touch the store or the sink
// themselves; all mutation happens on the single apply goroutine, so updates
// for one key are applied serially and readers never observe a torn value.
type notification struct {
	parameter string
	keyPath   string
	kind      coordination.EventKind
	value     string
}

// subscription tracks the lifecycle of one watched key:
// Unwatched → Active → Cancelled, where Cancelled is terminal. A remote
// delete cancels the subscription; a deleted key is never implicitly
// re-watched or recreated.
type subscription struct {
	id        string
	keyPath   string
	parameter string
	cancel    context.CancelFunc
	active    bool
}

type watchManager struct {
	client coordination.Client
	store  *Store
	sink   environ.Sink
	mirror bool
	log    *logger.Logger

	mu      sync.Mutex
	subs    map[string]*subscription
	applyCh chan notification
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func newWatchManager(client coordination.Client, store *Store, sink environ.Sink, mirror bool, log *logger.Logger) *watchManager {
	return &watchManager{
		client:  client,
		store:   store,
		sink:    sink,
		mirror:  mirror,
		log:     log,
		subs:    make(map[string]*subscription),
		applyCh: make(chan notification),
	}
}

// register subscribes to keyPath and maps its notifications to parameter.
// Failure is fatal to this registration only; other watches are unaffected.
func (m *watchManager) register(ctx context.Context, keyPath, parameter string) error {
	if m.client == nil {
		return fmt.Errorf("%w: no coordination client for watch on %q", ErrNotInitialized, keyPath)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.subs[keyPath]; exists {
		return nil
	}

	m.startApplyLoop(ctx)

	subCtx, cancel := context.WithCancel(ctx)
	events, err := m.client.Watch(subCtx, keyPath)
	if err != nil {
		cancel()
		return fmt.Errorf("error watching key %q: %w", keyPath, err)
	}

	sub := &subscription{
		id:        uuid.NewString(),
		keyPath:   keyPath,
		parameter: parameter,
		cancel:    cancel,
		active:    true,
	}
	m.subs[keyPath] = sub
	metrics.ActiveWatches.Inc()

	m.wg.Add(1)
	go m.forward(subCtx, sub, events)

	m.log.Debug().
		Str("subscription", sub.id).
		Str("key", keyPath).
		Str("parameter", parameter).
		Msg("watch registered")

	return nil
}

// forward relays one key's event stream into the apply channel. It exits
// when the stream closes or the subscription's context is cancelled.
func (m *watchManager) forward(ctx context.Context, sub *subscription, events <-chan coordination.Event) {
	defer m.wg.Done()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}

			n := notification{
				parameter: sub.parameter,
				keyPath:   sub.keyPath,
				kind:      ev.Kind,
				value:     ev.Value,
			}

			select {
			case m.applyCh <- n:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// startApplyLoop launches the single apply goroutine on first use.
// Caller holds m.mu.
func (m *watchManager) startApplyLoop(ctx context.Context) {
	if m.started {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.started = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		for {
			select {
			case n := <-m.applyCh:
				m.apply(n)
			case <-loopCtx.Done():
				return
			}
		}
	}()
}

// apply mutates the resolved store (and the environment mirror) for one
// notification. Runs only on the apply goroutine.
func (m *watchManager) apply(n notification) {
	switch n.kind {
	case coordination.EventPut:
		m.store.set(n.parameter, n.value)
		if m.mirror {
			if err := m.sink.Set(n.parameter, n.value); err != nil {
				m.log.Error().Err(err).Str("parameter", n.parameter).Msg("error mirroring watched value")
			}
		}

		metrics.WatchEvents.WithLabelValues("put").Inc()
		m.log.Info().Str("key", n.keyPath).Str("parameter", n.parameter).Msg("remote value updated")

	case coordination.EventDelete:
		m.store.remove(n.parameter)
		if m.mirror {
			if err := m.sink.Unset(n.parameter); err != nil {
				m.log.Error().Err(err).Str("parameter", n.parameter).Msg("error unmirroring deleted value")
			}
		}

		// A deleted key terminates its subscription; the key is never
		// implicitly recreated or re-watched.
		m.cancelSubscription(n.keyPath)

		metrics.WatchEvents.WithLabelValues("delete").Inc()
		m.log.Info().Str("key", n.keyPath).Str("parameter", n.parameter).Msg("remote value deleted, watch cancelled")
	}
}

func (m *watchManager) cancelSubscription(keyPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, exists := m.subs[keyPath]
	if !exists || !sub.active {
		return
	}

	sub.active = false
	sub.cancel()
	delete(m.subs, keyPath)
	metrics.ActiveWatches.Dec()
}

// watching reports whether keyPath currently has an active subscription.
func (m *watchManager) watching(keyPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, exists := m.subs[keyPath]
	return exists && sub.active
}

// stop cancels the apply loop and every active subscription, then blocks
// until all goroutines have exited. Safe to call when nothing is running.
func (m *watchManager) stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.started = false

	for keyPath, sub := range m.subs {
		sub.active = false
		sub.cancel()
		delete(m.subs, keyPath)
		metrics.ActiveWatches.Dec()
	}
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}
