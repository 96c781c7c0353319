// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordination

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdConfig holds connection settings for the etcd-backed [Client].
type EtcdConfig struct {
	// Endpoints is the list of etcd gRPC endpoints ("host:port").
	Endpoints []string

	// DialTimeout bounds the initial connection attempt.
	DialTimeout time.Duration

	// RequestTimeout bounds each individual get/put/delete round trip.
	// Watch streams are not subject to it.
	RequestTimeout time.Duration
}

type etcdClient struct {
	cli            *clientv3.Client
	requestTimeout time.Duration
}

// NewEtcdClient connects to etcd and returns a [Client] over it.
func NewEtcdClient(cfg EtcdConfig) (Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("%w: no endpoints configured", ErrNotConnected)
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to etcd: %w", mapEtcdError(err))
	}

	return &etcdClient{cli: cli, requestTimeout: cfg.RequestTimeout}, nil
}

func (e *etcdClient) Get(ctx context.Context, key string) (string, bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.requestTimeout)
	defer cancel()

	resp, err := e.cli.Get(opCtx, key)
	if err != nil {
		return "", false, fmt.Errorf("etcd get %q: %w", key, mapEtcdError(err))
	}
	if len(resp.Kvs) == 0 {
		return "", false, nil
	}

	return string(resp.Kvs[0].Value), true, nil
}

func (e *etcdClient) Put(ctx context.Context, key, value string) error {
	opCtx, cancel := context.WithTimeout(ctx, e.requestTimeout)
	defer cancel()

	if _, err := e.cli.Put(opCtx, key, value); err != nil {
		return fmt.Errorf("etcd put %q: %w", key, mapEtcdError(err))
	}

	return nil
}

func (e *etcdClient) Delete(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, e.requestTimeout)
	defer cancel()

	if _, err := e.cli.Delete(opCtx, key); err != nil {
		return fmt.Errorf("etcd delete %q: %w", key, mapEtcdError(err))
	}

	return nil
}

// Watch implements [Client]. The etcd watch channel is translated into the
// package's [Event] stream on a dedicated goroutine that exits when ctx is
// cancelled or etcd closes the stream.
func (e *etcdClient) Watch(ctx context.Context, key string) (<-chan Event, error) {
	var opts []clientv3.OpOption
	if strings.HasSuffix(key, "/") {
		opts = append(opts, clientv3.WithPrefix())
	}

	wch := e.cli.Watch(ctx, key, opts...)
	events := make(chan Event)

	go func() {
		defer close(events)

		for wresp := range wch {
			if wresp.Err() != nil {
				// The stream is broken; the consumer sees the channel
				// close and the client's reconnection policy takes over.
				return
			}

			for _, ev := range wresp.Events {
				out := Event{Key: string(ev.Kv.Key)}
				switch ev.Type {
				case mvccpb.PUT:
					out.Kind = EventPut
					out.Value = string(ev.Kv.Value)
				case mvccpb.DELETE:
					out.Kind = EventDelete
				default:
					continue
				}

				select {
				case events <- out:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (e *etcdClient) Close() error {
	if err := e.cli.Close(); err != nil {
		return fmt.Errorf("error closing etcd client: %w", err)
	}

	return nil
}
