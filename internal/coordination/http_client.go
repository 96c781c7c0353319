// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordination

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPConfig holds connection settings for the REST-backed [Client].
type HTTPConfig struct {
	// BaseURL is the root of the coordination service's HTTP API
	// (e.g. "http://localhost:8500").
	BaseURL string

	// Timeout bounds each non-blocking request.
	Timeout time.Duration

	// WatchWait is the maximum duration of a single blocking watch poll.
	WatchWait time.Duration
}

// httpKVClient adapts a Consul-style `/v1/kv/` REST API to [Client].
// Watches are implemented with blocking index queries: each poll carries the
// last seen modify index and returns as soon as the key changes.
type httpKVClient struct {
	client    *resty.Client
	watchWait time.Duration
}

// kvEntry is the JSON shape of a single key in the KV API response.
// Value is base64 in the wire format, which encoding/json decodes into the
// byte slice transparently.
type kvEntry struct {
	Key         string `json:"Key"`
	Value       []byte `json:"Value"`
	ModifyIndex uint64 `json:"ModifyIndex"`
}

// NewHTTPClient returns a [Client] over a Consul-style HTTP KV API.
func NewHTTPClient(cfg HTTPConfig) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8500"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.WatchWait <= 0 {
		cfg.WatchWait = 5 * time.Minute
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpKVClient{client: cli, watchWait: cfg.WatchWait}
}

// kvPath converts a `/`-rooted key path to the KV API's relative form.
func kvPath(key string) string {
	return "/v1/kv/" + strings.TrimPrefix(key, "/")
}

func (h *httpKVClient) Get(ctx context.Context, key string) (string, bool, error) {
	value, _, found, err := h.get(ctx, key, 0, 0)
	return value, found, err
}

// get performs one KV read. When index is non-zero the request blocks server
// side (up to wait) until the key's modify index advances past it.
func (h *httpKVClient) get(ctx context.Context, key string, index uint64, wait time.Duration) (string, uint64, bool, error) {
	req := h.client.R().SetContext(ctx).SetResult([]kvEntry{})
	if index > 0 {
		req.SetQueryParam("index", strconv.FormatUint(index, 10))
		req.SetQueryParam("wait", wait.String())
	}

	resp, err := req.Get(kvPath(key))
	if err != nil {
		return "", 0, false, fmt.Errorf("kv get %q: %w", key, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", kvIndex(resp), false, nil
	}
	if err = mapKVError(resp); err != nil {
		return "", 0, false, fmt.Errorf("kv get %q: %w", key, err)
	}

	entries, ok := resp.Result().(*[]kvEntry)
	if !ok || len(*entries) == 0 {
		return "", kvIndex(resp), false, nil
	}

	entry := (*entries)[0]
	return string(entry.Value), entry.ModifyIndex, true, nil
}

func (h *httpKVClient) Put(ctx context.Context, key, value string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(value).
		Put(kvPath(key))
	if err != nil {
		return fmt.Errorf("kv put %q: %w", key, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	if err = mapKVError(resp); err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}

	return nil
}

func (h *httpKVClient) Delete(ctx context.Context, key string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete(kvPath(key))
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	if err = mapKVError(resp); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}

	return nil
}

// Watch implements [Client] with a blocking-poll loop. The REST API has no
// prefix change stream, so only exact-key subscriptions are supported here.
func (h *httpKVClient) Watch(ctx context.Context, key string) (<-chan Event, error) {
	if strings.HasSuffix(key, "/") {
		return nil, errors.New("http kv client does not support prefix watches")
	}

	value, index, found, err := h.get(ctx, key, 0, 0)
	if err != nil {
		return nil, err
	}

	events := make(chan Event)

	go func() {
		defer close(events)

		existed := found
		lastValue := value
		lastIndex := index

		for {
			v, idx, ok, err := h.get(ctx, key, lastIndex, h.watchWait)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				// Transient poll failure; back off and retry.
				select {
				case <-time.After(time.Second):
					continue
				case <-ctx.Done():
					return
				}
			}

			var out *Event
			switch {
			case ok && (!existed || v != lastValue):
				out = &Event{Kind: EventPut, Key: key, Value: v}
			case !ok && existed:
				out = &Event{Kind: EventDelete, Key: key}
			}

			existed = ok
			lastValue = v
			advanced := idx > lastIndex
			if advanced {
				lastIndex = idx
			}

			if out != nil {
				select {
				case events <- *out:
				case <-ctx.Done():
					return
				}
			}

			// Servers that ignore blocking queries answer immediately with
			// an unchanged index; pace the loop instead of spinning.
			if out == nil && !advanced {
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (h *httpKVClient) Close() error {
	return nil
}

// kvIndex extracts the modify index header used to resume blocking queries.
func kvIndex(resp *resty.Response) uint64 {
	raw := resp.Header().Get("X-Consul-Index")
	if raw == "" {
		return 0
	}

	idx, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return idx
}

// mapKVError converts a non-2xx KV API response into the package's sentinel
// errors. 404 is handled by the callers because a missing key is not a
// failure.
func mapKVError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	if code == http.StatusNotFound {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch code {
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnavailable, code, body)
	}
}
