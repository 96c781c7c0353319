// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler implements the daemon's ops HTTP endpoints: inspection of
// the resolved-parameter store, the application version, and the Prometheus
// metrics exposition.
package handler
