// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/resolver"
)

// Handler serves the ops HTTP surface: resolved-parameter inspection,
// application version, and Prometheus metrics.
type Handler struct {
	store   *resolver.Store
	version string
	log     *logger.Logger
}

// NewHandler constructs the ops handler over the resolver's store.
func NewHandler(store *resolver.Store, version string, log *logger.Logger) *Handler {
	return &Handler{
		store:   store,
		version: version,
		log:     log,
	}
}
