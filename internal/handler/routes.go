// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init assembles the ops router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLoggerContext)
	router.Use(h.withLogging)

	router.Get("/api/params/", h.listParams)
	router.Get("/api/params/{name}", h.getParam)
	router.Get("/api/version/", h.getVersion)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
