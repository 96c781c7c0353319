// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

// listParams returns a JSON object with every currently resolved parameter.
func (h *Handler) listParams(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.store.Snapshot()); err != nil {
		log.Err(err).Msg("error encoding resolved parameters")
	}
}

// getParam returns the current value of a single parameter as plain text,
// or 404 when the parameter has no resolved value.
func (h *Handler) getParam(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	value, ok := h.store.Get(name)
	if !ok {
		http.Error(w, "parameter is not resolved", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(value))
}
