// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-config-keeper/models"
)

// LoadManifest reads a JSON parameter manifest. Each entry maps a parameter
// name either to a bare default string or to a full property definition:
//
//	{
//	  "MONGO_URI":  "mongodb://localhost:27017",
//	  "CACHE_TTL":  { "remote_path": "/profile/prod/CACHE_TTL", "default": "30s" }
//	}
//
// An empty manifest is rejected: the resolver treats it as an invalid
// configuration, so failing here keeps the error close to its source.
func LoadManifest(path string) (models.Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	defer file.Close()

	var manifest models.Manifest
	if err := json.NewDecoder(file).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("%w: error decoding manifest: %v", ErrInvalidManifest, err)
	}

	if len(manifest) == 0 {
		return nil, fmt.Errorf("%w: manifest contains no parameters", ErrInvalidManifest)
	}

	return manifest, nil
}

// LoadParams reads a parameter document from path. Two layouts are accepted:
// a bare manifest (see [LoadManifest]) and a bundled form that carries the
// driver options alongside the manifest:
//
//	{
//	  "driver":     { "directory_name": "profile", "watch_keys": true },
//	  "env_params": { "MONGO_URI": "mongodb://localhost:27017" }
//	}
//
// For the bare form the returned [models.Params] has a zero Driver; the
// daemon then runs entirely on the driver options from its own
// configuration.
func LoadParams(path string) (models.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Params{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var bundled struct {
		Driver    *models.DriverConfig `json:"driver"`
		EnvParams models.Manifest      `json:"env_params"`
	}
	if err := json.Unmarshal(data, &bundled); err == nil && bundled.EnvParams != nil {
		if len(bundled.EnvParams) == 0 {
			return models.Params{}, fmt.Errorf("%w: manifest contains no parameters", ErrInvalidManifest)
		}

		params := models.Params{EnvParams: bundled.EnvParams}
		if bundled.Driver != nil {
			params.Driver = *bundled.Driver
		}

		return params, nil
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return models.Params{}, fmt.Errorf("%w: error decoding manifest: %v", ErrInvalidManifest, err)
	}
	if len(manifest) == 0 {
		return models.Params{}, fmt.Errorf("%w: manifest contains no parameters", ErrInvalidManifest)
	}

	return models.Params{EnvParams: manifest}, nil
}

// MergeDriver overlays file-supplied driver options onto the ones from the
// process configuration. The process configuration wins for any field it
// sets; the file fills in the rest.
func MergeDriver(base, overlay models.DriverConfig) (models.DriverConfig, error) {
	if err := mergo.Merge(&base, overlay); err != nil {
		return base, fmt.Errorf("error merging driver options: %w", err)
	}

	return base, nil
}
