// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG":   "/path/to/config.json",
		"MANIFEST": "/path/to/manifest.json",

		"APP_VERSION": "1.2.3",

		"COORDINATION_BACKEND":         "etcd",
		"COORDINATION_ENDPOINTS":       "etcd-1:2379,etcd-2:2379",
		"COORDINATION_BASE_URL":        "http://localhost:8500",
		"COORDINATION_DIAL_TIMEOUT":    "5s",
		"COORDINATION_REQUEST_TIMEOUT": "3s",

		"RESOLVER_DIRECTORY_NAME":                 "profile",
		"RESOLVER_ENVIRONMENT":                    "prod",
		"RESOLVER_GENERATE_MISSING_KEYS":          "true",
		"RESOLVER_MIRROR_TO_ENVIRONMENT":          "true",
		"RESOLVER_WATCH_KEYS":                     "true",
		"RESOLVER_ALLOW_OUT_OF_SCOPE_WRITES":      "true",
		"RESOLVER_USE_ENVIRONMENT_SUBDIRECTORIES": "true",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/path/to/manifest.json", cfg.ManifestPath)

	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "etcd", cfg.Coordination.Backend)
	assert.Equal(t, []string{"etcd-1:2379", "etcd-2:2379"}, cfg.Coordination.Endpoints)
	assert.Equal(t, "http://localhost:8500", cfg.Coordination.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Coordination.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.Coordination.RequestTimeout)

	assert.Equal(t, "profile", cfg.Resolver.DirectoryName)
	assert.Equal(t, "prod", cfg.Resolver.Environment)
	assert.True(t, cfg.Resolver.GenerateMissingKeys)
	assert.True(t, cfg.Resolver.MirrorToEnvironment)
	assert.True(t, cfg.Resolver.WatchKeys)
	assert.True(t, cfg.Resolver.AllowOutOfScopeWrites)
	assert.True(t, cfg.Resolver.UseEnvironmentSubdirs)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_PartialFields(t *testing.T) {
	envVars := map[string]string{
		"RESOLVER_DIRECTORY_NAME": "profile",
	}
	setEnvVars(t, envVars)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "profile", cfg.Resolver.DirectoryName)
	assert.Empty(t, cfg.Coordination.Backend)
	assert.Empty(t, cfg.Coordination.Endpoints)
	assert.False(t, cfg.Resolver.WatchKeys)
	assert.Zero(t, cfg.Server.RequestTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"COORDINATION_DIAL_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	assert.Error(t, err)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"MANIFEST",

		"APP_VERSION",

		"COORDINATION_BACKEND",
		"COORDINATION_ENDPOINTS",
		"COORDINATION_BASE_URL",
		"COORDINATION_DIAL_TIMEOUT",
		"COORDINATION_REQUEST_TIMEOUT",

		"RESOLVER_DIRECTORY_NAME",
		"RESOLVER_ENVIRONMENT",
		"RESOLVER_GENERATE_MISSING_KEYS",
		"RESOLVER_MIRROR_TO_ENVIRONMENT",
		"RESOLVER_WATCH_KEYS",
		"RESOLVER_ALLOW_OUT_OF_SCOPE_WRITES",
		"RESOLVER_USE_ENVIRONMENT_SUBDIRECTORIES",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
