package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"version": "3.1.4"},
		"coordination": map[string]any{
			"backend":         "http",
			"base_url":        "http://localhost:8500",
			"dial_timeout":    "5s",
			"request_timeout": "2s",
		},
		"resolver": map[string]any{
			"directory_name":        "profile",
			"environment":           "prod",
			"generate_missing_keys": true,
		},
		"server": map[string]any{
			"http_address":    "0.0.0.0:8080",
			"request_timeout": "30s",
		},
		"manifest": "/etc/configd/manifest.json",
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", cfg.App.Version)
	assert.Equal(t, "http", cfg.Coordination.Backend)
	assert.Equal(t, "http://localhost:8500", cfg.Coordination.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Coordination.DialTimeout)
	assert.Equal(t, 2*time.Second, cfg.Coordination.RequestTimeout)
	assert.Equal(t, "profile", cfg.Resolver.DirectoryName)
	assert.Equal(t, "prod", cfg.Resolver.Environment)
	assert.True(t, cfg.Resolver.GenerateMissingKeys)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/etc/configd/manifest.json", cfg.ManifestPath)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	f := writeTempFile(t, "{not json")
	_, err := parseJSON(f)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
		{name: "garbage string", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
