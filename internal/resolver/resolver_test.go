// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-config-keeper/internal/coordination"
	"github.com/MKhiriev/go-config-keeper/internal/environ"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/mock"
	"github.com/MKhiriev/go-config-keeper/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func newTestResolver(client coordination.Client) (*Resolver, *environ.Map) {
	sink := environ.NewMap()
	return New(client, sink, logger.Nop()), sink
}

func driver(directory string) models.DriverConfig {
	return models.DriverConfig{DirectoryName: directory}
}

// ─────────────────────────────────────────────────────────────────────────────
// Preconditions
// ─────────────────────────────────────────────────────────────────────────────

func TestInitialize_MissingDirectoryName(t *testing.T) {
	res, _ := newTestResolver(coordination.NewMemory(nil))

	err := res.Initialize(context.Background(), models.Manifest{"A": models.Value("1")}, models.DriverConfig{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, 0, res.Store().Len())
}

func TestInitialize_EmptyManifest(t *testing.T) {
	res, _ := newTestResolver(coordination.NewMemory(nil))

	err := res.Initialize(context.Background(), models.Manifest{}, driver("svc"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestInitialize_SecondCallIsNoOp(t *testing.T) {
	mem := coordination.NewMemory(map[string]string{"/svc/A": "remote"})
	res, _ := newTestResolver(mem)
	ctx := context.Background()
	manifest := models.Manifest{"A": models.Value("default")}

	require.NoError(t, res.Initialize(ctx, manifest, driver("svc")))
	value, ok := res.Store().Get("A")
	require.True(t, ok)
	require.Equal(t, "remote", value)

	// Second call must not fail and must not change the resolved state.
	require.NoError(t, res.Initialize(ctx, manifest, driver("svc")))
	value, ok = res.Store().Get("A")
	assert.True(t, ok)
	assert.Equal(t, "remote", value)
}

// ─────────────────────────────────────────────────────────────────────────────
// Fallback chain
// ─────────────────────────────────────────────────────────────────────────────

// TestInitialize_FallbackPrecedence walks every cell of the precedence table:
// remote beats ambient beats declared default, first non-empty wins.
func TestInitialize_FallbackPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		ambient string
		def     string
		want    string
	}{
		{name: "remote wins over all", remote: "R", ambient: "A", def: "D", want: "R"},
		{name: "ambient wins without remote", ambient: "A", def: "D", want: "A"},
		{name: "default wins alone", def: "D", want: "D"},
		{name: "literal default only", def: "literal-value", want: "literal-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := map[string]string{}
			if tt.remote != "" {
				seed["/svc/PARAM"] = tt.remote
			}

			res, sink := newTestResolver(coordination.NewMemory(seed))
			if tt.ambient != "" {
				require.NoError(t, sink.Set("PARAM", tt.ambient))
			}

			manifest := models.Manifest{"PARAM": models.Value(tt.def)}
			require.NoError(t, res.Initialize(context.Background(), manifest, driver("svc")))

			value, ok := res.Store().Get("PARAM")
			require.True(t, ok)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestInitialize_NoValueAnywhere_LeavesNoEntry(t *testing.T) {
	res, sink := newTestResolver(coordination.NewMemory(nil))

	manifest := models.Manifest{"PARAM": {}}
	require.NoError(t, res.Initialize(context.Background(), manifest, driver("svc")))

	_, ok := res.Store().Get("PARAM")
	assert.False(t, ok, "a parameter with an empty fallback chain must stay absent")
	_, ok = sink.Lookup("PARAM")
	assert.False(t, ok)
}

// ─────────────────────────────────────────────────────────────────────────────
// Key computation
// ─────────────────────────────────────────────────────────────────────────────

func TestInitialize_ExplicitRemotePathOverridesDerivation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "mongodb_uri").Return("mongodb://remote", true, nil)

	res, _ := newTestResolver(client)
	manifest := models.Manifest{
		"MONGODB_URI": {RemotePath: "mongodb_uri"},
	}

	require.NoError(t, res.Initialize(context.Background(), manifest, driver("profile")))

	value, ok := res.Store().Get("MONGODB_URI")
	require.True(t, ok)
	assert.Equal(t, "mongodb://remote", value)
}

func TestInitialize_EnvironmentSubdirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/prod/PARAM").Return("from-prod", true, nil)

	res, _ := newTestResolver(client)
	d := models.DriverConfig{
		DirectoryName:         "svc",
		Environment:           "prod",
		UseEnvironmentSubdirs: true,
	}

	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"PARAM": {}}, d))

	value, _ := res.Store().Get("PARAM")
	assert.Equal(t, "from-prod", value)
}

func TestInitialize_AmbientEnvironmentSegment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/staging/PARAM").Return("", false, nil)

	res, sink := newTestResolver(client)
	require.NoError(t, sink.Set("ENVIRONMENT", "staging"))

	d := models.DriverConfig{DirectoryName: "svc", UseEnvironmentSubdirs: true}
	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"PARAM": {}}, d))
}

// ─────────────────────────────────────────────────────────────────────────────
// Mirroring
// ─────────────────────────────────────────────────────────────────────────────

func TestInitialize_MirrorToEnvironment(t *testing.T) {
	res, sink := newTestResolver(coordination.NewMemory(map[string]string{"/svc/A": "remote"}))

	d := driver("svc")
	d.MirrorToEnvironment = true
	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("d")}, d))

	value, ok := sink.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "remote", value)
}

func TestInitialize_NoMirrorByDefault(t *testing.T) {
	res, sink := newTestResolver(coordination.NewMemory(map[string]string{"/svc/A": "remote"}))

	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("d")}, driver("svc")))

	_, ok := sink.Lookup("A")
	assert.False(t, ok, "resolved values must stay out of the environment unless mirroring is enabled")

	value, ok := res.Store().Get("A")
	require.True(t, ok, "the resolved store is updated regardless of mirroring")
	assert.Equal(t, "remote", value)
}

// ─────────────────────────────────────────────────────────────────────────────
// Key generation and scope
// ─────────────────────────────────────────────────────────────────────────────

func TestInitialize_GeneratesMissingKeyInScope(t *testing.T) {
	mem := coordination.NewMemory(nil)
	res, _ := newTestResolver(mem)

	d := models.DriverConfig{
		DirectoryName:         "svc",
		Environment:           "prod",
		UseEnvironmentSubdirs: true,
		GenerateMissingKeys:   true,
	}
	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("generated")}, d))

	value, found, err := mem.Get(context.Background(), "/svc/prod/A")
	require.NoError(t, err)
	require.True(t, found, "in-scope missing key must be generated")
	assert.Equal(t, "generated", value)
}

func TestInitialize_OutOfScopeGenerationSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// `/svc/A` has only two meaningful segments: out of scope. No Put
	// expectation is set, so gomock fails the test if one is issued.
	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/A").Return("", false, nil)

	res, _ := newTestResolver(client)
	d := driver("svc")
	d.GenerateMissingKeys = true

	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("local")}, d))

	// The value is still resolved locally.
	value, ok := res.Store().Get("A")
	require.True(t, ok)
	assert.Equal(t, "local", value)
}

func TestInitialize_OutOfScopeGenerationWithOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/A").Return("", false, nil)
	client.EXPECT().Put(gomock.Any(), "/svc/A", "local").Return(nil)

	res, _ := newTestResolver(client)
	d := driver("svc")
	d.GenerateMissingKeys = true
	d.AllowOutOfScopeWrites = true

	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("local")}, d))
}

// TestInitialize_GenerationWritesEffectiveValue pins the decision that the
// generated key holds the effective value — here the ambient one, which beat
// the declared default in the fallback chain.
func TestInitialize_GenerationWritesEffectiveValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/prod/A").Return("", false, nil)
	client.EXPECT().Put(gomock.Any(), "/svc/prod/A", "ambient").Return(nil)

	res, sink := newTestResolver(client)
	require.NoError(t, sink.Set("A", "ambient"))

	d := models.DriverConfig{
		DirectoryName:         "svc",
		Environment:           "prod",
		UseEnvironmentSubdirs: true,
		GenerateMissingKeys:   true,
	}
	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("default")}, d))
}

func TestInitialize_UndefinedDefaultIsNeverWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// End to end: explicit remote path, generation enabled with the
	// out-of-scope override, but no value anywhere: nothing may be written
	// and the store must stay empty.
	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "mongodb_uri").Return("", false, nil)

	res, _ := newTestResolver(client)
	d := models.DriverConfig{
		DirectoryName:         "profile",
		GenerateMissingKeys:   true,
		AllowOutOfScopeWrites: true,
	}
	manifest := models.Manifest{"MONGODB_URI": {RemotePath: "mongodb_uri"}}

	require.NoError(t, res.Initialize(context.Background(), manifest, d))

	_, ok := res.Store().Get("MONGODB_URI")
	assert.False(t, ok)
}

// TestInitialize_Idempotence verifies that a re-run against a coordination
// service already holding the generated keys issues no further writes and
// produces identical resolved parameters.
func TestInitialize_Idempotence(t *testing.T) {
	mem := coordination.NewMemory(nil)
	ctx := context.Background()

	manifest := models.Manifest{
		"A": models.Value("a-default"),
		"B": {RemotePath: "/svc/prod/B", Default: "b-default"},
	}
	d := models.DriverConfig{
		DirectoryName:         "svc",
		Environment:           "prod",
		UseEnvironmentSubdirs: true,
		GenerateMissingKeys:   true,
	}

	first, _ := newTestResolver(mem)
	require.NoError(t, first.Initialize(ctx, manifest, d))
	want := first.Store().Snapshot()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Replay against a mock that serves the now-present keys and rejects
	// any Put by having no expectation for it.
	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/prod/A").Return("a-default", true, nil)
	client.EXPECT().Get(gomock.Any(), "/svc/prod/B").Return("b-default", true, nil)

	second, _ := newTestResolver(client)
	require.NoError(t, second.Initialize(ctx, manifest, d))

	assert.Equal(t, want, second.Store().Snapshot())
}

// ─────────────────────────────────────────────────────────────────────────────
// Degradation
// ─────────────────────────────────────────────────────────────────────────────

func TestInitialize_RemoteFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "/svc/A").Return("", false, coordination.ErrUnavailable)
	client.EXPECT().Get(gomock.Any(), "/svc/B").Return("remote-b", true, nil)

	res, _ := newTestResolver(client)
	d := driver("svc")
	// Generation must not run for a key whose read failed: the remote state
	// is unknown, not absent.
	d.GenerateMissingKeys = true
	d.AllowOutOfScopeWrites = true

	manifest := models.Manifest{
		"A": models.Value("a-default"),
		"B": models.Value("b-default"),
	}
	require.NoError(t, res.Initialize(context.Background(), manifest, d))

	valueA, _ := res.Store().Get("A")
	assert.Equal(t, "a-default", valueA, "failed remote read degrades to the default")
	valueB, _ := res.Store().Get("B")
	assert.Equal(t, "remote-b", valueB, "other parameters are unaffected")
}

func TestInitialize_NilClientDegradesToDefaults(t *testing.T) {
	res, _ := newTestResolver(nil)

	d := driver("svc")
	d.WatchKeys = true // registration fails per key, never fatally

	require.NoError(t, res.Initialize(context.Background(), models.Manifest{"A": models.Value("d")}, d))

	value, ok := res.Store().Get("A")
	require.True(t, ok)
	assert.Equal(t, "d", value)
}
