// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/integration"
	"github.com/riftwalk/riftwalk/internal/observability"
	"github.com/riftwalk/riftwalk/internal/relationship"
	"github.com/riftwalk/riftwalk/internal/save"
)

type fakeChat struct {
	cfg    integration.ClientConfig
	closed bool
}

func (f *fakeChat) SendChat(integration.ChatRequest) *integration.Pending[integration.ChatResponse] {
	return integration.Resolved(integration.ChatResponse{}, errors.New("offline"))
}

func (f *fakeChat) IsOnline() bool { return false }

func (f *fakeChat) Close() { f.closed = true }

type fakeRelationships struct {
	loaded map[string]relationship.Relationship
	saved  map[string]relationship.Relationship
	closed bool
}

func (f *fakeRelationships) LoadAll(context.Context) (map[string]relationship.Relationship, error) {
	return f.loaded, nil
}

func (f *fakeRelationships) SaveAll(_ context.Context, data map[string]relationship.Relationship) error {
	f.saved = data
	return nil
}

func (f *fakeRelationships) Close() { f.closed = true }

type fakeServer struct {
	addr    string
	ready   observability.ReadinessChecker
	opts    int
	started bool
	stopped bool
}

func (f *fakeServer) Start() (<-chan error, error) {
	f.started = true
	return make(chan error), nil
}

func (f *fakeServer) Stop(context.Context) error {
	f.stopped = true
	return nil
}

func (f *fakeServer) Addr() string { return f.addr }

// runDeps returns deps that keep the run away from the network and
// real signals, with saves under dir.
func runDeps(dir string) *RunDeps {
	return &RunDeps{
		SavesDirGetter: func() (string, error) { return dir, nil },
		SignalContext: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		},
	}
}

func TestRun_StepsAndAutosaves(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	root := newRootCmd(runDeps(dir), nil)

	out, _, err := execute(root, "--config", writeConfig(t, smallWorld), "run", "--frames", "20", "--delta", "0.1")
	require.NoError(t, err)

	assert.Contains(t, out, "ran 20 frames: year 2025 (Present)")
	assert.FileExists(t, filepath.Join(dir, "autosave.json"))

	d, err := save.NewSlotStore(dir, nil).Load(save.AutosaveSlot)
	require.NoError(t, err)
	assert.Equal(t, "Traveler", d.Player.CharacterName)
	assert.InDelta(t, 2.0, d.PlayTimeSeconds, 0.01)
	assert.Greater(t, d.Player.Position[0], float32(32), "player walked east")
}

func TestRun_YearFlag(t *testing.T) {
	testEnv(t)
	root := newRootCmd(runDeps(t.TempDir()), nil)

	out, _, err := execute(root, "--config", writeConfig(t, smallWorld),
		"run", "--frames", "2", "--year", "1200", "--player-name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "year 1200 (Industrial)")
	assert.Contains(t, out, ", 0 gold")
}

func TestRun_RestoresSave(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	cfg := writeConfig(t, smallWorld)

	_, _, err := execute(newRootCmd(runDeps(dir), nil), "--config", cfg, "run", "--frames", "2", "--year=-5000")
	require.NoError(t, err)

	configFile = ""
	out, _, err := execute(newRootCmd(runDeps(dir), nil), "--config", cfg,
		"run", "--frames", "2", "--load", save.AutosaveSlot, "--autosave-every", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "year -5000 (Ancient)")
}

func TestRun_MissingSave(t *testing.T) {
	testEnv(t)
	root := newRootCmd(runDeps(t.TempDir()), nil)

	_, _, err := execute(root, "--config", writeConfig(t, smallWorld), "run", "--frames", "1", "--load", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, save.ErrNotFound)
}

func TestRun_RejectsBadDelta(t *testing.T) {
	testEnv(t)
	root := newRootCmd(runDeps(t.TempDir()), nil)

	_, _, err := execute(root, "--config", writeConfig(t, smallWorld), "run", "--delta", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delta must be positive")
}

func TestRun_Interrupted(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	deps := runDeps(dir)
	deps.SignalContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}

	out, _, err := execute(newRootCmd(deps, nil), "--config", writeConfig(t, smallWorld), "run", "--frames", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "ran 0 frames")
	assert.FileExists(t, filepath.Join(dir, "autosave.json"))
}

func TestRun_WiresServices(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db/riftwalk")

	chat := &fakeChat{}
	rels := &fakeRelationships{loaded: map[string]relationship.Relationship{
		"Elder Maren": {Affection: 40, TimesSpoken: 3},
	}}
	srv := &fakeServer{}

	deps := runDeps(t.TempDir())
	deps.ChatClientFactory = func(cfg integration.ClientConfig) (ChatClient, error) {
		chat.cfg = cfg
		return chat, nil
	}
	var gotURL string
	deps.RelationshipStoreFactory = func(_ context.Context, url string) (RelationshipStore, error) {
		gotURL = url
		return rels, nil
	}
	deps.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker, opts ...observability.Option) ObservabilityServer {
		srv.addr, srv.ready, srv.opts = addr, ready, len(opts)
		return srv
	}

	_, _, err := execute(newRootCmd(deps, nil), "--config", writeConfig(t, smallWorld),
		"run", "--frames", "3",
		"--integration-url", "http://backend.test",
		"--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)

	assert.Equal(t, "http://backend.test", chat.cfg.BaseURL)
	assert.Equal(t, 2, chat.cfg.Workers)
	assert.True(t, chat.closed)

	assert.Equal(t, "postgres://db/riftwalk", gotURL)
	require.Contains(t, rels.saved, "Elder Maren")
	assert.InDelta(t, 40, rels.saved["Elder Maren"].Affection, 0.001)
	assert.True(t, rels.closed)

	assert.Equal(t, "127.0.0.1:0", srv.addr)
	assert.Equal(t, 3, srv.opts)
	assert.True(t, srv.started)
	assert.True(t, srv.stopped)
	assert.True(t, srv.ready())
}

func TestRun_ChatClientFailure(t *testing.T) {
	testEnv(t)
	deps := runDeps(t.TempDir())
	deps.ChatClientFactory = func(integration.ClientConfig) (ChatClient, error) {
		return nil, errors.New("boom")
	}

	_, _, err := execute(newRootCmd(deps, nil), "--config", writeConfig(t, smallWorld),
		"run", "--frames", "1", "--integration-url", "http://backend.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
