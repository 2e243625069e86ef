// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/config"
	"github.com/riftwalk/riftwalk/pkg/errutil"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-format", "json", "")
	fs.String("metrics-addr", "127.0.0.1:9100", "")
	fs.Int64("year", 2025, "")
	fs.Float32("walk-speed", 5, "")
	fs.Int("frames", 600, "")
	return fs
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingOptionalFile(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{
		Path:   filepath.Join(t.TempDir(), "absent.yaml"),
		Getenv: noEnv,
	})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := config.Load(config.LoadOptions{
		Path:     filepath.Join(t.TempDir(), "absent.yaml"),
		Required: true,
		Getenv:   noEnv,
	})
	errutil.AssertErrorCode(t, err, "CONFIG_NOT_FOUND")
}

func TestLoadLayers(t *testing.T) {
	path := writeFile(t, `
log:
  format: text
chunk:
  load_radius: 2
  unload_radius: 3
timeline:
  start_year: 1200
integration:
  base_url: http://localhost:8080
  timeout: 5s
`)
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--year=-500", "--frames=10"}))

	cfg, err := config.Load(config.LoadOptions{
		Path:  path,
		Flags: fs,
		Getenv: func(k string) string {
			if k == "DATABASE_URL" {
				return "postgres://localhost/riftwalk"
			}
			return ""
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Log.Format, "file overrides default")
	assert.Equal(t, int32(2), cfg.Chunk.LoadRadius)
	assert.Equal(t, int32(3), cfg.Chunk.UnloadRadius)
	assert.Equal(t, float32(64), cfg.Chunk.ChunkSize, "untouched keys keep defaults")
	assert.Equal(t, int64(-500), cfg.Timeline.StartYear, "flag overrides file")
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr, "unchanged flag leaves value alone")
	assert.Equal(t, 5*time.Second, cfg.Integration.Timeout)
	assert.Equal(t, "http://localhost:8080", cfg.Integration.BaseURL)
	assert.Equal(t, "postgres://localhost/riftwalk", cfg.Database.URL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "chunk:\n  load_radius: 4\n  unload_radius: 4\n")
	_, err := config.Load(config.LoadOptions{Path: path, Getenv: noEnv})
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	errutil.AssertErrorContext(t, err, "key", "chunk.unload_radius")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "chunk: [unclosed\n")
	_, err := config.Load(config.LoadOptions{Path: path, Getenv: noEnv})
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		key    string
	}{
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
		{"chunk size", func(c *config.Config) { c.Chunk.ChunkSize = 0 }, "chunk.size"},
		{"subdivisions", func(c *config.Config) { c.Chunk.Subdivisions = 0 }, "chunk.subdivisions"},
		{"negative load radius", func(c *config.Config) { c.Chunk.LoadRadius = -1 }, "chunk.load_radius"},
		{"hysteresis", func(c *config.Config) { c.Chunk.UnloadRadius = c.Chunk.LoadRadius }, "chunk.unload_radius"},
		{"octaves", func(c *config.Config) { c.Terrain.Octaves = 0 }, "terrain.octaves"},
		{"noise scale", func(c *config.Config) { c.Terrain.NoiseScale = 0 }, "terrain.noise_scale"},
		{"max delta", func(c *config.Config) { c.Time.MaxDelta = 0 }, "time.max_delta"},
		{"time scale", func(c *config.Config) { c.Time.TimeScale = -1 }, "time.time_scale"},
		{"day length", func(c *config.Config) { c.Time.DayLength = 0 }, "time.day_length"},
		{"year order", func(c *config.Config) { c.Timeline.MinYear = 6000 }, "timeline.min_year"},
		{"start year", func(c *config.Config) { c.Timeline.StartYear = 9000 }, "timeline.start_year"},
		{"respawn", func(c *config.Config) { c.NPC.RespawnSeconds = -1 }, "npc.respawn_seconds"},
		{"replan", func(c *config.Config) { c.NPC.ReplanSeconds = 0 }, "npc.replan_seconds"},
		{"walk speed", func(c *config.Config) { c.Player.WalkSpeed = 0 }, "player.walk_speed"},
		{"workers", func(c *config.Config) {
			c.Integration.BaseURL = "http://x"
			c.Integration.Workers = 0
		}, "integration.workers"},
		{"timeout", func(c *config.Config) {
			c.Integration.BaseURL = "http://x"
			c.Integration.Timeout = 0
		}, "integration.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
			errutil.AssertErrorContext(t, err, "key", tt.key)
		})
	}
}

func TestOfflineIntegrationSkipsChecks(t *testing.T) {
	cfg := config.Default()
	cfg.Integration.Workers = 0
	assert.NoError(t, cfg.Validate())
}

func TestYAMLRoundTrip(t *testing.T) {
	want := config.Default()
	want.Log.Level = "debug"
	want.Integration.Timeout = 90 * time.Second
	want.Saves.Dir = "/tmp/saves"

	out, err := want.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "timeout: 1m30s")

	got, err := config.Load(config.LoadOptions{Path: writeFile(t, string(out)), Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
