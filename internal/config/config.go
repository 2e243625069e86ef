// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package config loads riftwalk's layered configuration: compiled defaults,
// then an optional YAML file, then DATABASE_URL, then command-line flags.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/terrain"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// Config is the full runtime configuration.
type Config struct {
	Log         LogConfig         `koanf:"log"`
	Chunk       chunk.Config      `koanf:"chunk"`
	Terrain     terrain.Config    `koanf:"terrain"`
	Time        TimeConfig        `koanf:"time"`
	Timeline    TimelineConfig    `koanf:"timeline"`
	NPC         npc.Config        `koanf:"npc"`
	Player      PlayerConfig      `koanf:"player"`
	Integration IntegrationConfig `koanf:"integration"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Database    DatabaseConfig    `koanf:"database"`
	Saves       SavesConfig       `koanf:"saves"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// TimeConfig tunes the frame clock.
type TimeConfig struct {
	MaxDelta  float32 `koanf:"max_delta"`
	TimeScale float32 `koanf:"time_scale"`
	// DayLength is the real seconds per in-game day.
	DayLength float32 `koanf:"day_length"`
}

// TimelineConfig bounds time travel.
type TimelineConfig struct {
	MinYear   int64 `koanf:"min_year"`
	MaxYear   int64 `koanf:"max_year"`
	StartYear int64 `koanf:"start_year"`
}

// PlayerConfig describes the local character.
type PlayerConfig struct {
	Name      string  `koanf:"name"`
	WalkSpeed float32 `koanf:"walk_speed"`
}

// IntegrationConfig points at the backend. An empty BaseURL runs offline.
type IntegrationConfig struct {
	BaseURL   string        `koanf:"base_url"`
	ProjectID string        `koanf:"project_id"`
	Workers   int           `koanf:"workers"`
	QueueSize int           `koanf:"queue_size"`
	Timeout   time.Duration `koanf:"timeout"`
	Retries   uint64        `koanf:"retries"`
}

// MetricsConfig is the observability listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig is the Postgres store.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// SavesConfig locates save slots. An empty Dir means the XDG data dir.
type SavesConfig struct {
	Dir string `koanf:"dir"`
}

// Default returns the compiled defaults.
func Default() Config {
	return Config{
		Log:     LogConfig{Format: "json", Level: "info"},
		Chunk:   chunk.DefaultConfig(),
		Terrain: terrain.DefaultConfig(),
		Time:    TimeConfig{MaxDelta: timeline.DefaultMaxDelta, TimeScale: 1, DayLength: 600},
		Timeline: TimelineConfig{
			MinYear:   timeline.DefaultMinYear,
			MaxYear:   timeline.DefaultMaxYear,
			StartYear: timeline.DefaultStartYear,
		},
		NPC:    npc.DefaultConfig(),
		Player: PlayerConfig{Name: "Traveler", WalkSpeed: 5},
		Integration: IntegrationConfig{
			Workers:   2,
			QueueSize: 64,
			Timeout:   30 * time.Second,
			Retries:   3,
		},
		Metrics: MetricsConfig{Addr: "127.0.0.1:9100"},
	}
}

// flagKeys maps command-line flags onto config keys. Flags not listed
// here are command options, not configuration.
var flagKeys = map[string]string{
	"log-format":      "log.format",
	"log-level":       "log.level",
	"metrics-addr":    "metrics.addr",
	"year":            "timeline.start_year",
	"walk-speed":      "player.walk_speed",
	"player-name":     "player.name",
	"database-url":    "database.url",
	"saves-dir":       "saves.dir",
	"integration-url": "integration.base_url",
}

// LoadOptions says where to look.
type LoadOptions struct {
	// Path is the YAML file. A missing file is skipped unless Required.
	Path     string
	Required bool
	Flags    *pflag.FlagSet
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Load layers the configuration sources and validates the result.
func Load(opts LoadOptions) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(defaults{Default()}, nil); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrapf(err, "load defaults")
	}

	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err == nil {
			if err := k.Load(file.Provider(opts.Path), kyaml.Parser()); err != nil {
				return Config{}, oops.Code("CONFIG_INVALID").With("path", opts.Path).Wrapf(err, "parse config file")
			}
		} else if !errors.Is(err, fs.ErrNotExist) || opts.Required {
			return Config{}, oops.Code("CONFIG_NOT_FOUND").With("path", opts.Path).Wrapf(err, "read config file")
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if url := getenv("DATABASE_URL"); url != "" {
		if err := k.Set("database.url", url); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").Wrapf(err, "apply DATABASE_URL")
		}
	}

	if opts.Flags != nil {
		flags := opts.Flags
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").Wrapf(err, "apply flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// YAML renders cfg the way a config file would spell it.
func (c Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c.toMap())
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrapf(err, "render config")
	}
	return b, nil
}

// defaults is a koanf provider for a Config value.
type defaults struct{ cfg Config }

func (defaults) ReadBytes() ([]byte, error) {
	return nil, errors.New("defaults provider does not read bytes")
}

func (d defaults) Read() (map[string]any, error) { return d.cfg.toMap(), nil }

func (c Config) toMap() map[string]any {
	return map[string]any{
		"log": map[string]any{"format": c.Log.Format, "level": c.Log.Level},
		"chunk": map[string]any{
			"size":          c.Chunk.ChunkSize,
			"subdivisions":  c.Chunk.Subdivisions,
			"load_radius":   c.Chunk.LoadRadius,
			"unload_radius": c.Chunk.UnloadRadius,
		},
		"terrain": map[string]any{
			"size":         c.Terrain.Size,
			"subdivisions": c.Terrain.Subdivisions,
			"max_height":   c.Terrain.MaxHeight,
			"noise_scale":  c.Terrain.NoiseScale,
			"seed":         c.Terrain.Seed,
			"octaves":      c.Terrain.Octaves,
			"persistence":  c.Terrain.Persistence,
			"lacunarity":   c.Terrain.Lacunarity,
		},
		"time": map[string]any{
			"max_delta":  c.Time.MaxDelta,
			"time_scale": c.Time.TimeScale,
			"day_length": c.Time.DayLength,
		},
		"timeline": map[string]any{
			"min_year":   c.Timeline.MinYear,
			"max_year":   c.Timeline.MaxYear,
			"start_year": c.Timeline.StartYear,
		},
		"npc": map[string]any{
			"respawn_seconds": c.NPC.RespawnSeconds,
			"replan_seconds":  c.NPC.ReplanSeconds,
			"disable_brains":  c.NPC.DisableBrains,
		},
		"player": map[string]any{"name": c.Player.Name, "walk_speed": c.Player.WalkSpeed},
		"integration": map[string]any{
			"base_url":   c.Integration.BaseURL,
			"project_id": c.Integration.ProjectID,
			"workers":    c.Integration.Workers,
			"queue_size": c.Integration.QueueSize,
			"timeout":    c.Integration.Timeout.String(),
			"retries":    c.Integration.Retries,
		},
		"metrics":  map[string]any{"addr": c.Metrics.Addr},
		"database": map[string]any{"url": c.Database.URL},
		"saves":    map[string]any{"dir": c.Saves.Dir},
	}
}
