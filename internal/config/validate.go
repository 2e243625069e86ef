// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package config

import (
	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/logging"
)

func invalid(key string, value any) oops.OopsErrorBuilder {
	return oops.Code("CONFIG_INVALID").With("key", key).With("value", value)
}

// Validate reports the first setting that cannot run.
func (c Config) Validate() error {
	if !logging.ValidFormat(c.Log.Format) {
		return invalid("log.format", c.Log.Format).Errorf("log format must be json or text")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level).Errorf("log level must be debug, info, warn or error")
	}

	if c.Chunk.ChunkSize <= 0 {
		return invalid("chunk.size", c.Chunk.ChunkSize).Errorf("chunk size must be positive")
	}
	if c.Chunk.Subdivisions == 0 {
		return invalid("chunk.subdivisions", c.Chunk.Subdivisions).Errorf("chunk subdivisions must be at least 1")
	}
	if c.Chunk.LoadRadius < 0 {
		return invalid("chunk.load_radius", c.Chunk.LoadRadius).Errorf("load radius must not be negative")
	}
	if c.Chunk.UnloadRadius <= c.Chunk.LoadRadius {
		return invalid("chunk.unload_radius", c.Chunk.UnloadRadius).
			With("load_radius", c.Chunk.LoadRadius).
			Errorf("unload radius must be greater than load radius")
	}

	if c.Terrain.Octaves == 0 {
		return invalid("terrain.octaves", c.Terrain.Octaves).Errorf("terrain needs at least one octave")
	}
	if c.Terrain.NoiseScale <= 0 {
		return invalid("terrain.noise_scale", c.Terrain.NoiseScale).Errorf("noise scale must be positive")
	}

	if c.Time.MaxDelta <= 0 {
		return invalid("time.max_delta", c.Time.MaxDelta).Errorf("max delta must be positive")
	}
	if c.Time.TimeScale < 0 {
		return invalid("time.time_scale", c.Time.TimeScale).Errorf("time scale must not be negative")
	}
	if c.Time.DayLength <= 0 {
		return invalid("time.day_length", c.Time.DayLength).Errorf("day length must be positive")
	}

	t := c.Timeline
	if t.MinYear > t.MaxYear {
		return invalid("timeline.min_year", t.MinYear).With("max_year", t.MaxYear).Errorf("min year is after max year")
	}
	if t.StartYear < t.MinYear || t.StartYear > t.MaxYear {
		return invalid("timeline.start_year", t.StartYear).Errorf("start year is outside the timeline")
	}

	if c.NPC.RespawnSeconds < 0 {
		return invalid("npc.respawn_seconds", c.NPC.RespawnSeconds).Errorf("respawn delay must not be negative")
	}
	if c.NPC.ReplanSeconds <= 0 {
		return invalid("npc.replan_seconds", c.NPC.ReplanSeconds).Errorf("replan interval must be positive")
	}

	if c.Player.WalkSpeed <= 0 {
		return invalid("player.walk_speed", c.Player.WalkSpeed).Errorf("walk speed must be positive")
	}

	if c.Integration.BaseURL != "" {
		if c.Integration.Workers < 1 {
			return invalid("integration.workers", c.Integration.Workers).Errorf("integration needs at least one worker")
		}
		if c.Integration.Timeout <= 0 {
			return invalid("integration.timeout", c.Integration.Timeout).Errorf("integration timeout must be positive")
		}
	}
	return nil
}
