// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package npc spawns chunk-bound NPCs, drives them with GOAP brains or a
// simple wander machine, and tracks enemy combat stats and respawns.
package npc

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/goap"
)

// ID identifies an NPC instance. Ids increase monotonically from 1.
type ID uint64

// String implements fmt.Stringer.
func (id ID) String() string { return fmt.Sprintf("npc#%d", uint64(id)) }

// Role is what the NPC does in the world.
type Role = goap.Role

// Roles.
const (
	Villager   = goap.Villager
	Guard      = goap.Guard
	Shopkeeper = goap.Shopkeeper
	QuestGiver = goap.QuestGiver
	Enemy      = goap.Enemy
)

// Faction groups NPCs by disposition toward the player.
type Faction uint8

// Factions.
const (
	Friendly Faction = iota
	Neutral
	Hostile
)

// String implements fmt.Stringer.
func (f Faction) String() string {
	switch f {
	case Friendly:
		return "friendly"
	case Neutral:
		return "neutral"
	case Hostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// Data is the static definition of an NPC.
type Data struct {
	Name              string
	Role              Role
	Faction           Faction
	Home              mgl32.Vec3
	WanderRadius      float32
	InteractionRadius float32
	// YearRange limits spawning to [min, max] when set.
	YearRange *[2]int64
}

// SpawnsIn reports whether the NPC may appear in year.
func (d *Data) SpawnsIn(year int64) bool {
	if d.YearRange == nil {
		return true
	}
	return year >= d.YearRange[0] && year <= d.YearRange[1]
}

// Instance is a live NPC.
type Instance struct {
	ID         ID
	Data       Data
	Position   mgl32.Vec3
	Velocity   mgl32.Vec3
	Yaw        float32
	Chunk      chunk.Coord
	SpawnIndex int
	Brain      *goap.Brain
	Behavior   *Behavior
}

// Name returns the display name.
func (n *Instance) Name() string { return n.Data.Name }

// Key identifies the NPC across respawns and chunk reloads. Relationship
// memory is stored under it.
func (n *Instance) Key() string {
	return fmt.Sprintf("%s@%d,%d#%d", n.Data.Name, n.Chunk.X, n.Chunk.Z, n.SpawnIndex)
}

// IsInteractable reports whether the player can talk to the NPC.
func (n *Instance) IsInteractable() bool {
	return n.Data.Faction != Hostile || n.Data.Role != Enemy
}

// CurrentAction returns the name of the brain's current action, or "".
func (n *Instance) CurrentAction() string {
	if n.Brain == nil {
		return ""
	}
	if a, ok := n.Brain.CurrentAction(); ok {
		return a.Name
	}
	return ""
}
