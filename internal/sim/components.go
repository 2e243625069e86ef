// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/ecs"
	"github.com/riftwalk/riftwalk/internal/npc"
)

// Transform places an entity in the world.
type Transform struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Health mirrors hit points for rendering and queries.
type Health struct {
	Current float32
	Max     float32
}

// NPCRef links an entity to the NPC it mirrors.
type NPCRef struct {
	ID  npc.ID
	Key string
}

// PlayerTag marks the player entity.
type PlayerTag struct{}

// WorldClock is the frame resource shared with systems.
type WorldClock struct {
	Year      int64
	Era       int
	TimeOfDay float32
	Frame     uint64
}

func (s *Simulation) spawnPlayerEntity() {
	e := s.world.Spawn()
	ecs.Insert(s.world, e, PlayerTag{})
	ecs.Insert(s.world, e, Transform{Position: s.position})
	ecs.Insert(s.world, e, Health{Current: s.player.Stats.CurrentHP, Max: s.player.Stats.MaxHP})
	s.playerEntity = e
	ecs.InsertResource(s.world, WorldClock{Year: s.timeline.ActiveYear(), Era: s.timeline.EraIndex(), TimeOfDay: s.timeOfDay})
}

func (s *Simulation) buildSchedule() *ecs.Schedule {
	sched := &ecs.Schedule{}
	sched.Add(ecs.SystemFunc{Label: "sync_clock", Fn: s.syncClock})
	sched.Add(ecs.SystemFunc{Label: "sync_player", Fn: s.syncPlayer})
	sched.Add(ecs.SystemFunc{Label: "sync_npcs", Fn: s.syncNPCs})
	return sched
}

func (s *Simulation) syncClock(w *ecs.World, _ float32) {
	if c, ok := ecs.Resource[WorldClock](w); ok {
		c.Year = s.timeline.ActiveYear()
		c.Era = s.timeline.EraIndex()
		c.TimeOfDay = s.timeOfDay
		c.Frame = s.clock.Frames()
	}
}

func (s *Simulation) syncPlayer(w *ecs.World, _ float32) {
	if t, ok := ecs.GetMut[Transform](w, s.playerEntity); ok {
		t.Position = s.position
		t.Yaw = s.yaw()
	}
	if h, ok := ecs.GetMut[Health](w, s.playerEntity); ok {
		h.Current = s.player.Stats.CurrentHP
		h.Max = s.player.Stats.MaxHP
	}
}

// syncNPCs keeps one entity per live NPC.
func (s *Simulation) syncNPCs(w *ecs.World, _ float32) {
	for id, e := range s.npcEntities {
		if _, ok := s.npcs.NPC(id); !ok {
			w.Despawn(e)
			delete(s.npcEntities, id)
		}
	}
	for _, n := range s.npcs.NPCs() {
		if _, ok := s.npcEntities[n.ID]; ok {
			continue
		}
		e := w.Spawn()
		ecs.Insert(w, e, NPCRef{ID: n.ID, Key: n.Key()})
		ecs.Insert(w, e, Transform{})
		if cs, ok := s.npcs.CombatStats(n.ID); ok {
			ecs.Insert(w, e, Health{Current: cs.CurrentHP, Max: cs.MaxHP})
		}
		s.npcEntities[n.ID] = e
	}

	ecs.NewQuery2[Transform, NPCRef](w, ecs.Write, ecs.Read).Each(func(_ ecs.Entity, t *Transform, ref *NPCRef) {
		if n, ok := s.npcs.NPC(ref.ID); ok {
			t.Position = n.Position
			t.Yaw = n.Yaw
		}
	})
	ecs.NewQuery2[Health, NPCRef](w, ecs.Write, ecs.Read).Each(func(_ ecs.Entity, h *Health, ref *NPCRef) {
		if cs, ok := s.npcs.CombatStats(ref.ID); ok {
			h.Current = cs.CurrentHP
			h.Max = cs.MaxHP
		}
	})
}

// NPCEntity returns the entity mirroring id.
func (s *Simulation) NPCEntity(id npc.ID) (ecs.Entity, bool) {
	e, ok := s.npcEntities[id]
	return e, ok
}

// NPCEntities returns the mirrored NPC ids in ascending order.
func (s *Simulation) NPCEntities() []npc.ID {
	ids := make([]npc.ID, 0, len(s.npcEntities))
	for id := range s.npcEntities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
