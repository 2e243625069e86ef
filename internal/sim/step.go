// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/interaction"
	"github.com/riftwalk/riftwalk/internal/npc"
)

// Input is one frame of player intent.
type Input struct {
	// Delta is the raw frame time in seconds before clamping and scaling.
	Delta float32
	// Move is the desired horizontal direction; its length is clamped to 1.
	Move mgl32.Vec3
	// Forward turns the player when non-zero.
	Forward     mgl32.Vec3
	LightAttack bool
	HeavyAttack bool
	Dodge       bool
	Interact    bool
	Skills      [combat.MaxSkillSlots]bool
}

// Frame reports what happened during one Step.
type Frame struct {
	Number          uint64
	Delta           float32
	ChunkEvents     []chunk.Event
	Spawned         []npc.ID
	Hits            []Hit
	Interaction     interaction.Result
	LevelsGained    []uint32
	GoldGained      uint64
	DOT             float32
	PlayerDied      bool
	DialogueUpdated bool
	// Err is the failure of an action triggered this frame, such as a
	// portal to a year outside the timeline.
	Err error
}

// Step advances the simulation by one frame.
func (s *Simulation) Step(in Input) Frame {
	dt := s.clock.Tick(in.Delta)
	f := Frame{Number: s.clock.Frames(), Delta: dt}

	f.DOT = s.player.Update(dt)

	s.applyInput(&f, in, dt)

	events := s.chunks.Update(s.position)
	f.ChunkEvents = append(f.ChunkEvents, events...)
	s.snapToGround()
	if !s.hubPlaced {
		s.placeHub()
	}
	f.Spawned = append(f.Spawned, s.handleChunkEvents(events)...)

	s.npcs.Update(dt, s.position, s.chunks.HeightFunc())
	s.schedule.Run(s.world, dt)

	s.refreshInteractables()

	s.resolveCombat(&f, dt)

	if s.sessions != nil && s.sessions.Poll() {
		f.DialogueUpdated = true
	}
	s.dropLostConversation()

	FrameSeconds.Observe(float64(dt))
	s.playTime += float64(dt)
	if s.cfg.DayLength > 0 {
		s.timeOfDay += dt * 24 / s.cfg.DayLength
		for s.timeOfDay >= 24 {
			s.timeOfDay -= 24
		}
	}
	return f
}

func (s *Simulation) applyInput(f *Frame, in Input, dt float32) {
	s.Face(in.Forward)

	if move := (mgl32.Vec3{in.Move.X(), 0, in.Move.Z()}); move.Len() > 0 && !s.IsTalking() && !s.player.Status.IsMovementPrevented() {
		if move.Len() > 1 {
			move = move.Normalize()
		}
		speed := s.cfg.WalkSpeed * max(s.player.EffectiveStats().Speed, 0)
		s.position = s.position.Add(move.Mul(speed * dt))
	}

	if in.Dodge {
		s.player.TryDodge()
	}
	switch {
	case in.HeavyAttack:
		s.player.TryHeavyAttack()
	case in.LightAttack:
		s.player.TryLightAttack()
	}
	for i, pressed := range in.Skills {
		if !pressed {
			continue
		}
		if sk, ok := s.player.TryUseSkill(i); ok {
			s.pendingSkill = sk
			break
		}
	}

	if in.Interact {
		if res, ok := s.interactions.Interact(); ok {
			f.Interaction = res
			if err := s.handleResult(res); err != nil {
				f.Err = err
			}
		}
	}
}

func (s *Simulation) handleResult(res interaction.Result) error {
	switch r := res.(type) {
	case interaction.ChangeTimePeriod:
		_, err := s.TravelToYear(r.Year)
		return err
	case interaction.PickupItem:
		s.collected = append(s.collected, r.ItemName)
		s.logger.Info("item collected", "item", r.ItemName)
		return s.stash(r.ItemName)
	case interaction.OpenContainer:
		s.collected = append(s.collected, r.Items...)
		var errs []error
		for _, name := range r.Items {
			errs = append(errs, s.stash(name))
		}
		return errors.Join(errs...)
	case interaction.ToggleLever:
		s.interactions.TriggerLinked(r.Linked)
	case interaction.TalkToNPC:
		return s.StartConversation(npc.ID(r.NPCID))
	}
	return nil
}

// stash puts one copy of the named loot into the player's inventory.
func (s *Simulation) stash(name string) error {
	if _, err := s.player.Inventory.Add(combat.LootItem(name)); err != nil {
		s.logger.Warn("item not stored", "item", name, "slots", s.player.Inventory.Len())
		return err
	}
	return nil
}

func (s *Simulation) handleChunkEvents(events []chunk.Event) []npc.ID {
	var spawned []npc.ID
	year := s.timeline.ActiveYear()
	height := s.chunks.HeightFunc()
	for _, ev := range events {
		switch ev.Kind {
		case chunk.Loaded:
			spawned = append(spawned, s.npcs.OnChunkLoaded(ev.Coord, height, year)...)
		case chunk.Unloaded:
			s.npcs.OnChunkUnloaded(ev.Coord)
		}
	}
	return spawned
}

// refreshInteractables swaps last frame's NPC interactables for the
// current ones and recomputes the focus.
func (s *Simulation) refreshInteractables() {
	s.interactions.Retain(func(it interaction.Interactable) bool {
		_, isNPC := it.Kind.(interaction.NPC)
		return !isNPC
	})
	for _, n := range s.npcs.NPCs() {
		if n.IsInteractable() {
			s.interactions.Add(interaction.NewNPC(n.Position, uint64(n.ID), n.Data.Name, n.Data.InteractionRadius))
		}
	}
	s.interactions.Update(s.position, s.forward)
}
