// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/save"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// Snapshot captures the savable state. The slot store stamps the time.
func (s *Simulation) Snapshot(slot string) save.Data {
	stats, progression := s.player.Stats, s.player.Progression
	return save.Data{
		Version: save.Version,
		Player: save.PlayerData{
			Position:      [3]float32{s.position.X(), s.position.Y(), s.position.Z()},
			RotationYaw:   s.yaw(),
			RotationPitch: s.pitch,
			CharacterName: s.cfg.PlayerName,
		},
		World: save.WorldData{
			EraIndex:  s.timeline.EraIndex(),
			TimeOfDay: s.timeOfDay,
		},
		SlotName:        slot,
		CollectedItems:  slices.Clone(s.collected),
		PlayTimeSeconds: s.playTime,
		Interactions:    s.interactions.Save(),
		Combat: save.CombatData{
			Stats:       &stats,
			Progression: &progression,
			Equipment:   s.player.Equipment.Equipped(),
			Inventory:   s.player.Inventory.Items(),
			Gold:        s.player.Gold,
		},
	}
}

// Restore applies a save. A different era travels to that era's
// representative year first.
func (s *Simulation) Restore(d save.Data) error {
	s.EndConversation()
	if d.World.EraIndex != s.timeline.EraIndex() {
		if _, err := s.TravelToYear(timeline.EraYear(d.World.EraIndex)); err != nil {
			return err
		}
	}

	if err := s.restoreCombat(d.Combat); err != nil {
		return err
	}
	s.interactions.Load(d.Interactions)
	s.collected = slices.Clone(d.CollectedItems)
	s.playTime = d.PlayTimeSeconds
	s.timeOfDay = d.World.TimeOfDay
	s.pitch = d.Player.RotationPitch
	if d.Player.CharacterName != "" {
		s.cfg.PlayerName = d.Player.CharacterName
	}

	yaw := float64(d.Player.RotationYaw)
	s.forward = mgl32.Vec3{float32(math.Sin(yaw)), 0, float32(math.Cos(yaw))}
	s.position = mgl32.Vec3(d.Player.Position)
	if s.hubPlaced {
		s.placeHub()
	}
	s.logger.Info("save restored", "slot", d.SlotName, "era", s.timeline.EraName())
	return nil
}

func (s *Simulation) restoreCombat(c save.CombatData) error {
	if err := s.player.Equipment.Restore(c.Equipment); err != nil {
		return oops.Code("SAVE_INVALID").Wrapf(err, "restore equipment")
	}
	if err := s.player.Inventory.Replace(c.Inventory); err != nil {
		return oops.Code("SAVE_INVALID").Wrapf(err, "restore inventory")
	}
	if c.Stats != nil {
		s.player.Stats = *c.Stats
	}
	if c.Progression != nil {
		s.player.Progression = *c.Progression
	}
	s.player.Gold = c.Gold
	return nil
}

// PlayerName returns the character name.
func (s *Simulation) PlayerName() string { return s.cfg.PlayerName }
