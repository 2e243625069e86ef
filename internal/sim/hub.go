// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/interaction"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// Hub layout around the spawn point, as horizontal (x, z) offsets.
const (
	hubPortalRadius float32 = 12
	hubWelcome              = "Welcome, traveler. Each portal leads to another age."
)

var (
	hubSignOffset      = mgl32.Vec2{0, 5}
	hubDoorOffset      = mgl32.Vec2{6, -4}
	hubLeverOffset     = mgl32.Vec2{3, -4}
	hubButtonOffset    = mgl32.Vec2{-3, -4}
	hubContainerOffset = mgl32.Vec2{-6, -4}
	hubPickupOffset    = mgl32.Vec2{0, -8}
	hubContainerItems  = []string{"Health Potion", "Ancient Coin"}
)

// HubPickup is the item lying in the hub until collected.
const HubPickup = "Time Shard"

// PortalOffset is the (x, z) offset of the portal to era i from the spawn
// point.
func PortalOffset(i int) mgl32.Vec2 {
	a := float64(i) * math.Pi / 3
	return mgl32.Vec2{hubPortalRadius * float32(math.Cos(a)), hubPortalRadius * float32(math.Sin(a))}
}

// buildHub registers the stateful hub objects once so their ids are
// stable across saves, then keeps the list as templates for placement.
func (s *Simulation) buildHub() {
	at := func(o mgl32.Vec2) mgl32.Vec3 {
		return mgl32.Vec3{s.cfg.Spawn.X() + o.X(), 0, s.cfg.Spawn.Z() + o.Y()}
	}

	s.interactions.Add(interaction.NewSign(at(hubSignOffset), hubWelcome))
	for i := range timeline.EraCount {
		s.interactions.Add(interaction.NewTimePortal(at(PortalOffset(i)), timeline.EraYear(i), timeline.EraName(i)))
	}
	door := s.interactions.AddDoor(at(hubDoorOffset), true)
	s.interactions.AddLever(at(hubLeverOffset), []interaction.ID{door})
	s.interactions.AddButton(at(hubButtonOffset))
	s.interactions.AddContainer(at(hubContainerOffset), hubContainerItems)
	s.interactions.Add(interaction.NewPickup(at(hubPickupOffset), HubPickup))

	s.hub = s.interactions.Items()
	s.interactions.Clear()
}

// placeHub puts the hub on the current terrain. Collected pickups stay
// gone.
func (s *Simulation) placeHub() {
	s.interactions.Clear()
	for _, it := range s.hub {
		if p, ok := it.Kind.(interaction.Pickup); ok && slices.Contains(s.collected, p.ItemName) {
			continue
		}
		it.Position[1] = s.chunks.HeightAt(it.Position.X(), it.Position.Z())
		s.interactions.Add(it)
	}
	s.hubPlaced = true
}
