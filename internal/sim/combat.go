// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"math"

	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/player"
)

const (
	unarmedReach    float32 = 2.5
	heavyReachBonus float32 = 0.5
	skillRange      float32 = 10
	// Targets closer than this are hit regardless of facing.
	pointBlank float32 = 0.5
	enemyLevel uint32  = 1
)

var meleeConeCos = float32(math.Cos(math.Pi / 4))

// Hit is damage dealt this frame, either by the player to an NPC or by an
// NPC to the player.
type Hit struct {
	NPC      npc.ID
	ToPlayer bool
	Amount   float32
	Event    combat.DamageEvent
	Killed   bool
}

func (s *Simulation) resolveCombat(f *Frame, dt float32) {
	if s.player.IsAlive() {
		if sk := s.pendingSkill; sk != nil {
			s.pendingSkill = nil
			if id, ok := s.target(skillRange); ok {
				ev := combat.Calculate(s.player.SkillDamageInput(sk, player.Target{}), s.rng)
				s.strike(f, id, ev)
			}
		}
		if !s.player.IsChargingHeavy() && s.player.CanDealDamage() {
			if id, ok := s.target(s.reach()); ok && s.player.ConsumeHit() {
				ev := combat.Calculate(s.player.AttackDamageInput(player.Target{}), s.rng)
				s.strike(f, id, ev)
			}
		}
	}

	for _, a := range s.npcs.EnemyAttacks(dt, s.position, 0) {
		if taken := s.player.TakeDamage(a.Damage); taken > 0 {
			f.Hits = append(f.Hits, Hit{NPC: a.ID, ToPlayer: true, Amount: taken})
		}
	}

	if !s.player.IsAlive() {
		f.PlayerDied = true
		s.logger.Info("player died", "position", s.position, "year", s.timeline.ActiveYear())
		s.EndConversation()
		s.player.Respawn()
		s.position = s.cfg.Spawn
		s.snapToGround()
	}
}

func (s *Simulation) reach() float32 {
	r := unarmedReach
	if w := s.player.Equipment.MainWeaponType(); w != nil {
		r = w.AttackRange()
	}
	if s.player.AttackType() == combat.Heavy {
		r += heavyReachBonus
	}
	return r
}

// target picks the closest hostile within reach and inside the facing
// cone.
func (s *Simulation) target(reach float32) (npc.ID, bool) {
	var (
		best  npc.ID
		found bool
		bestD float32
	)
	for _, n := range s.npcs.NPCs() {
		if n.Data.Faction != npc.Hostile {
			continue
		}
		if _, ok := s.npcs.CombatStats(n.ID); !ok {
			continue
		}
		to := n.Position.Sub(s.position)
		to[1] = 0
		d := to.Len()
		if d > reach {
			continue
		}
		if d > pointBlank && s.forward.Dot(to.Mul(1/d)) < meleeConeCos {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = n.ID, d, true
		}
	}
	return best, found
}

// strike applies a calculated hit to an NPC. The NPC's own armor is
// subtracted by its stats.
func (s *Simulation) strike(f *Frame, id npc.ID, ev combat.DamageEvent) {
	cs, ok := s.npcs.CombatStats(id)
	if !ok {
		return
	}
	before := cs.CurrentHP
	killed, ok := s.npcs.DamageNPC(id, ev.FinalAmount)
	if !ok {
		return
	}
	amount := before
	if !killed {
		amount = before - cs.CurrentHP
	}
	f.Hits = append(f.Hits, Hit{NPC: id, Amount: amount, Event: ev, Killed: killed})
	if killed {
		f.LevelsGained = append(f.LevelsGained, s.player.AddXP(player.XPForEnemy(enemyLevel, player.Normal))...)
		gold := player.GoldForEnemy(enemyLevel)
		s.player.AddGold(gold)
		f.GoldGained += gold
	}
}
