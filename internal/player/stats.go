// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package player holds the player's combat state: stats, progression,
// equipment, status effects, skills, and the attack and dodge timers.
package player

import "github.com/riftwalk/riftwalk/internal/combat"

// Stats are a character's combat attributes.
type Stats struct {
	MaxHP          float32        `json:"max_hp"`
	CurrentHP      float32        `json:"current_hp"`
	Attack         float32        `json:"attack"`
	Defense        float32        `json:"defense"`
	Speed          float32        `json:"speed"`
	CritChance     float32        `json:"crit_chance"`
	CritMultiplier float32        `json:"crit_multiplier"`
	Affinity       combat.Element `json:"elemental_affinity"`
	MaxMana        float32        `json:"max_mana"`
	CurrentMana    float32        `json:"current_mana"`
	ManaRegen      float32        `json:"mana_regen"`
}

// DefaultStats returns a fresh level-1 character.
func DefaultStats() Stats {
	return Stats{
		MaxHP:          100,
		CurrentHP:      100,
		Attack:         10,
		Defense:        5,
		Speed:          1,
		CritChance:     0.05,
		CritMultiplier: 1.5,
		Affinity:       combat.Physical,
		MaxMana:        100,
		CurrentMana:    100,
		ManaRegen:      2,
	}
}

// Effective returns s with mods added. Crit chance is clamped to [0, 1].
func (s Stats) Effective(mods combat.StatModifiers) Stats {
	out := s
	out.MaxHP += mods.MaxHP
	out.Attack += mods.Attack
	out.Defense += mods.Defense
	out.Speed += mods.Speed
	out.CritChance = min(max(s.CritChance+mods.CritChance, 0), 1)
	out.CritMultiplier += mods.CritMultiplier
	return out
}

// HPFraction is current over max HP in [0, 1].
func (s *Stats) HPFraction() float32 {
	if s.MaxHP <= 0 {
		return 0
	}
	return min(max(s.CurrentHP/s.MaxHP, 0), 1)
}

// ManaFraction is current over max mana in [0, 1].
func (s *Stats) ManaFraction() float32 {
	if s.MaxMana <= 0 {
		return 0
	}
	return min(max(s.CurrentMana/s.MaxMana, 0), 1)
}

// IsAlive reports whether HP is above zero.
func (s *Stats) IsAlive() bool { return s.CurrentHP > 0 }

// Heal restores amount HP up to max.
func (s *Stats) Heal(amount float32) {
	s.CurrentHP = min(s.CurrentHP+amount, s.MaxHP)
}

// HealPercent restores a fraction of max HP.
func (s *Stats) HealPercent(fraction float32) {
	s.Heal(s.MaxHP * fraction)
}

// UseMana spends cost if enough mana is available.
func (s *Stats) UseMana(cost float32) bool {
	if s.CurrentMana < cost {
		return false
	}
	s.CurrentMana -= cost
	return true
}

// RegenerateMana adds ManaRegen*dt up to max.
func (s *Stats) RegenerateMana(dt float32) {
	s.CurrentMana = min(s.CurrentMana+s.ManaRegen*dt, s.MaxMana)
}

// ApplyGrowth raises stats by one level's growth and fully restores HP
// and mana.
func (s *Stats) ApplyGrowth(g Growth) {
	s.MaxHP += g.HP
	s.Attack += g.Attack
	s.Defense += g.Defense
	s.Speed += g.Speed
	s.CurrentHP = s.MaxHP
	s.CurrentMana = s.MaxMana
}

// Growth is the per-level stat increase.
type Growth struct {
	HP      float32 `json:"hp_per_level"`
	Attack  float32 `json:"attack_per_level"`
	Defense float32 `json:"defense_per_level"`
	Speed   float32 `json:"speed_per_level"`
}

// DefaultGrowth is the stock growth curve.
func DefaultGrowth() Growth {
	return Growth{HP: 10, Attack: 2, Defense: 1}
}
