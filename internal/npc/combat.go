// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package npc

// CombatStats are the fighting numbers of an enemy NPC.
type CombatStats struct {
	MaxHP          float32
	CurrentHP      float32
	Attack         float32
	Defense        float32
	Speed          float32
	AggroRadius    float32
	DeAggroRadius  float32
	AttackRadius   float32
	AttackCooldown float32
	AttackTimer    float32
}

// DefaultEnemyStats returns the stats of a standard enemy.
func DefaultEnemyStats() CombatStats {
	return CombatStats{
		MaxHP:          50,
		CurrentHP:      50,
		Attack:         5,
		Defense:        2,
		Speed:          1.2,
		AggroRadius:    12,
		DeAggroRadius:  20,
		AttackRadius:   2.5,
		AttackCooldown: 1.5,
	}
}

// HPFraction is current over max HP, 0 when max is not positive.
func (s *CombatStats) HPFraction() float32 {
	if s.MaxHP <= 0 {
		return 0
	}
	return s.CurrentHP / s.MaxHP
}

// IsAlive reports whether HP remains.
func (s *CombatStats) IsAlive() bool { return s.CurrentHP > 0 }

// TakeDamage subtracts max(dmg-defense, 1) and returns the amount lost.
func (s *CombatStats) TakeDamage(dmg float32) float32 {
	actual := max(dmg-s.Defense, 1)
	s.CurrentHP = max(s.CurrentHP-actual, 0)
	return actual
}

// DamageAgainst is the damage this attacker deals through defense.
func (s *CombatStats) DamageAgainst(defense float32) float32 {
	return max(s.Attack-defense, 1)
}

// CanAttack reports whether the cooldown has expired.
func (s *CombatStats) CanAttack() bool { return s.AttackTimer <= 0 }

// TickCooldown advances the cooldown. When it expires the timer restarts
// and true is returned.
func (s *CombatStats) TickCooldown(dt float32) bool {
	s.AttackTimer -= dt
	if s.AttackTimer <= 0 {
		s.AttackTimer = s.AttackCooldown
		return true
	}
	return false
}
