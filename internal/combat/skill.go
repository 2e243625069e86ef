// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

// MaxSkillSlots is the size of a combatant's skill bar.
const MaxSkillSlots = 4

// Skill is an active ability or a passive bonus.
type Skill struct {
	ID         uint64        `json:"id"`
	Name       string        `json:"name"`
	Element    Element       `json:"element"`
	BaseDamage float32       `json:"base_damage"`
	Cooldown   float32       `json:"cooldown"`
	ManaCost   float32       `json:"mana_cost"`
	Passive    bool          `json:"passive,omitempty"`
	Modifiers  StatModifiers `json:"modifiers"`
	// StatusDuration is how long the element's proc lasts on hit. Zero
	// disables the proc.
	StatusDuration float32 `json:"status_duration,omitempty"`
}

// SkillSlot holds one skill and its cooldown.
type SkillSlot struct {
	Skill     *Skill
	Remaining float32
}

// TryActivate starts the cooldown of an active skill that is ready.
func (s *SkillSlot) TryActivate() bool {
	if s.Remaining > 0 || s.Skill == nil || s.Skill.Passive {
		return false
	}
	s.Remaining = s.Skill.Cooldown
	return true
}

// Update ticks the cooldown toward zero.
func (s *SkillSlot) Update(dt float32) {
	if s.Remaining > 0 {
		s.Remaining = max(s.Remaining-dt, 0)
	}
}

// OnCooldown reports whether the slot is recharging.
func (s *SkillSlot) OnCooldown() bool { return s.Remaining > 0 }

// CooldownFraction is 1 when ready and 0 right after activation.
func (s *SkillSlot) CooldownFraction() float32 {
	if s.Skill == nil || s.Skill.Passive || s.Skill.Cooldown <= 0 {
		return 1
	}
	return 1 - min(max(s.Remaining/s.Skill.Cooldown, 0), 1)
}
