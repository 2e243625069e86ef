// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package player

import "github.com/riftwalk/riftwalk/internal/combat"

// Timer constants, in seconds.
const (
	DodgeDuration          float32 = 0.3
	DodgeCooldown          float32 = 1.0
	DamageFlashDuration    float32 = 0.3
	HitInvincibility       float32 = 0.5
	RespawnInvincibility   float32 = 1.0
	hitWindowFraction      float32 = 0.5
	defenseReductionFactor float32 = 0.5
)

// State is the player's full combat state.
type State struct {
	Stats       Stats
	Progression Progression
	Growth      Growth
	Equipment   *combat.Equipment
	Inventory   *combat.Inventory
	Gold        uint64
	Status      *combat.StatusManager
	Skills      [combat.MaxSkillSlots]combat.SkillSlot

	attackTimer     float32
	attackCooldown  float32
	attackType      combat.AttackType
	attacking       bool
	hitConsumed     bool
	heavyCharge     float32
	invincibility   float32
	dodgeTimer      float32
	dodgeCooldown   float32
	damageFlash     float32
	lastDamageTaken float32
}

// New returns a level-1 player with default stats and growth.
func New() *State {
	return &State{
		Stats:       DefaultStats(),
		Progression: NewProgression(),
		Growth:      DefaultGrowth(),
		Equipment:   combat.NewEquipment(),
		Inventory:   combat.NewInventory(combat.MaxInventorySize),
		Status:      combat.NewStatusManager(),
	}
}

// Update advances every timer by dt, regenerates mana, ticks skill
// cooldowns and status effects, and returns the damage-over-time taken.
// DOT bypasses defense and the minimum-damage floor.
func (s *State) Update(dt float32) float32 {
	if s.attackTimer > 0 {
		s.attackTimer = max(s.attackTimer-dt, 0)
		if s.attackTimer < s.attackCooldown*hitWindowFraction {
			s.attacking = false
		}
	}
	s.heavyCharge = max(s.heavyCharge-dt, 0)
	s.invincibility = max(s.invincibility-dt, 0)
	s.dodgeCooldown = max(s.dodgeCooldown-dt, 0)
	if s.dodgeTimer > 0 {
		s.dodgeTimer = max(s.dodgeTimer-dt, 0)
		s.invincibility = max(s.invincibility, s.dodgeTimer)
	}
	s.damageFlash = max(s.damageFlash-dt, 0)

	s.Stats.RegenerateMana(dt)
	for i := range s.Skills {
		s.Skills[i].Update(dt)
	}

	dot := s.Status.Update(dt)
	if dot > 0 {
		s.Stats.CurrentHP = max(s.Stats.CurrentHP-dot, 0)
	}
	return dot
}

// TryLightAttack starts a light attack if one is allowed.
func (s *State) TryLightAttack() bool { return s.tryAttack(combat.Light) }

// TryHeavyAttack starts a heavy attack if one is allowed.
func (s *State) TryHeavyAttack() bool {
	if !s.tryAttack(combat.Heavy) {
		return false
	}
	s.heavyCharge = combat.Heavy.Windup()
	return true
}

func (s *State) tryAttack(kind combat.AttackType) bool {
	if s.Status.AreAttacksPrevented() || s.attacking || s.attackTimer > 0 {
		return false
	}
	s.attackCooldown = kind.Cooldown(s.Equipment.MainWeaponType())
	s.attackTimer = s.attackCooldown
	s.attackType = kind
	s.attacking = true
	s.hitConsumed = false
	return true
}

// IsAttacking reports whether the swing is still in its first half.
func (s *State) IsAttacking() bool { return s.attacking }

// AttackType is the type of the current or most recent attack.
func (s *State) AttackType() combat.AttackType { return s.attackType }

// AttackTimer is the time left before another attack may start.
func (s *State) AttackTimer() float32 { return s.attackTimer }

// CanDealDamage is true in the second half of an attack's cooldown.
func (s *State) CanDealDamage() bool {
	return s.attackTimer > 0 && s.attackTimer < s.attackCooldown*hitWindowFraction
}

// ConsumeHit reports whether the current swing may land a hit now. It
// returns true at most once per swing.
func (s *State) ConsumeHit() bool {
	if !s.CanDealDamage() || s.hitConsumed {
		return false
	}
	s.hitConsumed = true
	return true
}

// IsChargingHeavy reports whether a heavy attack is still winding up.
func (s *State) IsChargingHeavy() bool { return s.heavyCharge > 0 }

// IsDodging reports whether a dodge is in progress.
func (s *State) IsDodging() bool { return s.dodgeTimer > 0 }

// IsInvincible reports whether incoming damage is ignored.
func (s *State) IsInvincible() bool { return s.invincibility > 0 }

// DamageFlash is the remaining hit-flash time.
func (s *State) DamageFlash() float32 { return s.damageFlash }

// LastDamageTaken is the HP lost to the most recent hit.
func (s *State) LastDamageTaken() float32 { return s.lastDamageTaken }

// TryDodge starts a dodge unless one is active, cooling down, or movement
// is prevented.
func (s *State) TryDodge() bool {
	if s.IsDodging() || s.dodgeCooldown > 0 || s.Status.IsMovementPrevented() {
		return false
	}
	s.dodgeTimer = DodgeDuration
	s.dodgeCooldown = DodgeCooldown
	s.invincibility = max(s.invincibility, DodgeDuration)
	return true
}

// TakeDamage applies a hit of raw damage and returns the HP lost. Defense
// halves into a flat reduction with a floor of 1; shields absorb what is
// left before HP does. Nothing happens while invincible.
func (s *State) TakeDamage(raw float32) float32 {
	if s.IsInvincible() {
		return 0
	}
	eff := s.EffectiveStats()
	actual := max(raw-eff.Defense*defenseReductionFactor, combat.MinDamage)
	actual = s.Status.AbsorbDamage(actual)
	s.Stats.CurrentHP = max(s.Stats.CurrentHP-actual, 0)
	s.damageFlash = DamageFlashDuration
	s.invincibility = HitInvincibility
	s.lastDamageTaken = actual
	return actual
}

// IsAlive reports whether the player has HP left.
func (s *State) IsAlive() bool { return s.Stats.IsAlive() }

// AddXP grants experience and applies growth for every level gained.
func (s *State) AddXP(amount uint64) []uint32 {
	levels := s.Progression.AddXP(amount)
	for range levels {
		s.Stats.ApplyGrowth(s.Growth)
	}
	return levels
}

// GoldForEnemy is the gold dropped by an enemy of level.
func GoldForEnemy(level uint32) uint64 { return 10 * uint64(level) }

// AddGold adds amount to the purse and returns the new total.
func (s *State) AddGold(amount uint64) uint64 {
	s.Gold += amount
	return s.Gold
}

// SpendGold takes amount from the purse. It reports false and takes
// nothing when the purse is short.
func (s *State) SpendGold(amount uint64) bool {
	if s.Gold < amount {
		return false
	}
	s.Gold -= amount
	return true
}

// Respawn fully restores the player and grants brief invincibility.
func (s *State) Respawn() {
	s.Stats.CurrentHP = s.Stats.MaxHP
	s.Stats.CurrentMana = s.Stats.MaxMana
	s.Status.Clear()
	s.invincibility = RespawnInvincibility
	s.attackTimer = 0
	s.attacking = false
	s.hitConsumed = false
	s.heavyCharge = 0
	s.dodgeTimer = 0
	s.dodgeCooldown = 0
	s.damageFlash = 0
}

// EffectiveStats combines base stats with equipment, status and passive
// skill modifiers.
func (s *State) EffectiveStats() Stats {
	mods := combat.Sum(s.Equipment.TotalModifiers(), s.Status.TotalModifiers())
	for i := range s.Skills {
		if sk := s.Skills[i].Skill; sk != nil && sk.Passive {
			mods.Add(sk.Modifiers)
		}
	}
	return s.Stats.Effective(mods)
}

// Equip places item in slot and returns the previous occupant.
func (s *State) Equip(slot combat.Slot, item *combat.Item) (*combat.Item, error) {
	return s.Equipment.Equip(slot, item)
}

// Unequip empties slot.
func (s *State) Unequip(slot combat.Slot) *combat.Item {
	return s.Equipment.Unequip(slot)
}

// SetSkill places sk in slot i. Out-of-range slots are ignored.
func (s *State) SetSkill(i int, sk *combat.Skill) {
	if i < 0 || i >= len(s.Skills) {
		return
	}
	s.Skills[i] = combat.SkillSlot{Skill: sk}
}

// TryUseSkill activates the active skill in slot i if skills are not
// prevented, the slot is ready and mana covers the cost.
func (s *State) TryUseSkill(i int) (*combat.Skill, bool) {
	if i < 0 || i >= len(s.Skills) || s.Status.AreSkillsPrevented() {
		return nil, false
	}
	slot := &s.Skills[i]
	sk := slot.Skill
	if sk == nil || sk.Passive || slot.OnCooldown() || s.Stats.CurrentMana < sk.ManaCost {
		return nil, false
	}
	if !slot.TryActivate() {
		return nil, false
	}
	s.Stats.UseMana(sk.ManaCost)
	return sk, true
}

// Target describes the defender side of an attack.
type Target struct {
	Defense    float32
	Element    combat.Element
	Resistance float32
	Weakness   *combat.WeaponType
}

// AttackElement is the main-hand weapon's element when it has one, else
// the character's affinity.
func (s *State) AttackElement() combat.Element {
	if it := s.Equipment.Get(combat.MainHand); it != nil && it.Element != combat.Physical {
		return it.Element
	}
	return s.Stats.Affinity
}

// AttackDamageInput builds the damage pipeline input for the current
// attack against target.
func (s *State) AttackDamageInput(target Target) combat.DamageInput {
	eff := s.EffectiveStats()
	mods := combat.Sum(s.Equipment.TotalModifiers(), s.Status.TotalModifiers())
	el := s.AttackElement()
	return combat.DamageInput{
		BaseAttack:                eff.Attack,
		WeaponDamage:              s.Equipment.MainWeaponDamage(),
		Weapon:                    s.Equipment.MainWeaponType(),
		Attack:                    s.attackType,
		Element:                   el,
		CritChance:                eff.CritChance,
		CritMultiplier:            eff.CritMultiplier,
		ElementalDamageBonus:      mods.ElementalDamageBonus[el],
		TargetDefense:             target.Defense,
		TargetElement:             target.Element,
		TargetElementalResistance: target.Resistance,
		WeaponWeakness:            target.Weakness,
	}
}

// SkillDamageInput builds the damage pipeline input for a skill hit.
func (s *State) SkillDamageInput(sk *combat.Skill, target Target) combat.DamageInput {
	in := s.AttackDamageInput(target)
	in.WeaponDamage = sk.BaseDamage
	in.Weapon = nil
	in.WeaponWeakness = nil
	in.Attack = combat.Light
	in.Element = sk.Element
	mods := combat.Sum(s.Equipment.TotalModifiers(), s.Status.TotalModifiers())
	in.ElementalDamageBonus = mods.ElementalDamageBonus[sk.Element]
	return in
}
