// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import (
	"math/rand/v2"
	"strconv"
	"sync"
)

// AttackType selects the light or heavy attack profile.
type AttackType uint8

// Attack types.
const (
	Light AttackType = iota
	Heavy
)

// String implements fmt.Stringer.
func (a AttackType) String() string {
	if a == Heavy {
		return "heavy"
	}
	return "light"
}

// DamageMultiplier is the attack type's scaling factor.
func (a AttackType) DamageMultiplier() float32 {
	if a == Heavy {
		return 1.8
	}
	return 1.0
}

// BaseCooldown is the unarmed cooldown in seconds.
func (a AttackType) BaseCooldown() float32 {
	if a == Heavy {
		return 1.2
	}
	return 0.4
}

// Windup is the delay before the swing lands, in seconds.
func (a AttackType) Windup() float32 {
	if a == Heavy {
		return 0.5
	}
	return 0.1
}

// Cooldown returns the base cooldown divided by the weapon's speed when a
// weapon is equipped.
func (a AttackType) Cooldown(weapon *WeaponType) float32 {
	if weapon == nil {
		return a.BaseCooldown()
	}
	return a.BaseCooldown() / weapon.SpeedMultiplier()
}

// StatModifiers is an additive stat delta from equipment or status.
type StatModifiers struct {
	MaxHP                float32               `json:"max_hp"`
	Attack               float32               `json:"attack"`
	Defense              float32               `json:"defense"`
	Speed                float32               `json:"speed"`
	CritChance           float32               `json:"crit_chance"`
	CritMultiplier       float32               `json:"crit_multiplier"`
	ElementalDamageBonus [ElementCount]float32 `json:"elemental_damage_bonus"`
	ElementalResistance  [ElementCount]float32 `json:"elemental_resistance"`
}

// Add accumulates o into m.
func (m *StatModifiers) Add(o StatModifiers) {
	m.MaxHP += o.MaxHP
	m.Attack += o.Attack
	m.Defense += o.Defense
	m.Speed += o.Speed
	m.CritChance += o.CritChance
	m.CritMultiplier += o.CritMultiplier
	for i := range ElementCount {
		m.ElementalDamageBonus[i] += o.ElementalDamageBonus[i]
		m.ElementalResistance[i] += o.ElementalResistance[i]
	}
}

// Sum returns the total of all given modifiers.
func Sum(mods ...StatModifiers) StatModifiers {
	var total StatModifiers
	for _, m := range mods {
		total.Add(m)
	}
	return total
}

// RandSource yields uniform values in [0, 1).
type RandSource interface {
	Float32() float32
}

type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// DefaultRand returns the process-wide generator.
func DefaultRand() RandSource { return globalRand{} }

// SeededRand is a reproducible generator safe for concurrent use.
type SeededRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewSeededRand returns a generator whose sequence depends only on seed.
func NewSeededRand(seed uint64) *SeededRand {
	return &SeededRand{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float32 implements RandSource.
func (r *SeededRand) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float32()
}

// FixedRand always returns its value.
type FixedRand float32

// Float32 implements RandSource.
func (f FixedRand) Float32() float32 { return float32(f) }

// DamageInput carries every input of the damage pipeline.
type DamageInput struct {
	BaseAttack                float32
	WeaponDamage              float32
	Weapon                    *WeaponType
	Attack                    AttackType
	Element                   Element
	CritChance                float32
	CritMultiplier            float32
	ElementalDamageBonus      float32
	TargetDefense             float32
	TargetElement             Element
	TargetElementalResistance float32
	WeaponWeakness            *WeaponType
}

// DamageEvent is the outcome of one damage calculation.
type DamageEvent struct {
	BaseAmount        float32
	FinalAmount       float32
	Element           Element
	Attack            AttackType
	IsCrit            bool
	ElementMultiplier float32
	WeaponMultiplier  float32
}

// MinDamage is the floor applied after all reductions.
const MinDamage float32 = 1.0

// Calculate runs the damage pipeline. Each step is applied exactly once
// and in this order: attack type, weapon type, weapon weakness, element,
// elemental bonus, crit, defense, resistance, floor.
func Calculate(in DamageInput, rng RandSource) DamageEvent {
	if rng == nil {
		rng = DefaultRand()
	}

	d := in.BaseAttack + in.WeaponDamage
	d *= in.Attack.DamageMultiplier()

	weaponMult := float32(1.0)
	if in.Weapon != nil {
		weaponMult = in.Weapon.DamageMultiplier()
	}
	d *= weaponMult

	if in.Weapon != nil && in.WeaponWeakness != nil && *in.Weapon == *in.WeaponWeakness {
		d *= 1.5
	}

	elemMult := in.Element.Multiplier(in.TargetElement)
	d *= elemMult
	d += in.ElementalDamageBonus

	base := d
	crit := rng.Float32() < in.CritChance
	if crit {
		d *= in.CritMultiplier
	}

	d -= in.TargetDefense * 0.5
	d -= in.TargetElementalResistance
	d = max(d, MinDamage)

	DamageEvents.WithLabelValues(strconv.FormatBool(crit)).Inc()

	return DamageEvent{
		BaseAmount:        base,
		FinalAmount:       d,
		Element:           in.Element,
		Attack:            in.Attack,
		IsCrit:            crit,
		ElementMultiplier: elemMult,
		WeaponMultiplier:  weaponMult,
	}
}
