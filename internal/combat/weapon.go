// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

// WeaponType is one of the fifteen weapon families.
type WeaponType uint8

// Weapon types.
const (
	Sword WeaponType = iota
	Axe
	Mace
	Dagger
	Spear
	Bow
	Staff
	Wand
	Halberd
	Crossbow
	Greatsword
	DualBlades
	Scythe
	Hammer
	Whip
)

// Grip is how many hands a weapon occupies.
type Grip uint8

// Grips.
const (
	OneHanded Grip = iota
	TwoHanded
)

// RangeType distinguishes melee from ranged weapons.
type RangeType uint8

// Range types.
const (
	Melee RangeType = iota
	Ranged
)

type weaponSpec struct {
	name   string
	speed  float32
	damage float32
	reach  float32
	grip   Grip
	kind   RangeType
}

var weaponTable = [...]weaponSpec{
	Sword:      {"Sword", 1.0, 1.1, 2.5, OneHanded, Melee},
	Axe:        {"Axe", 0.85, 1.2, 2.5, OneHanded, Melee},
	Mace:       {"Mace", 0.8, 1.15, 2.0, OneHanded, Melee},
	Dagger:     {"Dagger", 1.4, 0.8, 1.5, OneHanded, Melee},
	Spear:      {"Spear", 0.9, 1.05, 3.5, OneHanded, Melee},
	Bow:        {"Bow", 0.95, 1.0, 25.0, TwoHanded, Ranged},
	Staff:      {"Staff", 0.75, 1.3, 3.0, TwoHanded, Melee},
	Wand:       {"Wand", 1.2, 0.9, 15.0, OneHanded, Ranged},
	Halberd:    {"Halberd", 0.7, 1.35, 4.0, TwoHanded, Melee},
	Crossbow:   {"Crossbow", 0.6, 1.4, 30.0, TwoHanded, Ranged},
	Greatsword: {"Greatsword", 0.65, 1.5, 3.0, TwoHanded, Melee},
	DualBlades: {"Dual Blades", 1.3, 0.85, 2.0, OneHanded, Melee},
	Scythe:     {"Scythe", 0.8, 1.25, 3.0, TwoHanded, Melee},
	Hammer:     {"Hammer", 0.55, 1.6, 2.5, TwoHanded, Melee},
	Whip:       {"Whip", 1.1, 0.95, 5.0, OneHanded, Melee},
}

// WeaponTypes lists every weapon type.
func WeaponTypes() []WeaponType {
	out := make([]WeaponType, len(weaponTable))
	for i := range weaponTable {
		out[i] = WeaponType(i)
	}
	return out
}

// String implements fmt.Stringer.
func (w WeaponType) String() string {
	if int(w) >= len(weaponTable) {
		return "Unknown"
	}
	return weaponTable[w].name
}

// SpeedMultiplier divides attack cooldowns.
func (w WeaponType) SpeedMultiplier() float32 { return weaponTable[w].speed }

// DamageMultiplier scales raw damage.
func (w WeaponType) DamageMultiplier() float32 { return weaponTable[w].damage }

// AttackRange is the reach in meters.
func (w WeaponType) AttackRange() float32 { return weaponTable[w].reach }

// Grip reports one- or two-handedness.
func (w WeaponType) Grip() Grip { return weaponTable[w].grip }

// Range reports melee or ranged.
func (w WeaponType) Range() RangeType { return weaponTable[w].kind }

// WeaponData is the weapon-specific part of an item.
type WeaponData struct {
	Type        WeaponType `json:"type"`
	BaseDamage  float32    `json:"base_damage"`
	AttackSpeed float32    `json:"attack_speed"`
}

// NewWeaponData builds weapon data with the type's stock speed.
func NewWeaponData(t WeaponType, baseDamage float32) *WeaponData {
	return &WeaponData{Type: t, BaseDamage: baseDamage, AttackSpeed: t.SpeedMultiplier()}
}
