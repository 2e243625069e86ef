// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package combat turns attacker and defender state into damage events and
// tracks status effects, items, equipment, and skills.
package combat

// Element is a damage affinity.
type Element uint8

// Elements, in the order used by per-element modifier arrays.
const (
	Physical Element = iota
	Fire
	Earth
	Water
	Air
	Void
	Meta
)

// ElementCount is the number of elements.
const ElementCount = 7

// Elements lists every element in index order.
func Elements() []Element {
	return []Element{Physical, Fire, Earth, Water, Air, Void, Meta}
}

// String implements fmt.Stringer.
func (e Element) String() string {
	switch e {
	case Physical:
		return "Physical"
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Water:
		return "Water"
	case Air:
		return "Air"
	case Void:
		return "Void"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

// StrongAgainst reports whether e gets the advantage multiplier on target.
func (e Element) StrongAgainst(target Element) bool {
	switch e {
	case Fire:
		return target == Earth
	case Earth:
		return target == Air
	case Air:
		return target == Water
	case Water:
		return target == Fire
	case Void:
		return target == Physical || target == Fire || target == Earth || target == Water || target == Air
	case Meta:
		return target == Void
	default:
		return false
	}
}

// WeakAgainst reports whether target is strong against e.
func (e Element) WeakAgainst(target Element) bool {
	return target.StrongAgainst(e)
}

// Multiplier returns the damage multiplier for an e attack on a target
// element. Physical is neutral in both directions except Void→Physical.
func (e Element) Multiplier(target Element) float32 {
	switch {
	case e == Void && target == Physical:
		return 1.3
	case e == Physical || target == Physical:
		return 1.0
	case e == Meta && target == Void:
		return 1.5
	case e.StrongAgainst(target):
		return 1.3
	case e.WeakAgainst(target):
		return 0.7
	default:
		return 1.0
	}
}

// Proc returns the status kind an element inflicts, if any.
func (e Element) Proc() (StatusKind, bool) {
	switch e {
	case Fire:
		return Burning, true
	case Water:
		return Frozen, true
	case Air:
		return Shocked, true
	case Earth:
		return Rooted, true
	case Void:
		return Silenced, true
	case Meta:
		return Blessed, true
	default:
		return 0, false
	}
}
