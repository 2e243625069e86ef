// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftwalk/riftwalk/internal/combat"
)

func TestElementMultiplier(t *testing.T) {
	tests := []struct {
		attacker, target combat.Element
		want             float32
	}{
		{combat.Fire, combat.Earth, 1.3},
		{combat.Earth, combat.Air, 1.3},
		{combat.Air, combat.Water, 1.3},
		{combat.Water, combat.Fire, 1.3},
		{combat.Earth, combat.Fire, 0.7},
		{combat.Fire, combat.Water, 0.7},
		{combat.Fire, combat.Fire, 1.0},
		{combat.Fire, combat.Air, 1.0},
		{combat.Void, combat.Physical, 1.3},
		{combat.Void, combat.Fire, 1.3},
		{combat.Void, combat.Air, 1.3},
		{combat.Fire, combat.Void, 0.7},
		{combat.Meta, combat.Void, 1.5},
		{combat.Void, combat.Meta, 0.7},
		{combat.Meta, combat.Fire, 1.0},
		{combat.Physical, combat.Void, 1.0},
		{combat.Physical, combat.Meta, 1.0},
		{combat.Fire, combat.Physical, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.attacker.String()+"_vs_"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attacker.Multiplier(tt.target))
		})
	}
}

func TestPhysicalAttackerIsNeutral(t *testing.T) {
	for _, e := range combat.Elements() {
		assert.Equal(t, float32(1.0), combat.Physical.Multiplier(e), "vs %s", e)
	}
}

func TestElementProcs(t *testing.T) {
	want := map[combat.Element]combat.StatusKind{
		combat.Fire:  combat.Burning,
		combat.Water: combat.Frozen,
		combat.Air:   combat.Shocked,
		combat.Earth: combat.Rooted,
		combat.Void:  combat.Silenced,
		combat.Meta:  combat.Blessed,
	}
	for el, kind := range want {
		got, ok := el.Proc()
		assert.True(t, ok)
		assert.Equal(t, kind, got, "element %s", el)
	}
	_, ok := combat.Physical.Proc()
	assert.False(t, ok)
}

func TestWeaponCatalogue(t *testing.T) {
	types := combat.WeaponTypes()
	assert.Len(t, types, 15)

	for _, w := range types {
		assert.GreaterOrEqual(t, combat.Dagger.SpeedMultiplier(), w.SpeedMultiplier(), w.String())
		assert.LessOrEqual(t, combat.Hammer.SpeedMultiplier(), w.SpeedMultiplier(), w.String())
		assert.GreaterOrEqual(t, combat.Hammer.DamageMultiplier(), w.DamageMultiplier(), w.String())
		assert.LessOrEqual(t, combat.Dagger.DamageMultiplier(), w.DamageMultiplier(), w.String())
		assert.LessOrEqual(t, w.AttackRange(), combat.Crossbow.AttackRange())
		assert.GreaterOrEqual(t, w.AttackRange(), combat.Dagger.AttackRange())
	}

	twoHanded := []combat.WeaponType{
		combat.Greatsword, combat.Halberd, combat.Hammer, combat.Scythe,
		combat.Staff, combat.Bow, combat.Crossbow,
	}
	for _, w := range twoHanded {
		assert.Equal(t, combat.TwoHanded, w.Grip(), w.String())
	}
	assert.Equal(t, combat.OneHanded, combat.Sword.Grip())
	assert.Equal(t, combat.OneHanded, combat.Wand.Grip())

	assert.Equal(t, combat.Ranged, combat.Bow.Range())
	assert.Equal(t, combat.Ranged, combat.Crossbow.Range())
	assert.Equal(t, combat.Ranged, combat.Wand.Range())
	assert.Equal(t, combat.Melee, combat.Spear.Range())
	assert.Equal(t, "Dual Blades", combat.DualBlades.String())
}

func TestNewWeaponData(t *testing.T) {
	w := combat.NewWeaponData(combat.Sword, 15)
	assert.Equal(t, combat.Sword, w.Type)
	assert.Equal(t, float32(15), w.BaseDamage)
	assert.Equal(t, combat.Sword.SpeedMultiplier(), w.AttackSpeed)
}
