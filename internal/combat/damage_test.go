// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftwalk/riftwalk/internal/combat"
)

func weapon(t combat.WeaponType) *combat.WeaponType { return &t }

func TestCalculateDamageFloor(t *testing.T) {
	ev := combat.Calculate(combat.DamageInput{
		BaseAttack:    1,
		Attack:        combat.Light,
		Element:       combat.Physical,
		TargetElement: combat.Physical,
		TargetDefense: 100,
	}, combat.FixedRand(0.5))

	assert.Equal(t, float32(1.0), ev.FinalAmount)
	assert.False(t, ev.IsCrit)
}

func TestCalculateHeavyElementalAdvantage(t *testing.T) {
	ev := combat.Calculate(combat.DamageInput{
		BaseAttack:    10,
		Attack:        combat.Heavy,
		Element:       combat.Fire,
		TargetElement: combat.Earth,
	}, combat.FixedRand(0.5))

	assert.InDelta(t, 23.4, ev.FinalAmount, 1e-4)
	assert.InDelta(t, 1.3, ev.ElementMultiplier, 1e-6)
	assert.Equal(t, float32(1.0), ev.WeaponMultiplier)
}

func TestCalculateWeaponWeakness(t *testing.T) {
	ev := combat.Calculate(combat.DamageInput{
		BaseAttack:     10,
		Weapon:         weapon(combat.Sword),
		Attack:         combat.Light,
		Element:        combat.Physical,
		TargetElement:  combat.Physical,
		WeaponWeakness: weapon(combat.Sword),
	}, combat.FixedRand(0.5))

	assert.InDelta(t, 16.5, ev.FinalAmount, 1e-4)
	assert.InDelta(t, 1.1, ev.WeaponMultiplier, 1e-6)
}

func TestCalculateWeaknessIgnoredForOtherWeapon(t *testing.T) {
	ev := combat.Calculate(combat.DamageInput{
		BaseAttack:     10,
		Weapon:         weapon(combat.Axe),
		Attack:         combat.Light,
		WeaponWeakness: weapon(combat.Sword),
	}, combat.FixedRand(0.5))

	assert.InDelta(t, 12.0, ev.FinalAmount, 1e-4)
}

func TestCalculateCritOrdering(t *testing.T) {
	in := combat.DamageInput{
		BaseAttack:                10,
		WeaponDamage:              10,
		Attack:                    combat.Light,
		Element:                   combat.Fire,
		TargetElement:             combat.Fire,
		ElementalDamageBonus:      4,
		CritChance:                0.25,
		CritMultiplier:            2,
		TargetDefense:             8,
		TargetElementalResistance: 3,
	}

	crit := combat.Calculate(in, combat.FixedRand(0.1))
	assert.True(t, crit.IsCrit)
	assert.InDelta(t, 24.0, crit.BaseAmount, 1e-4)
	// (20 + 4) * 2 - 4 - 3
	assert.InDelta(t, 41.0, crit.FinalAmount, 1e-4)

	normal := combat.Calculate(in, combat.FixedRand(0.25))
	assert.False(t, normal.IsCrit)
	assert.InDelta(t, 17.0, normal.FinalAmount, 1e-4)
}

func TestCalculateNeverBelowFloor(t *testing.T) {
	rng := combat.NewSeededRand(7)
	for _, def := range []float32{0, 5, 50, 500} {
		for _, res := range []float32{0, 10, 1000} {
			ev := combat.Calculate(combat.DamageInput{
				BaseAttack:                3,
				Attack:                    combat.Light,
				Element:                   combat.Earth,
				TargetElement:             combat.Fire,
				CritChance:                0.5,
				CritMultiplier:            1.5,
				TargetDefense:             def,
				TargetElementalResistance: res,
			}, rng)
			assert.GreaterOrEqual(t, ev.FinalAmount, combat.MinDamage)
		}
	}
}

func TestSeededRandIsReproducible(t *testing.T) {
	a, b := combat.NewSeededRand(99), combat.NewSeededRand(99)
	for range 10 {
		v := a.Float32()
		assert.Equal(t, v, b.Float32())
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestAttackCooldown(t *testing.T) {
	assert.InDelta(t, 0.4, combat.Light.Cooldown(nil), 1e-6)
	assert.InDelta(t, 1.2, combat.Heavy.Cooldown(nil), 1e-6)
	assert.InDelta(t, 0.4/1.4, combat.Light.Cooldown(weapon(combat.Dagger)), 1e-6)
	assert.Less(t, combat.Light.Cooldown(weapon(combat.Dagger)), combat.Light.Cooldown(weapon(combat.Hammer)))
	assert.Equal(t, float32(0.1), combat.Light.Windup())
	assert.Equal(t, float32(0.5), combat.Heavy.Windup())
}

func TestStatModifiersSum(t *testing.T) {
	a := combat.StatModifiers{Attack: 2, Defense: 1}
	a.ElementalResistance[combat.Fire] = 3
	b := combat.StatModifiers{Attack: 1, Speed: 0.5}
	b.ElementalResistance[combat.Fire] = 1

	total := combat.Sum(a, b)
	assert.Equal(t, float32(3), total.Attack)
	assert.Equal(t, float32(1), total.Defense)
	assert.Equal(t, float32(0.5), total.Speed)
	assert.Equal(t, float32(4), total.ElementalResistance[combat.Fire])
}
