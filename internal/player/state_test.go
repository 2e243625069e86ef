// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/player"
)

func TestLightAttackTimeline(t *testing.T) {
	p := player.New()
	require.True(t, p.TryLightAttack())
	assert.True(t, p.IsAttacking())
	assert.False(t, p.CanDealDamage())
	assert.False(t, p.TryLightAttack(), "already attacking")

	p.Update(0.1)
	assert.True(t, p.IsAttacking())
	assert.False(t, p.CanDealDamage())

	p.Update(0.15)
	assert.False(t, p.IsAttacking())
	assert.True(t, p.CanDealDamage())
	assert.True(t, p.ConsumeHit())
	assert.False(t, p.ConsumeHit(), "one hit per swing")
	assert.False(t, p.TryHeavyAttack(), "cooldown still running")

	p.Update(0.2)
	assert.False(t, p.CanDealDamage())
	assert.True(t, p.TryHeavyAttack())
	assert.Equal(t, combat.Heavy, p.AttackType())
	assert.True(t, p.IsChargingHeavy())
	assert.InDelta(t, 1.2, p.AttackTimer(), 1e-6)
}

func TestWeaponScalesCooldown(t *testing.T) {
	p := player.New()
	_, err := p.Equip(combat.MainHand, combat.NewWeapon(1, "Knife", combat.Dagger, 4, combat.Common))
	require.NoError(t, err)

	require.True(t, p.TryLightAttack())
	assert.InDelta(t, 0.4/1.4, p.AttackTimer(), 1e-6)
}

func TestStunnedCannotAttack(t *testing.T) {
	p := player.New()
	p.Status.Apply(combat.NewControl(combat.Stunned, 2))
	assert.False(t, p.TryLightAttack())
	assert.False(t, p.TryDodge())
	p.SetSkill(0, &combat.Skill{Name: "Bolt", Cooldown: 1, ManaCost: 10})
	_, ok := p.TryUseSkill(0)
	assert.False(t, ok)
}

func TestDodgeGrantsInvincibility(t *testing.T) {
	p := player.New()
	require.True(t, p.TryDodge())
	assert.True(t, p.IsDodging())
	assert.True(t, p.IsInvincible())
	assert.Zero(t, p.TakeDamage(50))
	assert.False(t, p.TryDodge())

	p.Update(0.31)
	assert.False(t, p.IsDodging())
	assert.False(t, p.IsInvincible())
	assert.False(t, p.TryDodge(), "cooldown")

	p.Update(0.7)
	assert.True(t, p.TryDodge())
}

func TestRootedCannotDodge(t *testing.T) {
	p := player.New()
	p.Status.Apply(combat.NewControl(combat.Rooted, 1))
	assert.False(t, p.TryDodge())
}

func TestTakeDamage(t *testing.T) {
	p := player.New()
	got := p.TakeDamage(20)
	// 20 - 5*0.5
	assert.InDelta(t, 17.5, got, 1e-6)
	assert.InDelta(t, 82.5, p.Stats.CurrentHP, 1e-6)
	assert.InDelta(t, player.DamageFlashDuration, p.DamageFlash(), 1e-6)
	assert.True(t, p.IsInvincible())

	assert.Zero(t, p.TakeDamage(20), "invincible after a hit")

	p.Update(0.5)
	assert.Equal(t, float32(1), p.TakeDamage(0), "floor")
}

func TestTakeDamageNeverBelowZero(t *testing.T) {
	p := player.New()
	p.TakeDamage(1000)
	assert.Zero(t, p.Stats.CurrentHP)
	assert.False(t, p.IsAlive())
}

func TestShieldAbsorbsIncomingDamage(t *testing.T) {
	p := player.New()
	p.Status.Apply(combat.NewShielded(10, 5))
	assert.InDelta(t, 7.5, p.TakeDamage(20), 1e-6)
	assert.InDelta(t, 92.5, p.Stats.CurrentHP, 1e-6)
	assert.False(t, p.Status.Has(combat.Shielded))
}

func TestUpdateAppliesDOTAndRegen(t *testing.T) {
	p := player.New()
	p.Stats.CurrentMana = 50
	p.Status.Apply(combat.NewBurning(5))

	dot := p.Update(1)
	assert.Equal(t, float32(5), dot)
	assert.Equal(t, float32(95), p.Stats.CurrentHP)
	assert.Equal(t, float32(52), p.Stats.CurrentMana)
}

func TestSkillUse(t *testing.T) {
	p := player.New()
	p.SetSkill(1, &combat.Skill{Name: "Fireball", Element: combat.Fire, BaseDamage: 20, Cooldown: 3, ManaCost: 30})

	sk, ok := p.TryUseSkill(1)
	require.True(t, ok)
	assert.Equal(t, "Fireball", sk.Name)
	assert.Equal(t, float32(70), p.Stats.CurrentMana)

	_, ok = p.TryUseSkill(1)
	assert.False(t, ok, "cooldown")

	p.Update(3)
	p.Stats.CurrentMana = 10
	_, ok = p.TryUseSkill(1)
	assert.False(t, ok, "not enough mana")

	_, ok = p.TryUseSkill(7)
	assert.False(t, ok)
}

func TestSilencedCannotUseSkills(t *testing.T) {
	p := player.New()
	p.SetSkill(0, &combat.Skill{Name: "Bolt", Cooldown: 1})
	p.Status.Apply(combat.NewControl(combat.Silenced, 2))
	_, ok := p.TryUseSkill(0)
	assert.False(t, ok)
	assert.True(t, p.TryLightAttack())
}

func TestAddXPAppliesGrowth(t *testing.T) {
	p := player.New()
	p.Stats.CurrentHP = 10

	levels := p.AddXP(600)
	// Level 2 needs 282, level 3 needs 519 cumulative.
	assert.Equal(t, []uint32{2, 3}, levels)
	assert.Equal(t, float32(120), p.Stats.MaxHP)
	assert.Equal(t, float32(120), p.Stats.CurrentHP)
	assert.Equal(t, float32(14), p.Stats.Attack)
	assert.Equal(t, float32(7), p.Stats.Defense)
}

func TestRespawn(t *testing.T) {
	p := player.New()
	p.TakeDamage(500)
	p.Stats.CurrentMana = 0
	p.Status.Apply(combat.NewPoisoned(10))
	p.TryLightAttack()

	p.Respawn()
	assert.Equal(t, p.Stats.MaxHP, p.Stats.CurrentHP)
	assert.Equal(t, p.Stats.MaxMana, p.Stats.CurrentMana)
	assert.Zero(t, p.Status.Len())
	assert.True(t, p.IsInvincible())
	assert.False(t, p.IsAttacking())
	assert.Zero(t, p.AttackTimer())

	p.Update(0.99)
	assert.True(t, p.IsInvincible())
	p.Update(0.02)
	assert.False(t, p.IsInvincible())
}

func TestEffectiveStats(t *testing.T) {
	p := player.New()
	ring := &combat.Item{Name: "Band", Category: combat.CategoryAccessory, Modifiers: combat.StatModifiers{Attack: 3, CritChance: 2}}
	_, err := p.Equip(combat.Ring1, ring)
	require.NoError(t, err)
	p.Status.Apply(combat.NewWeakened(5))
	p.SetSkill(3, &combat.Skill{Name: "Tough", Passive: true, Modifiers: combat.StatModifiers{Defense: 4}})

	eff := p.EffectiveStats()
	assert.Equal(t, float32(8), eff.Attack)
	assert.Equal(t, float32(6), eff.Defense)
	assert.Equal(t, float32(1), eff.CritChance, "clamped")
	assert.Equal(t, float32(10), p.Stats.Attack, "base unchanged")
}

func TestAttackDamageInput(t *testing.T) {
	p := player.New()
	sword := combat.NewWeapon(1, "Blade", combat.Sword, 6, combat.Common)
	sword.Element = combat.Fire
	sword.Modifiers.ElementalDamageBonus[combat.Fire] = 2
	_, err := p.Equip(combat.MainHand, sword)
	require.NoError(t, err)
	require.True(t, p.TryHeavyAttack())

	weak := combat.Sword
	in := p.AttackDamageInput(player.Target{Defense: 4, Element: combat.Earth, Weakness: &weak})
	assert.Equal(t, float32(10), in.BaseAttack)
	assert.Equal(t, float32(6), in.WeaponDamage)
	require.NotNil(t, in.Weapon)
	assert.Equal(t, combat.Sword, *in.Weapon)
	assert.Equal(t, combat.Heavy, in.Attack)
	assert.Equal(t, combat.Fire, in.Element)
	assert.Equal(t, float32(2), in.ElementalDamageBonus)

	ev := combat.Calculate(in, combat.FixedRand(0.99))
	// (16 * 1.8 * 1.1 * 1.5 * 1.3 + 2) - 2
	assert.InDelta(t, 16*1.8*1.1*1.5*1.3, ev.FinalAmount, 1e-3)
}

func TestGoldPurse(t *testing.T) {
	p := player.New()
	assert.Zero(t, p.Gold)
	assert.Equal(t, uint64(30), p.AddGold(player.GoldForEnemy(3)))

	assert.False(t, p.SpendGold(31))
	assert.Equal(t, uint64(30), p.Gold)
	assert.True(t, p.SpendGold(30))
	assert.Zero(t, p.Gold)
}

func TestNewPlayerHasEmptyInventory(t *testing.T) {
	p := player.New()
	require.NotNil(t, p.Inventory)
	assert.Zero(t, p.Inventory.Len())
	assert.Equal(t, combat.MaxInventorySize, p.Inventory.Capacity())
}
