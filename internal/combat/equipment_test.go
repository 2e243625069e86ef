// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/pkg/errutil"
)

func armor(name string, def float32) *combat.Item {
	return &combat.Item{Name: name, Category: combat.CategoryArmor, Modifiers: combat.StatModifiers{Defense: def}}
}

func TestSlotCategories(t *testing.T) {
	assert.Len(t, combat.Slots(), 14)
	for _, s := range combat.Slots() {
		switch s {
		case combat.MainHand, combat.OffHand:
			assert.Equal(t, combat.CategoryWeapon, s.Category(), s.String())
		case combat.Ring1, combat.Ring2, combat.Amulet:
			assert.Equal(t, combat.CategoryAccessory, s.Category(), s.String())
		default:
			assert.Equal(t, combat.CategoryArmor, s.Category(), s.String())
		}
	}
}

func TestEquipReturnsPrevious(t *testing.T) {
	eq := combat.NewEquipment()
	first := armor("Cap", 1)
	prev, err := eq.Equip(combat.Head, first)
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = eq.Equip(combat.Head, armor("Helm", 3))
	require.NoError(t, err)
	assert.Same(t, first, prev)
	assert.Equal(t, float32(3), eq.TotalModifiers().Defense)
}

func TestEquipWrongCategory(t *testing.T) {
	eq := combat.NewEquipment()
	_, err := eq.Equip(combat.Ring1, armor("Boots", 2))
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "EQUIP_WRONG_CATEGORY")

	var equipErr *combat.EquipError
	require.True(t, errors.As(err, &equipErr))
	assert.Equal(t, combat.WrongCategory, equipErr.Kind)
	assert.Equal(t, combat.CategoryAccessory, equipErr.Expected)
	assert.Equal(t, combat.CategoryArmor, equipErr.Got)
	assert.Nil(t, eq.Get(combat.Ring1))
}

func TestTwoHandedRules(t *testing.T) {
	eq := combat.NewEquipment()
	shield := combat.NewWeapon(2, "Buckler", combat.Dagger, 2, combat.Common)
	hammer := combat.NewWeapon(3, "Maul", combat.Hammer, 20, combat.Rare)

	_, err := eq.Equip(combat.OffHand, shield)
	require.NoError(t, err)

	_, err = eq.Equip(combat.MainHand, hammer)
	errutil.AssertErrorCode(t, err, "EQUIP_TWO_HANDED_CONFLICT")
	assert.Nil(t, eq.Get(combat.MainHand))

	assert.Same(t, shield, eq.Unequip(combat.OffHand))
	_, err = eq.Equip(combat.MainHand, hammer)
	require.NoError(t, err)

	_, err = eq.Equip(combat.OffHand, shield)
	errutil.AssertErrorCode(t, err, "EQUIP_MAIN_HAND_TWO_HANDED")
	assert.Nil(t, eq.Get(combat.OffHand))
}

func TestMainHandWeapon(t *testing.T) {
	eq := combat.NewEquipment()
	assert.Nil(t, eq.MainWeaponType())
	assert.Zero(t, eq.MainWeaponDamage())

	_, err := eq.Equip(combat.MainHand, combat.NewWeapon(1, "Blade", combat.Sword, 12, combat.Common))
	require.NoError(t, err)
	require.NotNil(t, eq.MainWeaponType())
	assert.Equal(t, combat.Sword, *eq.MainWeaponType())
	assert.Equal(t, float32(12), eq.MainWeaponDamage())
}

func TestSkillSlotCooldown(t *testing.T) {
	slot := combat.SkillSlot{Skill: &combat.Skill{Name: "Fireball", Cooldown: 4}}
	assert.Equal(t, float32(1), slot.CooldownFraction())
	assert.True(t, slot.TryActivate())
	assert.False(t, slot.TryActivate())
	assert.True(t, slot.OnCooldown())
	assert.Equal(t, float32(0), slot.CooldownFraction())

	slot.Update(1)
	assert.InDelta(t, 0.25, slot.CooldownFraction(), 1e-6)
	slot.Update(10)
	assert.False(t, slot.OnCooldown())
	assert.Equal(t, float32(0), slot.Remaining)

	passive := combat.SkillSlot{Skill: &combat.Skill{Name: "Toughness", Passive: true}}
	assert.False(t, passive.TryActivate())
	assert.False(t, (&combat.SkillSlot{}).TryActivate())
}

func TestEquipmentRestore(t *testing.T) {
	src := combat.NewEquipment()
	_, err := src.Equip(combat.Head, armor("Cap", 1))
	require.NoError(t, err)
	_, err = src.Equip(combat.MainHand, combat.NewWeapon(3, "Greatsword", combat.Greatsword, 20, combat.Rare))
	require.NoError(t, err)

	saved := src.Equipped()
	require.Len(t, saved, 2)
	assert.Equal(t, combat.Head, saved[0].Slot)
	assert.Equal(t, combat.MainHand, saved[1].Slot)

	dst := combat.NewEquipment()
	require.NoError(t, dst.Restore([]combat.Equipped{saved[1], saved[0]}))
	assert.Equal(t, src.TotalModifiers(), dst.TotalModifiers())
	assert.Equal(t, combat.Greatsword, *dst.MainWeaponType())
}

func TestEquipmentRestoreRejectsInvalidSet(t *testing.T) {
	eq := combat.NewEquipment()
	_, err := eq.Equip(combat.Head, armor("Cap", 1))
	require.NoError(t, err)

	two := combat.NewWeapon(1, "Greatsword", combat.Greatsword, 20, combat.Common)
	shield := &combat.Item{ID: 2, Name: "Buckler", Category: combat.CategoryWeapon}
	err = eq.Restore([]combat.Equipped{{Slot: combat.MainHand, Item: *two}, {Slot: combat.OffHand, Item: *shield}})
	errutil.AssertErrorCode(t, err, "EQUIP_MAIN_HAND_TWO_HANDED")
	require.NotNil(t, eq.Get(combat.Head), "set unchanged on error")

	err = eq.Restore([]combat.Equipped{{Slot: 40, Item: *shield}})
	errutil.AssertErrorCode(t, err, "EQUIP_UNKNOWN_SLOT")
}
