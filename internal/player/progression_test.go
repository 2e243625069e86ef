// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/player"
)

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level uint32
		want  uint64
	}{
		{0, 0},
		{1, 0},
		{2, 282},
		{3, 519},
		{4, 800},
		{10, 3162},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, player.XPForLevel(tt.level), "level %d", tt.level)
	}
}

func TestAddXPCarriesRemainder(t *testing.T) {
	p := player.NewProgression()
	assert.Empty(t, p.AddXP(100))
	assert.InDelta(t, 100.0/282.0, p.Fraction(), 1e-6)

	assert.Equal(t, []uint32{2}, p.AddXP(200))
	assert.Equal(t, uint64(18), p.CurrentXP)
	assert.Equal(t, uint64(300), p.TotalXP)
	assert.Equal(t, uint64(519-282), p.XPToNext())
}

func TestXPForEnemy(t *testing.T) {
	assert.Equal(t, uint64(30), player.XPForEnemy(3, player.Normal))
	assert.Equal(t, uint64(100), player.XPForEnemy(2, player.Elite))
	assert.Equal(t, uint64(1000), player.XPForEnemy(5, player.Boss))
}

func TestStatsHelpers(t *testing.T) {
	s := player.DefaultStats()
	s.CurrentHP = 40
	s.Heal(10)
	assert.Equal(t, float32(50), s.CurrentHP)
	s.HealPercent(0.8)
	assert.Equal(t, float32(100), s.CurrentHP)
	assert.Equal(t, float32(1), s.HPFraction())

	assert.True(t, s.UseMana(60))
	assert.False(t, s.UseMana(60))
	assert.Equal(t, float32(0.4), s.ManaFraction())
	s.RegenerateMana(100)
	assert.Equal(t, s.MaxMana, s.CurrentMana)

	eff := s.Effective(combat.StatModifiers{CritChance: -1})
	assert.Zero(t, eff.CritChance)
}
