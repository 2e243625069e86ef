// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package player

import "math"

// Progression tracks level and experience.
type Progression struct {
	Level     uint32 `json:"level"`
	CurrentXP uint64 `json:"current_xp"`
	TotalXP   uint64 `json:"total_xp"`
}

// NewProgression starts at level 1.
func NewProgression() Progression {
	return Progression{Level: 1}
}

// XPForLevel is the cumulative XP threshold of level, floor(100·L^1.5).
func XPForLevel(level uint32) uint64 {
	if level <= 1 {
		return 0
	}
	return uint64(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// XPToNext is the XP needed to go from the current level to the next.
func (p *Progression) XPToNext() uint64 {
	return XPForLevel(p.Level+1) - XPForLevel(p.Level)
}

// Fraction is progress toward the next level in [0, 1].
func (p *Progression) Fraction() float32 {
	needed := p.XPToNext()
	if needed == 0 {
		return 1
	}
	return min(float32(p.CurrentXP)/float32(needed), 1)
}

// AddXP grants amount and returns each level reached, in order.
func (p *Progression) AddXP(amount uint64) []uint32 {
	p.CurrentXP += amount
	p.TotalXP += amount

	var gained []uint32
	for needed := p.XPToNext(); p.CurrentXP >= needed; needed = p.XPToNext() {
		p.CurrentXP -= needed
		p.Level++
		gained = append(gained, p.Level)
	}
	return gained
}

// EnemyKind scales the XP reward of a kill.
type EnemyKind uint8

// Enemy kinds.
const (
	Normal EnemyKind = iota
	Elite
	Boss
)

// XPForEnemy is the reward for defeating an enemy of level and kind.
func XPForEnemy(level uint32, kind EnemyKind) uint64 {
	base := uint64(10)
	switch kind {
	case Elite:
		base = 50
	case Boss:
		base = 200
	}
	return base * uint64(level)
}
