// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package timeline

// Clock defaults.
const (
	DefaultMaxDelta      float32 = 0.25
	DefaultFixedTimestep float32 = 1.0 / 60.0
)

// Clock turns raw frame deltas into simulation deltas: clamped to
// MaxDelta, scaled, and zero while paused.
type Clock struct {
	MaxDelta      float32
	TimeScale     float32
	FixedTimestep float32
	Paused        bool

	delta       float32
	unscaled    float32
	total       float64
	frames      uint64
	accumulator float32
}

// NewClock returns a running clock with the defaults.
func NewClock() *Clock {
	return &Clock{MaxDelta: DefaultMaxDelta, TimeScale: 1, FixedTimestep: DefaultFixedTimestep}
}

// Tick advances one frame by raw seconds and returns the delta the
// simulation should use. Negative input counts as zero.
func (c *Clock) Tick(raw float32) float32 {
	c.unscaled = min(max(raw, 0), c.MaxDelta)
	c.frames++
	if c.Paused {
		c.delta = 0
		return 0
	}
	c.delta = c.unscaled * c.TimeScale
	c.total += float64(c.delta)
	c.accumulator += c.delta
	return c.delta
}

// FixedSteps drains the accumulated time in FixedTimestep increments and
// returns how many whole steps fit.
func (c *Clock) FixedSteps() int {
	if c.FixedTimestep <= 0 {
		return 0
	}
	n := 0
	for c.accumulator >= c.FixedTimestep {
		c.accumulator -= c.FixedTimestep
		n++
	}
	return n
}

// Interpolation is the fraction of a fixed step left over.
func (c *Clock) Interpolation() float32 {
	if c.FixedTimestep <= 0 {
		return 0
	}
	return c.accumulator / c.FixedTimestep
}

// Delta is the last scaled delta.
func (c *Clock) Delta() float32 { return c.delta }

// Unscaled is the last clamped delta before scaling.
func (c *Clock) Unscaled() float32 { return c.unscaled }

// Total is the scaled time elapsed.
func (c *Clock) Total() float64 { return c.total }

// Frames is the number of ticks, paused ones included.
func (c *Clock) Frames() uint64 { return c.frames }

// Pause stops time.
func (c *Clock) Pause() { c.Paused = true }

// Resume restarts time.
func (c *Clock) Resume() { c.Paused = false }

// SetTimeScale sets the scale, clamped at zero.
func (c *Clock) SetTimeScale(s float32) { c.TimeScale = max(s, 0) }
