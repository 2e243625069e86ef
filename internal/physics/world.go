// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package physics keeps the static collision surface of the world:
// heightfield colliders registered by the chunk manager and flat ground
// planes, with a raycast query over them.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ColliderHandle identifies a registered collider. A handle is never valid
// again once its collider has been removed.
type ColliderHandle struct {
	Index      uint32
	Generation uint32
}

// Heightfield is a regular grid of heights. Heights are row-major with z
// as the outer (row) axis and x as the inner (column) axis. Scale.X and
// Scale.Z are the field's extent; Scale.Y multiplies every sample.
type Heightfield struct {
	Rows    int
	Cols    int
	Heights []float32
	Scale   mgl32.Vec3
}

// Sample returns the height at grid vertex (row, col) in local units.
func (h *Heightfield) Sample(row, col int) float32 {
	return h.Heights[row*h.Cols+col] * h.Scale.Y()
}

type shape uint8

const (
	shapeHeightfield shape = iota + 1
	shapeGround
)

type collider struct {
	shape       shape
	field       Heightfield
	translation mgl32.Vec3
	groundY     float32
}

// Hit is the result of a successful raycast.
type Hit struct {
	Collider ColliderHandle
	Distance float32
	Point    mgl32.Vec3
}

// World is a registry of static colliders.
type World struct {
	slots       []*collider
	generations []uint32
	free        []uint32
	count       int
}

// NewWorld returns an empty physics world.
func NewWorld() *World {
	return &World{}
}

func (w *World) insert(c *collider) ColliderHandle {
	w.count++
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		w.generations[idx]++
		w.slots[idx] = c
		return ColliderHandle{Index: idx, Generation: w.generations[idx]}
	}
	w.slots = append(w.slots, c)
	w.generations = append(w.generations, 0)
	return ColliderHandle{Index: uint32(len(w.slots) - 1)}
}

// AddHeightfield registers a heightfield whose center sits at center.
func (w *World) AddHeightfield(heights []float32, rows, cols int, scale, center mgl32.Vec3) ColliderHandle {
	field := Heightfield{
		Rows:    rows,
		Cols:    cols,
		Heights: append([]float32(nil), heights...),
		Scale:   scale,
	}
	return w.insert(&collider{shape: shapeHeightfield, field: field, translation: center})
}

// AddGround registers an infinite horizontal plane at height y.
func (w *World) AddGround(y float32) ColliderHandle {
	return w.insert(&collider{shape: shapeGround, groundY: y})
}

// Remove unregisters the collider. It returns false for stale handles.
func (w *World) Remove(h ColliderHandle) bool {
	if !w.Contains(h) {
		return false
	}
	w.slots[h.Index] = nil
	w.free = append(w.free, h.Index)
	w.count--
	return true
}

// Contains reports whether h refers to a registered collider.
func (w *World) Contains(h ColliderHandle) bool {
	i := int(h.Index)
	return i < len(w.slots) && w.slots[i] != nil && w.generations[i] == h.Generation
}

// Len returns the number of registered colliders.
func (w *World) Len() int { return w.count }

// Handles returns every registered handle in index order.
func (w *World) Handles() []ColliderHandle {
	out := make([]ColliderHandle, 0, w.count)
	for i, c := range w.slots {
		if c != nil {
			out = append(out, ColliderHandle{Index: uint32(i), Generation: w.generations[i]})
		}
	}
	return out
}

// Heightfield returns the heightfield registered under h.
func (w *World) Heightfield(h ColliderHandle) (*Heightfield, mgl32.Vec3, bool) {
	if !w.Contains(h) || w.slots[h.Index].shape != shapeHeightfield {
		return nil, mgl32.Vec3{}, false
	}
	c := w.slots[h.Index]
	return &c.field, c.translation, true
}

// HeightAt samples the surface height of collider h at world (x, z). The
// second result is false when h is not a heightfield or (x, z) lies
// outside its footprint.
func (w *World) HeightAt(h ColliderHandle, x, z float32) (float32, bool) {
	if !w.Contains(h) {
		return 0, false
	}
	c := w.slots[h.Index]
	switch c.shape {
	case shapeGround:
		return c.groundY, true
	case shapeHeightfield:
		return c.heightAt(x, z)
	default:
		return 0, false
	}
}

func (c *collider) heightAt(x, z float32) (float32, bool) {
	f := &c.field
	if f.Rows < 2 || f.Cols < 2 {
		return 0, false
	}
	halfX, halfZ := f.Scale.X()/2, f.Scale.Z()/2
	lx := x - (c.translation.X() - halfX)
	lz := z - (c.translation.Z() - halfZ)
	if lx < 0 || lz < 0 || lx > f.Scale.X() || lz > f.Scale.Z() {
		return 0, false
	}

	gx := lx / f.Scale.X() * float32(f.Cols-1)
	gz := lz / f.Scale.Z() * float32(f.Rows-1)
	col := min(int(gx), f.Cols-2)
	row := min(int(gz), f.Rows-2)
	tx := gx - float32(col)
	tz := gz - float32(row)

	h00 := f.Sample(row, col)
	h10 := f.Sample(row, col+1)
	h01 := f.Sample(row+1, col)
	h11 := f.Sample(row+1, col+1)
	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	return c.translation.Y() + top + (bottom-top)*tz, true
}

const (
	marchStep        = 0.25
	bisectIterations = 16
)

// Raycast returns the nearest collider hit along the ray within maxDist.
// filter, when non-nil, excludes colliders for which it returns false.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32, filter func(ColliderHandle) bool) (Hit, bool) {
	if dir.Len() == 0 || maxDist <= 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	best := Hit{Distance: float32(math.Inf(1))}
	found := false
	for i, c := range w.slots {
		if c == nil {
			continue
		}
		h := ColliderHandle{Index: uint32(i), Generation: w.generations[i]}
		if filter != nil && !filter(h) {
			continue
		}
		var (
			t  float32
			ok bool
		)
		switch c.shape {
		case shapeGround:
			t, ok = rayPlane(origin, dir, c.groundY, maxDist)
		case shapeHeightfield:
			t, ok = c.rayField(origin, dir, maxDist)
		}
		if ok && t < best.Distance {
			best = Hit{Collider: h, Distance: t, Point: origin.Add(dir.Mul(t))}
			found = true
		}
	}
	return best, found
}

func rayPlane(origin, dir mgl32.Vec3, y, maxDist float32) (float32, bool) {
	if dir.Y() == 0 {
		return 0, false
	}
	t := (y - origin.Y()) / dir.Y()
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

// rayField marches the ray through the field's footprint and refines the
// first sign change of (ray.y - surface) by bisection.
func (c *collider) rayField(origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	above := func(t float32) (float32, bool) {
		p := origin.Add(dir.Mul(t))
		h, ok := c.heightAt(p.X(), p.Z())
		if !ok {
			return 0, false
		}
		return p.Y() - h, true
	}

	prevT := float32(0)
	prevD, prevOK := above(0)
	if prevOK && prevD <= 0 {
		return 0, true
	}
	for t := float32(marchStep); ; t += marchStep {
		if t > maxDist {
			t = maxDist
		}
		d, ok := above(t)
		if ok && prevOK && d <= 0 {
			lo, hi := prevT, t
			for range bisectIterations {
				mid := (lo + hi) / 2
				md, mok := above(mid)
				if mok && md <= 0 {
					hi = mid
				} else {
					lo = mid
				}
			}
			return hi, true
		}
		if ok && !prevOK && d <= 0 {
			return t, true
		}
		prevT, prevOK = t, ok
		if t >= maxDist {
			return 0, false
		}
	}
}
