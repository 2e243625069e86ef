// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package chunk

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coord is a chunk's position on the integer grid.
type Coord struct {
	X int32
	Z int32
}

// String implements fmt.Stringer.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// CoordOf returns the chunk containing world position pos.
func CoordOf(pos mgl32.Vec3, size float32) Coord {
	return Coord{
		X: int32(math.Floor(float64(pos.X() / size))),
		Z: int32(math.Floor(float64(pos.Z() / size))),
	}
}

// Chebyshev returns max(|dx|, |dz|).
func Chebyshev(a, b Coord) int32 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	return max(dx, dz)
}

// Origin is the chunk's minimum corner in world space.
func (c Coord) Origin(size float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) * size, 0, float32(c.Z) * size}
}

// Center is the midpoint of the chunk at y = 0.
func (c Coord) Center(size float32) mgl32.Vec3 {
	return c.Origin(size).Add(mgl32.Vec3{size / 2, 0, size / 2})
}

// Less orders coords by Z, then X.
func (c Coord) Less(o Coord) bool {
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	return c.X < o.X
}
