// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package terrain generates deterministic heightfields from fractal
// OpenSimplex noise sampled in world coordinates.
package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// Config parameterises terrain generation.
type Config struct {
	Size         float32 `koanf:"size"`
	Subdivisions uint32  `koanf:"subdivisions"`
	MaxHeight    float32 `koanf:"max_height"`
	NoiseScale   float32 `koanf:"noise_scale"`
	Seed         uint32  `koanf:"seed"`
	Octaves      uint32  `koanf:"octaves"`
	Persistence  float32 `koanf:"persistence"`
	Lacunarity   float32 `koanf:"lacunarity"`
}

// DefaultConfig returns the stock terrain parameters.
func DefaultConfig() Config {
	return Config{
		Size:         100,
		Subdivisions: 64,
		MaxHeight:    5,
		NoiseScale:   0.02,
		Seed:         42,
		Octaves:      4,
		Persistence:  0.5,
		Lacunarity:   2,
	}
}

// VertexCount is the number of vertices per side.
func (c Config) VertexCount() int { return int(c.Subdivisions) + 1 }

// Step is the distance between adjacent vertices.
func (c Config) Step() float32 { return c.Size / float32(c.Subdivisions) }

// Noise samples fractal noise for one config. It is cheap to build and
// safe to reuse for any number of samples with the same seed.
type Noise struct {
	src         opensimplex.Noise
	scale       float64
	octaves     uint32
	persistence float64
	lacunarity  float64
}

// NewNoise builds a sampler for cfg.
func NewNoise(cfg Config) *Noise {
	return &Noise{
		src:         opensimplex.New(int64(cfg.Seed)),
		scale:       float64(cfg.NoiseScale),
		octaves:     cfg.Octaves,
		persistence: float64(cfg.Persistence),
		lacunarity:  float64(cfg.Lacunarity),
	}
}

// Fractal returns the normalised fractal value at world (x, z) in [0, 1].
// The octave sum is divided by the total per-octave amplitude.
func (n *Noise) Fractal(x, z float32) float32 {
	var total, amplitude, frequency, maxValue float64 = 0, 1, 1, 0
	sx, sz := float64(x)*n.scale, float64(z)*n.scale
	for range n.octaves {
		total += n.src.Eval2(sx*frequency, sz*frequency) * amplitude
		maxValue += amplitude
		amplitude *= n.persistence
		frequency *= n.lacunarity
	}
	if maxValue == 0 {
		return 0.5
	}
	return clamp(float32((total/maxValue+1)/2), 0, 1)
}

// Terrain is a generated square heightfield. Heights are row-major with z
// outer and x inner.
type Terrain struct {
	Config    Config
	OriginX   float32
	OriginZ   float32
	Heights   []float32
	MinHeight float32
	MaxHeight float32
}

// Generate builds a terrain of cfg.Size centered on the world origin.
func Generate(cfg Config) *Terrain {
	half := cfg.Size / 2
	return generate(cfg, -half, -half)
}

// GenerateChunk builds a terrain whose minimum corner is (originX, originZ).
// Samples use global coordinates so adjacent chunks share edge heights.
func GenerateChunk(cfg Config, originX, originZ float32) *Terrain {
	return generate(cfg, originX, originZ)
}

func generate(cfg Config, originX, originZ float32) *Terrain {
	noise := NewNoise(cfg)
	n := cfg.VertexCount()
	step := cfg.Step()
	t := &Terrain{
		Config:    cfg,
		OriginX:   originX,
		OriginZ:   originZ,
		Heights:   make([]float32, 0, n*n),
		MinHeight: float32(math.Inf(1)),
		MaxHeight: float32(math.Inf(-1)),
	}
	for z := range n {
		for x := range n {
			wx := originX + float32(x)*step
			wz := originZ + float32(z)*step
			h := noise.Fractal(wx, wz) * cfg.MaxHeight
			t.MinHeight = min(t.MinHeight, h)
			t.MaxHeight = max(t.MaxHeight, h)
			t.Heights = append(t.Heights, h)
		}
	}
	return t
}

// Contains reports whether world (x, z) lies on the terrain.
func (t *Terrain) Contains(x, z float32) bool {
	return x >= t.OriginX && x <= t.OriginX+t.Config.Size &&
		z >= t.OriginZ && z <= t.OriginZ+t.Config.Size
}

// HeightAt bilinearly interpolates the four vertices around world (x, z).
// Points outside the terrain are clamped to its edge.
func (t *Terrain) HeightAt(x, z float32) float32 {
	sub := int(t.Config.Subdivisions)
	n := t.Config.VertexCount()
	step := t.Config.Step()

	gx := clamp((x-t.OriginX)/step, 0, float32(sub))
	gz := clamp((z-t.OriginZ)/step, 0, float32(sub))
	x0 := min(int(gx), sub-1)
	z0 := min(int(gz), sub-1)
	fx := gx - float32(x0)
	fz := gz - float32(z0)

	h00 := t.Heights[z0*n+x0]
	h10 := t.Heights[z0*n+x0+1]
	h01 := t.Heights[(z0+1)*n+x0]
	h11 := t.Heights[(z0+1)*n+x0+1]
	h0 := h00 + (h10-h00)*fx
	h1 := h01 + (h11-h01)*fx
	return h0 + (h1-h0)*fz
}

// NormalAt estimates the surface normal by central differences.
func (t *Terrain) NormalAt(x, z float32) mgl32.Vec3 {
	const eps = 0.5
	left := t.HeightAt(x-eps, z)
	right := t.HeightAt(x+eps, z)
	down := t.HeightAt(x, z-eps)
	up := t.HeightAt(x, z+eps)
	return mgl32.Vec3{left - right, eps * 2, down - up}.Normalize()
}

// Dimensions returns the heightfield's (rows, cols).
func (t *Terrain) Dimensions() (int, int) {
	n := t.Config.VertexCount()
	return n, n
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
