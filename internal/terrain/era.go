// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package terrain

// EraConfig adjusts the base terrain for a time period.
type EraConfig struct {
	SeedOffset     uint32  `json:"seed_offset"`
	HeightScale    float32 `json:"height_scale"`
	NoiseScaleMult float32 `json:"noise_scale_mult"`
}

// ForEra returns the terrain adjustment for an era index. Earlier eras are
// rougher and taller, later ones flatter with finer detail.
func ForEra(index int) EraConfig {
	switch index {
	case 0:
		return EraConfig{SeedOffset: 300, HeightScale: 2.0, NoiseScaleMult: 0.6}
	case 1:
		return EraConfig{SeedOffset: 200, HeightScale: 1.5, NoiseScaleMult: 0.8}
	case 2:
		return EraConfig{SeedOffset: 100, HeightScale: 1.2, NoiseScaleMult: 0.9}
	case 3:
		return EraConfig{SeedOffset: 0, HeightScale: 1.0, NoiseScaleMult: 1.0}
	case 4:
		return EraConfig{SeedOffset: 400, HeightScale: 0.8, NoiseScaleMult: 1.3}
	case 5:
		return EraConfig{SeedOffset: 500, HeightScale: 0.6, NoiseScaleMult: 1.5}
	default:
		return EraConfig{SeedOffset: uint32(index) * 100, HeightScale: 1, NoiseScaleMult: 1}
	}
}

// Apply returns base with the era's adjustments. The seed offset wraps on
// overflow.
func (e EraConfig) Apply(base Config) Config {
	out := base
	out.Seed = base.Seed + e.SeedOffset
	out.MaxHeight = base.MaxHeight * e.HeightScale
	out.NoiseScale = base.NoiseScale * e.NoiseScaleMult
	return out
}
