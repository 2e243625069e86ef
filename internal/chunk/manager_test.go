// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package chunk_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/physics"
	"github.com/riftwalk/riftwalk/internal/terrain"
	"github.com/riftwalk/riftwalk/pkg/errutil"
)

func newManager(t *testing.T, load, unload int32) (*chunk.Manager, *physics.World) {
	t.Helper()
	world := physics.NewWorld()
	m, err := chunk.New(chunk.Config{
		ChunkSize:    64,
		Subdivisions: 4,
		LoadRadius:   load,
		UnloadRadius: unload,
	}, terrain.DefaultConfig(), world, nil)
	require.NoError(t, err)
	return m, world
}

func countKind(events []chunk.Event, kind chunk.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*chunk.Config)
		wantErr bool
	}{
		{"defaults", func(*chunk.Config) {}, false},
		{"equal radii", func(c *chunk.Config) { c.UnloadRadius = c.LoadRadius }, true},
		{"zero size", func(c *chunk.Config) { c.ChunkSize = 0 }, true},
		{"zero subdivisions", func(c *chunk.Config) { c.Subdivisions = 0 }, true},
		{"negative load", func(c *chunk.Config) { c.LoadRadius = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := chunk.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				errutil.AssertErrorCode(t, err, "CHUNK_CONFIG_INVALID")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordOfUsesFloor(t *testing.T) {
	assert.Equal(t, chunk.Coord{X: 0, Z: 0}, chunk.CoordOf(mgl32.Vec3{0, 0, 63.9}, 64))
	assert.Equal(t, chunk.Coord{X: -1, Z: 1}, chunk.CoordOf(mgl32.Vec3{-0.1, 0, 64}, 64))
	assert.Equal(t, chunk.Coord{X: 7, Z: 7}, chunk.CoordOf(mgl32.Vec3{500, 0, 500}, 64))
}

func TestHysteresisScenario(t *testing.T) {
	m, world := newManager(t, 1, 2)

	events := m.Update(mgl32.Vec3{0, 0, 0})
	assert.Equal(t, 9, countKind(events, chunk.Loaded))
	assert.Equal(t, 9, m.LoadedCount())
	assert.Equal(t, 9, world.Len())

	origin, ok := m.Chunk(chunk.Coord{})
	require.True(t, ok)
	oldCollider := origin.Collider

	events = m.Update(mgl32.Vec3{500, 0, 500})
	assert.False(t, m.IsLoaded(chunk.Coord{X: 0, Z: 0}))
	assert.True(t, m.IsLoaded(chunk.Coord{X: 7, Z: 7}))
	assert.Equal(t, 9, countKind(events, chunk.Unloaded))
	assert.Equal(t, 9, countKind(events, chunk.Loaded))
	assert.False(t, world.Contains(oldCollider))
	assert.Equal(t, 9, world.Len())
}

func TestHysteresisKeepsChunksInsideUnloadRadius(t *testing.T) {
	m, _ := newManager(t, 1, 2)
	m.Update(mgl32.Vec3{32, 0, 32})

	// Two chunks east: (-1,*) is now at distance 3 and unloads; (0,*) at 2 stays.
	events := m.Update(mgl32.Vec3{32 + 128, 0, 32})
	assert.False(t, m.IsLoaded(chunk.Coord{X: -1, Z: 0}))
	assert.True(t, m.IsLoaded(chunk.Coord{X: 0, Z: 0}))
	assert.Equal(t, 3, countKind(events, chunk.Unloaded))
	assert.Equal(t, 12, m.LoadedCount())

	// Step back one chunk: everything needed is still resident.
	events = m.Update(mgl32.Vec3{32 + 64, 0, 32})
	assert.Empty(t, events)
	assert.Equal(t, 12, m.LoadedCount())
}

func TestLoadedChunkInvariants(t *testing.T) {
	m, world := newManager(t, 2, 3)
	m.Update(mgl32.Vec3{-100, 0, 250})

	for _, c := range m.LoadedCoords() {
		ch, ok := m.Chunk(c)
		require.True(t, ok)
		assert.Equal(t, c, chunk.CoordOf(c.Center(64), 64))
		assert.True(t, world.Contains(ch.Collider), "coord %v", c)
		assert.True(t, ch.MeshDirty)
	}
	assert.Equal(t, 25, m.LoadedCount())
}

func TestHeightAtMatchesCollider(t *testing.T) {
	m, world := newManager(t, 1, 2)
	m.Update(mgl32.Vec3{10, 0, 10})

	ch, ok := m.Chunk(chunk.Coord{})
	require.True(t, ok)

	for _, p := range [][2]float32{{0, 0}, {16, 16}, {31.5, 7.25}, {63, 40}} {
		want := m.HeightAt(p[0], p[1])
		got, ok := world.HeightAt(ch.Collider, p[0], p[1])
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-4, "point %v", p)
	}

	assert.Zero(t, m.HeightAt(5000, 5000), "unloaded area")
	assert.InDelta(t, m.HeightAt(3, 4), m.HeightFunc()(3, 4), 1e-6)
}

func TestRegenerationIsDeterministic(t *testing.T) {
	m, _ := newManager(t, 1, 2)
	m.Update(mgl32.Vec3{})
	before, _ := m.Chunk(chunk.Coord{X: 1, Z: -1})
	heights := append([]float32(nil), before.Terrain.Heights...)

	m.Update(mgl32.Vec3{1000, 0, 0})
	m.Update(mgl32.Vec3{})
	after, _ := m.Chunk(chunk.Coord{X: 1, Z: -1})

	assert.Equal(t, heights, after.Terrain.Heights)
}

func TestSetEraConfigReloadsEverything(t *testing.T) {
	m, world := newManager(t, 1, 2)
	m.Update(mgl32.Vec3{})
	before, _ := m.Chunk(chunk.Coord{})
	oldHeights := append([]float32(nil), before.Terrain.Heights...)
	oldCollider := before.Collider

	events := m.SetEraConfig(terrain.ForEra(0))

	assert.Equal(t, 9, countKind(events, chunk.Unloaded))
	assert.Equal(t, 9, countKind(events, chunk.Loaded))
	assert.Equal(t, 9, world.Len())
	assert.False(t, world.Contains(oldCollider))

	after, _ := m.Chunk(chunk.Coord{})
	assert.NotEqual(t, oldHeights, after.Terrain.Heights)
	assert.Equal(t, uint32(342), m.TerrainConfig().Seed)
}

func TestSetEraConfigBeforeFocusOnlyChangesConfig(t *testing.T) {
	m, _ := newManager(t, 1, 2)
	events := m.SetEraConfig(terrain.ForEra(5))
	assert.Empty(t, events)
	assert.Zero(t, m.LoadedCount())
	assert.Equal(t, uint32(542), m.TerrainConfig().Seed)
}

func TestMarkMeshClean(t *testing.T) {
	m, _ := newManager(t, 0, 1)
	m.Update(mgl32.Vec3{})
	m.MarkMeshClean(chunk.Coord{})
	ch, _ := m.Chunk(chunk.Coord{})
	assert.False(t, ch.MeshDirty)
}
