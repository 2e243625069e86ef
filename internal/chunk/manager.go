// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package chunk streams procedurally generated terrain around a moving
// focus point and keeps one heightfield collider registered per loaded
// chunk.
package chunk

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/physics"
	"github.com/riftwalk/riftwalk/internal/terrain"
)

// Config controls chunk geometry and streaming radii.
type Config struct {
	ChunkSize    float32 `koanf:"size"`
	Subdivisions uint32  `koanf:"subdivisions"`
	LoadRadius   int32   `koanf:"load_radius"`
	UnloadRadius int32   `koanf:"unload_radius"`
}

// DefaultConfig returns the stock streaming parameters.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    64,
		Subdivisions: 32,
		LoadRadius:   3,
		UnloadRadius: 4,
	}
}

// Validate checks the streaming invariants.
func (c Config) Validate() error {
	errb := oops.Code("CHUNK_CONFIG_INVALID").
		With("load_radius", c.LoadRadius).
		With("unload_radius", c.UnloadRadius)
	if c.ChunkSize <= 0 {
		return errb.With("chunk_size", c.ChunkSize).Errorf("chunk size must be positive")
	}
	if c.Subdivisions == 0 {
		return errb.Errorf("subdivisions must be at least 1")
	}
	if c.LoadRadius < 0 {
		return errb.Errorf("load radius must not be negative")
	}
	if c.UnloadRadius <= c.LoadRadius {
		return errb.Errorf("unload radius must be greater than load radius")
	}
	return nil
}

// EventKind distinguishes load from unload notifications.
type EventKind uint8

// Event kinds.
const (
	Loaded EventKind = iota + 1
	Unloaded
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case Unloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// Event reports a chunk entering or leaving the loaded set.
type Event struct {
	Kind  EventKind
	Coord Coord
}

// Chunk is a loaded patch of terrain.
type Chunk struct {
	Coord     Coord
	Terrain   *terrain.Terrain
	Collider  physics.ColliderHandle
	MeshDirty bool
}

// Manager owns the loaded chunks and their colliders.
type Manager struct {
	cfg      Config
	base     terrain.Config
	active   terrain.Config
	physics  *physics.World
	chunks   map[Coord]*Chunk
	focus    mgl32.Vec3
	hasFocus bool
	logger   *slog.Logger
}

// New creates a manager. The terrain config's size and subdivisions are
// replaced by the chunk geometry.
func New(cfg Config, terrainCfg terrain.Config, world *physics.World, logger *slog.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	base := terrainCfg
	base.Size = cfg.ChunkSize
	base.Subdivisions = cfg.Subdivisions
	return &Manager{
		cfg:     cfg,
		base:    base,
		active:  base,
		physics: world,
		chunks:  make(map[Coord]*Chunk),
		logger:  logger.With("component", "chunk"),
	}, nil
}

// Config returns the streaming config.
func (m *Manager) Config() Config { return m.cfg }

// TerrainConfig returns the terrain config currently used for new chunks.
func (m *Manager) TerrainConfig() terrain.Config { return m.active }

// Update unloads chunks beyond the unload radius of focus, then loads
// every missing chunk within the load radius.
func (m *Manager) Update(focus mgl32.Vec3) []Event {
	m.focus = focus
	m.hasFocus = true
	center := CoordOf(focus, m.cfg.ChunkSize)

	var events []Event
	var stale []Coord
	for c := range m.chunks {
		if Chebyshev(c, center) > m.cfg.UnloadRadius {
			stale = append(stale, c)
		}
	}
	events = m.unload(events, stale)
	return m.loadAround(events, center)
}

// SetEraConfig switches the terrain to an era's parameters. Every loaded
// chunk is dropped and the area around the last focus is regenerated.
func (m *Manager) SetEraConfig(era terrain.EraConfig) []Event {
	m.active = era.Apply(m.base)
	events := m.unload(nil, m.LoadedCoords())
	if !m.hasFocus {
		return events
	}
	return m.loadAround(events, CoordOf(m.focus, m.cfg.ChunkSize))
}

func (m *Manager) unload(events []Event, coords []Coord) []Event {
	slices.SortFunc(coords, compareCoord)
	for _, c := range coords {
		ch, ok := m.chunks[c]
		if !ok {
			continue
		}
		m.physics.Remove(ch.Collider)
		delete(m.chunks, c)
		events = append(events, Event{Kind: Unloaded, Coord: c})
		ChunkEvents.WithLabelValues(Unloaded.String()).Inc()
		m.logger.Debug("chunk unloaded", "coord", c.String())
	}
	ChunksLoaded.Set(float64(len(m.chunks)))
	return events
}

func (m *Manager) loadAround(events []Event, center Coord) []Event {
	r := m.cfg.LoadRadius
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			c := Coord{X: center.X + dx, Z: center.Z + dz}
			if _, ok := m.chunks[c]; ok {
				continue
			}
			m.load(c)
			events = append(events, Event{Kind: Loaded, Coord: c})
		}
	}
	ChunksLoaded.Set(float64(len(m.chunks)))
	return events
}

func (m *Manager) load(c Coord) {
	size := m.cfg.ChunkSize
	origin := c.Origin(size)
	tr := terrain.GenerateChunk(m.active, origin.X(), origin.Z())
	rows, cols := tr.Dimensions()
	handle := m.physics.AddHeightfield(tr.Heights, rows, cols, mgl32.Vec3{size, 1, size}, c.Center(size))
	m.chunks[c] = &Chunk{Coord: c, Terrain: tr, Collider: handle, MeshDirty: true}
	ChunkEvents.WithLabelValues(Loaded.String()).Inc()
	m.logger.Debug("chunk loaded", "coord", c.String(), "collider", handle.Index)
}

// HeightAt samples the terrain at world (x, z). Unloaded areas report 0.
func (m *Manager) HeightAt(x, z float32) float32 {
	ch, ok := m.chunks[CoordOf(mgl32.Vec3{x, 0, z}, m.cfg.ChunkSize)]
	if !ok {
		return 0
	}
	return ch.Terrain.HeightAt(x, z)
}

// HeightFunc exposes HeightAt as a plain sampler.
func (m *Manager) HeightFunc() func(x, z float32) float32 {
	return m.HeightAt
}

// IsLoaded reports whether c is resident.
func (m *Manager) IsLoaded(c Coord) bool {
	_, ok := m.chunks[c]
	return ok
}

// Chunk returns the loaded chunk at c.
func (m *Manager) Chunk(c Coord) (*Chunk, bool) {
	ch, ok := m.chunks[c]
	return ch, ok
}

// LoadedCount returns the number of resident chunks.
func (m *Manager) LoadedCount() int { return len(m.chunks) }

// LoadedCoords returns the resident coords ordered by Z, then X.
func (m *Manager) LoadedCoords() []Coord {
	out := make([]Coord, 0, len(m.chunks))
	for c := range m.chunks {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCoord)
	return out
}

// MarkMeshClean clears the mesh-dirty flag after a renderer has consumed
// the chunk's heights.
func (m *Manager) MarkMeshClean(c Coord) {
	if ch, ok := m.chunks[c]; ok {
		ch.MeshDirty = false
	}
}

func compareCoord(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
