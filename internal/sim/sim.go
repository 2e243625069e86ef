// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package sim runs the simulation frame: it owns every gameplay subsystem
// and steps them in a fixed order once per tick on a single goroutine.
package sim

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/dialogue"
	"github.com/riftwalk/riftwalk/internal/ecs"
	"github.com/riftwalk/riftwalk/internal/interaction"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/physics"
	"github.com/riftwalk/riftwalk/internal/player"
	"github.com/riftwalk/riftwalk/internal/relationship"
	"github.com/riftwalk/riftwalk/internal/terrain"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// ChatClient sends AI dialogue requests. *integration.Client satisfies it.
type ChatClient interface {
	dialogue.ChatSender
	IsOnline() bool
}

// Config wires a simulation.
type Config struct {
	Chunk     chunk.Config
	Terrain   terrain.Config
	NPC       npc.Config
	MinYear   int64
	MaxYear   int64
	StartYear int64
	MaxDelta  float32
	TimeScale float32
	// DayLength is the real seconds in one in-game day.
	DayLength  float32
	WalkSpeed  float32
	Spawn      mgl32.Vec3
	PlayerName string

	Rand          combat.RandSource
	Chat          ChatClient
	Relationships *relationship.Store
	Logger        *slog.Logger
}

// DefaultConfig returns a playable configuration.
func DefaultConfig() Config {
	return Config{
		Chunk:      chunk.DefaultConfig(),
		Terrain:    terrain.DefaultConfig(),
		NPC:        npc.DefaultConfig(),
		MinYear:    timeline.DefaultMinYear,
		MaxYear:    timeline.DefaultMaxYear,
		StartYear:  timeline.DefaultStartYear,
		MaxDelta:   0.25,
		TimeScale:  1,
		DayLength:  600,
		WalkSpeed:  5,
		Spawn:      mgl32.Vec3{32, 0, 32},
		PlayerName: "Traveler",
	}
}

const startHour float32 = 8

// Simulation owns the world and every subsystem acting on it.
type Simulation struct {
	cfg    Config
	logger *slog.Logger
	rng    combat.RandSource

	world        *ecs.World
	schedule     *ecs.Schedule
	physics      *physics.World
	chunks       *chunk.Manager
	npcs         *npc.Manager
	interactions *interaction.System
	player       *player.State
	timeline     *timeline.Timeline
	clock        *timeline.Clock

	relationships *relationship.Store
	trees         *dialogue.System
	sessions      *dialogue.Sessions
	chat          ChatClient
	conv          *conversation

	playerEntity ecs.Entity
	npcEntities  map[npc.ID]ecs.Entity

	position  mgl32.Vec3
	forward   mgl32.Vec3
	pitch     float32
	timeOfDay float32
	playTime  float64
	collected []string

	hub       []interaction.Interactable
	hubPlaced bool

	pendingSkill *combat.Skill
}

// New builds a simulation. Nothing is loaded until the first Step.
func New(cfg Config) (*Simulation, error) {
	def := DefaultConfig()
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = def.MaxDelta
	}
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = def.TimeScale
	}
	if cfg.DayLength <= 0 {
		cfg.DayLength = def.DayLength
	}
	if cfg.WalkSpeed <= 0 {
		cfg.WalkSpeed = def.WalkSpeed
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = def.PlayerName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = combat.DefaultRand()
	}
	if cfg.Relationships == nil {
		cfg.Relationships = relationship.NewStore()
	}

	tl, err := timeline.New(cfg.MinYear, cfg.MaxYear, cfg.StartYear)
	if err != nil {
		return nil, err
	}
	phys := physics.NewWorld()
	chunks, err := chunk.New(cfg.Chunk, cfg.Terrain, phys, cfg.Logger)
	if err != nil {
		return nil, err
	}
	chunks.SetEraConfig(terrain.ForEra(tl.EraIndex()))

	npcCfg := cfg.NPC
	npcCfg.ChunkSize = cfg.Chunk.ChunkSize

	clock := timeline.NewClock()
	clock.MaxDelta = cfg.MaxDelta
	clock.SetTimeScale(cfg.TimeScale)

	s := &Simulation{
		cfg:           cfg,
		logger:        cfg.Logger.With("component", "sim"),
		rng:           cfg.Rand,
		world:         ecs.NewWorld(),
		physics:       phys,
		chunks:        chunks,
		npcs:          npc.New(npcCfg, cfg.Logger),
		interactions:  interaction.NewSystem(),
		player:        player.New(),
		timeline:      tl,
		clock:         clock,
		relationships: cfg.Relationships,
		trees:         dialogue.NewSystem(),
		chat:          cfg.Chat,
		npcEntities:   make(map[npc.ID]ecs.Entity),
		position:      cfg.Spawn,
		forward:       mgl32.Vec3{0, 0, 1},
		timeOfDay:     startHour,
	}
	if cfg.Chat != nil {
		s.sessions = dialogue.NewSessions(cfg.Chat)
	}
	s.spawnPlayerEntity()
	s.schedule = s.buildSchedule()
	s.buildHub()
	return s, nil
}

// Player returns the player's combat state.
func (s *Simulation) Player() *player.State { return s.player }

// World returns the entity store mirroring the player and NPCs.
func (s *Simulation) World() *ecs.World { return s.world }

// PlayerEntity returns the entity mirroring the player.
func (s *Simulation) PlayerEntity() ecs.Entity { return s.playerEntity }

// Physics returns the collider world.
func (s *Simulation) Physics() *physics.World { return s.physics }

// Chunks returns the chunk manager.
func (s *Simulation) Chunks() *chunk.Manager { return s.chunks }

// NPCs returns the NPC manager.
func (s *Simulation) NPCs() *npc.Manager { return s.npcs }

// Interactions returns the interaction store.
func (s *Simulation) Interactions() *interaction.System { return s.interactions }

// Timeline returns the year state.
func (s *Simulation) Timeline() *timeline.Timeline { return s.timeline }

// Clock returns the frame clock.
func (s *Simulation) Clock() *timeline.Clock { return s.clock }

// Relationships returns the relationship store.
func (s *Simulation) Relationships() *relationship.Store { return s.relationships }

// Position returns the player position.
func (s *Simulation) Position() mgl32.Vec3 { return s.position }

// Forward returns the player facing.
func (s *Simulation) Forward() mgl32.Vec3 { return s.forward }

// TimeOfDay returns the hour in [0, 24).
func (s *Simulation) TimeOfDay() float32 { return s.timeOfDay }

// PlayTime returns the accumulated simulated seconds.
func (s *Simulation) PlayTime() float64 { return s.playTime }

// Collected returns the items picked up so far.
func (s *Simulation) Collected() []string { return append([]string(nil), s.collected...) }

// Teleport moves the player to pos, snapped to the terrain on the next
// frame.
func (s *Simulation) Teleport(pos mgl32.Vec3) { s.position = pos }

// Face turns the player toward dir. A zero direction is ignored.
func (s *Simulation) Face(dir mgl32.Vec3) {
	if h := (mgl32.Vec3{dir.X(), 0, dir.Z()}); h.Len() > 0 {
		s.forward = h.Normalize()
	}
}

func (s *Simulation) yaw() float32 {
	return float32(math.Atan2(float64(s.forward.X()), float64(s.forward.Z())))
}

func (s *Simulation) snapToGround() {
	s.position[1] = s.chunks.HeightAt(s.position.X(), s.position.Z())
}
