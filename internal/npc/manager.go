// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package npc

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/goap"
)

// Sensor and motion tuning.
const (
	HalfHeight          = 0.9
	NearbyRange         = 15
	AggroRange          = 12
	AttackRange         = 2.5
	HomeRange           = 3
	LowHealthFraction   = 0.2
	FleeDistance        = 30
	arriveHomeDistance  = 1
	arriveWalkDistance  = 0.5
	enemySpeed          = 3.5
	defaultSpeed        = 2
	fleeSpeedFactor     = 1.5
	wanderSpeedFactor   = 0.5
	simpleWanderFactor  = 0.5
	wanderAngleFactor   = 2.71
	simpleAngleFactor   = 1.618
	simplePositionScale = 0.1
)

// HeightFunc samples terrain height in world coordinates.
type HeightFunc func(x, z float32) float32

// Config tunes the manager.
type Config struct {
	ChunkSize      float32 `koanf:"-"`
	RespawnSeconds float32 `koanf:"respawn_seconds"`
	ReplanSeconds  float32 `koanf:"replan_seconds"`
	// DisableBrains spawns NPCs without GOAP brains so they run the
	// idle/walk machine instead.
	DisableBrains bool `koanf:"disable_brains"`
}

// DefaultConfig returns the stock manager settings.
func DefaultConfig() Config {
	return Config{ChunkSize: 64, RespawnSeconds: 30, ReplanSeconds: 2}
}

type respawn struct {
	chunk     chunk.Coord
	index     int
	remaining float32
}

// Attack is an enemy strike against the player.
type Attack struct {
	ID     ID
	Damage float32
}

// Manager owns every live NPC.
type Manager struct {
	cfg      Config
	npcs     map[ID]*Instance
	stats    map[ID]*CombatStats
	respawns []respawn
	nextID   ID
	year     int64
	logger   *slog.Logger
}

// New returns an empty manager.
func New(cfg Config, logger *slog.Logger) *Manager {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.RespawnSeconds <= 0 {
		cfg.RespawnSeconds = def.RespawnSeconds
	}
	if cfg.ReplanSeconds <= 0 {
		cfg.ReplanSeconds = def.ReplanSeconds
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:    cfg,
		npcs:   make(map[ID]*Instance),
		stats:  make(map[ID]*CombatStats),
		nextID: 1,
		logger: logger.With("component", "npc"),
	}
}

// OnChunkLoaded spawns the chunk's NPCs that belong in activeYear.
func (m *Manager) OnChunkLoaded(c chunk.Coord, height HeightFunc, activeYear int64) []ID {
	m.year = activeYear
	var spawned []ID
	for i, p := range SpawnPoints(c, m.cfg.ChunkSize) {
		if !p.Data.SpawnsIn(activeYear) {
			continue
		}
		spawned = append(spawned, m.spawn(c, i, p, height))
	}
	return spawned
}

func (m *Manager) spawn(c chunk.Coord, index int, p SpawnPoint, height HeightFunc) ID {
	id := m.nextID
	m.nextID++

	origin := c.Origin(m.cfg.ChunkSize)
	x := origin.X() + p.Offset.X()
	z := origin.Z() + p.Offset.Z()
	home := mgl32.Vec3{x, height(x, z) + HalfHeight, z}

	data := p.Data
	data.Home = home
	inst := &Instance{
		ID:         id,
		Data:       data,
		Position:   home,
		Chunk:      c,
		SpawnIndex: index,
		Behavior:   newBehavior(),
	}
	if !m.cfg.DisableBrains {
		inst.Brain = goap.BrainForRole(data.Role)
	}
	m.npcs[id] = inst
	if data.Role == Enemy {
		s := DefaultEnemyStats()
		m.stats[id] = &s
	}
	NPCsActive.Set(float64(len(m.npcs)))
	m.logger.Debug("npc spawned", "id", uint64(id), "name", data.Name, "role", data.Role.String(), "chunk", c.String())
	return id
}

// OnChunkUnloaded removes the chunk's NPCs, their combat stats, and any
// pending respawns for it.
func (m *Manager) OnChunkUnloaded(c chunk.Coord) {
	for id, n := range m.npcs {
		if n.Chunk == c {
			m.remove(id)
		}
	}
	m.respawns = slices.DeleteFunc(m.respawns, func(r respawn) bool { return r.chunk == c })
}

// Clear removes every NPC and pending respawn.
func (m *Manager) Clear() {
	clear(m.npcs)
	clear(m.stats)
	m.respawns = nil
	NPCsActive.Set(0)
}

func (m *Manager) remove(id ID) {
	delete(m.npcs, id)
	delete(m.stats, id)
	NPCsActive.Set(float64(len(m.npcs)))
}

// Update advances respawn timers, recreates expired ones from their
// original spawn slot, then drives every NPC.
func (m *Manager) Update(dt float32, player mgl32.Vec3, height HeightFunc) {
	var ready []respawn
	kept := m.respawns[:0]
	for _, r := range m.respawns {
		r.remaining -= dt
		if r.remaining <= 0 {
			ready = append(ready, r)
			continue
		}
		kept = append(kept, r)
	}
	m.respawns = kept

	for _, r := range ready {
		points := SpawnPoints(r.chunk, m.cfg.ChunkSize)
		if r.index < len(points) && points[r.index].Data.SpawnsIn(m.year) {
			id := m.spawn(r.chunk, r.index, points[r.index], height)
			m.logger.Debug("npc respawned", "id", uint64(id), "chunk", r.chunk.String(), "slot", r.index)
		}
	}

	for _, id := range m.ids() {
		n := m.npcs[id]
		if n.Behavior.State() == Talking {
			n.Velocity = mgl32.Vec3{}
			continue
		}
		if n.Brain != nil {
			m.updateBrain(n, dt, player, height)
		} else {
			m.updateSimple(n, dt, height)
		}
	}
}

func (m *Manager) ids() []ID {
	return slices.Sorted(maps.Keys(m.npcs))
}

func (m *Manager) sense(n *Instance, player mgl32.Vec3) {
	s := n.Brain.State
	dist := n.Position.Sub(player).Len()
	s.SetFloat("distance_to_player", dist)
	s.SetBool("player_nearby", dist < NearbyRange)
	s.SetBool("player_in_aggro_range", dist < AggroRange)
	s.SetBool("player_in_attack_range", dist < AttackRange)
	s.SetBool("at_home", n.Position.Sub(n.Data.Home).Len() < HomeRange)
	if cs, ok := m.stats[n.ID]; ok {
		s.SetBool("health_low", cs.HPFraction() < LowHealthFraction)
		s.SetBool("is_alive", cs.IsAlive())
	}
}

func (m *Manager) updateBrain(n *Instance, dt float32, player mgl32.Vec3, height HeightFunc) {
	b := n.Brain
	m.sense(n, player)

	b.ReplanTimer -= dt
	if !b.HasPlan() || b.ReplanTimer <= 0 {
		b.Replan()
		b.ReplanTimer = m.cfg.ReplanSeconds
	}

	action, ok := b.CurrentAction()
	if !ok {
		n.Velocity = mgl32.Vec3{}
		return
	}

	speed := float32(defaultSpeed)
	if n.Data.Role == Enemy {
		speed = enemySpeed
	}

	switch action.Name {
	case "go_home", "return_to_post":
		to := horizontal(n.Data.Home.Sub(n.Position))
		if to.Len() < arriveHomeDistance {
			b.AdvancePlan()
			n.Velocity = mgl32.Vec3{}
			return
		}
		m.move(n, to.Normalize(), speed, dt, height)

	case "wander", "patrol_point":
		b.ActionTimer -= dt
		if b.ActionTimer <= 0 {
			b.AdvancePlan()
			n.Velocity = mgl32.Vec3{}
			return
		}
		angle := float32(math.Mod(float64(float32(n.ID)*wanderAngleFactor+b.ActionTimer), 2*math.Pi))
		dir := mgl32.Vec3{cos(angle), 0, sin(angle)}
		m.move(n, dir, speed*wanderSpeedFactor, dt, height)
		m.clampToHome(n, height)

	case "chase_target", "chase_enemy":
		to := horizontal(player.Sub(n.Position))
		if to.Len() < AttackRange {
			b.AdvancePlan()
			n.Velocity = mgl32.Vec3{}
			return
		}
		m.move(n, to.Normalize(), speed, dt, height)

	case "attack_melee":
		b.ActionTimer -= dt
		if b.ActionTimer <= 0 {
			b.AdvancePlan()
		}
		n.Velocity = mgl32.Vec3{}
		to := player.Sub(n.Position)
		n.Yaw = atan2(to.Z(), to.X())

	case "flee_from_target":
		away := horizontal(n.Position.Sub(player))
		if away.Len() > FleeDistance {
			b.AdvancePlan()
			n.Velocity = mgl32.Vec3{}
			return
		}
		if away.Len() == 0 {
			away = mgl32.Vec3{1, 0, 0}
		}
		m.move(n, away.Normalize(), speed*fleeSpeedFactor, dt, height)

	default:
		// Stationary actions: wait, wait_for_customer, talk_to_npc and the like.
		b.ActionTimer -= dt
		if b.ActionTimer <= 0 {
			b.AdvancePlan()
		}
		n.Velocity = mgl32.Vec3{}
	}
}

func (m *Manager) updateSimple(n *Instance, dt float32, height HeightFunc) {
	beh := n.Behavior
	switch beh.State() {
	case Idle:
		beh.Timer -= dt
		if beh.Timer > 0 {
			n.Velocity = mgl32.Vec3{}
			return
		}
		angle := float32(math.Mod(float64(float32(n.ID)*simpleAngleFactor+n.Position.X()*simplePositionScale), 2*math.Pi))
		dist := n.Data.WanderRadius * simpleWanderFactor
		tx := n.Data.Home.X() + cos(angle)*dist
		tz := n.Data.Home.Z() + sin(angle)*dist
		beh.fire("walk", mgl32.Vec3{tx, height(tx, tz) + HalfHeight, tz})

	case Walking:
		to := horizontal(beh.Target.Sub(n.Position))
		if to.Len() < arriveWalkDistance {
			beh.fire("arrive")
			n.Velocity = mgl32.Vec3{}
			return
		}
		m.move(n, to.Normalize(), defaultSpeed, dt, height)
	}
}

func (m *Manager) move(n *Instance, dir mgl32.Vec3, speed, dt float32, height HeightFunc) {
	n.Velocity = dir.Mul(speed)
	n.Position = n.Position.Add(n.Velocity.Mul(dt))
	n.Position[1] = height(n.Position.X(), n.Position.Z()) + HalfHeight
	n.Yaw = atan2(dir.Z(), dir.X())
}

func (m *Manager) clampToHome(n *Instance, height HeightFunc) {
	from := horizontal(n.Position.Sub(n.Data.Home))
	if from.Len() <= n.Data.WanderRadius {
		return
	}
	p := n.Data.Home.Add(from.Normalize().Mul(n.Data.WanderRadius))
	p[1] = height(p.X(), p.Z()) + HalfHeight
	n.Position = p
}

// DamageNPC applies dmg to an NPC with combat stats. killed reports a
// kill; ok is false when the NPC is unknown or cannot be damaged.
func (m *Manager) DamageNPC(id ID, dmg float32) (killed, ok bool) {
	cs, has := m.stats[id]
	if !has {
		return false, false
	}
	cs.TakeDamage(dmg)
	if cs.IsAlive() {
		return false, true
	}
	if n, exists := m.npcs[id]; exists {
		m.respawns = append(m.respawns, respawn{
			chunk:     n.Chunk,
			index:     n.SpawnIndex,
			remaining: m.cfg.RespawnSeconds,
		})
		m.logger.Debug("npc killed", "id", uint64(id), "name", n.Data.Name, "respawn_in", m.cfg.RespawnSeconds)
	}
	m.remove(id)
	NPCDeaths.Inc()
	return true, true
}

// EnemyAttacks ticks the cooldown of every living enemy within its attack
// radius of the player and returns the strikes that fire this frame.
func (m *Manager) EnemyAttacks(dt float32, player mgl32.Vec3, playerDefense float32) []Attack {
	var out []Attack
	for _, id := range m.ids() {
		cs, ok := m.stats[id]
		if !ok || !cs.IsAlive() {
			continue
		}
		n := m.npcs[id]
		if horizontal(player.Sub(n.Position)).Len() >= cs.AttackRadius {
			continue
		}
		if cs.TickCooldown(dt) {
			out = append(out, Attack{ID: id, Damage: cs.DamageAgainst(playerDefense)})
		}
	}
	return out
}

// NPC returns a live NPC.
func (m *Manager) NPC(id ID) (*Instance, bool) {
	n, ok := m.npcs[id]
	return n, ok
}

// NPCs returns the live NPCs ordered by id.
func (m *Manager) NPCs() []*Instance {
	out := make([]*Instance, 0, len(m.npcs))
	for _, id := range m.ids() {
		out = append(out, m.npcs[id])
	}
	return out
}

// NPCAt returns the closest NPC strictly within radius of pos.
func (m *Manager) NPCAt(pos mgl32.Vec3, radius float32) (ID, bool) {
	var (
		best  ID
		bestD float32
		found bool
	)
	for _, id := range m.ids() {
		d := m.npcs[id].Position.Sub(pos).Len()
		if d < radius && (!found || d < bestD) {
			best, bestD, found = id, d, true
		}
	}
	return best, found
}

// Count returns the number of live NPCs.
func (m *Manager) Count() int { return len(m.npcs) }

// CountByFaction returns the number of live NPCs in f.
func (m *Manager) CountByFaction(f Faction) int {
	n := 0
	for _, inst := range m.npcs {
		if inst.Data.Faction == f {
			n++
		}
	}
	return n
}

// CombatStats returns an NPC's combat stats.
func (m *Manager) CombatStats(id ID) (*CombatStats, bool) {
	cs, ok := m.stats[id]
	return cs, ok
}

// IsAttacking reports whether the NPC's brain is running attack_melee.
func (m *Manager) IsAttacking(id ID) bool {
	n, ok := m.npcs[id]
	return ok && n.CurrentAction() == "attack_melee"
}

// PendingRespawns returns the number of queued respawns.
func (m *Manager) PendingRespawns() int { return len(m.respawns) }

// SetTalking starts or ends a conversation with the NPC.
func (m *Manager) SetTalking(id ID, talking bool) bool {
	n, ok := m.npcs[id]
	if !ok {
		return false
	}
	if talking {
		n.Velocity = mgl32.Vec3{}
		return n.Behavior.fire("talk")
	}
	return n.Behavior.fire("release")
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X(), 0, v.Z()} }

func cos(a float32) float32 { return float32(math.Cos(float64(a))) }

func sin(a float32) float32 { return float32(math.Sin(float64(a))) }

func atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }
