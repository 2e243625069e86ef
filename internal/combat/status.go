// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import "slices"

// StatusKind identifies a status effect.
type StatusKind uint8

// Status kinds. The first six are elemental procs.
const (
	Burning StatusKind = iota
	Frozen
	Shocked
	Rooted
	Silenced
	Blessed
	Poisoned
	Stunned
	Slowed
	Weakened
	Empowered
	Hastened
	Shielded
)

var statusNames = [...]string{
	Burning:   "Burning",
	Frozen:    "Frozen",
	Shocked:   "Shocked",
	Rooted:    "Rooted",
	Silenced:  "Silenced",
	Blessed:   "Blessed",
	Poisoned:  "Poisoned",
	Stunned:   "Stunned",
	Slowed:    "Slowed",
	Weakened:  "Weakened",
	Empowered: "Empowered",
	Hastened:  "Hastened",
	Shielded:  "Shielded",
}

// String implements fmt.Stringer.
func (k StatusKind) String() string {
	if int(k) < len(statusNames) {
		return statusNames[k]
	}
	return "Unknown"
}

// PreventsMovement is true for Frozen, Rooted and Stunned.
func (k StatusKind) PreventsMovement() bool {
	return k == Frozen || k == Rooted || k == Stunned
}

// PreventsSkills is true for Silenced and Stunned.
func (k StatusKind) PreventsSkills() bool {
	return k == Silenced || k == Stunned
}

// PreventsAttacks is true for Stunned.
func (k StatusKind) PreventsAttacks() bool {
	return k == Stunned
}

// Effect is one active status effect.
type Effect struct {
	Kind          StatusKind
	Duration      float32
	DamagePerTick float32
	TickInterval  float32
	TickTimer     float32
	Modifiers     StatModifiers
	ShieldHP      float32
	ShieldMax     float32
}

// Expired reports whether the effect has run out.
func (e *Effect) Expired() bool { return e.Duration <= 0 }

func newEffect(kind StatusKind, d float32) Effect {
	return Effect{Kind: kind, Duration: d, TickInterval: 1, TickTimer: 1}
}

func newDOT(kind StatusKind, d, perTick, interval float32) Effect {
	return Effect{Kind: kind, Duration: d, DamagePerTick: perTick, TickInterval: interval, TickTimer: interval}
}

// NewBurning deals 5 damage every second.
func NewBurning(d float32) Effect { return newDOT(Burning, d, 5, 1) }

// NewPoisoned deals 3 damage every 1.5 seconds.
func NewPoisoned(d float32) Effect { return newDOT(Poisoned, d, 3, 1.5) }

// NewShocked deals 8 damage every 2 seconds.
func NewShocked(d float32) Effect { return newDOT(Shocked, d, 8, 2) }

// NewFrozen slows heavily and prevents movement.
func NewFrozen(d float32) Effect {
	e := newEffect(Frozen, d)
	e.Modifiers.Speed = -0.8
	return e
}

// NewSlowed reduces speed.
func NewSlowed(d float32) Effect {
	e := newEffect(Slowed, d)
	e.Modifiers.Speed = -0.4
	return e
}

// NewWeakened reduces attack and defense.
func NewWeakened(d float32) Effect {
	e := newEffect(Weakened, d)
	e.Modifiers.Attack = -5
	e.Modifiers.Defense = -3
	return e
}

// NewEmpowered raises attack and crit chance.
func NewEmpowered(d float32) Effect {
	e := newEffect(Empowered, d)
	e.Modifiers.Attack = 10
	e.Modifiers.CritChance = 0.1
	return e
}

// NewHastened raises speed.
func NewHastened(d float32) Effect {
	e := newEffect(Hastened, d)
	e.Modifiers.Speed = 0.5
	return e
}

// NewBlessed raises max HP and defense.
func NewBlessed(d float32) Effect {
	e := newEffect(Blessed, d)
	e.Modifiers.MaxHP = 20
	e.Modifiers.Defense = 5
	return e
}

// NewShielded absorbs up to amount damage.
func NewShielded(amount, d float32) Effect {
	e := newEffect(Shielded, d)
	e.ShieldHP = amount
	e.ShieldMax = amount
	return e
}

// NewControl builds a modifier-free effect such as Rooted, Silenced or
// Stunned.
func NewControl(kind StatusKind, d float32) Effect {
	return newEffect(kind, d)
}

// NewModifier builds an effect that only contributes mods.
func NewModifier(kind StatusKind, d float32, mods StatModifiers) Effect {
	e := newEffect(kind, d)
	e.Modifiers = mods
	return e
}

// ProcForElement returns the status an element inflicts on hit.
func ProcForElement(el Element, d float32) (Effect, bool) {
	kind, ok := el.Proc()
	if !ok {
		return Effect{}, false
	}
	switch kind {
	case Burning:
		return NewBurning(d), true
	case Frozen:
		return NewFrozen(d), true
	case Shocked:
		return NewShocked(d), true
	case Blessed:
		return NewBlessed(d), true
	default:
		return NewControl(kind, d), true
	}
}

// StatusManager holds the active effects on one combatant.
type StatusManager struct {
	effects []Effect
}

// NewStatusManager returns an empty manager.
func NewStatusManager() *StatusManager {
	return &StatusManager{}
}

// Apply adds e, or refreshes an existing effect of the same kind to the
// longer duration. A refreshed shield keeps the larger amount.
func (m *StatusManager) Apply(e Effect) {
	for i := range m.effects {
		cur := &m.effects[i]
		if cur.Kind != e.Kind {
			continue
		}
		cur.Duration = max(cur.Duration, e.Duration)
		if e.Kind == Shielded {
			cur.ShieldHP = max(cur.ShieldHP, e.ShieldHP)
			cur.ShieldMax = cur.ShieldHP
		}
		return
	}
	m.effects = append(m.effects, e)
}

// Update advances every effect by dt and returns the damage-over-time
// dealt. A large dt can produce several ticks of one effect.
func (m *StatusManager) Update(dt float32) float32 {
	var dot float32
	for i := range m.effects {
		e := &m.effects[i]
		e.Duration -= dt
		if e.DamagePerTick <= 0 || e.TickInterval <= 0 {
			continue
		}
		e.TickTimer -= dt
		for e.TickTimer <= 0 {
			dot += e.DamagePerTick
			e.TickTimer += e.TickInterval
		}
	}
	m.removeExpired()
	return dot
}

// AbsorbDamage routes damage through active shields in order and returns
// what is left over. A shield that is fully consumed breaks and is removed.
func (m *StatusManager) AbsorbDamage(dmg float32) float32 {
	remaining := dmg
	broke := false
	for i := range m.effects {
		e := &m.effects[i]
		if e.Kind != Shielded || e.ShieldHP <= 0 {
			continue
		}
		if remaining <= e.ShieldHP {
			e.ShieldHP -= remaining
			remaining = 0
			break
		}
		remaining -= e.ShieldHP
		e.ShieldHP = 0
		e.Duration = 0
		broke = true
	}
	if broke {
		m.removeExpired()
	}
	return remaining
}

func (m *StatusManager) removeExpired() {
	m.effects = slices.DeleteFunc(m.effects, func(e Effect) bool { return e.Expired() })
}

// IsMovementPrevented reports whether any effect roots the combatant.
func (m *StatusManager) IsMovementPrevented() bool {
	return m.any(StatusKind.PreventsMovement)
}

// AreSkillsPrevented reports whether skills are blocked.
func (m *StatusManager) AreSkillsPrevented() bool {
	return m.any(StatusKind.PreventsSkills)
}

// AreAttacksPrevented reports whether attacks are blocked.
func (m *StatusManager) AreAttacksPrevented() bool {
	return m.any(StatusKind.PreventsAttacks)
}

func (m *StatusManager) any(pred func(StatusKind) bool) bool {
	for i := range m.effects {
		if pred(m.effects[i].Kind) {
			return true
		}
	}
	return false
}

// Has reports whether an effect of kind is active.
func (m *StatusManager) Has(kind StatusKind) bool {
	return m.any(func(k StatusKind) bool { return k == kind })
}

// Get returns a copy of the active effect of kind.
func (m *StatusManager) Get(kind StatusKind) (Effect, bool) {
	for _, e := range m.effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// TotalModifiers sums the modifiers of every active effect.
func (m *StatusManager) TotalModifiers() StatModifiers {
	var total StatModifiers
	for i := range m.effects {
		total.Add(m.effects[i].Modifiers)
	}
	return total
}

// Effects returns a copy of the active effects.
func (m *StatusManager) Effects() []Effect {
	return slices.Clone(m.effects)
}

// Clear removes every effect.
func (m *StatusManager) Clear() { m.effects = m.effects[:0] }

// Len returns the number of active effects.
func (m *StatusManager) Len() int { return len(m.effects) }
