// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package goap implements goal-oriented action planning: an A* search
// over action effects, the per-NPC brain that executes plans, and the
// role presets.
package goap

import (
	"fmt"
	"maps"
)

// Value is a world fact: a boolean or a float.
type Value struct {
	isFloat bool
	b       bool
	f       float32
}

// Bool returns a boolean fact.
func Bool(v bool) Value { return Value{b: v} }

// Float returns a float fact.
func Float(v float32) Value { return Value{isFloat: true, f: v} }

// IsFloat reports whether v holds a float.
func (v Value) IsFloat() bool { return v.isFloat }

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.isFloat {
		return fmt.Sprintf("%g", v.f)
	}
	return fmt.Sprintf("%t", v.b)
}

// WorldState maps fact keys to values.
type WorldState map[string]Value

// NewState returns an empty state.
func NewState() WorldState { return WorldState{} }

// StateOf builds a state with a single boolean fact.
func StateOf(key string, v bool) WorldState {
	return WorldState{key: Bool(v)}
}

// Set binds key to v.
func (s WorldState) Set(key string, v Value) { s[key] = v }

// SetBool binds key to a boolean.
func (s WorldState) SetBool(key string, v bool) { s[key] = Bool(v) }

// SetFloat binds key to a float.
func (s WorldState) SetFloat(key string, v float32) { s[key] = Float(v) }

// Get returns the value bound to key.
func (s WorldState) Get(key string) (Value, bool) {
	v, ok := s[key]
	return v, ok
}

// GetBool returns key's value if it is a boolean.
func (s WorldState) GetBool(key string) (bool, bool) {
	v, ok := s[key]
	if !ok || v.isFloat {
		return false, false
	}
	return v.b, true
}

// GetFloat returns key's value if it is a float.
func (s WorldState) GetFloat(key string) (float32, bool) {
	v, ok := s[key]
	if !ok || !v.isFloat {
		return 0, false
	}
	return v.f, true
}

// Satisfies reports whether every fact in required is bound to the same
// value in s. Missing keys do not satisfy.
func (s WorldState) Satisfies(required WorldState) bool {
	for k, want := range required {
		if got, ok := s[k]; !ok || got != want {
			return false
		}
	}
	return true
}

// UnsatisfiedCount is the number of facts in goal that s does not match.
func (s WorldState) UnsatisfiedCount(goal WorldState) int {
	n := 0
	for k, want := range goal {
		if got, ok := s[k]; !ok || got != want {
			n++
		}
	}
	return n
}

// Apply overlays effects onto s.
func (s WorldState) Apply(effects WorldState) {
	maps.Copy(s, effects)
}

// Clone returns an independent copy.
func (s WorldState) Clone() WorldState {
	out := make(WorldState, len(s))
	maps.Copy(out, s)
	return out
}

// Action is something an agent can do.
type Action struct {
	Name          string
	Preconditions WorldState
	Effects       WorldState
	Cost          float32
	Duration      float32
}

// Goal is a desired state with a priority; higher runs first.
type Goal struct {
	Name     string
	Desired  WorldState
	Priority float32
}
