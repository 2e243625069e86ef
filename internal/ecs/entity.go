// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package ecs implements a sparse-set entity-component store with
// generational entity ids, singleton resources, typed queries and an
// ordered system schedule.
//
// The store is not safe for concurrent use. All access happens on the
// simulation goroutine.
package ecs

import "fmt"

// Entity identifies a slot in the world. The pair (Index, Generation) is
// unique over the lifetime of a World: indices are recycled on despawn,
// generations only grow.
type Entity struct {
	Index      uint32
	Generation uint32
}

// String implements fmt.Stringer.
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index, e.Generation)
}

// allocator hands out entity slots.
type allocator struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

func (a *allocator) spawn() Entity {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.generations[idx]++
		a.alive[idx] = true
		return Entity{Index: idx, Generation: a.generations[idx]}
	}
	idx := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	return Entity{Index: idx, Generation: 0}
}

// isAlive reports whether e refers to the current occupant of its slot.
func (a *allocator) isAlive(e Entity) bool {
	i := int(e.Index)
	return i < len(a.generations) && a.alive[i] && a.generations[i] == e.Generation
}

func (a *allocator) indexAlive(idx uint32) bool {
	return int(idx) < len(a.alive) && a.alive[idx]
}

func (a *allocator) entityAt(idx uint32) Entity {
	return Entity{Index: idx, Generation: a.generations[idx]}
}

func (a *allocator) despawn(e Entity) bool {
	if !a.isAlive(e) {
		return false
	}
	a.alive[e.Index] = false
	a.free = append(a.free, e.Index)
	a.count--
	return true
}
