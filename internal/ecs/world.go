// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

import (
	"fmt"
	"reflect"
)

// World owns every entity slot, component storage and resource.
type World struct {
	entities  allocator
	storages  map[reflect.Type]storage
	resources map[reflect.Type]any
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		storages:  make(map[reflect.Type]storage),
		resources: make(map[reflect.Type]any),
	}
}

// Spawn allocates an entity, reusing a freed index when one is available.
func (w *World) Spawn() Entity {
	return w.entities.spawn()
}

// Despawn removes e and all of its components. It returns false if e is
// not alive.
func (w *World) Despawn(e Entity) bool {
	if !w.entities.despawn(e) {
		return false
	}
	for _, s := range w.storages {
		s.remove(e.Index)
	}
	return true
}

// IsAlive reports whether e is the current occupant of its slot.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// EntityCount returns the number of alive entities.
func (w *World) EntityCount() int {
	return w.entities.count
}

// Entities returns every alive entity in index order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.entities.count)
	for i, alive := range w.entities.alive {
		if alive {
			out = append(out, w.entities.entityAt(uint32(i)))
		}
	}
	return out
}

// storageFor returns the storage for T, creating and registering it when
// create is set. A registered storage of the wrong concrete type is a
// programming error.
func storageFor[T any](w *World, create bool) *SparseSet[T] {
	key := reflect.TypeFor[T]()
	s, ok := w.storages[key]
	if !ok {
		if !create {
			return nil
		}
		set := NewSparseSet[T]()
		w.storages[key] = set
		return set
	}
	set, ok := s.(*SparseSet[T])
	if !ok {
		panic(fmt.Sprintf("ecs: storage for %v has type %T", key, s))
	}
	return set
}

// Insert attaches v to e, replacing any existing T. Inserting on a dead
// entity panics.
func Insert[T any](w *World, e Entity, v T) {
	if !w.entities.isAlive(e) {
		panic(fmt.Sprintf("ecs: insert %v on dead entity %v", reflect.TypeFor[T](), e))
	}
	storageFor[T](w, true).Insert(e.Index, v)
}

// Remove detaches T from e and returns the removed value.
func Remove[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.entities.isAlive(e) {
		return zero, false
	}
	s := storageFor[T](w, false)
	if s == nil {
		return zero, false
	}
	return s.Remove(e.Index)
}

// Get returns e's T. The pointer must not be retained across structural
// changes to the world.
func Get[T any](w *World, e Entity) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	s := storageFor[T](w, false)
	if s == nil {
		return nil, false
	}
	return s.Get(e.Index)
}

// GetMut is Get for call sites that intend to write through the pointer.
func GetMut[T any](w *World, e Entity) (*T, bool) {
	return Get[T](w, e)
}

// Has reports whether e is alive and has a T.
func Has[T any](w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	s := storageFor[T](w, false)
	return s != nil && s.has(e.Index)
}

// Count returns the number of entities holding a T.
func Count[T any](w *World) int {
	s := storageFor[T](w, false)
	if s == nil {
		return 0
	}
	return s.Len()
}
