// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

import (
	"fmt"
	"reflect"
)

// Access describes how a query term uses its component.
type Access uint8

// Access modes. Read and Write both require the component; Optional does
// not and yields nil when the component is missing.
const (
	Read Access = iota
	Write
	Optional
)

// String implements fmt.Stringer.
func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	case Optional:
		return "optional"
	default:
		return fmt.Sprintf("access(%d)", uint8(a))
	}
}

// column resolves its storage lazily, so a query built before the first
// Insert of T still sees entities added later.
type column[T any] struct {
	access Access
	key    reflect.Type
	w      *World
	set    *SparseSet[T]
}

func newColumn[T any](w *World, a Access) column[T] {
	return column[T]{access: a, key: reflect.TypeFor[T](), w: w, set: storageFor[T](w, false)}
}

func (c *column[T]) storage() *SparseSet[T] {
	if c.set == nil {
		c.set = storageFor[T](c.w, false)
	}
	return c.set
}

func (c *column[T]) fetch(idx uint32) (*T, bool) {
	set := c.storage()
	if set == nil {
		return nil, c.access == Optional
	}
	p, ok := set.Get(idx)
	if !ok {
		return nil, c.access == Optional
	}
	return p, true
}

func (c *column[T]) term() term {
	w := c.w
	t := term{
		access: c.access,
		key:    c.key,
		resolve: func() storage {
			if set := storageFor[T](w, false); set != nil {
				return set
			}
			return nil
		},
	}
	if c.set != nil {
		t.set = c.set
	}
	return t
}

type term struct {
	access  Access
	key     reflect.Type
	set     storage
	resolve func() storage
}

// base holds the arity-independent part of a query: candidate selection
// and the alias check on mutable terms.
type base struct {
	w     *World
	terms []term
}

func newBase(w *World, terms ...term) base {
	for i := range terms {
		if terms[i].access != Write {
			continue
		}
		for j := i + 1; j < len(terms); j++ {
			if terms[j].access == Write && terms[j].key == terms[i].key {
				panic(fmt.Sprintf("ecs: query has two mutable terms for %v", terms[i].key))
			}
		}
	}
	return base{w: w, terms: terms}
}

// candidates returns the entity indices that are alive and present in
// every required storage. Iteration starts from the smallest required
// storage; a query without required terms walks every alive entity.
func (b base) candidates() []uint32 {
	var required []storage
	for i := range b.terms {
		t := &b.terms[i]
		if t.access == Optional {
			continue
		}
		if t.set == nil && t.resolve != nil {
			t.set = t.resolve()
		}
		if t.set == nil {
			return nil
		}
		required = append(required, t.set)
	}

	alive := &b.w.entities
	if len(required) == 0 {
		out := make([]uint32, 0, alive.count)
		for i, ok := range alive.alive {
			if ok {
				out = append(out, uint32(i))
			}
		}
		return out
	}

	smallest := 0
	for i, s := range required {
		if s.len() < required[smallest].len() {
			smallest = i
		}
	}

	owners := required[smallest].owners()
	out := make([]uint32, 0, len(owners))
next:
	for _, idx := range owners {
		if !alive.indexAlive(idx) {
			continue
		}
		for i, s := range required {
			if i != smallest && !s.has(idx) {
				continue next
			}
		}
		out = append(out, idx)
	}
	return out
}

// Entities returns every entity the query matches.
func (b base) Entities() []Entity {
	idxs := b.candidates()
	out := make([]Entity, len(idxs))
	for i, idx := range idxs {
		out[i] = b.w.entities.entityAt(idx)
	}
	return out
}

// Count returns the number of matching entities.
func (b base) Count() int {
	return len(b.candidates())
}
