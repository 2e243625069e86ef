// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

// Query1 iterates entities matching 1 term. Storages are resolved when
// the query is built; build queries after the components they name exist.
type Query1[A any] struct {
	base
	a column[A]
}

// NewQuery1 builds a query over the given component types and access modes.
func NewQuery1[A any](w *World, access Access) *Query1[A] {
	a := newColumn[A](w, access)
	return &Query1[A]{base: newBase(w, a.term()), a: a}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query1[A]) Each(f func(Entity, *A)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va)
	}
}

// Query2 iterates entities matching 2 terms.
type Query2[A any, B any] struct {
	base
	a column[A]
	b column[B]
}

// NewQuery2 builds a query over the given component types and access modes.
func NewQuery2[A any, B any](w *World, aAccess Access, bAccess Access) *Query2[A, B] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	return &Query2[A, B]{base: newBase(w, a.term(), b.term()), a: a, b: b}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query2[A, B]) Each(f func(Entity, *A, *B)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb)
	}
}

// Query3 iterates entities matching 3 terms.
type Query3[A any, B any, C any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
}

// NewQuery3 builds a query over the given component types and access modes.
func NewQuery3[A any, B any, C any](w *World, aAccess Access, bAccess Access, cAccess Access) *Query3[A, B, C] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	return &Query3[A, B, C]{base: newBase(w, a.term(), b.term(), c.term()), a: a, b: b, c: c}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query3[A, B, C]) Each(f func(Entity, *A, *B, *C)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc)
	}
}

// Query4 iterates entities matching 4 terms.
type Query4[A any, B any, C any, D any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
	d column[D]
}

// NewQuery4 builds a query over the given component types and access modes.
func NewQuery4[A any, B any, C any, D any](w *World, aAccess Access, bAccess Access, cAccess Access, dAccess Access) *Query4[A, B, C, D] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	d := newColumn[D](w, dAccess)
	return &Query4[A, B, C, D]{base: newBase(w, a.term(), b.term(), c.term(), d.term()), a: a, b: b, c: c, d: d}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query4[A, B, C, D]) Each(f func(Entity, *A, *B, *C, *D)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		vd, ok := q.d.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc, vd)
	}
}

// Query5 iterates entities matching 5 terms.
type Query5[A any, B any, C any, D any, E any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
	d column[D]
	e column[E]
}

// NewQuery5 builds a query over the given component types and access modes.
func NewQuery5[A any, B any, C any, D any, E any](w *World, aAccess Access, bAccess Access, cAccess Access, dAccess Access, eAccess Access) *Query5[A, B, C, D, E] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	d := newColumn[D](w, dAccess)
	e := newColumn[E](w, eAccess)
	return &Query5[A, B, C, D, E]{base: newBase(w, a.term(), b.term(), c.term(), d.term(), e.term()), a: a, b: b, c: c, d: d, e: e}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query5[A, B, C, D, E]) Each(f func(Entity, *A, *B, *C, *D, *E)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		vd, ok := q.d.fetch(idx)
		if !ok {
			continue
		}
		ve, ok := q.e.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc, vd, ve)
	}
}

// Query6 iterates entities matching 6 terms.
type Query6[A any, B any, C any, D any, E any, F any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
	d column[D]
	e column[E]
	f column[F]
}

// NewQuery6 builds a query over the given component types and access modes.
func NewQuery6[A any, B any, C any, D any, E any, F any](w *World, aAccess Access, bAccess Access, cAccess Access, dAccess Access, eAccess Access, fAccess Access) *Query6[A, B, C, D, E, F] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	d := newColumn[D](w, dAccess)
	e := newColumn[E](w, eAccess)
	f := newColumn[F](w, fAccess)
	return &Query6[A, B, C, D, E, F]{base: newBase(w, a.term(), b.term(), c.term(), d.term(), e.term(), f.term()), a: a, b: b, c: c, d: d, e: e, f: f}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query6[A, B, C, D, E, F]) Each(f func(Entity, *A, *B, *C, *D, *E, *F)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		vd, ok := q.d.fetch(idx)
		if !ok {
			continue
		}
		ve, ok := q.e.fetch(idx)
		if !ok {
			continue
		}
		vf, ok := q.f.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc, vd, ve, vf)
	}
}

// Query7 iterates entities matching 7 terms.
type Query7[A any, B any, C any, D any, E any, F any, G any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
	d column[D]
	e column[E]
	f column[F]
	g column[G]
}

// NewQuery7 builds a query over the given component types and access modes.
func NewQuery7[A any, B any, C any, D any, E any, F any, G any](w *World, aAccess Access, bAccess Access, cAccess Access, dAccess Access, eAccess Access, fAccess Access, gAccess Access) *Query7[A, B, C, D, E, F, G] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	d := newColumn[D](w, dAccess)
	e := newColumn[E](w, eAccess)
	f := newColumn[F](w, fAccess)
	g := newColumn[G](w, gAccess)
	return &Query7[A, B, C, D, E, F, G]{base: newBase(w, a.term(), b.term(), c.term(), d.term(), e.term(), f.term(), g.term()), a: a, b: b, c: c, d: d, e: e, f: f, g: g}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query7[A, B, C, D, E, F, G]) Each(f func(Entity, *A, *B, *C, *D, *E, *F, *G)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		vd, ok := q.d.fetch(idx)
		if !ok {
			continue
		}
		ve, ok := q.e.fetch(idx)
		if !ok {
			continue
		}
		vf, ok := q.f.fetch(idx)
		if !ok {
			continue
		}
		vg, ok := q.g.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc, vd, ve, vf, vg)
	}
}

// Query8 iterates entities matching 8 terms.
type Query8[A any, B any, C any, D any, E any, F any, G any, H any] struct {
	base
	a column[A]
	b column[B]
	c column[C]
	d column[D]
	e column[E]
	f column[F]
	g column[G]
	h column[H]
}

// NewQuery8 builds a query over the given component types and access modes.
func NewQuery8[A any, B any, C any, D any, E any, F any, G any, H any](w *World, aAccess Access, bAccess Access, cAccess Access, dAccess Access, eAccess Access, fAccess Access, gAccess Access, hAccess Access) *Query8[A, B, C, D, E, F, G, H] {
	a := newColumn[A](w, aAccess)
	b := newColumn[B](w, bAccess)
	c := newColumn[C](w, cAccess)
	d := newColumn[D](w, dAccess)
	e := newColumn[E](w, eAccess)
	f := newColumn[F](w, fAccess)
	g := newColumn[G](w, gAccess)
	h := newColumn[H](w, hAccess)
	return &Query8[A, B, C, D, E, F, G, H]{base: newBase(w, a.term(), b.term(), c.term(), d.term(), e.term(), f.term(), g.term(), h.term()), a: a, b: b, c: c, d: d, e: e, f: f, g: g, h: h}
}

// Each calls f once per matching entity. Optional terms yield nil when the
// component is absent.
func (q *Query8[A, B, C, D, E, F, G, H]) Each(f func(Entity, *A, *B, *C, *D, *E, *F, *G, *H)) {
	for _, idx := range q.candidates() {
		va, ok := q.a.fetch(idx)
		if !ok {
			continue
		}
		vb, ok := q.b.fetch(idx)
		if !ok {
			continue
		}
		vc, ok := q.c.fetch(idx)
		if !ok {
			continue
		}
		vd, ok := q.d.fetch(idx)
		if !ok {
			continue
		}
		ve, ok := q.e.fetch(idx)
		if !ok {
			continue
		}
		vf, ok := q.f.fetch(idx)
		if !ok {
			continue
		}
		vg, ok := q.g.fetch(idx)
		if !ok {
			continue
		}
		vh, ok := q.h.fetch(idx)
		if !ok {
			continue
		}
		f(q.w.entities.entityAt(idx), va, vb, vc, vd, ve, vf, vg, vh)
	}
}
