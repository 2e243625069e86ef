// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

const absent int32 = -1

// storage is the type-erased view of a SparseSet the World keeps in its
// registry. Only operations that need no knowledge of T live here.
type storage interface {
	has(idx uint32) bool
	remove(idx uint32)
	len() int
	owners() []uint32
}

// SparseSet stores values of one component type densely, with a sparse
// index from entity index to dense position.
//
// For every stored owner o at dense position i, sparse[o] == i.
type SparseSet[T any] struct {
	dense  []T
	owner  []uint32
	sparse []int32
}

// NewSparseSet returns an empty set.
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

// Insert stores v for idx, replacing any previous value.
func (s *SparseSet[T]) Insert(idx uint32, v T) {
	if d, ok := s.denseIndex(idx); ok {
		s.dense[d] = v
		return
	}
	for int(idx) >= len(s.sparse) {
		s.sparse = append(s.sparse, absent)
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, v)
	s.owner = append(s.owner, idx)
}

// Remove deletes the value for idx by swapping the last element into its
// place. The moved element's sparse entry is repaired in the same step.
func (s *SparseSet[T]) Remove(idx uint32) (T, bool) {
	var zero T
	d, ok := s.denseIndex(idx)
	if !ok {
		return zero, false
	}
	removed := s.dense[d]
	last := len(s.dense) - 1
	if d != last {
		moved := s.owner[last]
		s.dense[d] = s.dense[last]
		s.owner[d] = moved
		s.sparse[moved] = int32(d)
	}
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owner = s.owner[:last]
	s.sparse[idx] = absent
	return removed, true
}

// Get returns a pointer into the dense slice. The pointer is invalidated
// by the next Insert or Remove on this set.
func (s *SparseSet[T]) Get(idx uint32) (*T, bool) {
	d, ok := s.denseIndex(idx)
	if !ok {
		return nil, false
	}
	return &s.dense[d], true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int { return len(s.dense) }

// Owners returns the entity indices in dense order. The slice is shared.
func (s *SparseSet[T]) Owners() []uint32 { return s.owner }

// Values returns the values in dense order. The slice is shared.
func (s *SparseSet[T]) Values() []T { return s.dense }

func (s *SparseSet[T]) denseIndex(idx uint32) (int, bool) {
	if int(idx) >= len(s.sparse) {
		return 0, false
	}
	d := s.sparse[idx]
	if d == absent {
		return 0, false
	}
	return int(d), true
}

func (s *SparseSet[T]) has(idx uint32) bool {
	_, ok := s.denseIndex(idx)
	return ok
}

func (s *SparseSet[T]) remove(idx uint32) { s.Remove(idx) }
func (s *SparseSet[T]) len() int          { return len(s.dense) }
func (s *SparseSet[T]) owners() []uint32  { return s.owner }
