// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSparseInvariant[T any](t *testing.T, s *SparseSet[T]) {
	t.Helper()
	require.Equal(t, len(s.dense), len(s.owner))
	for i, o := range s.owner {
		require.Less(t, int(o), len(s.sparse))
		assert.Equal(t, int32(i), s.sparse[o], "owner %d", o)
	}
}

func TestSparseSetRemoveFromMiddlePreservesOthers(t *testing.T) {
	s := NewSparseSet[string]()
	s.Insert(3, "three")
	s.Insert(7, "seven")
	s.Insert(1, "one")
	s.Insert(9, "nine")

	removed, ok := s.Remove(7)
	require.True(t, ok)
	assert.Equal(t, "seven", removed)
	assertSparseInvariant(t, s)

	for idx, want := range map[uint32]string{3: "three", 1: "one", 9: "nine"} {
		got, ok := s.Get(idx)
		require.True(t, ok, "index %d", idx)
		assert.Equal(t, want, *got)
	}
	_, ok = s.Get(7)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Len())
}

func TestSparseSetRemoveLastAndMissing(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(0, 10)
	s.Insert(1, 11)

	_, ok := s.Remove(1)
	require.True(t, ok)
	assertSparseInvariant(t, s)

	_, ok = s.Remove(1)
	assert.False(t, ok)
	_, ok = s.Remove(100)
	assert.False(t, ok)
	assert.Equal(t, []uint32{0}, s.Owners())
}

func TestSparseSetInsertReplacesInPlace(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(2, 1)
	s.Insert(2, 5)

	assert.Equal(t, 1, s.Len())
	v, _ := s.Get(2)
	assert.Equal(t, 5, *v)
	assertSparseInvariant(t, s)
}

func TestStorageTypeMismatchPanics(t *testing.T) {
	w := NewWorld()
	w.storages[reflect.TypeFor[int]()] = NewSparseSet[string]()

	assert.Panics(t, func() { storageFor[int](w, false) })
}
