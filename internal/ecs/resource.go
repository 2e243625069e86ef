// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

import "reflect"

// InsertResource stores a singleton value of type T, replacing any
// previous one.
func InsertResource[T any](w *World, v T) {
	w.resources[reflect.TypeFor[T]()] = &v
}

// Resource returns the singleton of type T.
func Resource[T any](w *World) (*T, bool) {
	r, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// RemoveResource deletes the singleton of type T and returns it.
func RemoveResource[T any](w *World) (T, bool) {
	key := reflect.TypeFor[T]()
	r, ok := w.resources[key]
	if !ok {
		var zero T
		return zero, false
	}
	delete(w.resources, key)
	return *r.(*T), true
}

// HasResource reports whether a singleton of type T is stored.
func HasResource[T any](w *World) bool {
	_, ok := w.resources[reflect.TypeFor[T]()]
	return ok
}
