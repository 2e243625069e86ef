// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package ecs

// System is a unit of per-frame work over the world.
type System interface {
	Name() string
	Run(w *World, dt float32)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc struct {
	Label string
	Fn    func(w *World, dt float32)
}

// Name returns the label.
func (s SystemFunc) Name() string { return s.Label }

// Run calls Fn.
func (s SystemFunc) Run(w *World, dt float32) { s.Fn(w, dt) }

// Schedule runs systems in registration order.
type Schedule struct {
	systems []System
}

// Add appends a system to the end of the schedule.
func (s *Schedule) Add(sys System) *Schedule {
	s.systems = append(s.systems, sys)
	return s
}

// Run executes every system once.
func (s *Schedule) Run(w *World, dt float32) {
	for _, sys := range s.systems {
		sys.Run(w, dt)
	}
}

// Names lists the systems in run order.
func (s *Schedule) Names() []string {
	out := make([]string, len(s.systems))
	for i, sys := range s.systems {
		out[i] = sys.Name()
	}
	return out
}

// Len returns the number of systems.
func (s *Schedule) Len() int { return len(s.systems) }
