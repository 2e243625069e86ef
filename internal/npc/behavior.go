// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package npc

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/looplab/fsm"
)

// BehaviorState is a state of the brainless behavior machine.
type BehaviorState string

// Behavior states.
const (
	Idle    BehaviorState = "idle"
	Walking BehaviorState = "walking"
	Talking BehaviorState = "talking"
)

const (
	initialIdle = 2
	restIdle    = 3
)

// Behavior is the idle/walking/talking machine used by NPCs without a
// brain. Talking also pauses brain-driven NPCs.
type Behavior struct {
	machine *fsm.FSM
	// Timer counts down while idle.
	Timer float32
	// Target is the walk destination while walking.
	Target mgl32.Vec3
}

func newBehavior() *Behavior {
	b := &Behavior{Timer: initialIdle}
	b.machine = fsm.NewFSM(
		string(Idle),
		fsm.Events{
			{Name: "walk", Src: []string{string(Idle)}, Dst: string(Walking)},
			{Name: "arrive", Src: []string{string(Walking)}, Dst: string(Idle)},
			{Name: "talk", Src: []string{string(Idle), string(Walking)}, Dst: string(Talking)},
			{Name: "release", Src: []string{string(Talking)}, Dst: string(Idle)},
		},
		fsm.Callbacks{
			"enter_" + string(Idle): func(_ context.Context, _ *fsm.Event) {
				b.Timer = restIdle
			},
			"enter_" + string(Walking): func(_ context.Context, e *fsm.Event) {
				if len(e.Args) > 0 {
					if t, ok := e.Args[0].(mgl32.Vec3); ok {
						b.Target = t
					}
				}
			},
		},
	)
	return b
}

// State returns the current state.
func (b *Behavior) State() BehaviorState { return BehaviorState(b.machine.Current()) }

// fire triggers event if it is valid from the current state.
func (b *Behavior) fire(event string, args ...any) bool {
	if !b.machine.Can(event) {
		return false
	}
	return b.machine.Event(context.Background(), event, args...) == nil
}
