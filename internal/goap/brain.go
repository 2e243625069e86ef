// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package goap

import (
	"cmp"
	"slices"
)

// Brain is the per-NPC planning state.
type Brain struct {
	Goals       []Goal
	Actions     []Action
	State       WorldState
	Plan        []int
	Step        int
	ActionTimer float32
	ReplanTimer float32
}

// NewBrain returns a brain with an empty fact table and no plan.
func NewBrain(goals []Goal, actions []Action) *Brain {
	return &Brain{
		Goals:   goals,
		Actions: actions,
		State:   NewState(),
	}
}

// Replan tries goals by descending priority and adopts the first plan
// found for an unsatisfied goal. When no goal yields a plan, a lone
// wander or patrol_point action is used if the brain has one; otherwise
// the plan is cleared. It reports whether a plan is active afterwards.
func (b *Brain) Replan() bool {
	order := make([]int, len(b.Goals))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(b.Goals[y].Priority, b.Goals[x].Priority)
	})

	for _, gi := range order {
		g := &b.Goals[gi]
		if b.State.Satisfies(g.Desired) {
			continue
		}
		plan, ok := Plan(b.State, g.Desired, b.Actions)
		if !ok || len(plan) == 0 {
			continue
		}
		b.adopt(plan)
		return true
	}

	if i := b.fallback(); i >= 0 {
		b.adopt([]int{i})
		return true
	}
	b.ClearPlan()
	return false
}

func (b *Brain) fallback() int {
	for i := range b.Actions {
		switch b.Actions[i].Name {
		case "wander", "patrol_point":
			return i
		}
	}
	return -1
}

func (b *Brain) adopt(plan []int) {
	b.Plan = plan
	b.Step = 0
	b.ActionTimer = b.Actions[plan[0]].Duration
}

// CurrentAction returns the action at the current plan step.
func (b *Brain) CurrentAction() (*Action, bool) {
	if b.Step < 0 || b.Step >= len(b.Plan) {
		return nil, false
	}
	return &b.Actions[b.Plan[b.Step]], true
}

// AdvancePlan applies the current action's effects and moves to the next
// step, clearing the plan when none remains.
func (b *Brain) AdvancePlan() {
	done, ok := b.CurrentAction()
	if !ok {
		b.ClearPlan()
		return
	}
	b.State.Apply(done.Effects)
	b.Step++
	if b.Step >= len(b.Plan) {
		b.ClearPlan()
		return
	}
	b.ActionTimer = b.Actions[b.Plan[b.Step]].Duration
}

// HasPlan reports whether a plan step is pending.
func (b *Brain) HasPlan() bool { return b.Step < len(b.Plan) }

// ClearPlan drops the current plan.
func (b *Brain) ClearPlan() {
	b.Plan = nil
	b.Step = 0
	b.ActionTimer = 0
}
