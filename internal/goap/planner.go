// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package goap

import "container/heap"

// Search bounds.
const (
	MaxPops       = 100
	MaxPlanLength = 5
)

type node struct {
	state   WorldState
	actions []int
	cost    float32
	f       float32
	seq     int
}

type openSet []*node

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(*node)) }

func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return n
}

// Plan searches for a sequence of action indices that takes current to a
// state satisfying goal. An action never directly follows itself. The
// search gives up after MaxPops expansions; plans are at most
// MaxPlanLength long. An already satisfied goal yields an empty plan.
func Plan(current, goal WorldState, actions []Action) ([]int, bool) {
	if current.Satisfies(goal) {
		return []int{}, true
	}

	seq := 0
	open := &openSet{{
		state: current.Clone(),
		f:     float32(current.UnsatisfiedCount(goal)),
	}}

	for pops := 0; open.Len() > 0; {
		n := heap.Pop(open).(*node)
		pops++
		if pops > MaxPops {
			break
		}
		if n.state.Satisfies(goal) {
			return n.actions, true
		}
		if len(n.actions) >= MaxPlanLength {
			continue
		}
		for i := range actions {
			a := &actions[i]
			if !n.state.Satisfies(a.Preconditions) {
				continue
			}
			if k := len(n.actions); k > 0 && n.actions[k-1] == i {
				continue
			}
			next := n.state.Clone()
			next.Apply(a.Effects)
			cost := n.cost + a.Cost

			path := make([]int, len(n.actions)+1)
			copy(path, n.actions)
			path[len(n.actions)] = i

			seq++
			heap.Push(open, &node{
				state:   next,
				actions: path,
				cost:    cost,
				f:       cost + float32(next.UnsatisfiedCount(goal)),
				seq:     seq,
			})
		}
	}
	return nil, false
}
