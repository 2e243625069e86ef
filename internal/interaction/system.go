// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package interaction keeps the registry of objects the player can use,
// selects the one in focus each frame, and owns the persistent state of
// doors, levers, buttons and containers.
package interaction

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// minFacingDistance is the distance under which facing is not checked.
	minFacingDistance = 0.1
	// cosFocusCone is cos(60°), the half-angle of the forward cone.
	cosFocusCone  = 0.5
	coneTolerance = 1e-6
)

// System is the interaction store.
type System struct {
	items   []Interactable
	focused int
	states  map[ID]State
	nextID  ID
}

// NewSystem returns an empty store. Ids start at 1.
func NewSystem() *System {
	return &System{focused: -1, states: make(map[ID]State), nextID: 1}
}

// Add registers a stateless interactable.
func (s *System) Add(it Interactable) {
	s.items = append(s.items, it)
}

func (s *System) allocate(st State) ID {
	id := s.nextID
	s.nextID++
	s.states[id] = st
	return id
}

// AddDoor registers a closed door.
func (s *System) AddDoor(pos mgl32.Vec3, locked bool) ID {
	id := s.allocate(&DoorState{IsLocked: locked})
	s.items = append(s.items, Interactable{Kind: Door{ID: id}, Position: pos, Radius: 3.0})
	s.refreshPrompt(len(s.items) - 1)
	return id
}

// AddLever registers a lever controlling linked.
func (s *System) AddLever(pos mgl32.Vec3, linked []ID) ID {
	id := s.allocate(&LeverState{LinkedIDs: slices.Clone(linked)})
	s.items = append(s.items, Interactable{Kind: Lever{ID: id}, Position: pos, Radius: 3.0})
	s.refreshPrompt(len(s.items) - 1)
	return id
}

// AddButton registers an unpressed button.
func (s *System) AddButton(pos mgl32.Vec3) ID {
	id := s.allocate(&ButtonState{})
	s.items = append(s.items, Interactable{Kind: Button{ID: id}, Position: pos, Radius: 2.5, Prompt: "Press Button"})
	return id
}

// AddContainer registers a closed container holding items.
func (s *System) AddContainer(pos mgl32.Vec3, items []string) ID {
	id := s.allocate(&ContainerState{Items: slices.Clone(items)})
	s.items = append(s.items, Interactable{Kind: Container{ID: id}, Position: pos, Radius: 2.5})
	s.refreshPrompt(len(s.items) - 1)
	return id
}

// AddLadder registers a climbable ladder.
func (s *System) AddLadder(pos mgl32.Vec3, height float32, dir mgl32.Vec3) {
	s.items = append(s.items, Interactable{
		Kind:     Ladder{Height: height, Direction: dir},
		Position: pos,
		Radius:   2.5,
		Prompt:   "Climb",
	})
}

// Update selects the closest interactable within its radius and inside a
// 60° horizontal cone around forward, then refreshes stateful prompts.
func (s *System) Update(pos, forward mgl32.Vec3) {
	s.focused = -1
	best := float32(0)

	fwd := horizontal(forward)
	for i := range s.items {
		it := &s.items[i]
		to := it.Position.Sub(pos)
		dist := to.Len()
		if dist > it.Radius {
			continue
		}
		if dist > minFacingDistance {
			if fwd.Dot(horizontal(to)) < cosFocusCone-coneTolerance {
				continue
			}
		}
		if s.focused < 0 || dist < best {
			s.focused = i
			best = dist
		}
	}
	s.refreshPrompts()
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	h := mgl32.Vec3{v.X(), 0, v.Z()}
	if h.Len() == 0 {
		return h
	}
	return h.Normalize()
}

// Focused returns the interactable in focus.
func (s *System) Focused() (Interactable, bool) {
	if s.focused < 0 || s.focused >= len(s.items) {
		return Interactable{}, false
	}
	return s.items[s.focused], true
}

// Interact uses the focused interactable. The second result is false when
// nothing is in focus. Pickups are removed from the registry.
func (s *System) Interact() (Result, bool) {
	if s.focused < 0 || s.focused >= len(s.items) {
		return nil, false
	}
	idx := s.focused
	var res Result
	switch k := s.items[idx].Kind.(type) {
	case Sign:
		res = ShowText{Text: k.Text}
	case TimePortal:
		res = ChangeTimePeriod{Year: k.TargetYear}
	case Pickup:
		res = PickupItem{ItemName: k.ItemName}
		s.items = slices.Delete(s.items, idx, idx+1)
		s.focused = -1
		return res, true
	case NPC:
		res = TalkToNPC{NPCID: k.NPCID}
	case Door:
		res = s.useDoor(k.ID)
	case Lever:
		res = s.useLever(k.ID)
	case Button:
		res = s.useButton(k.ID)
	case Container:
		res = s.useContainer(k.ID)
	case Ladder:
		res = StartClimbing{Height: k.Height, Direction: k.Direction}
	default:
		res = Locked{}
	}
	s.refreshPrompt(idx)
	return res, true
}

func (s *System) useDoor(id ID) Result {
	st, ok := s.states[id].(*DoorState)
	if !ok || st.IsLocked {
		return Locked{}
	}
	st.IsOpen = !st.IsOpen
	return ToggleDoor{ID: id, NowOpen: st.IsOpen}
}

func (s *System) useLever(id ID) Result {
	st, ok := s.states[id].(*LeverState)
	if !ok {
		return Locked{}
	}
	st.IsOn = !st.IsOn
	return ToggleLever{ID: id, NowOn: st.IsOn, Linked: slices.Clone(st.LinkedIDs)}
}

func (s *System) useButton(id ID) Result {
	st, ok := s.states[id].(*ButtonState)
	if !ok {
		return Locked{}
	}
	st.IsPressed = true
	return PressButton{ID: id}
}

func (s *System) useContainer(id ID) Result {
	st, ok := s.states[id].(*ContainerState)
	if !ok {
		return Locked{}
	}
	st.IsOpen = true
	items := st.Items
	st.Items = nil
	if items == nil {
		items = []string{}
	}
	return OpenContainer{ID: id, Items: items}
}

// TriggerLinked toggles the lock of every linked door and the pressed flag
// of every linked button. Unknown ids and other kinds are ignored.
func (s *System) TriggerLinked(ids []ID) {
	for _, id := range ids {
		switch st := s.states[id].(type) {
		case *DoorState:
			st.IsLocked = !st.IsLocked
		case *ButtonState:
			st.IsPressed = !st.IsPressed
		}
	}
	s.refreshPrompts()
}

// State returns a copy of the state stored under id.
func (s *System) State(id ID) (State, bool) {
	st, ok := s.states[id]
	if !ok {
		return nil, false
	}
	return st.clone(), true
}

// Clear removes every interactable but keeps the world state.
func (s *System) Clear() {
	s.items = s.items[:0]
	s.focused = -1
}

// Retain keeps only the interactables for which keep returns true and
// clears the focus.
func (s *System) Retain(keep func(Interactable) bool) {
	s.items = slices.DeleteFunc(s.items, func(it Interactable) bool { return !keep(it) })
	s.focused = -1
}

// Count returns the number of registered interactables.
func (s *System) Count() int { return len(s.items) }

// Items returns a copy of the registry.
func (s *System) Items() []Interactable { return slices.Clone(s.items) }

// Save captures the world state ordered by id.
func (s *System) Save() SaveData {
	ids := make([]ID, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := SaveData{States: make([]StateEntry, 0, len(ids)), NextID: uint64(s.nextID)}
	for _, id := range ids {
		out.States = append(out.States, StateEntry{ID: id, State: s.states[id].clone()})
	}
	return out
}

// Load replaces the world state and id counter, then refreshes prompts.
func (s *System) Load(data SaveData) {
	s.states = make(map[ID]State, len(data.States))
	for _, e := range data.States {
		if e.State != nil {
			s.states[e.ID] = e.State.clone()
		}
	}
	s.nextID = ID(data.NextID)
	s.refreshPrompts()
}

func (s *System) refreshPrompts() {
	for i := range s.items {
		s.refreshPrompt(i)
	}
}

func (s *System) refreshPrompt(i int) {
	it := &s.items[i]
	switch k := it.Kind.(type) {
	case Door:
		if st, ok := s.states[k.ID].(*DoorState); ok {
			switch {
			case st.IsLocked:
				it.Prompt = "Locked"
			case st.IsOpen:
				it.Prompt = "Close Door"
			default:
				it.Prompt = "Open Door"
			}
		}
	case Lever:
		if st, ok := s.states[k.ID].(*LeverState); ok {
			if st.IsOn {
				it.Prompt = "Pull Lever (On)"
			} else {
				it.Prompt = "Pull Lever"
			}
		}
	case Container:
		if st, ok := s.states[k.ID].(*ContainerState); ok {
			switch {
			case st.IsOpen && len(st.Items) == 0:
				it.Prompt = "Empty Container"
			case st.IsOpen:
				it.Prompt = "Search Container"
			default:
				it.Prompt = "Open Container"
			}
		}
	}
}
