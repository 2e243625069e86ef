// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package interaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/samber/oops"
)

// State is the persistent state of a stateful interactable. The concrete
// states are *DoorState, *LeverState, *ButtonState and *ContainerState.
type State interface {
	variant() string
	clone() State
}

// DoorState is an openable, lockable door.
type DoorState struct {
	IsOpen   bool `json:"is_open"`
	IsLocked bool `json:"is_locked"`
}

// LeverState is a switch wired to other interactables.
type LeverState struct {
	IsOn      bool `json:"is_on"`
	LinkedIDs []ID `json:"linked_ids"`
}

// ButtonState is a pressable button.
type ButtonState struct {
	IsPressed bool `json:"is_pressed"`
}

// ContainerState holds items until opened.
type ContainerState struct {
	IsOpen bool     `json:"is_open"`
	Items  []string `json:"items"`
}

func (*DoorState) variant() string      { return "Door" }
func (*LeverState) variant() string     { return "Lever" }
func (*ButtonState) variant() string    { return "Button" }
func (*ContainerState) variant() string { return "Container" }

func (s *DoorState) clone() State {
	c := *s
	return &c
}

func (s *ButtonState) clone() State {
	c := *s
	return &c
}

func (s *LeverState) clone() State {
	c := *s
	c.LinkedIDs = slices.Clone(s.LinkedIDs)
	return &c
}

func (s *ContainerState) clone() State {
	c := *s
	c.Items = slices.Clone(s.Items)
	return &c
}

// StateEntry pairs an id with its state. It encodes as [id, {"Variant": {...}}].
type StateEntry struct {
	ID    ID
	State State
}

// MarshalJSON implements json.Marshaler.
func (e StateEntry) MarshalJSON() ([]byte, error) {
	if e.State == nil {
		return nil, oops.Code("SAVE_SERIALIZATION").With("id", e.ID).Errorf("state is nil")
	}
	body, err := marshalState(e.State)
	if err != nil {
		return nil, err
	}
	return json.Marshal([]any{uint64(e.ID), map[string]json.RawMessage{e.State.variant(): body}})
}

func marshalState(s State) ([]byte, error) {
	switch v := s.(type) {
	case *LeverState:
		c := *v
		if c.LinkedIDs == nil {
			c.LinkedIDs = []ID{}
		}
		return json.Marshal(c)
	case *ContainerState:
		c := *v
		if c.Items == nil {
			c.Items = []string{}
		}
		return json.Marshal(c)
	default:
		return json.Marshal(v)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *StateEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return oops.Code("SAVE_SERIALIZATION").Wrapf(err, "decode state entry")
	}
	if len(pair) != 2 {
		return oops.Code("SAVE_SERIALIZATION").With("len", len(pair)).Errorf("state entry must be a pair")
	}
	var id uint64
	if err := json.Unmarshal(pair[0], &id); err != nil {
		return oops.Code("SAVE_SERIALIZATION").Wrapf(err, "decode state id")
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(pair[1], &tagged); err != nil {
		return oops.Code("SAVE_SERIALIZATION").With("id", id).Wrapf(err, "decode state variant")
	}
	if len(tagged) != 1 {
		return oops.Code("SAVE_SERIALIZATION").With("id", id).Errorf("state must have exactly one variant")
	}
	for name, body := range tagged {
		st, err := newState(name)
		if err != nil {
			return oops.With("id", id).Wrap(err)
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(st); err != nil {
			return oops.Code("SAVE_SERIALIZATION").With("id", id).With("variant", name).Wrapf(err, "decode state body")
		}
		e.ID = ID(id)
		e.State = st
	}
	return nil
}

func newState(variant string) (State, error) {
	switch variant {
	case "Door":
		return &DoorState{}, nil
	case "Lever":
		return &LeverState{}, nil
	case "Button":
		return &ButtonState{}, nil
	case "Container":
		return &ContainerState{}, nil
	default:
		return nil, oops.Code("SAVE_SERIALIZATION").Errorf("unknown state variant %q", variant)
	}
}

// SaveData is the persisted world state of every stateful interactable.
type SaveData struct {
	States []StateEntry `json:"states"`
	NextID uint64       `json:"next_id"`
}

// MarshalJSON keeps an empty state list as [] rather than null.
func (d SaveData) MarshalJSON() ([]byte, error) {
	type plain SaveData
	p := plain(d)
	if p.States == nil {
		p.States = []StateEntry{}
	}
	return json.Marshal(p)
}

// String summarises the save for logs.
func (d SaveData) String() string {
	return fmt.Sprintf("interaction save: %d states, next id %d", len(d.States), d.NextID)
}
