// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package interaction_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/interaction"
)

var (
	origin  = mgl32.Vec3{}
	forward = mgl32.Vec3{0, 0, 1}
)

func atAngle(deg, dist float64) mgl32.Vec3 {
	rad := deg * math.Pi / 180
	return mgl32.Vec3{float32(math.Sin(rad) * dist), 0, float32(math.Cos(rad) * dist)}
}

func TestFocusRadiusBoundary(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewSign(mgl32.Vec3{0, 0, 3}, "edge"))
	s.Update(origin, forward)
	_, ok := s.Focused()
	assert.True(t, ok, "distance equal to radius selects")

	s.Update(mgl32.Vec3{0, 0, -0.01}, forward)
	_, ok = s.Focused()
	assert.False(t, ok)
}

func TestFocusCone(t *testing.T) {
	tests := []struct {
		deg  float64
		want bool
	}{
		{0, true},
		{45, true},
		{60, true},
		{-60, true},
		{70, false},
		{120, false},
		{180, false},
	}
	for _, tt := range tests {
		s := interaction.NewSystem()
		s.Add(interaction.NewSign(atAngle(tt.deg, 2), "x"))
		s.Update(origin, forward)
		_, ok := s.Focused()
		assert.Equal(t, tt.want, ok, "angle %v", tt.deg)
	}
}

func TestFocusIgnoresPitch(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewSign(mgl32.Vec3{0, 1, 2}, "x"))
	s.Update(origin, mgl32.Vec3{0, -0.9, 0.3}.Normalize())
	_, ok := s.Focused()
	assert.True(t, ok)
}

func TestFocusVeryCloseSkipsFacing(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewSign(mgl32.Vec3{0, 0, -0.05}, "under foot"))
	s.Update(origin, forward)
	_, ok := s.Focused()
	assert.True(t, ok)
}

func TestFocusPicksClosest(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewSign(mgl32.Vec3{0, 0, 2.5}, "far"))
	s.Add(interaction.NewSign(mgl32.Vec3{0.2, 0, 1}, "near"))
	s.Update(origin, forward)

	it, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, interaction.Sign{Text: "near"}, it.Kind)

	res, ok := s.Interact()
	require.True(t, ok)
	assert.Equal(t, interaction.ShowText{Text: "near"}, res)
}

func TestInteractWithoutFocus(t *testing.T) {
	s := interaction.NewSystem()
	_, ok := s.Interact()
	assert.False(t, ok)
}

func TestLeverUnlocksLinkedDoor(t *testing.T) {
	s := interaction.NewSystem()
	door := s.AddDoor(mgl32.Vec3{10, 0, 0}, true)
	lever := s.AddLever(mgl32.Vec3{0, 0, 2}, []interaction.ID{door})

	s.Update(origin, forward)
	it, ok := s.Focused()
	require.True(t, ok)
	assert.Equal(t, interaction.Lever{ID: lever}, it.Kind)

	res, ok := s.Interact()
	require.True(t, ok)
	assert.Equal(t, interaction.ToggleLever{ID: lever, NowOn: true, Linked: []interaction.ID{door}}, res)

	s.TriggerLinked(res.(interaction.ToggleLever).Linked)
	st, ok := s.State(door)
	require.True(t, ok)
	assert.Equal(t, &interaction.DoorState{IsOpen: false, IsLocked: false}, st)
}

func TestDoorPrompts(t *testing.T) {
	s := interaction.NewSystem()
	s.AddDoor(mgl32.Vec3{0, 0, 1}, true)
	s.Update(origin, forward)
	it, _ := s.Focused()
	assert.Equal(t, "Locked", it.Prompt)

	res, _ := s.Interact()
	assert.Equal(t, interaction.Locked{}, res)

	s.TriggerLinked([]interaction.ID{1})
	s.Update(origin, forward)
	it, _ = s.Focused()
	assert.Equal(t, "Open Door", it.Prompt)

	res, _ = s.Interact()
	assert.Equal(t, interaction.ToggleDoor{ID: 1, NowOpen: true}, res)
	s.Update(origin, forward)
	it, _ = s.Focused()
	assert.Equal(t, "Close Door", it.Prompt)
}

func TestContainerPrompts(t *testing.T) {
	s := interaction.NewSystem()
	id := s.AddContainer(mgl32.Vec3{0, 0, 1}, []string{"Coin", "Gem"})
	s.Update(origin, forward)
	it, _ := s.Focused()
	assert.Equal(t, "Open Container", it.Prompt)

	res, _ := s.Interact()
	assert.Equal(t, interaction.OpenContainer{ID: id, Items: []string{"Coin", "Gem"}}, res)

	s.Update(origin, forward)
	it, _ = s.Focused()
	assert.Equal(t, "Empty Container", it.Prompt)

	res, _ = s.Interact()
	assert.Equal(t, interaction.OpenContainer{ID: id, Items: []string{}}, res)
}

func TestButtonAndLinkedToggle(t *testing.T) {
	s := interaction.NewSystem()
	btn := s.AddButton(mgl32.Vec3{0, 0, 1})
	s.Update(origin, forward)
	res, _ := s.Interact()
	assert.Equal(t, interaction.PressButton{ID: btn}, res)

	s.TriggerLinked([]interaction.ID{btn, 999})
	st, _ := s.State(btn)
	assert.Equal(t, &interaction.ButtonState{IsPressed: false}, st)
}

func TestPickupIsConsumed(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewPickup(mgl32.Vec3{0, 0, 1}, "Ancient Coin"))
	s.Update(origin, forward)
	it, _ := s.Focused()
	assert.Equal(t, "Pick up Ancient Coin", it.Prompt)

	res, ok := s.Interact()
	require.True(t, ok)
	assert.Equal(t, interaction.PickupItem{ItemName: "Ancient Coin"}, res)
	assert.Zero(t, s.Count())
	_, ok = s.Focused()
	assert.False(t, ok)
}

func TestOtherKinds(t *testing.T) {
	s := interaction.NewSystem()
	s.Add(interaction.NewTimePortal(mgl32.Vec3{0, 0, 1}, 1200, "Medieval"))
	s.Update(origin, forward)
	it, _ := s.Focused()
	assert.Equal(t, "Enter Medieval", it.Prompt)
	assert.Equal(t, float32(4), it.Radius)
	res, _ := s.Interact()
	assert.Equal(t, interaction.ChangeTimePeriod{Year: 1200}, res)

	s.Clear()
	s.Add(interaction.NewNPC(mgl32.Vec3{0, 0, 1}, 42, "Mira", 3.5))
	s.Update(origin, forward)
	it, _ = s.Focused()
	assert.Equal(t, "Talk to Mira", it.Prompt)
	res, _ = s.Interact()
	assert.Equal(t, interaction.TalkToNPC{NPCID: 42}, res)

	s.Clear()
	s.AddLadder(mgl32.Vec3{0, 0, 1}, 6, mgl32.Vec3{0, 1, 0})
	s.Update(origin, forward)
	res, _ = s.Interact()
	assert.Equal(t, interaction.StartClimbing{Height: 6, Direction: mgl32.Vec3{0, 1, 0}}, res)
}

func TestClearKeepsStateAndRetainFilters(t *testing.T) {
	s := interaction.NewSystem()
	door := s.AddDoor(mgl32.Vec3{0, 0, 1}, false)
	s.Add(interaction.NewSign(mgl32.Vec3{0, 0, 2}, "x"))

	s.Retain(func(it interaction.Interactable) bool {
		_, isSign := it.Kind.(interaction.Sign)
		return isSign
	})
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
	_, ok := s.State(door)
	assert.True(t, ok)
	assert.Equal(t, interaction.ID(2), s.AddButton(origin))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := interaction.NewSystem()
	door := s.AddDoor(mgl32.Vec3{0, 0, 1}, false)
	s.AddLever(mgl32.Vec3{5, 0, 0}, []interaction.ID{door})
	s.AddContainer(mgl32.Vec3{9, 0, 0}, []string{"Map"})
	s.Update(origin, forward)
	s.Interact()

	saved := s.Save()
	raw, err := json.Marshal(saved)
	require.NoError(t, err)

	var decoded interaction.SaveData
	require.NoError(t, json.Unmarshal(raw, &decoded))

	other := interaction.NewSystem()
	other.AddDoor(mgl32.Vec3{0, 0, 1}, true)
	other.Load(decoded)
	assert.Equal(t, saved, other.Save())

	other.Update(origin, forward)
	it, _ := other.Focused()
	assert.Equal(t, "Close Door", it.Prompt)
	assert.Equal(t, interaction.ID(4), other.AddButton(origin))
}

func TestSaveJSONShape(t *testing.T) {
	s := interaction.NewSystem()
	s.AddDoor(origin, true)
	s.AddLever(origin, nil)
	s.AddButton(origin)
	s.AddContainer(origin, []string{"Scroll"})

	raw, err := json.Marshal(s.Save())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"states": [
			[1, {"Door": {"is_open": false, "is_locked": true}}],
			[2, {"Lever": {"is_on": false, "linked_ids": []}}],
			[3, {"Button": {"is_pressed": false}}],
			[4, {"Container": {"is_open": false, "items": ["Scroll"]}}]
		],
		"next_id": 5
	}`, string(raw))

	empty, err := json.Marshal(interaction.NewSystem().Save())
	require.NoError(t, err)
	assert.JSONEq(t, `{"states": [], "next_id": 1}`, string(empty))
}

func TestDecodeRejectsBadEntries(t *testing.T) {
	bad := []string{
		`{"states": [[1]], "next_id": 2}`,
		`{"states": [[1, {"Window": {}}]], "next_id": 2}`,
		`{"states": [[1, {"Door": {"is_open": true}, "Lever": {"is_on": true}}]], "next_id": 2}`,
		`{"states": [[1, {"Door": {"is_ajar": true}}]], "next_id": 2}`,
	}
	for _, in := range bad {
		var d interaction.SaveData
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}
