// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package interaction

import "github.com/go-gl/mathgl/mgl32"

// ID identifies a stateful interactable.
type ID uint64

// Kind is what an interactable does when used. The concrete kinds are
// Sign, TimePortal, Pickup, NPC, Door, Lever, Button, Container and Ladder.
type Kind interface {
	isKind()
}

// Sign shows a text.
type Sign struct{ Text string }

// TimePortal moves the player to another year.
type TimePortal struct{ TargetYear int64 }

// Pickup is an item lying in the world.
type Pickup struct{ ItemName string }

// NPC starts a conversation.
type NPC struct{ NPCID uint64 }

// Door refers to a DoorState.
type Door struct{ ID ID }

// Lever refers to a LeverState.
type Lever struct{ ID ID }

// Button refers to a ButtonState.
type Button struct{ ID ID }

// Container refers to a ContainerState.
type Container struct{ ID ID }

// Ladder can be climbed.
type Ladder struct {
	Height    float32
	Direction mgl32.Vec3
}

func (Sign) isKind()       {}
func (TimePortal) isKind() {}
func (Pickup) isKind()     {}
func (NPC) isKind()        {}
func (Door) isKind()       {}
func (Lever) isKind()      {}
func (Button) isKind()     {}
func (Container) isKind()  {}
func (Ladder) isKind()     {}

// Interactable is an object the player can focus and use.
type Interactable struct {
	Kind     Kind
	Position mgl32.Vec3
	Radius   float32
	Prompt   string
}

// NewSign builds a readable sign.
func NewSign(pos mgl32.Vec3, text string) Interactable {
	return Interactable{Kind: Sign{Text: text}, Position: pos, Radius: 3.0, Prompt: "Read"}
}

// NewTimePortal builds a portal to targetYear labeled for the prompt.
func NewTimePortal(pos mgl32.Vec3, targetYear int64, label string) Interactable {
	return Interactable{Kind: TimePortal{TargetYear: targetYear}, Position: pos, Radius: 4.0, Prompt: "Enter " + label}
}

// NewPickup builds a collectible item.
func NewPickup(pos mgl32.Vec3, itemName string) Interactable {
	return Interactable{Kind: Pickup{ItemName: itemName}, Position: pos, Radius: 2.5, Prompt: "Pick up " + itemName}
}

// NewNPC builds a conversation target with a custom radius.
func NewNPC(pos mgl32.Vec3, npcID uint64, name string, radius float32) Interactable {
	return Interactable{Kind: NPC{NPCID: npcID}, Position: pos, Radius: radius, Prompt: "Talk to " + name}
}

// Result is the outcome of using an interactable. The concrete results
// are ShowText, ChangeTimePeriod, PickupItem, TalkToNPC, ToggleDoor,
// ToggleLever, PressButton, OpenContainer, StartClimbing and Locked.
type Result interface {
	isResult()
}

// ShowText displays a sign's text.
type ShowText struct{ Text string }

// ChangeTimePeriod requests travel to Year.
type ChangeTimePeriod struct{ Year int64 }

// PickupItem collected an item.
type PickupItem struct{ ItemName string }

// TalkToNPC opens dialogue with an NPC.
type TalkToNPC struct{ NPCID uint64 }

// ToggleDoor opened or closed a door.
type ToggleDoor struct {
	ID      ID
	NowOpen bool
}

// ToggleLever flipped a lever. Linked lists the ids it controls.
type ToggleLever struct {
	ID     ID
	NowOn  bool
	Linked []ID
}

// PressButton pressed a button.
type PressButton struct{ ID ID }

// OpenContainer opened a container and took its items.
type OpenContainer struct {
	ID    ID
	Items []string
}

// StartClimbing begins climbing a ladder.
type StartClimbing struct {
	Height    float32
	Direction mgl32.Vec3
}

// Locked means the object cannot be used right now.
type Locked struct{}

func (ShowText) isResult()         {}
func (ChangeTimePeriod) isResult() {}
func (PickupItem) isResult()       {}
func (TalkToNPC) isResult()        {}
func (ToggleDoor) isResult()       {}
func (ToggleLever) isResult()      {}
func (PressButton) isResult()      {}
func (OpenContainer) isResult()    {}
func (StartClimbing) isResult()    {}
func (Locked) isResult()           {}
