// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package dialogue

import (
	"slices"

	"github.com/riftwalk/riftwalk/internal/npc"
)

// End marks a response that closes the conversation.
const End = -1

// Node is one thing the NPC says plus the player's possible replies.
type Node struct {
	Text      string
	Responses []Response
}

// Response is a reply option. Next is a node index or End.
type Response struct {
	Text string
	Next int
}

// Tree is a static conversation.
type Tree struct {
	Nodes []Node
	Start int
}

// Active is the conversation in progress.
type Active struct {
	NPC     npc.ID
	NPCName string
	Role    npc.Role
	Node    int
}

// System runs static conversations, one at a time.
type System struct {
	trees    map[npc.Role]Tree
	active   *Active
	talkedTo []npc.ID
}

// NewSystem returns a system loaded with the stock trees.
func NewSystem() *System {
	return &System{trees: map[npc.Role]Tree{
		npc.Villager:   villagerTree,
		npc.Guard:      guardTree,
		npc.Shopkeeper: shopkeeperTree,
		npc.QuestGiver: questGiverTree,
	}}
}

// Register installs or replaces the tree for role.
func (s *System) Register(role npc.Role, t Tree) { s.trees[role] = t }

// HasTree reports whether role can hold a static conversation.
func (s *System) HasTree(role npc.Role) bool {
	_, ok := s.trees[role]
	return ok
}

// Start opens a conversation. Roles without a tree, such as enemies, do
// not talk and false is returned.
func (s *System) Start(id npc.ID, name string, role npc.Role) bool {
	t, ok := s.trees[role]
	if !ok {
		return false
	}
	s.active = &Active{NPC: id, NPCName: name, Role: role, Node: t.Start}
	if !slices.Contains(s.talkedTo, id) {
		s.talkedTo = append(s.talkedTo, id)
	}
	return true
}

// Active returns the conversation in progress.
func (s *System) Active() (Active, bool) {
	if s.active == nil {
		return Active{}, false
	}
	return *s.active, true
}

// IsActive reports whether a conversation is open.
func (s *System) IsActive() bool { return s.active != nil }

// Current returns the node being shown.
func (s *System) Current() (Node, bool) {
	if s.active == nil {
		return Node{}, false
	}
	t := s.trees[s.active.Role]
	if s.active.Node < 0 || s.active.Node >= len(t.Nodes) {
		return Node{}, false
	}
	return t.Nodes[s.active.Node], true
}

// Choose picks reply i. It returns false when i is not a valid reply; the
// conversation then stays where it was.
func (s *System) Choose(i int) bool {
	n, ok := s.Current()
	if !ok || i < 0 || i >= len(n.Responses) {
		return false
	}
	next := n.Responses[i].Next
	if next == End {
		s.active = nil
	} else {
		s.active.Node = next
	}
	return true
}

// End closes any open conversation.
func (s *System) End() { s.active = nil }

// TalkedTo lists the NPCs spoken with, in first-contact order.
func (s *System) TalkedTo() []npc.ID { return slices.Clone(s.talkedTo) }

var villagerTree = Tree{Nodes: []Node{
	{
		Text: "Well met, stranger. We rarely get visitors out this way.",
		Responses: []Response{
			{"What is this place?", 1},
			{"When are we?", 2},
			{"Farewell.", End},
		},
	},
	{
		Text: "Just fields and hills, though the old folk swear the land reshapes itself whenever the ages turn.",
		Responses: []Response{
			{"Go on.", 2},
			{"Thanks. Farewell.", End},
		},
	},
	{
		Text: "Hard to say. The years blur lately. Some talk of standing stones that open onto other times.",
		Responses: []Response{
			{"Where are these stones?", 3},
			{"Good to know. Farewell.", End},
		},
	},
	{
		Text: "Follow the faint light at dusk. Mind yourself on the other side; every age has its own teeth.",
		Responses: []Response{
			{"I will. Farewell.", End},
		},
	},
}}

var guardTree = Tree{Nodes: []Node{
	{
		Text: "Keep moving, traveler. The roads are not safe.",
		Responses: []Response{
			{"Safe from what?", 1},
			{"What do you watch over?", 2},
			{"I'll be on my way.", End},
		},
	},
	{
		Text: "Raiders on the outskirts. They grow bolder after dark.",
		Responses: []Response{
			{"I can take care of myself.", End},
			{"Thanks for the warning.", End},
		},
	},
	{
		Text: "This stretch of road and everyone on it. Report anything strange to me.",
		Responses: []Response{
			{"I will.", End},
		},
	},
}}

var shopkeeperTree = Tree{Nodes: []Node{
	{
		Text: "Come in, come in! Goods gathered from every century, priced for this one.",
		Responses: []Response{
			{"What are you selling?", 1},
			{"How is trade?", 2},
			{"Only looking.", End},
		},
	},
	{
		Text: "Shelves are a bit bare until the next caravan arrives. Do come back.",
		Responses: []Response{
			{"I'll return.", End},
		},
	},
	{
		Text: "Strange. Half my regulars wander off into some other age and never settle their tabs.",
		Responses: []Response{
			{"Rough luck. Goodbye.", End},
		},
	},
}}

var questGiverTree = Tree{Nodes: []Node{
	{
		Text: "You carry yourself like someone who has crossed the ages. I may have work for you.",
		Responses: []Response{
			{"What kind of work?", 1},
			{"Not now.", End},
		},
	},
	{
		Text: "The timeline frays. Soon I will need someone to mend it, one era at a time.",
		Responses: []Response{
			{"Count me in.", 2},
			{"Find someone else.", End},
		},
	},
	{
		Text: "Then we will speak again when the hour comes. Walk carefully.",
		Responses: []Response{
			{"Until then.", End},
		},
	},
}}
