// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package dialogue

import (
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/relationship"
)

var coolLines = map[npc.Role]string{
	npc.Villager:   "Sorry, I've got chores waiting.",
	npc.Guard:      "Move along.",
	npc.Shopkeeper: "Buying or browsing? Either way, mind the shelves.",
	npc.QuestGiver: "Return when you are ready to listen.",
	npc.Enemy:      "...",
}

var warmLines = map[npc.Role]string{
	npc.Villager:   "Good to see you again, friend. The kettle's always on.",
	npc.Guard:      "Ah, it's you. The roads are quieter with you around.",
	npc.Shopkeeper: "My favourite customer! I set something aside for you.",
	npc.QuestGiver: "I hoped you would come back. There is much to discuss.",
	npc.Enemy:      "...",
}

// Fallback is the line an NPC says when AI dialogue is unavailable. NPCs
// who count the player as a friend or better answer warmly.
func Fallback(role npc.Role, tier relationship.Tier) string {
	lines := coolLines
	if tier >= relationship.Friend {
		lines = warmLines
	}
	if l, ok := lines[role]; ok {
		return l
	}
	return "..."
}
