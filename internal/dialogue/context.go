// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package dialogue drives conversations with NPCs: static conversation
// trees for when the backend is unreachable, and AI-backed sessions that
// carry game context and remembered history into each chat request.
package dialogue

import (
	"fmt"
	"strings"

	"github.com/riftwalk/riftwalk/internal/integration"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/relationship"
)

// DefaultModel is the chat model requested from the backend.
const DefaultModel = "grok"

// EraDescription names the historical era of year.
func EraDescription(year int64) string {
	switch {
	case year < -3000:
		return "Prehistoric Era"
	case year < 0:
		return "Ancient Era"
	case year < 500:
		return "Classical Era"
	case year < 1500:
		return "Medieval Era"
	case year < 1800:
		return "Early Modern Era"
	case year < 1950:
		return "Industrial Era"
	case year < 2100:
		return "Modern Era"
	default:
		return "Future Era"
	}
}

// TimeOfDayDescription names the part of day for an hour in [0, 24).
func TimeOfDayDescription(hour float32) string {
	switch h := uint32(max(hour, 0)); {
	case h <= 5:
		return "Night"
	case h <= 11:
		return "Morning"
	case h <= 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// Context is the game state an NPC knows about when it speaks.
// CharacterPrompt is the server character's own prompt, if any.
type Context struct {
	NPCName         string
	Role            npc.Role
	CharacterPrompt string
	Year            int64
	TimeOfDay       float32
	Weather         string
	PlayerName      string
	Activity        string
	Location        string
	Affection       float32
	Tier            relationship.Tier
	Summary         string
}

// GameContext renders the context block appended to the system prompt.
func (c Context) GameContext() string {
	var b strings.Builder
	b.WriteString("[GAME CONTEXT]\n")
	fmt.Fprintf(&b, "Year: %d (%s)\n", c.Year, EraDescription(c.Year))
	fmt.Fprintf(&b, "Time: %s (%.0f:00)\n", TimeOfDayDescription(c.TimeOfDay), c.TimeOfDay)
	fmt.Fprintf(&b, "Weather: %s\n", c.Weather)
	fmt.Fprintf(&b, "Player: %s\n", c.PlayerName)
	fmt.Fprintf(&b, "NPC Activity: %s\n", c.Activity)
	fmt.Fprintf(&b, "Location: %s\n", c.Location)
	fmt.Fprintf(&b, "Relationship: %s (%.0f/100)", c.Tier, c.Affection)
	if c.Summary != "" {
		b.WriteString("\n\n[PREVIOUS CONVERSATION SUMMARY]\n")
		b.WriteString(c.Summary)
	}
	return b.String()
}

// SystemPrompt is the character prompt, or a stock one naming the NPC,
// followed by the game context.
func (c Context) SystemPrompt() string {
	prompt := c.CharacterPrompt
	if prompt == "" {
		prompt = fmt.Sprintf("You are %s, a %s in a time-travel game. Stay in character. Keep responses under 3 sentences.",
			c.NPCName, strings.ToLower(c.Role.String()))
	}
	return prompt + "\n\n" + c.GameContext()
}

// ChatRequest builds the backend request for history.
func (c Context) ChatRequest(history []integration.ChatMessage) integration.ChatRequest {
	return integration.ChatRequest{
		Messages:     history,
		SystemPrompt: c.SystemPrompt(),
		Model:        DefaultModel,
	}
}
