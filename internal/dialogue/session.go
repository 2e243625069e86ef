// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package dialogue

import (
	"maps"
	"slices"

	"github.com/riftwalk/riftwalk/internal/integration"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/relationship"
)

// ChatSender submits chat requests. *integration.Client implements it.
type ChatSender interface {
	SendChat(req integration.ChatRequest) *integration.Pending[integration.ChatResponse]
}

// SessionState is where an AI conversation stands.
type SessionState uint8

// Session states.
const (
	WaitingForInput SessionState = iota
	WaitingForResponse
	Failed
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case WaitingForInput:
		return "waiting_for_input"
	case WaitingForResponse:
		return "waiting_for_response"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// PlayerSpeaker labels the player's lines.
const PlayerSpeaker = "You"

// Session is one AI conversation.
type Session struct {
	Key      string
	NPC      npc.ID
	Context  Context
	State    SessionState
	Err      error
	Messages []relationship.Message

	history []integration.ChatMessage
	pending *integration.Pending[integration.ChatResponse]
}

// Sessions runs AI conversations one at a time and remembers each NPC's
// chat history between them.
type Sessions struct {
	sender    ChatSender
	histories map[string][]integration.ChatMessage
	active    *Session
}

// NewSessions returns a session runner sending through sender.
func NewSessions(sender ChatSender) *Sessions {
	return &Sessions{sender: sender, histories: make(map[string][]integration.ChatMessage)}
}

// Start opens a conversation with the NPC remembered under key and asks
// for its greeting. Any open conversation is ended first.
func (s *Sessions) Start(key string, id npc.ID, ctx Context) *Session {
	s.End()

	history := slices.Clone(s.histories[key])
	greeting := "*A traveler approaches you.* Greet them as " + ctx.NPCName + ", staying in character."
	if len(history) > 0 {
		greeting = "*The traveler returns.* Greet them again as " + ctx.NPCName + ", acknowledging you have met before."
	}
	history = append(history, integration.ChatMessage{Role: integration.RoleUser, Content: greeting})

	s.active = &Session{Key: key, NPC: id, Context: ctx, history: history}
	s.request()
	return s.active
}

func (s *Sessions) request() {
	a := s.active
	a.State = WaitingForResponse
	a.Err = nil
	a.pending = s.sender.SendChat(a.Context.ChatRequest(slices.Clone(a.history)))
}

// Say sends a player line. It is refused while a reply is outstanding.
func (s *Sessions) Say(text string) bool {
	a := s.active
	if a == nil || a.State == WaitingForResponse {
		return false
	}
	a.history = append(a.history, integration.ChatMessage{Role: integration.RoleUser, Content: text})
	a.Messages = append(a.Messages, relationship.Message{Speaker: PlayerSpeaker, Text: text, IsPlayer: true})
	s.request()
	return true
}

// Poll checks for the outstanding reply without blocking. It returns true
// when the session changed state. A failed request leaves the NPC's
// fallback line in the transcript.
func (s *Sessions) Poll() bool {
	a := s.active
	if a == nil || a.State != WaitingForResponse {
		return false
	}
	res, ok := a.pending.TryRecv()
	if !ok {
		return false
	}
	a.pending = nil
	if res.Err != nil {
		a.State = Failed
		a.Err = res.Err
		a.Messages = append(a.Messages, relationship.Message{
			Speaker: a.Context.NPCName,
			Text:    Fallback(a.Context.Role, a.Context.Tier),
		})
		return true
	}
	a.history = append(a.history, integration.ChatMessage{Role: integration.RoleAssistant, Content: res.Value.Content})
	a.Messages = append(a.Messages, relationship.Message{Speaker: a.Context.NPCName, Text: res.Value.Content})
	a.State = WaitingForInput
	return true
}

// Active returns the open session, if any.
func (s *Sessions) Active() (*Session, bool) { return s.active, s.active != nil }

// End closes the open session, storing its chat history, and returns the
// transcript for relationship bookkeeping.
func (s *Sessions) End() (*Session, bool) {
	a := s.active
	if a == nil {
		return nil, false
	}
	s.active = nil
	s.histories[a.Key] = a.history
	return a, true
}

// Histories returns a copy of every stored chat history.
func (s *Sessions) Histories() map[string][]integration.ChatMessage {
	out := make(map[string][]integration.ChatMessage, len(s.histories))
	for k, h := range s.histories {
		out[k] = slices.Clone(h)
	}
	return out
}

// SetHistories replaces the stored chat histories.
func (s *Sessions) SetHistories(h map[string][]integration.ChatMessage) {
	s.histories = maps.Clone(h)
	if s.histories == nil {
		s.histories = make(map[string][]integration.ChatMessage)
	}
}
