// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package relationship tracks how well the player knows each NPC: an
// affection score, a tier derived from it, and a bounded conversation
// memory that older lines are condensed out of.
package relationship

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Memory bounds.
const (
	MaxAffection  = 100
	MaxRecent     = 30
	CondenseCount = 15
)

// Tier is a named band of affection.
type Tier uint8

// Tiers, lowest first.
const (
	Stranger Tier = iota
	Acquaintance
	Friend
	CloseFriend
	Trusted
	Bonded
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	switch t {
	case Stranger:
		return "Stranger"
	case Acquaintance:
		return "Acquaintance"
	case Friend:
		return "Friend"
	case CloseFriend:
		return "Close Friend"
	case Trusted:
		return "Trusted"
	case Bonded:
		return "Bonded"
	default:
		return "Unknown"
	}
}

// TierFor maps an affection score onto a tier. The score is truncated to a
// whole number first.
func TierFor(affection float32) Tier {
	switch a := uint32(max(affection, 0)); {
	case a <= 15:
		return Stranger
	case a <= 35:
		return Acquaintance
	case a <= 55:
		return Friend
	case a <= 75:
		return CloseFriend
	case a <= 90:
		return Trusted
	default:
		return Bonded
	}
}

// Message is one remembered line of dialogue.
type Message struct {
	Speaker  string `json:"speaker"`
	Text     string `json:"text"`
	IsPlayer bool   `json:"is_player"`
}

// Relationship is the player's standing with one NPC.
type Relationship struct {
	Affection   float32   `json:"affection"`
	TimesSpoken uint32    `json:"times_spoken"`
	Summary     string    `json:"conversation_summary,omitempty"`
	Recent      []Message `json:"recent_messages"`
}

// Tier returns the current tier.
func (r *Relationship) Tier() Tier { return TierFor(r.Affection) }

// RecordConversation credits a finished conversation: 2 points plus one per
// message, at most 5 in total, with affection capped at MaxAffection. The
// messages join the memory.
func (r *Relationship) RecordConversation(msgs []Message) {
	gain := min(2+float32(min(len(msgs), 3)), 5)
	r.Affection = min(r.Affection+gain, MaxAffection)
	r.TimesSpoken++
	r.Recent = append(r.Recent, msgs...)
	r.condense()
}

// AddMessage appends one line to the memory.
func (r *Relationship) AddMessage(m Message) {
	r.Recent = append(r.Recent, m)
	r.condense()
}

// condense folds the oldest CondenseCount lines into the summary once the
// memory exceeds MaxRecent.
func (r *Relationship) condense() {
	for len(r.Recent) > MaxRecent {
		lines := make([]string, 0, CondenseCount)
		for _, m := range r.Recent[:CondenseCount] {
			lines = append(lines, fmt.Sprintf("%s: %s", m.Speaker, m.Text))
		}
		r.Recent = slices.Delete(r.Recent, 0, CondenseCount)

		block := strings.Join(lines, "\n")
		if r.Summary == "" {
			r.Summary = block
		} else {
			r.Summary += "\n---\n" + block
		}
	}
}

func (r *Relationship) clone() Relationship {
	c := *r
	c.Recent = slices.Clone(r.Recent)
	return c
}

// Store holds every relationship, keyed by the NPC's persistent key.
type Store struct {
	byKey map[string]*Relationship
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]*Relationship)}
}

// Get returns a copy of the relationship for key.
func (s *Store) Get(key string) (Relationship, bool) {
	r, ok := s.byKey[key]
	if !ok {
		return Relationship{}, false
	}
	return r.clone(), true
}

// GetOrCreate returns the live relationship for key, creating it at zero.
func (s *Store) GetOrCreate(key string) *Relationship {
	r, ok := s.byKey[key]
	if !ok {
		r = &Relationship{}
		s.byKey[key] = r
	}
	return r
}

// TierOf returns the tier for key; unknown NPCs are strangers.
func (s *Store) TierOf(key string) Tier {
	if r, ok := s.byKey[key]; ok {
		return r.Tier()
	}
	return Stranger
}

// RecordConversation credits a conversation with key and returns the
// resulting tier.
func (s *Store) RecordConversation(key string, msgs []Message) Tier {
	r := s.GetOrCreate(key)
	r.RecordConversation(msgs)
	return r.Tier()
}

// AddMessage remembers one line said with key.
func (s *Store) AddMessage(key string, m Message) {
	s.GetOrCreate(key).AddMessage(m)
}

// Len returns the number of known NPCs.
func (s *Store) Len() int { return len(s.byKey) }

// Keys returns the known keys in sorted order.
func (s *Store) Keys() []string {
	return slices.Sorted(maps.Keys(s.byKey))
}

// Save returns a deep copy of every relationship.
func (s *Store) Save() map[string]Relationship {
	out := make(map[string]Relationship, len(s.byKey))
	for k, r := range s.byKey {
		out[k] = r.clone()
	}
	return out
}

// Load replaces the store's contents with data.
func (s *Store) Load(data map[string]Relationship) {
	s.byKey = make(map[string]*Relationship, len(data))
	for k, r := range data {
		c := r.clone()
		s.byKey[k] = &c
	}
}
