// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package relationship_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwalk/riftwalk/internal/relationship"
)

func lines(n int) []relationship.Message {
	out := make([]relationship.Message, n)
	for i := range out {
		out[i] = relationship.Message{
			Speaker:  fmt.Sprintf("S%d", i),
			Text:     fmt.Sprintf("line %d", i),
			IsPlayer: i%2 == 0,
		}
	}
	return out
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		affection float32
		want      relationship.Tier
	}{
		{-3, relationship.Stranger},
		{0, relationship.Stranger},
		{15.9, relationship.Stranger},
		{16, relationship.Acquaintance},
		{35, relationship.Acquaintance},
		{36, relationship.Friend},
		{55, relationship.Friend},
		{56, relationship.CloseFriend},
		{75, relationship.CloseFriend},
		{76, relationship.Trusted},
		{90, relationship.Trusted},
		{91, relationship.Bonded},
		{100, relationship.Bonded},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.affection), func(t *testing.T) {
			assert.Equal(t, tt.want, relationship.TierFor(tt.affection))
		})
	}
	assert.Equal(t, "Close Friend", relationship.CloseFriend.String())
}

func TestRecordConversation_Gain(t *testing.T) {
	tests := []struct {
		name     string
		messages int
		want     float32
	}{
		{"empty", 0, 2},
		{"two lines", 2, 4},
		{"three lines", 3, 5},
		{"many lines capped", 20, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r relationship.Relationship
			r.RecordConversation(lines(tt.messages))
			assert.InDelta(t, tt.want, r.Affection, 1e-6)
			assert.Equal(t, uint32(1), r.TimesSpoken)
		})
	}
}

func TestRecordConversation_CapsAtMax(t *testing.T) {
	r := relationship.Relationship{Affection: 98}
	r.RecordConversation(lines(3))
	assert.InDelta(t, relationship.MaxAffection, r.Affection, 1e-6)
	assert.Equal(t, relationship.Bonded, r.Tier())
}

func TestAddMessage_Condenses(t *testing.T) {
	var r relationship.Relationship
	for _, m := range lines(relationship.MaxRecent) {
		r.AddMessage(m)
	}
	assert.Empty(t, r.Summary)
	assert.Len(t, r.Recent, relationship.MaxRecent)

	r.AddMessage(relationship.Message{Speaker: "Gareth", Text: "one more"})
	assert.Len(t, r.Recent, relationship.MaxRecent+1-relationship.CondenseCount)
	assert.Equal(t, "S15", r.Recent[0].Speaker)

	summary := strings.Split(r.Summary, "\n")
	require.Len(t, summary, relationship.CondenseCount)
	assert.Equal(t, "S0: line 0", summary[0])
	assert.Equal(t, "S14: line 14", summary[14])

	for _, m := range lines(relationship.CondenseCount) {
		r.AddMessage(m)
	}
	blocks := strings.Split(r.Summary, "\n---\n")
	assert.Len(t, blocks, 2)
	assert.LessOrEqual(t, len(r.Recent), relationship.MaxRecent)
}

func TestRecordConversation_LargeBatchStaysBounded(t *testing.T) {
	var r relationship.Relationship
	r.RecordConversation(lines(70))
	assert.LessOrEqual(t, len(r.Recent), relationship.MaxRecent)
	assert.Equal(t, "S45", r.Recent[0].Speaker)
	assert.Len(t, strings.Split(r.Summary, "\n---\n"), 3)
}

func TestStore_RecordAndTier(t *testing.T) {
	s := relationship.NewStore()
	assert.Equal(t, relationship.Stranger, s.TierOf("Gareth@4,0#0"))

	var tier relationship.Tier
	for range 4 {
		tier = s.RecordConversation("Gareth@4,0#0", lines(3))
	}
	assert.Equal(t, relationship.Acquaintance, tier)

	r, ok := s.Get("Gareth@4,0#0")
	require.True(t, ok)
	assert.Equal(t, uint32(4), r.TimesSpoken)
	assert.InDelta(t, 20, r.Affection, 1e-6)

	_, ok = s.Get("nobody")
	assert.False(t, ok)
	assert.Equal(t, []string{"Gareth@4,0#0"}, s.Keys())
}

func TestStore_SaveLoadAreIndependent(t *testing.T) {
	s := relationship.NewStore()
	s.RecordConversation("a", lines(2))
	s.AddMessage("b", relationship.Message{Speaker: "Mira", Text: "hello"})

	saved := s.Save()
	require.Len(t, saved, 2)

	s.AddMessage("a", relationship.Message{Speaker: "late", Text: "after save"})
	assert.Len(t, saved["a"].Recent, 2, "save is a snapshot")

	restored := relationship.NewStore()
	restored.Load(saved)
	assert.Equal(t, 2, restored.Len())

	got, ok := restored.Get("b")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Recent[0].Text)

	saved["b"].Recent[0].Text = "mutated"
	got, _ = restored.Get("b")
	assert.Equal(t, "hello", got.Recent[0].Text)
}
