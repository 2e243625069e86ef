// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import (
	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/dialogue"
	"github.com/riftwalk/riftwalk/internal/npc"
	"github.com/riftwalk/riftwalk/internal/relationship"
)

type conversation struct {
	id  npc.ID
	key string
	// transcript collects the lines of a scripted conversation.
	transcript []relationship.Message
	ai         bool
}

// StartConversation opens a conversation with an NPC. The AI model is used
// while the chat client is online; otherwise the NPC's scripted tree is.
func (s *Simulation) StartConversation(id npc.ID) error {
	n, ok := s.npcs.NPC(id)
	if !ok {
		return oops.Code("SIM_NPC_NOT_FOUND").With("npc_id", uint64(id)).Errorf("npc is not loaded")
	}
	if !n.IsInteractable() {
		return oops.Code("SIM_NOT_TALKABLE").With("npc_id", uint64(id)).Errorf("%s will not talk", n.Data.Name)
	}
	s.EndConversation()

	key := n.Key()
	conv := &conversation{id: id, key: key}
	if s.sessions != nil && s.chat.IsOnline() {
		s.sessions.Start(key, id, s.dialogueContext(n))
		conv.ai = true
	} else {
		if !s.trees.Start(id, n.Data.Name, n.Data.Role) {
			return oops.Code("SIM_NOT_TALKABLE").With("npc_id", uint64(id)).Errorf("%s has nothing to say", n.Data.Name)
		}
		if node, ok := s.trees.Current(); ok {
			conv.transcript = append(conv.transcript, relationship.Message{Speaker: n.Data.Name, Text: node.Text})
		}
	}
	s.npcs.SetTalking(id, true)
	s.conv = conv
	s.logger.Debug("conversation started", "npc", key, "ai", conv.ai)
	return nil
}

func (s *Simulation) dialogueContext(n *npc.Instance) dialogue.Context {
	rel, _ := s.relationships.Get(n.Key())
	return dialogue.Context{
		NPCName:    n.Data.Name,
		Role:       n.Data.Role,
		Year:       s.timeline.ActiveYear(),
		TimeOfDay:  s.timeOfDay,
		PlayerName: s.cfg.PlayerName,
		Activity:   n.CurrentAction(),
		Location:   s.timeline.EraName(),
		Affection:  rel.Affection,
		Tier:       rel.Tier(),
		Summary:    rel.Summary,
	}
}

// IsTalking reports whether a conversation is open.
func (s *Simulation) IsTalking() bool { return s.conv != nil }

// TalkingTo returns the NPC in the open conversation.
func (s *Simulation) TalkingTo() (npc.ID, bool) {
	if s.conv == nil {
		return 0, false
	}
	return s.conv.id, true
}

// Say sends a player line to the AI conversation.
func (s *Simulation) Say(text string) error {
	if s.conv == nil || !s.conv.ai {
		return oops.Code("SIM_NO_CONVERSATION").Errorf("no AI conversation is open")
	}
	if !s.sessions.Say(text) {
		return oops.Code("SIM_DIALOGUE_BUSY").With("npc", s.conv.key).Errorf("waiting for a reply")
	}
	return nil
}

// Session returns the open AI session.
func (s *Simulation) Session() (*dialogue.Session, bool) {
	if s.sessions == nil || s.conv == nil || !s.conv.ai {
		return nil, false
	}
	return s.sessions.Active()
}

// DialogueNode returns the node shown by the open scripted conversation.
func (s *Simulation) DialogueNode() (dialogue.Node, bool) {
	if s.conv == nil || s.conv.ai {
		return dialogue.Node{}, false
	}
	return s.trees.Current()
}

// Choose picks reply i in the scripted conversation. Reaching the end of
// the tree closes the conversation.
func (s *Simulation) Choose(i int) error {
	if s.conv == nil || s.conv.ai {
		return oops.Code("SIM_NO_CONVERSATION").Errorf("no scripted conversation is open")
	}
	node, _ := s.trees.Current()
	if !s.trees.Choose(i) {
		return oops.Code("SIM_INVALID_CHOICE").With("choice", i).Errorf("no such reply")
	}
	s.conv.transcript = append(s.conv.transcript, relationship.Message{
		Speaker:  dialogue.PlayerSpeaker,
		Text:     node.Responses[i].Text,
		IsPlayer: true,
	})
	if next, ok := s.trees.Current(); ok {
		if a, ok := s.trees.Active(); ok {
			s.conv.transcript = append(s.conv.transcript, relationship.Message{Speaker: a.NPCName, Text: next.Text})
		}
		return nil
	}
	s.EndConversation()
	return nil
}

// EndConversation closes the open conversation and credits it to the
// NPC's relationship.
func (s *Simulation) EndConversation() {
	conv := s.conv
	if conv == nil {
		return
	}
	s.conv = nil
	msgs := conv.transcript
	if conv.ai {
		if sess, ok := s.sessions.End(); ok {
			msgs = sess.Messages
		}
	} else {
		s.trees.End()
	}
	s.npcs.SetTalking(conv.id, false)
	tier := s.relationships.RecordConversation(conv.key, msgs)
	s.logger.Debug("conversation ended", "npc", conv.key, "lines", len(msgs), "tier", tier.String())
}

// dropLostConversation ends a conversation whose NPC has gone.
func (s *Simulation) dropLostConversation() {
	if s.conv == nil {
		return
	}
	if _, ok := s.npcs.NPC(s.conv.id); !ok {
		s.EndConversation()
	}
}
