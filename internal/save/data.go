// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package save reads and writes save files. A save is a versioned JSON
// envelope with the player, their gear and purse, the world clock and the
// interaction state. It is validated against a JSON schema on load.
package save

import (
	"bytes"
	"encoding/json"

	"github.com/samber/oops"

	"github.com/riftwalk/riftwalk/internal/combat"
	"github.com/riftwalk/riftwalk/internal/interaction"
	"github.com/riftwalk/riftwalk/internal/player"
)

// Version is the envelope version written by this package.
const Version uint32 = 1

// Data is one save file.
type Data struct {
	Version         uint32               `json:"version" jsonschema:"required,minimum=1"`
	Player          PlayerData           `json:"player" jsonschema:"required"`
	World           WorldData            `json:"world" jsonschema:"required"`
	Timestamp       string               `json:"timestamp" jsonschema:"required"`
	SlotName        string               `json:"slot_name"`
	CollectedItems  []string             `json:"collected_items"`
	PlayTimeSeconds float64              `json:"play_time_seconds" jsonschema:"minimum=0"`
	Interactions    interaction.SaveData `json:"interactions"`
	Combat          CombatData           `json:"combat"`
}

// CombatData is what the player carries and how far they have grown.
// Stats and Progression are absent in saves made before either existed.
type CombatData struct {
	Stats       *player.Stats       `json:"player_stats,omitempty"`
	Progression *player.Progression `json:"player_progression,omitempty"`
	Equipment   []combat.Equipped   `json:"equipment"`
	Inventory   []combat.Item       `json:"inventory"`
	Gold        uint64              `json:"gold" jsonschema:"minimum=0"`
}

// PlayerData is where the player stands and who they are.
type PlayerData struct {
	Position      [3]float32 `json:"position" jsonschema:"required"`
	RotationYaw   float32    `json:"rotation_yaw" jsonschema:"required"`
	RotationPitch float32    `json:"rotation_pitch" jsonschema:"required"`
	CharacterName string     `json:"character_name" jsonschema:"required"`
}

// WorldData is the era and the hour of day.
type WorldData struct {
	EraIndex  int     `json:"era_index" jsonschema:"required,minimum=0"`
	TimeOfDay float32 `json:"time_of_day" jsonschema:"required,minimum=0,maximum=24"`
}

// Encode writes d as indented JSON.
func Encode(d Data) ([]byte, error) {
	if d.Version == 0 {
		d.Version = Version
	}
	if d.CollectedItems == nil {
		d.CollectedItems = []string{}
	}
	if d.Combat.Equipment == nil {
		d.Combat.Equipment = []combat.Equipped{}
	}
	if d.Combat.Inventory == nil {
		d.Combat.Inventory = []combat.Item{}
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, oops.Code("SAVE_SERIALIZATION").Wrapf(err, "encode save")
	}
	return b, nil
}

// Decode validates raw against the save schema and decodes it.
func Decode(raw []byte) (Data, error) {
	if err := Validate(raw); err != nil {
		return Data{}, err
	}
	var d Data
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&d); err != nil {
		return Data{}, oops.Code("SAVE_SERIALIZATION").Wrapf(err, "decode save")
	}
	return d, nil
}
