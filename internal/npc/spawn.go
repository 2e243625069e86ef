// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package npc

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/riftwalk/riftwalk/internal/chunk"
	"github.com/riftwalk/riftwalk/internal/timeline"
)

// EnemyYearRange is the span of years in which enemies spawn: every era
// after Ancient.
var EnemyYearRange = [2]int64{-3000, timeline.DefaultMaxYear}

// SpawnPoint is a deterministic NPC placement inside a chunk.
type SpawnPoint struct {
	// Offset from the chunk origin; y is sampled from the terrain at spawn.
	Offset mgl32.Vec3
	Data   Data
}

func chunkHash(c chunk.Coord) uint64 {
	h := uint64(int64(c.X))*73856093 ^ uint64(int64(c.Z))*19349663
	h *= 0x517cc1b727220a95
	h ^= h >> 32
	return h
}

// SpawnPoints returns the spawn table for a chunk. The same coord always
// yields the same points.
func SpawnPoints(c chunk.Coord, chunkSize float32) []SpawnPoint {
	h := chunkHash(c)
	var count int
	switch h % 8 {
	case 0, 1, 2, 3:
		count = 0
	case 4, 5:
		count = 1
	case 6:
		count = 2
	default:
		count = 3
	}

	points := make([]SpawnPoint, 0, count)
	for i := range count {
		sub := h + uint64(i)*7919
		fx := float32(sub&0xffff) / 65535
		fz := float32((sub>>16)&0xffff) / 65535
		roleBits := ((sub >> 32) & 0xffff) % 10

		var (
			role    Role
			faction Faction
			wander  float32
		)
		switch roleBits {
		case 0, 1, 2, 3:
			role, faction, wander = Villager, Friendly, 10
		case 4, 5:
			role, faction, wander = Guard, Friendly, 15
		case 6:
			role, faction, wander = Shopkeeper, Neutral, 3
		case 7:
			role, faction, wander = QuestGiver, Friendly, 5
		default:
			role, faction, wander = Enemy, Hostile, 20
		}

		data := Data{
			Name:              nameFor(role, int((sub>>48)%16)),
			Role:              role,
			Faction:           faction,
			WanderRadius:      wander,
			InteractionRadius: 3,
		}
		if role == Enemy {
			yr := EnemyYearRange
			data.YearRange = &yr
		}
		points = append(points, SpawnPoint{
			Offset: mgl32.Vec3{fx*chunkSize*0.8 + chunkSize*0.1, 0, fz*chunkSize*0.8 + chunkSize*0.1},
			Data:   data,
		})
	}
	return points
}

var names = map[Role][]string{
	Villager: {
		"Finn", "Elara", "Rowan", "Iris", "Aldric", "Senna",
		"Bram", "Lila", "Oswin", "Thea", "Cedric", "Mira",
		"Gareth", "Yara", "Dorian", "Vena",
	},
	Guard: {
		"Captain Bron", "Sentinel Kael", "Warden Thorne", "Guard Voss",
		"Patrol Hagen", "Watch Sera", "Guard Drex", "Shield Lynne",
		"Sentry Orsk", "Guard Pike", "Watch Farl", "Guard Brin",
		"Shield Tarn", "Guard Nyx", "Watch Rael", "Guard Siv",
	},
	Shopkeeper: {
		"Merchant Haldo", "Trader Pim", "Vendor Gris", "Seller Bea",
		"Peddler Tock", "Dealer Faye", "Hawker Rust", "Buyer Nell",
		"Broker Joss", "Vendor Skye", "Trader Opal", "Dealer Wren",
		"Seller Tane", "Vendor Mace", "Trader Glen", "Dealer Sage",
	},
	QuestGiver: {
		"Elder Morvyn", "Sage Althea", "Scholar Tobin", "Mystic Fen",
		"Oracle Rhea", "Seer Callum", "Lorekeeper Ida", "Prophet Zev",
		"Diviner Shae", "Augur Brynn", "Hermit Gale", "Sage Lorin",
		"Elder Frey", "Seer Nola", "Oracle Dane", "Wise Elm",
	},
	Enemy: {
		"Bandit", "Marauder", "Raider", "Thug",
		"Brigand", "Outlaw", "Rogue", "Cutthroat",
		"Prowler", "Scavenger", "Pillager", "Wretch",
		"Vandal", "Looter", "Brute", "Thief",
	},
}

func nameFor(r Role, i int) string {
	list := names[r]
	if len(list) == 0 {
		return r.String()
	}
	return list[i%len(list)]
}
