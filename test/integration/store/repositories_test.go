// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

//go:build integration

package store_test

import (
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/riftwalk/riftwalk/internal/interaction"
	"github.com/riftwalk/riftwalk/internal/relationship"
	"github.com/riftwalk/riftwalk/internal/sim"
	"github.com/riftwalk/riftwalk/internal/store"
)

var _ = Describe("RelationshipRepository", func() {
	BeforeEach(truncate)

	It("starts empty", func() {
		got, err := env.Relationships.LoadAll(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})

	It("round-trips relationships with their memory", func() {
		data := map[string]relationship.Relationship{
			"Elder Maren": {
				Affection:   42.5,
				TimesSpoken: 7,
				Summary:     "Talked about the old portal.",
				Recent: []relationship.Message{
					{Speaker: "Elder Maren", Text: "You again."},
					{Speaker: "Traveler", Text: "Me again.", IsPlayer: true},
				},
			},
			"Shopkeeper": {Affection: 5, TimesSpoken: 1},
		}
		Expect(env.Relationships.SaveAll(env.ctx, data)).To(Succeed())

		got, err := env.Relationships.LoadAll(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(2))
		Expect(got["Elder Maren"]).To(Equal(data["Elder Maren"]))
		Expect(got["Shopkeeper"].Recent).To(BeEmpty())
		Expect(got["Shopkeeper"].Affection).To(BeNumerically("~", 5, 0.001))
	})

	It("overwrites on the next save", func() {
		Expect(env.Relationships.SaveAll(env.ctx, map[string]relationship.Relationship{
			"Shopkeeper": {Affection: 5, TimesSpoken: 1},
		})).To(Succeed())
		Expect(env.Relationships.SaveAll(env.ctx, map[string]relationship.Relationship{
			"Shopkeeper": {Affection: 12, TimesSpoken: 3},
		})).To(Succeed())

		got, err := env.Relationships.LoadAll(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(got["Shopkeeper"].TimesSpoken).To(Equal(uint32(3)))
	})

	It("rejects affection outside the schema bounds and keeps the batch atomic", func() {
		err := env.Relationships.SaveAll(env.ctx, map[string]relationship.Relationship{
			"A": {Affection: 10},
			"B": {Affection: 150},
		})
		Expect(err).To(HaveOccurred())

		got, err := env.Relationships.LoadAll(env.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})
})

var _ = Describe("InteractionRepository", func() {
	BeforeEach(truncate)

	sample := interaction.SaveData{
		States: []interaction.StateEntry{
			{ID: 1, State: &interaction.DoorState{IsOpen: true}},
			{ID: 2, State: &interaction.LeverState{IsOn: true, LinkedIDs: []interaction.ID{1}}},
			{ID: 3, State: &interaction.ContainerState{Items: []string{"Ancient Coin"}}},
		},
		NextID: 4,
	}

	It("creates, reads and deletes a slot", func() {
		Expect(env.Interactions.Create(env.ctx, "slot-a", sample)).To(Succeed())

		got, err := env.Interactions.Get(env.ctx, "slot-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(sample))

		Expect(env.Interactions.Delete(env.ctx, "slot-a")).To(Succeed())
		_, err = env.Interactions.Get(env.ctx, "slot-a")
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("refuses to create a slot twice", func() {
		Expect(env.Interactions.Create(env.ctx, "slot-a", sample)).To(Succeed())
		err := env.Interactions.Create(env.ctx, "slot-a", sample)
		Expect(err).To(MatchError(store.ErrConflict))
	})

	It("replaces a slot with Put", func() {
		Expect(env.Interactions.Put(env.ctx, "slot-a", sample)).To(Succeed())
		Expect(env.Interactions.Put(env.ctx, "slot-a", interaction.SaveData{NextID: 1})).To(Succeed())

		got, err := env.Interactions.Get(env.ctx, "slot-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.States).To(BeEmpty())
		Expect(got.NextID).To(Equal(uint64(1)))
	})

	It("stores the interactables of a running simulation", func() {
		cfg := sim.DefaultConfig()
		cfg.Chunk.LoadRadius = 1
		cfg.Chunk.UnloadRadius = 2
		cfg.Chunk.Subdivisions = 8
		cfg.NPC.DisableBrains = true
		s, err := sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		s.Step(sim.Input{Delta: 0.1})

		snap := s.Snapshot("integration")
		Expect(snap.Interactions.States).NotTo(BeEmpty())
		Expect(env.Interactions.Put(env.ctx, "integration", snap.Interactions)).To(Succeed())

		got, err := env.Interactions.Get(env.ctx, "integration")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(snap.Interactions))
	})
})

var _ = Describe("Migrator", func() {
	It("reports the latest version with nothing pending", func() {
		m, err := store.NewMigrator(env.connStr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(m.Close)

		v, dirty, err := m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(dirty).To(BeFalse())
		Expect(v).To(Equal(uint(2)))

		pending, err := m.PendingMigrations()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())
	})
})
