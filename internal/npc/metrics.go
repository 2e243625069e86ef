// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package npc

import "github.com/prometheus/client_golang/prometheus"

// NPCsActive is the number of live NPCs.
var NPCsActive = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "riftwalk_npcs_active",
	Help: "Number of NPCs currently alive in loaded chunks",
})

// NPCDeaths counts NPCs killed by damage.
var NPCDeaths = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "riftwalk_npc_deaths_total",
	Help: "Total number of NPCs killed",
})

// RegisterMetrics registers NPC metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(NPCsActive)
	reg.MustRegister(NPCDeaths)
}
