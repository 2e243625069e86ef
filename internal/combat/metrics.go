// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package combat

import "github.com/prometheus/client_golang/prometheus"

// DamageEvents counts damage calculations by crit outcome.
var DamageEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "riftwalk_damage_events_total",
		Help: "Total number of damage events calculated",
	},
	[]string{"crit"},
)

// RegisterMetrics registers combat metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(DamageEvents)
}
