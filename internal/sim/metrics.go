// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package sim

import "github.com/prometheus/client_golang/prometheus"

// FrameSeconds observes the simulated time of each frame.
var FrameSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "riftwalk_frame_seconds",
	Help:    "Simulated seconds advanced per frame",
	Buckets: []float64{0, 0.004, 0.008, 0.016, 0.033, 0.066, 0.125, 0.25},
})

// TimeTravels counts travel attempts by outcome.
var TimeTravels = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "riftwalk_time_travels_total",
		Help: "Time travel attempts by outcome",
	},
	[]string{"outcome"},
)

// RegisterMetrics registers simulation metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(FrameSeconds)
	reg.MustRegister(TimeTravels)
}
