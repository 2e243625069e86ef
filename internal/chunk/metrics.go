// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package chunk

import "github.com/prometheus/client_golang/prometheus"

// ChunksLoaded is the number of chunks currently resident.
var ChunksLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "riftwalk_chunks_loaded",
	Help: "Number of terrain chunks currently loaded",
})

// ChunkEvents counts load and unload transitions.
var ChunkEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "riftwalk_chunk_events_total",
		Help: "Total number of chunk load and unload events",
	},
	[]string{"event"},
)

// RegisterMetrics registers chunk metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ChunksLoaded)
	reg.MustRegister(ChunkEvents)
}
