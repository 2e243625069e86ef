// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import "github.com/prometheus/client_golang/prometheus"

// RequestsTotal counts finished requests by operation and outcome.
var RequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "riftwalk_integration_requests_total",
		Help: "Total number of integration requests by operation and outcome",
	},
	[]string{"op", "outcome"},
)

// RequestDuration observes request latency by operation.
var RequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "riftwalk_integration_request_seconds",
		Help:    "Integration request latency in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"op"},
)

// RegisterMetrics registers integration metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(RequestDuration)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k, ok := KindOf(err); ok {
		return k.String()
	}
	return "error"
}
