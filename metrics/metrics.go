// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics collects and exposes Prometheus counters for poll and
// vote activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts poll creations and cast attempts by outcome.
type Collector struct {
	pollsCreated prometheus.Counter
	votesCast    *prometheus.CounterVec
}

// NewCollector registers the counters on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		pollsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ballotbox_polls_created_total",
			Help: "Total number of polls created",
		}),
		votesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ballotbox_votes_cast_total",
			Help: "Total number of vote-cast attempts by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.pollsCreated, c.votesCast)
	return c
}

// RecordPollCreated counts one successful poll creation.
func (c *Collector) RecordPollCreated() {
	c.pollsCreated.Inc()
}

// RecordCastOutcome counts one terminal cast outcome.
func (c *Collector) RecordCastOutcome(outcome string) {
	c.votesCast.WithLabelValues(outcome).Inc()
}

// Handler returns the /metrics scrape handler for the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
