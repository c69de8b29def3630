package identity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisions counts edge decisions by effective role and outcome.
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "identity_gate_decisions_total",
		Help: "Total number of navigation decisions made at the edge",
	}, []string{"role", "outcome"})

	supersededDecisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "identity_gate_superseded_total",
		Help: "Total number of decisions discarded because a newer navigation started",
	})
)
