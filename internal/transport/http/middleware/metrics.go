package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Total number of requests rejected by the per-IP rate limiter",
	})

	// gateRedirects counts page navigations redirected by the edge gate, by target.
	gateRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edge_gate_redirects_total",
		Help: "Total number of page navigations redirected at the edge",
	}, []string{"target"})
)
