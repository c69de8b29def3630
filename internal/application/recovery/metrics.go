package recovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	codesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "password_recovery_codes_issued_total",
		Help: "Total number of one-time codes issued",
	}, []string{"namespace"})

	// verifications counts VerifyCode outcomes by store result.
	verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "password_recovery_verifications_total",
		Help: "Total number of code verification attempts",
	}, []string{"result"})

	resets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "password_recovery_resets_total",
		Help: "Total number of password reset completions by outcome",
	}, []string{"outcome"})

	dispatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "password_recovery_dispatch_failures_total",
		Help: "Total number of codes that could not be handed to a delivery channel",
	})
)
