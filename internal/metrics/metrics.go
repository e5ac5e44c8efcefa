package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	launchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prdeck",
			Subsystem: "sidecar",
			Name:      "launch_attempts_total",
			Help:      "Number of sidecar launch attempts.",
		}, []string{"role"},
	)
	launchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prdeck",
			Subsystem: "sidecar",
			Name:      "launch_failures_total",
			Help:      "Number of sidecar launches refused by the OS or missing executables.",
		}, []string{"role"},
	)
	terminations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prdeck",
			Subsystem: "sidecar",
			Name:      "terminations_total",
			Help:      "Number of termination signals issued at window teardown.",
		}, []string{"role"},
	)
)

// Register registers all collectors with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{launchAttempts, launchFailures, terminations}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler serving the DefaultGatherer. The caller
// decides whether a debug listener is exposed at all.
func Handler() http.Handler { return promhttp.Handler() }

// Helpers below no-op until Register has been called.

func IncLaunchAttempt(role string) {
	if regOK.Load() {
		launchAttempts.WithLabelValues(role).Inc()
	}
}

func IncLaunchFailure(role string) {
	if regOK.Load() {
		launchFailures.WithLabelValues(role).Inc()
	}
}

func IncTermination(role string) {
	if regOK.Load() {
		terminations.WithLabelValues(role).Inc()
	}
}
