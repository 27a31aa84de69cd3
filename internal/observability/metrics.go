// Package observability provides metrics and tracing.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// VoteTransitions counts vote state-machine transitions by outcome.
	VoteTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_vote_transitions_total",
		Help: "Total number of vote transitions by outcome (added, retracted, conflict, missing)",
	}, []string{"outcome"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_auth_failures_total",
		Help: "Total number of rejected authentication attempts by reason",
	}, []string{"reason"})
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the Prometheus middleware for the HTTP layer. The
// middleware registers collectors in the default registry, so only the first
// call constructs it.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}
