package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "todo", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "todo", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// Operations counts service calls by entity (todo|feedback), operation and outcome (ok|invalid|not_found|error).
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "todo", Name: "operations_total", Help: "Service operations by entity, operation and outcome."},
		[]string{"entity", "operation", "outcome"},
	)
	ActivityCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "todo", Name: "activity_cache_lookups_total", Help: "User activity cache lookups by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(Operations)
	reg.MustRegister(ActivityCache)
}
