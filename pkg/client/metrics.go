package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryDuration measures Query round trips.
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "surrealkit_query_duration_seconds",
		Help:    "SurrealDB query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// queriesTotal counts queries by outcome: ok, statement_error,
	// transport_error or rejected.
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surrealkit_queries_total",
		Help: "Total number of SurrealDB queries by outcome",
	}, []string{"outcome"})

	// breakerState is 0 closed, 1 half-open, 2 open.
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "surrealkit_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})
)

const (
	outcomeOK             = "ok"
	outcomeStatementError = "statement_error"
	outcomeTransportError = "transport_error"
	outcomeRejected       = "rejected"
)
