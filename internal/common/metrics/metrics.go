// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AgentRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_runs_completed_total",
			Help: "Total number of agent invocations that completed",
		},
		[]string{"agent"},
	)

	AgentRunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_runs_failed_total",
			Help: "Total number of agent invocations that failed",
		},
		[]string{"agent", "error_code"},
	)

	AgentRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "agent_run_duration_seconds",
			Help: "Duration of agent invocations in seconds",
		},
		[]string{"agent"},
	)

	AnalysesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analyses_active",
			Help: "Number of analyses currently in flight",
		},
	)

	AnalysisDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_decisions_total",
			Help: "Completed analyses by recommended action",
		},
		[]string{"action"},
	)
)
