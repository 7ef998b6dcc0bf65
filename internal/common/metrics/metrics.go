// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages handled, by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	ChatMessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_message_duration_seconds",
			Help:    "Duration of chat message handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	ChatTurnWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_turn_write_failures_total",
			Help: "Total number of chat turns that could not be persisted",
		},
	)

	PayrollCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payroll_cache_requests_total",
			Help: "Payroll sum cache lookups by result (hit, miss, error, bypass)",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
