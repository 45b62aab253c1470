package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codybot_jobs_processed_total",
		Help: "Webhook jobs processed by workers, by event and outcome.",
	}, []string{"event", "outcome"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codybot_job_duration_seconds",
		Help:    "Time spent processing one webhook job.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})

	jobsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codybot_jobs_rejected_total",
		Help: "Jobs dropped because the queue was full or stopped.",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codybot_job_queue_depth",
		Help: "Jobs waiting for a free worker.",
	})
)
