package tpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pool's Prometheus instrumentation. One Metrics value can
// serve any number of pools; series are separated by the pool_name label.
type Metrics struct {
	JobsSubmitted *prometheus.CounterVec
	JobsCompleted *prometheus.CounterVec
	JobsRejected  *prometheus.CounterVec
	JobsDrained   *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	QueueDepth    *prometheus.GaugeVec
	Workers       *prometheus.GaugeVec
}

// NewMetrics creates and registers the pool metrics with reg. Pass
// prometheus.DefaultRegisterer for the usual global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tpool_jobs_submitted_total",
				Help: "Total number of jobs accepted by the pool",
			},
			[]string{"pool_name"},
		),
		JobsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tpool_jobs_completed_total",
				Help: "Total number of jobs executed by a worker",
			},
			[]string{"pool_name", "status"},
		),
		JobsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tpool_jobs_rejected_total",
				Help: "Total number of submissions rejected before enqueue",
			},
			[]string{"pool_name"},
		),
		JobsDrained: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tpool_jobs_drained_total",
				Help: "Total number of jobs resolved by the destroy-time drain",
			},
			[]string{"pool_name", "outcome"},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tpool_job_duration_seconds",
				Help:    "Duration of job execution in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),
		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tpool_queue_depth",
				Help: "Current number of jobs waiting in the queue",
			},
			[]string{"pool_name"},
		),
		Workers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tpool_workers",
				Help: "Current number of live workers in the pool",
			},
			[]string{"pool_name"},
		),
	}
}

func (m *Metrics) RecordJobSubmitted(poolName string) {
	m.JobsSubmitted.WithLabelValues(poolName).Inc()
}

func (m *Metrics) RecordJobCompleted(poolName string, status string) {
	m.JobsCompleted.WithLabelValues(poolName, status).Inc()
}

func (m *Metrics) RecordJobRejected(poolName string) {
	m.JobsRejected.WithLabelValues(poolName).Inc()
}

func (m *Metrics) RecordJobDrained(poolName string, outcome string) {
	m.JobsDrained.WithLabelValues(poolName, outcome).Inc()
}

func (m *Metrics) ObserveJobDuration(poolName string, seconds float64) {
	m.JobDuration.WithLabelValues(poolName).Observe(seconds)
}

func (m *Metrics) SetQueueDepth(poolName string, depth int) {
	m.QueueDepth.WithLabelValues(poolName).Set(float64(depth))
}

func (m *Metrics) SetWorkers(poolName string, count int) {
	m.Workers.WithLabelValues(poolName).Set(float64(count))
}

func (m *Metrics) WorkerRetired(poolName string) {
	m.Workers.WithLabelValues(poolName).Dec()
}
