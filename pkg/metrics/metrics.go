package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DurationBuckets are the histogram buckets for task execution durations,
// in seconds: 1ms up to 10s.
var DurationBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0,
}

// Registry holds all metric instances for taskloop components.
type Registry struct {
	// Scheduler metrics
	TaskExecutions *prometheus.CounterVec   // labels: task, status
	TaskDuration   *prometheus.HistogramVec // labels: task
	TasksRunning   *prometheus.GaugeVec     // labels: task

	// Worker pool metrics
	WorkerPoolSize   *prometheus.GaugeVec // labels: pool_name
	WorkerPoolActive *prometheus.GaugeVec // labels: pool_name
	WorkerPoolQueued *prometheus.GaugeVec // labels: pool_name
}

// DefaultRegistry is the default metrics registry used by taskloop components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TaskExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskloop",
				Subsystem: "scheduler",
				Name:      "task_executions_total",
				Help:      "Total number of task executions by outcome",
			},
			[]string{"task", "status"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskloop",
				Subsystem: "scheduler",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   DurationBuckets,
			},
			[]string{"task"},
		),

		TasksRunning: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskloop",
				Subsystem: "scheduler",
				Name:      "tasks_running",
				Help:      "Whether a task is currently inside an execution",
			},
			[]string{"task"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskloop",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskloop",
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing tasks",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskloop",
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks waiting for a worker",
			},
			[]string{"pool_name"},
		),
	}
}
