package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskloop/pkg/metrics"
)

// Sink receives one execution observation per completed task run. The
// scheduler calls it unconditionally; the sink decides whether to actually
// record, so a disabled or no-op sink is valid. Implementations must be safe
// for concurrent use from all task loops.
type Sink interface {
	// IncExecutions increments the execution counter for a task by outcome.
	IncExecutions(task string, success bool)

	// ObserveDuration records one execution's elapsed seconds.
	ObserveDuration(task string, seconds float64)

	// SetRunning marks whether a task is currently inside an execution.
	SetRunning(task string, running bool)
}

// NopSink discards all observations. Useful when metrics are disabled.
type NopSink struct{}

func (NopSink) IncExecutions(string, bool)      {}
func (NopSink) ObserveDuration(string, float64) {}
func (NopSink) SetRunning(string, bool)         {}

// PromSink records observations into a Prometheus metrics registry.
type PromSink struct {
	registry *metrics.Registry
}

// NewPromSink creates a sink backed by the given registry. A nil registry
// falls back to metrics.DefaultRegistry.
func NewPromSink(registry *metrics.Registry) *PromSink {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &PromSink{registry: registry}
}

// NewSinkFromConfig builds a sink from a metrics configuration: NopSink when
// collection is disabled, otherwise a PromSink backed by the configured
// registerer. The default registerer maps onto metrics.DefaultRegistry, whose
// collectors are already registered there.
func NewSinkFromConfig(cfg metrics.Config) Sink {
	if !cfg.Enabled {
		return NopSink{}
	}
	if cfg.Registry == nil || cfg.Registry == prometheus.DefaultRegisterer {
		return NewPromSink(metrics.DefaultRegistry)
	}
	return NewPromSink(metrics.NewRegistry(cfg.Registry))
}

func (p *PromSink) IncExecutions(task string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.registry.TaskExecutions.WithLabelValues(task, status).Inc()
}

func (p *PromSink) ObserveDuration(task string, seconds float64) {
	p.registry.TaskDuration.WithLabelValues(task).Observe(seconds)
}

func (p *PromSink) SetRunning(task string, running bool) {
	v := 0.0
	if running {
		v = 1.0
	}
	p.registry.TasksRunning.WithLabelValues(task).Set(v)
}
