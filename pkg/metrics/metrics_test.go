package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry(prometheus.NewRegistry())

	if registry.TaskExecutions == nil ||
		registry.TaskDuration == nil ||
		registry.TasksRunning == nil ||
		registry.WorkerPoolSize == nil ||
		registry.WorkerPoolActive == nil ||
		registry.WorkerPoolQueued == nil {
		t.Fatal("all metric vectors must be initialized")
	}
}

func TestRegistry_MetricNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := NewRegistry(reg)

	// Touch one series per vector so Gather reports them.
	registry.TaskExecutions.WithLabelValues("job", "success").Inc()
	registry.TaskDuration.WithLabelValues("job").Observe(0.01)
	registry.TasksRunning.WithLabelValues("job").Set(1)
	registry.WorkerPoolSize.WithLabelValues("main").Set(4)
	registry.WorkerPoolActive.WithLabelValues("main").Set(1)
	registry.WorkerPoolQueued.WithLabelValues("main").Set(0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := make(map[string]bool, len(families))
	for _, mf := range families {
		got[mf.GetName()] = true
	}

	want := []string{
		"taskloop_scheduler_task_executions_total",
		"taskloop_scheduler_task_duration_seconds",
		"taskloop_scheduler_tasks_running",
		"taskloop_workerpool_size",
		"taskloop_workerpool_active_workers",
		"taskloop_workerpool_queued_tasks",
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("metric %q not registered", name)
		}
	}
}

func TestRegistry_ExecutionsByOutcome(t *testing.T) {
	registry := NewRegistry(prometheus.NewRegistry())

	registry.TaskExecutions.WithLabelValues("job", "success").Inc()
	registry.TaskExecutions.WithLabelValues("job", "success").Inc()
	registry.TaskExecutions.WithLabelValues("job", "failure").Inc()

	if got := testutil.ToFloat64(registry.TaskExecutions.WithLabelValues("job", "success")); got != 2 {
		t.Errorf("success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(registry.TaskExecutions.WithLabelValues("job", "failure")); got != 1 {
		t.Errorf("failure = %v, want 1", got)
	}
}

func TestDurationBuckets(t *testing.T) {
	if len(DurationBuckets) == 0 {
		t.Fatal("DurationBuckets must not be empty")
	}
	for i := 1; i < len(DurationBuckets); i++ {
		if DurationBuckets[i] <= DurationBuckets[i-1] {
			t.Errorf("buckets not strictly increasing at %d: %v", i, DurationBuckets)
		}
	}
	if DurationBuckets[0] > 0.001 {
		t.Errorf("smallest bucket = %v, want sub-millisecond resolution", DurationBuckets[0])
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("metrics should default to enabled")
	}
	if cfg.Registry == nil {
		t.Error("default registry must not be nil")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry == nil {
		t.Fatal("DefaultRegistry must be initialized at package load")
	}
	// Sanity check the namespace convention on one collector.
	desc := DefaultRegistry.TaskDuration.WithLabelValues("probe").(prometheus.Metric).Desc().String()
	if !strings.Contains(desc, "taskloop_scheduler_task_duration_seconds") {
		t.Errorf("descriptor %q missing namespaced name", desc)
	}
}
