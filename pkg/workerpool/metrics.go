package workerpool

import (
	"context"

	"github.com/vnykmshr/taskloop/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus gauge updates for pool size,
// active workers, and queue depth.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates a worker pool that reports its state to the given
// metrics registry. A nil registry falls back to metrics.DefaultRegistry.
func NewWithMetrics(config Config, name string, registry *metrics.Registry) Pool {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	mp := &MetricsPool{
		pool:     NewWithConfig(config),
		name:     name,
		registry: registry,
	}
	mp.registry.WorkerPoolSize.WithLabelValues(name).Set(float64(mp.pool.Size()))
	mp.update()
	return mp
}

func (mp *MetricsPool) update() {
	mp.registry.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(mp.pool.ActiveWorkers()))
	mp.registry.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
}

// Submit adds a task to the pool for execution.
func (mp *MetricsPool) Submit(task Task) error {
	return mp.SubmitWithContext(context.Background(), task)
}

// SubmitWithContext submits a task with a context for cancellation.
func (mp *MetricsPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return mp.pool.SubmitWithContext(ctx, nil)
	}
	err := mp.pool.SubmitWithContext(ctx, &gaugedTask{task: task, pool: mp})
	mp.update()
	return err
}

// gaugedTask refreshes the pool gauges around each execution.
type gaugedTask struct {
	task Task
	pool *MetricsPool
}

func (gt *gaugedTask) Execute(ctx context.Context) error {
	gt.pool.update()
	defer gt.pool.update()
	return gt.task.Execute(ctx)
}

// Shutdown initiates graceful shutdown of the underlying pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	return mp.pool.Shutdown()
}

// Size returns the number of workers in the pool.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// QueueSize returns the number of queued tasks.
func (mp *MetricsPool) QueueSize() int {
	return mp.pool.QueueSize()
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (mp *MetricsPool) ActiveWorkers() int {
	return mp.pool.ActiveWorkers()
}
