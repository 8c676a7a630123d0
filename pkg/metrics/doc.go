// Package metrics provides Prometheus instrumentation for taskloop components.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Scheduled task executions (success/failure counts, durations)
//   - Per-task running state
//   - Worker pools (pool size, active workers, queued tasks)
//
// # Quick Start
//
// Wire a Prometheus sink into the scheduler:
//
//	registry := metrics.NewRegistry(prometheus.DefaultRegisterer)
//	s := scheduler.New(scheduler.NewPromSink(registry))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Available Metrics
//
//   - taskloop_scheduler_task_executions_total{task,status}: executions by outcome
//   - taskloop_scheduler_task_duration_seconds{task}: execution duration histogram
//   - taskloop_scheduler_tasks_running{task}: 1 while a task is mid-execution
//   - taskloop_workerpool_size{pool_name}: worker pool size
//   - taskloop_workerpool_active_workers{pool_name}: workers executing tasks
//   - taskloop_workerpool_queued_tasks{pool_name}: tasks waiting for a worker
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	reg := prometheus.NewRegistry()
//	registry := metrics.NewRegistry(reg)
package metrics
