/*
Package taskloop provides a concurrent periodic task scheduler for Go
applications with fixed-rate, fixed-delay, and cron-based scheduling.

Scheduling (pkg/scheduler):
  - Fixed-rate tasks: constant cadence between execution starts
  - Fixed-delay tasks: constant idle gap after each completion
  - Cron tasks: 6-field expressions (seconds included) with @macro shorthand
  - Per-task fault isolation, statistics, and metrics emission

Supporting packages:
  - workerpool: bounded pool for offloading blocking task handlers
  - metrics: Prometheus instrumentation for scheduler and pool
  - redisexport: Redis-backed statistics export for external dashboards

Example usage:

	import (
		"github.com/vnykmshr/taskloop/pkg/scheduler"
		"github.com/vnykmshr/taskloop/pkg/workerpool"
	)

	s := scheduler.New(scheduler.NopSink{})
	s.Register(svc, workerpool.TaskFunc(svc.Refresh), scheduler.Config{
		Schedule: scheduler.FixedRate(30 * time.Second),
	})

	s.Start(ctx)
	defer func() { <-s.Stop() }()
*/
package taskloop
