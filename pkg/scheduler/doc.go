/*
Package scheduler provides a concurrent, self-correcting periodic task
runner with fixed-rate, fixed-delay, and cron-based scheduling.

Each registered task gets its own loop goroutine: tasks progress
independently, one task's failures never disturb another, and executions of
a single task are strictly sequential.

Basic usage:

	s := scheduler.New(scheduler.NopSink{})

	s.Register(svc, workerpool.TaskFunc(svc.CleanupExpired), scheduler.Config{
		Schedule: scheduler.FixedRate(time.Minute),
	})
	s.Register(svc, workerpool.TaskFunc(svc.Compact), scheduler.Config{
		Schedule:     scheduler.FixedDelay(5 * time.Minute),
		InitialDelay: 30 * time.Second,
	})
	s.Register(svc, workerpool.TaskFunc(svc.DailyReport), scheduler.Config{
		Schedule: scheduler.Cron("@daily"),
	})

	s.Start(ctx)
	defer func() { <-s.Stop() }()

Schedule kinds:

  - FixedRate measures its interval between execution starts: the loop
    targets a constant cadence, restarting immediately (without stacking
    catch-up runs) when an execution overruns the interval.
  - FixedDelay measures its interval from one execution's end to the next's
    start, guaranteeing an idle gap regardless of execution time.
  - Cron takes a 6-field expression (seconds, minutes, hours, day of month,
    month, day of week), optionally evaluated in a timezone via In. Macro
    shorthands (@hourly, @daily, @midnight, @weekly, @monthly, @yearly,
    @annually) expand to their canonical 6-field forms.

Fault isolation:

Handler errors and panics are caught, counted as failures, logged through
the configured zerolog logger, and never propagated; the task keeps its
schedule. An invalid cron expression is detected once and leaves its task
permanently dormant (visible in statistics as zero executions) without
affecting the scheduler.

Statistics:

Stats returns a snapshot of every task (executions, failures, last and
average durations, status) at any lifecycle stage. Execution outcomes are
also emitted through the injected Sink; see NewPromSink for the Prometheus
implementation and package redisexport for a Redis-backed one.
*/
package scheduler
