/*
Package workerpool provides a bounded pool of workers for executing tasks
concurrently.

Within taskloop its main job is offloading blocking scheduled-task handlers:
the scheduler submits handler invocations to a shared pool and waits for
completion, so a slow synchronous handler occupies a worker instead of
interfering with unrelated timers, and the number of simultaneously
executing handlers is bounded process-wide.

Basic usage:

	pool := workerpool.New(4, 100) // 4 workers, queue of 100
	defer func() { <-pool.Shutdown() }()

	pool.Submit(workerpool.TaskFunc(func(ctx context.Context) error {
		return doWork(ctx)
	}))

Panics inside a task are recovered per worker; supply Config.PanicHandler to
observe them. Shutdown is graceful: queued tasks drain before the returned
channel closes.
*/
package workerpool
