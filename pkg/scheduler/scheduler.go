package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/taskloop/pkg/workerpool"
)

// Config holds per-task registration options.
type Config struct {
	// Schedule is required: exactly one of FixedRate, FixedDelay, or Cron.
	Schedule Schedule

	// InitialDelay elapses once, before the first execution, independent of
	// the schedule kind. Defaults to 0.
	InitialDelay time.Duration

	// Name labels the task in statistics and metrics. When empty it is
	// derived from the owner's type and the handler's method name.
	Name string
}

// SchedulerConfig holds scheduler-wide construction options.
type SchedulerConfig struct {
	// Sink receives one counter increment and one duration observation per
	// execution. Defaults to NopSink.
	Sink Sink

	// Pool, when set, executes handlers on a worker pool instead of the task
	// loop goroutine, bounding how many handlers run simultaneously. The
	// loop still waits for completion, so executions of a single task stay
	// strictly sequential.
	Pool workerpool.Pool

	// Logger receives handler failures and lifecycle events. Defaults to a
	// nop logger so the library stays silent unless asked.
	Logger zerolog.Logger

	// Location is the default location for cron schedules that did not set
	// one with In. Defaults to time.Local.
	Location *time.Location
}

// Scheduler runs N independently-scheduled periodic tasks with per-task
// fault isolation and a unified statistics snapshot.
//
// Tasks are registered before Start; each gets its own loop goroutine. One
// failing task never affects its siblings or the scheduler itself.
type Scheduler struct {
	sink   Sink
	pool   workerpool.Pool
	logger zerolog.Logger
	loc    *time.Location

	mu      sync.Mutex
	tasks   []*scheduledTask
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler that reports executions to the given sink.
// A nil sink is replaced with NopSink.
func New(sink Sink) *Scheduler {
	return NewWithConfig(SchedulerConfig{Sink: sink})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg SchedulerConfig) *Scheduler {
	sink := cfg.Sink
	if sink == nil {
		sink = NopSink{}
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		sink:   sink,
		pool:   cfg.Pool,
		logger: cfg.Logger,
		loc:    loc,
	}
}

// Register adds a task to the registry in pending status. Nothing executes
// until Start; a task registered after Start stays pending and never fires
// on this instance. The owner is an opaque handle used only for name
// derivation; its lifecycle belongs to the caller.
//
// Registration fails fast on configuration errors (missing schedule, nil
// handler, negative initial delay) and leaves the registry unmodified. An
// invalid cron expression is not a registration error: the task registers,
// is detected once at loop start, and stays permanently dormant.
func (s *Scheduler) Register(owner any, handler workerpool.Task, cfg Config) error {
	if handler == nil {
		return ErrNilHandler
	}
	if cfg.InitialDelay < 0 {
		return ErrNegativeInitialDelay
	}
	switch cfg.Schedule.kind {
	case kindNone:
		return ErrMissingSchedule
	case kindFixedRate, kindFixedDelay:
		if cfg.Schedule.interval <= 0 {
			return fmt.Errorf("%w: got %v", ErrNonPositiveInterval, cfg.Schedule.interval)
		}
	case kindCron:
		if cfg.Schedule.loc == nil {
			cfg.Schedule.loc = s.loc
		}
	}

	t := newScheduledTask(owner, handler, cfg)

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.logger.Debug().
		Str("task", t.name).
		Str("type", t.schedule.Kind()).
		Str("interval", t.schedule.Interval()).
		Msg("task registered")
	return nil
}

// Start spawns one loop goroutine per registered task and returns once all
// loops are spawned; it does not wait for any task to fire. Loops run until
// Stop is called or ctx is cancelled. A second Start returns
// ErrAlreadyStarted.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.runLoop(runCtx, t)
	}

	s.logger.Info().Int("tasks", len(s.tasks)).Msg("scheduler started")
	return nil
}

// Stop signals cancellation to every task loop and returns a channel that
// closes once all loops have observed it and exited. In-flight executions
// run to completion; after the channel closes, no task fires again for this
// scheduler instance. Safe to call before Start (closes immediately).
func (s *Scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.wg.Wait()
		s.logger.Info().Msg("scheduler stopped")
	}()
	return stopped
}

// runLoop drives one task: initial delay, then fire/sleep cycles until
// cancelled. Handler errors and panics are contained here; they never
// escape to other tasks or the scheduler.
func (s *Scheduler) runLoop(ctx context.Context, t *scheduledTask) {
	defer s.wg.Done()
	defer t.setStatus(statusStopped)
	t.setStatus(statusRunning)

	log := s.logger.With().Str("task", t.name).Logger()

	if t.schedule.kind == kindCron && t.cronSched == nil {
		// Detected once: the task idles instead of crashing the loop or
		// re-parsing on every iteration.
		log.Warn().Err(t.cronErr).
			Str("expr", t.schedule.expr).
			Msg("invalid cron expression, task will never fire")
		<-ctx.Done()
		return
	}

	if t.initialDelay > 0 && !sleep(ctx, t.initialDelay) {
		return
	}

	var lastStart time.Time
	for {
		wait, ok := t.nextWait(time.Now(), lastStart)
		if !ok {
			log.Warn().
				Str("expr", t.schedule.expr).
				Msg("cron expression has no future occurrence, task will never fire")
			<-ctx.Done()
			return
		}
		if wait > 0 && !sleep(ctx, wait) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		lastStart = time.Now()
		s.execute(ctx, t, lastStart, log)
	}
}

// execute runs the handler once and records the outcome in the task
// statistics and the metrics sink.
func (s *Scheduler) execute(ctx context.Context, t *scheduledTask, start time.Time, log zerolog.Logger) {
	s.sink.SetRunning(t.name, true)

	err := s.invoke(ctx, t.handler)

	elapsed := time.Since(start)
	s.sink.SetRunning(t.name, false)
	t.recordRun(start, elapsed, err == nil)
	s.sink.IncExecutions(t.name, err == nil)
	s.sink.ObserveDuration(t.name, elapsed.Seconds())

	if err != nil {
		log.Warn().Err(err).Dur("duration", elapsed).Msg("task execution failed")
		return
	}
	log.Debug().Dur("duration", elapsed).Msg("task executed")
}

// invoke runs the handler inline or on the worker pool, recovering panics
// either way so a misbehaving task cannot take down its own loop.
func (s *Scheduler) invoke(ctx context.Context, handler workerpool.Task) (err error) {
	if s.pool == nil {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		return handler.Execute(ctx)
	}

	done := make(chan error, 1)
	submitErr := s.pool.SubmitWithContext(ctx, workerpool.TaskFunc(func(c context.Context) (taskErr error) {
		defer func() {
			if r := recover(); r != nil {
				taskErr = fmt.Errorf("task panicked: %v", r)
			}
			done <- taskErr
		}()
		return handler.Execute(c)
	}))
	if submitErr != nil {
		return fmt.Errorf("submitting to worker pool: %w", submitErr)
	}
	// Wait for completion unconditionally: in-flight executions are never
	// interrupted, and within one task runs stay strictly sequential.
	return <-done
}

// sleep waits for d or until ctx is cancelled; it reports false on
// cancellation so loops can exit promptly mid-sleep.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
