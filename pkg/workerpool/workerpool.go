package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context. It should respect
	// context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool that executes tasks concurrently.
type Pool interface {
	// Submit adds a task to the pool for execution with context.Background().
	Submit(task Task) error

	// SubmitWithContext adds a task with a context for queue cancellation.
	// The context is also passed to the task's Execute method.
	SubmitWithContext(ctx context.Context, task Task) error

	// Shutdown initiates a graceful shutdown: no new tasks are accepted,
	// queued tasks complete. The returned channel closes when done.
	Shutdown() <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// Workers is the number of workers in the pool. Must be positive.
	Workers int

	// QueueSize is the maximum number of queued tasks. Zero means an
	// unbuffered queue: Submit blocks until a worker is free.
	QueueSize int

	// TaskTimeout bounds individual task execution. Zero means no timeout.
	TaskTimeout time.Duration

	// PanicHandler is called when a task panics during execution. If nil,
	// panics are recovered silently so one bad task cannot kill a worker.
	PanicHandler func(task Task, recovered any)
}

type taskWithContext struct {
	task Task
	ctx  context.Context
}

type workerPool struct {
	config Config

	taskQueue    chan taskWithContext
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	mu         sync.RWMutex
	isShutdown bool

	active   int32
	workerWg sync.WaitGroup
}

// New creates a worker pool with the given worker count and queue size.
func New(workers, queueSize int) Pool {
	return NewWithConfig(Config{Workers: workers, QueueSize: queueSize})
}

// NewWithConfig creates a worker pool with the given configuration.
func NewWithConfig(config Config) Pool {
	if config.Workers <= 0 {
		panic("workerpool: worker count must be positive")
	}
	if config.QueueSize < 0 {
		panic("workerpool: queue size cannot be negative")
	}

	p := &workerPool{
		config:     config,
		taskQueue:  make(chan taskWithContext, config.QueueSize),
		shutdownCh: make(chan struct{}),
		done:       make(chan struct{}),
	}

	p.workerWg.Add(config.Workers)
	for i := 0; i < config.Workers; i++ {
		go p.worker()
	}
	return p
}

func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Deterministic behavior for pre-canceled contexts: never queue.
	select {
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: %w", ctx.Err())
	default:
	}

	// The read lock is held across both the shutdown check and the send:
	// Shutdown closes taskQueue under the write lock, so a send can never
	// race the close. Blocked senders are released through shutdownCh,
	// which Shutdown closes before taking the write lock.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.isShutdown {
		return fmt.Errorf("cannot submit task: worker pool has been shut down")
	}

	select {
	case p.taskQueue <- taskWithContext{task: task, ctx: ctx}:
		return nil
	case <-p.shutdownCh:
		return fmt.Errorf("cannot submit task: worker pool has been shut down")
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: %w", ctx.Err())
	}
}

func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		// Unblock senders waiting on a full queue before taking the write
		// lock they hold read-side.
		close(p.shutdownCh)

		p.mu.Lock()
		p.isShutdown = true
		// Closing the queue lets workers drain remaining tasks and exit.
		// Under the write lock, no submitter can be mid-send.
		close(p.taskQueue)
		p.mu.Unlock()

		go func() {
			p.workerWg.Wait()
			close(p.done)
		}()
	})
	return p.done
}

func (p *workerPool) Size() int {
	return p.config.Workers
}

func (p *workerPool) QueueSize() int {
	return len(p.taskQueue)
}

func (p *workerPool) ActiveWorkers() int {
	return int(atomic.LoadInt32(&p.active))
}

func (p *workerPool) worker() {
	defer p.workerWg.Done()
	for twc := range p.taskQueue {
		atomic.AddInt32(&p.active, 1)
		p.executeTask(twc)
		atomic.AddInt32(&p.active, -1)
	}
}

// executeTask runs a single task, applying the pool's task timeout and
// containing panics so one bad task cannot kill a worker.
func (p *workerPool) executeTask(twc taskWithContext) {
	defer func() {
		if r := recover(); r != nil {
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(twc.task, r)
			}
		}
	}()

	ctx := twc.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if p.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.TaskTimeout)
		defer cancel()
	}

	_ = twc.task.Execute(ctx)
}
