package scheduler

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/taskloop/pkg/workerpool"
)

// taskStatus tracks the lifecycle of one registered task.
// Transitions only pending -> running -> stopped.
type taskStatus int

const (
	statusPending taskStatus = iota
	statusRunning
	statusStopped
)

func (s taskStatus) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusStopped:
		return "stopped"
	default:
		return "pending"
	}
}

// scheduledTask holds one registered task and its runtime statistics.
//
// The owner reference is opaque: the scheduler never inspects it beyond name
// derivation and does not manage its lifecycle. Statistics fields are written
// only by the task's own loop and read by Stats snapshots, so a single mutex
// guards that one read/write boundary.
type scheduledTask struct {
	owner        any
	handler      workerpool.Task
	schedule     Schedule
	initialDelay time.Duration
	name         string

	// Compiled cron schedule; nil when the expression is invalid. The loop
	// detects a nil schedule once and goes dormant instead of retrying.
	cronSched cron.Schedule
	cronErr   error

	mu            sync.Mutex
	status        taskStatus
	executions    int64
	failures      int64
	lastExecution time.Time
	lastDuration  time.Duration
	totalDuration time.Duration
}

func newScheduledTask(owner any, handler workerpool.Task, cfg Config) *scheduledTask {
	t := &scheduledTask{
		owner:        owner,
		handler:      handler,
		schedule:     cfg.Schedule,
		initialDelay: cfg.InitialDelay,
		name:         cfg.Name,
	}
	if t.name == "" {
		t.name = deriveName(owner, handler)
	}
	if cfg.Schedule.kind == kindCron {
		t.cronSched, t.cronErr = cfg.Schedule.parse()
	}
	return t
}

func (t *scheduledTask) setStatus(status taskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// recordRun folds one completed execution into the task statistics.
// A failed run still updates the duration fields.
func (t *scheduledTask) recordRun(start time.Time, elapsed time.Duration, success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if success {
		t.executions++
	} else {
		t.failures++
	}
	t.lastExecution = start
	t.lastDuration = elapsed
	t.totalDuration += elapsed
}

// nextWait computes how long the loop should sleep before the next firing.
// lastStart is zero before the first execution: fixed schedules fire
// immediately then, while cron always waits for its next calendar slot.
// ok is false when the schedule can never fire again.
func (t *scheduledTask) nextWait(now, lastStart time.Time) (wait time.Duration, ok bool) {
	switch t.schedule.kind {
	case kindFixedRate:
		if lastStart.IsZero() {
			return 0, true
		}
		// Measured from the previous start. A run that outlasted the
		// interval yields a negative wait: restart immediately, and since
		// the next target is re-anchored to the new start, at most one
		// period is ever owed.
		wait = t.schedule.interval - now.Sub(lastStart)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	case kindFixedDelay:
		if lastStart.IsZero() {
			return 0, true
		}
		// nextWait runs after the previous execution returned, so the full
		// interval here is an idle gap measured from completion.
		return t.schedule.interval, true
	default:
		loc := t.schedule.location()
		// Next is strictly future: slots missed during a long pause are
		// skipped, never fired retroactively. A zero Next means the
		// expression parsed but has no satisfiable slot, such as a
		// February 31st: the task must idle, not spin.
		next := t.cronSched.Next(now.In(loc))
		if next.IsZero() {
			return 0, false
		}
		return next.Sub(now), true
	}
}

func (t *scheduledTask) snapshot() TaskStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := TaskStats{
		Name:       t.name,
		Type:       t.schedule.Kind(),
		Interval:   t.schedule.Interval(),
		Status:     t.status.String(),
		Executions: t.executions,
		Failures:   t.failures,
	}
	if !t.lastExecution.IsZero() {
		last := t.lastExecution
		stats.LastExecution = &last
		lastMs := float64(t.lastDuration) / float64(time.Millisecond)
		stats.LastDurationMs = &lastMs
	}
	if t.executions > 0 {
		avgMs := float64(t.totalDuration) / float64(t.executions) / float64(time.Millisecond)
		stats.AverageDurationMs = &avgMs
	}
	return stats
}

// deriveName builds a best-effort "Type.method" label from the owner and
// handler. Names label statistics and metrics; they are not keys, so
// collisions co-mingle in aggregates rather than erroring.
func deriveName(owner any, handler workerpool.Task) string {
	method := "task"
	if fn := reflect.ValueOf(handler); fn.Kind() == reflect.Func {
		if rf := runtime.FuncForPC(fn.Pointer()); rf != nil {
			name := strings.TrimSuffix(rf.Name(), "-fm")
			if i := strings.LastIndex(name, "."); i >= 0 {
				name = name[i+1:]
			}
			if name != "" {
				method = name
			}
		}
	}
	if owner == nil {
		return method
	}
	ownerType := strings.TrimPrefix(fmt.Sprintf("%T", owner), "*")
	if i := strings.LastIndex(ownerType, "."); i >= 0 {
		ownerType = ownerType[i+1:]
	}
	return ownerType + "." + method
}
