package scheduler

import "time"

// TaskStats is a point-in-time view of one registered task. Nullable fields
// are pointers so the JSON form distinguishes "never ran" from zero values.
type TaskStats struct {
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	Interval          string     `json:"interval"`
	Status            string     `json:"status"`
	Executions        int64      `json:"executions"`
	Failures          int64      `json:"failures"`
	LastExecution     *time.Time `json:"last_execution"`
	LastDurationMs    *float64   `json:"last_duration_ms"`
	AverageDurationMs *float64   `json:"average_duration_ms"`
}

// Statistics aggregates all registered tasks, in registration order.
type Statistics struct {
	TotalTasks   int         `json:"total_tasks"`
	RunningTasks int         `json:"running_tasks"`
	Tasks        []TaskStats `json:"tasks"`
}

// Stats returns a side-effect-free snapshot of every registered task.
// Callable at any point in the scheduler's lifecycle: before Start, while
// running, and after Stop.
func (s *Scheduler) Stats() Statistics {
	s.mu.Lock()
	tasks := make([]*scheduledTask, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	stats := Statistics{
		TotalTasks: len(tasks),
		Tasks:      make([]TaskStats, 0, len(tasks)),
	}
	for _, t := range tasks {
		ts := t.snapshot()
		if ts.Status == statusRunning.String() {
			stats.RunningTasks++
		}
		stats.Tasks = append(stats.Tasks, ts)
	}
	return stats
}
