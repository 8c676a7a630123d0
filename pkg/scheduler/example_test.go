package scheduler_test

import (
	"context"
	"fmt"
	"time"

	"github.com/vnykmshr/taskloop/pkg/scheduler"
	"github.com/vnykmshr/taskloop/pkg/workerpool"
)

func ExampleScheduler_Stats() {
	s := scheduler.New(nil)
	_ = s.Register(nil, workerpool.TaskFunc(func(_ context.Context) error {
		return nil
	}), scheduler.Config{
		Schedule: scheduler.FixedRate(time.Minute),
		Name:     "refresh",
	})

	stats := s.Stats()
	task := stats.Tasks[0]
	fmt.Println(stats.TotalTasks, task.Name, task.Type, task.Interval, task.Status)
	// Output: 1 refresh fixed_rate 1m0s pending
}

func ExampleCron() {
	// Macros expand to their canonical 6-field form.
	fmt.Println(scheduler.Cron("@daily").Interval())
	fmt.Println(scheduler.Cron("0 30 8 * * 1-5").Interval())
	// Output:
	// 0 0 0 * * *
	// 0 30 8 * * 1-5
}

func ExampleFixedDelay() {
	s := scheduler.FixedDelay(90 * time.Second)
	fmt.Println(s.Kind(), s.Interval())
	// Output: fixed_delay 1m30s
}
