package redisexport

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/taskloop/internal/testutil"
	"github.com/vnykmshr/taskloop/pkg/scheduler"
)

// unreachableClient returns a client pointed at a port nothing listens on, so
// every operation fails fast with a connection error.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            "127.0.0.1:1",
		DialTimeout:     50 * time.Millisecond,
		MaxRetries:      -1, // disable retries
		PoolTimeout:     100 * time.Millisecond,
		MinIdleConns:    0,
		ConnMaxIdleTime: -1,
	})
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Config{})
	testutil.AssertError(t, err)
}

func TestNew_KeyConstruction(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	t.Run("defaults", func(t *testing.T) {
		sink, err := New(Config{Client: client})
		testutil.AssertNoError(t, err)

		keys := sink.Keys()
		testutil.AssertEqual(t, keys["executions"], "taskloop:executions")
		testutil.AssertEqual(t, keys["durations"], "taskloop:durations")
		testutil.AssertEqual(t, keys["running"], "taskloop:running")
		testutil.AssertEqual(t, keys["stats"], "taskloop:stats")
	})

	t.Run("custom prefix and instance", func(t *testing.T) {
		sink, err := New(Config{
			Client:     client,
			KeyPrefix:  "jobs",
			InstanceID: "worker-1",
		})
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, sink.Keys()["stats"], "jobs:worker-1:stats")
	})
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	testutil.AssertEqual(t, cfg.KeyPrefix, "taskloop")
	testutil.AssertEqual(t, cfg.OpTimeout, 500*time.Millisecond)
	testutil.AssertEqual(t, cfg.TTL, time.Hour)

	custom := Config{KeyPrefix: "jobs", OpTimeout: time.Second, TTL: time.Minute}.withDefaults()
	testutil.AssertEqual(t, custom.KeyPrefix, "jobs")
	testutil.AssertEqual(t, custom.OpTimeout, time.Second)
	testutil.AssertEqual(t, custom.TTL, time.Minute)
}

func TestSink_SwallowsWriteFailures(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	sink, err := New(Config{Client: client, OpTimeout: 100 * time.Millisecond})
	testutil.AssertNoError(t, err)

	start := time.Now()
	// None of these may panic or propagate the connection error.
	sink.IncExecutions("job", true)
	sink.IncExecutions("job", false)
	sink.ObserveDuration("job", 0.25)
	sink.SetRunning("job", true)
	sink.SetRunning("job", false)

	// Each call is bounded by OpTimeout; five calls should finish well
	// inside a couple of seconds even with an unreachable server.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("sink calls took %v, want bounded by per-op timeout", elapsed)
	}
}

func TestPublish_ReportsError(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	sink, err := New(Config{Client: client, OpTimeout: 100 * time.Millisecond})
	testutil.AssertNoError(t, err)

	stats := scheduler.Statistics{
		TotalTasks:   1,
		RunningTasks: 0,
		Tasks: []scheduler.TaskStats{
			{Name: "job", Type: "fixed_rate", Interval: "1m0s", Status: "pending"},
		},
	}
	// Unlike the sink methods, Publish surfaces export failures.
	testutil.AssertError(t, sink.Publish(context.Background(), stats))
}
