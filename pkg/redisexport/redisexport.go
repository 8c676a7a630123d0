package redisexport

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/taskloop/pkg/scheduler"
)

// Config holds configuration for the Redis statistics exporter.
type Config struct {
	// Client is the Redis client used for all operations. Required.
	Client redis.UniversalClient

	// KeyPrefix namespaces all keys written by this exporter.
	// Defaults to "taskloop".
	KeyPrefix string

	// InstanceID distinguishes this process in shared keys. Optional; when
	// set, it is appended to the key prefix.
	InstanceID string

	// OpTimeout bounds each Redis operation. Defaults to 500ms.
	OpTimeout time.Duration

	// TTL is how long exported keys live without refresh. Defaults to 1h.
	TTL time.Duration

	// Logger receives export failures. Defaults to a nop logger; an
	// unreachable Redis never disturbs the scheduler.
	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "taskloop"
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = 500 * time.Millisecond
	}
	if c.TTL <= 0 {
		c.TTL = time.Hour
	}
	return c
}

// Sink exports scheduler observations and statistics snapshots to Redis so
// external dashboards can read them across instances. It implements
// scheduler.Sink. All write failures are logged and swallowed: a sink must
// never disturb the scheduler it observes.
type Sink struct {
	cfg  Config
	keys map[string]string
}

// New creates a Redis exporter. The client is required; all other fields
// default sensibly.
func New(cfg Config) (*Sink, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("redisexport: Client is required")
	}
	cfg = cfg.withDefaults()

	prefix := cfg.KeyPrefix
	if cfg.InstanceID != "" {
		prefix = prefix + ":" + cfg.InstanceID
	}

	return &Sink{
		cfg: cfg,
		keys: map[string]string{
			"executions": prefix + ":executions",
			"durations":  prefix + ":durations",
			"running":    prefix + ":running",
			"stats":      prefix + ":stats",
		},
	}, nil
}

// IncExecutions increments the per-task execution counter by outcome.
func (s *Sink) IncExecutions(task string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ctx, cancel := s.opContext()
	defer cancel()

	pipe := s.cfg.Client.Pipeline()
	pipe.HIncrBy(ctx, s.keys["executions"], task+":"+status, 1)
	pipe.Expire(ctx, s.keys["executions"], s.cfg.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logErr("executions", err)
	}
}

// ObserveDuration accumulates a duration sum and count per task, enough for
// external consumers to derive an average.
func (s *Sink) ObserveDuration(task string, seconds float64) {
	ctx, cancel := s.opContext()
	defer cancel()

	pipe := s.cfg.Client.Pipeline()
	pipe.HIncrByFloat(ctx, s.keys["durations"], task+":sum_seconds", seconds)
	pipe.HIncrBy(ctx, s.keys["durations"], task+":count", 1)
	pipe.Expire(ctx, s.keys["durations"], s.cfg.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logErr("durations", err)
	}
}

// SetRunning records whether a task is currently mid-execution.
func (s *Sink) SetRunning(task string, running bool) {
	v := "0"
	if running {
		v = "1"
	}
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.cfg.Client.HSet(ctx, s.keys["running"], task, v).Err(); err != nil {
		s.logErr("running", err)
	}
}

// Publish writes a full statistics snapshot: one JSON-encoded hash field per
// task plus aggregate counts. Unlike the Sink methods, Publish returns its
// error so callers polling on their own schedule can observe export health.
func (s *Sink) Publish(ctx context.Context, stats scheduler.Statistics) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	fields := map[string]interface{}{
		"total_tasks":   strconv.Itoa(stats.TotalTasks),
		"running_tasks": strconv.Itoa(stats.RunningTasks),
	}
	for _, task := range stats.Tasks {
		encoded, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("encoding stats for task %q: %w", task.Name, err)
		}
		fields["task:"+task.Name] = string(encoded)
	}

	pipe := s.cfg.Client.Pipeline()
	pipe.HSet(ctx, s.keys["stats"], fields)
	pipe.Expire(ctx, s.keys["stats"], s.cfg.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publishing stats: %w", err)
	}
	return nil
}

// Keys returns the Redis keys this exporter writes, by purpose
// ("executions", "durations", "running", "stats").
func (s *Sink) Keys() map[string]string {
	out := make(map[string]string, len(s.keys))
	for k, v := range s.keys {
		out[k] = v
	}
	return out
}

func (s *Sink) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.OpTimeout)
}

func (s *Sink) logErr(key string, err error) {
	s.cfg.Logger.Warn().Err(err).Str("key", key).Msg("redis export failed")
}

// Interface guard.
var _ scheduler.Sink = (*Sink)(nil)
