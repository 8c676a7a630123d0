/*
Package redisexport exports scheduler observations and statistics snapshots
to Redis, so dashboards outside the process (or across a fleet of
instances) can read per-task execution counts, durations, and status.

This is observability export only: the scheduler never reads these keys and
no scheduling decisions are coordinated through Redis.

Usage:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	sink, err := redisexport.New(redisexport.Config{
		Client:     client,
		InstanceID: hostname,
	})
	if err != nil {
		return err
	}

	s := scheduler.New(sink)

Periodically publish full snapshots alongside the per-execution counters:

	stats := s.Stats()
	if err := sink.Publish(ctx, stats); err != nil {
		log.Warn().Err(err).Msg("stats export failed")
	}

Write failures on the per-execution path are logged and swallowed; an
unreachable Redis never disturbs the scheduler.
*/
package redisexport
