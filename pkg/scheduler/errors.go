package scheduler

import "errors"

// Configuration and lifecycle errors surfaced synchronously to callers.
var (
	// ErrMissingSchedule indicates a registration without a schedule kind.
	ErrMissingSchedule = errors.New("no schedule set: use FixedRate, FixedDelay, or Cron")

	// ErrNonPositiveInterval indicates a fixed schedule with interval <= 0.
	ErrNonPositiveInterval = errors.New("schedule interval must be positive")

	// ErrNilHandler indicates a registration with a nil task handler.
	ErrNilHandler = errors.New("task handler cannot be nil")

	// ErrNegativeInitialDelay indicates a registration with InitialDelay < 0.
	ErrNegativeInitialDelay = errors.New("initial delay cannot be negative")

	// ErrAlreadyStarted indicates a second call to Start.
	ErrAlreadyStarted = errors.New("scheduler already started")
)
