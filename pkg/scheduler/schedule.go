package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleKind discriminates the three ways a task can fire.
type scheduleKind int

const (
	kindNone scheduleKind = iota
	kindFixedRate
	kindFixedDelay
	kindCron
)

func (k scheduleKind) String() string {
	switch k {
	case kindFixedRate:
		return "fixed_rate"
	case kindFixedDelay:
		return "fixed_delay"
	case kindCron:
		return "cron"
	default:
		return "none"
	}
}

// CronMacros maps shorthand tokens to their canonical 6-field expansions.
// Macros are expanded at registration time, so statistics always report the
// expanded expression.
var CronMacros = map[string]string{
	"@yearly":   "0 0 0 1 1 *",
	"@annually": "0 0 0 1 1 *",
	"@monthly":  "0 0 0 1 * *",
	"@weekly":   "0 0 0 * * 0",
	"@daily":    "0 0 0 * * *",
	"@midnight": "0 0 0 * * *",
	"@hourly":   "0 0 * * * *",
}

// cronParser accepts the 6-field form: seconds, minutes, hours, day of month,
// month, day of week.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Schedule describes when a task fires. Construct one with FixedRate,
// FixedDelay, or Cron; the zero value is invalid and rejected at Register.
type Schedule struct {
	kind     scheduleKind
	interval time.Duration
	expr     string
	loc      *time.Location
}

// FixedRate returns a schedule whose target interval is measured between
// successive execution starts. If an execution outlasts the interval, the
// next one begins immediately; missed periods are never batched up.
func FixedRate(interval time.Duration) Schedule {
	return Schedule{kind: kindFixedRate, interval: interval}
}

// FixedDelay returns a schedule whose interval is measured from one
// execution's completion to the next one's start, guaranteeing an idle gap
// between runs regardless of how long each run takes.
func FixedDelay(interval time.Duration) Schedule {
	return Schedule{kind: kindFixedDelay, interval: interval}
}

// Cron returns a schedule driven by a 6-field cron expression
// (seconds, minutes, hours, day of month, month, day of week).
// Macro shorthands such as "@hourly" are expanded immediately.
//
// An unparseable expression is not rejected here: the task registers
// normally, is detected as invalid once at loop start, and simply never
// fires. Use Validate to check an expression up front.
func Cron(expr string) Schedule {
	if expanded, ok := CronMacros[expr]; ok {
		expr = expanded
	}
	return Schedule{kind: kindCron, expr: expr}
}

// In returns a copy of a cron schedule evaluated in the given location.
// It has no effect on fixed-rate or fixed-delay schedules.
func (s Schedule) In(loc *time.Location) Schedule {
	s.loc = loc
	return s
}

// Kind reports the schedule type: "fixed_rate", "fixed_delay", or "cron".
func (s Schedule) Kind() string {
	return s.kind.String()
}

// Interval reports the schedule in human-readable form: the interval
// duration for fixed schedules, the expanded expression for cron.
func (s Schedule) Interval() string {
	if s.kind == kindCron {
		return s.expr
	}
	return s.interval.String()
}

// Validate reports whether the schedule is well formed: a positive interval
// for fixed schedules, a parseable expression for cron.
func (s Schedule) Validate() error {
	switch s.kind {
	case kindNone:
		return ErrMissingSchedule
	case kindFixedRate, kindFixedDelay:
		if s.interval <= 0 {
			return ErrNonPositiveInterval
		}
		return nil
	default:
		_, err := cronParser.Parse(s.expr)
		return err
	}
}

// location returns the evaluation location for cron schedules.
func (s Schedule) location() *time.Location {
	if s.loc != nil {
		return s.loc
	}
	return time.Local
}

// parse returns the compiled cron schedule, or an error for invalid
// expressions. Only meaningful for cron schedules.
func (s Schedule) parse() (cron.Schedule, error) {
	return cronParser.Parse(s.expr)
}
