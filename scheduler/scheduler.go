// Package scheduler runs the automatic notification sweeps at fixed local
// times.
package scheduler

import (
	"log/slog"
	"time"

	"energytrack.app/clock"
	"energytrack.app/service"
)

// Sweep times in the configured timezone
const (
	dailyReminderHour = 18
	weeklyHour        = 10
	monthStartHour    = 9
	monthEndHour      = 20
)

// Scheduler manages the periodic notification sweeps
type Scheduler struct {
	rules    service.RuleEngineInterface
	location *time.Location
	stop     chan struct{}
}

// NewScheduler creates a scheduler pinned to the given timezone
func NewScheduler(rules service.RuleEngineInterface, location *time.Location) *Scheduler {
	return &Scheduler{
		rules:    rules,
		location: location,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep goroutines. Each sweep sleeps until its next
// scheduled local time, runs, and reschedules.
func (s *Scheduler) Start() {
	go s.runAt(s.nextDaily(dailyReminderHour), "daily", func() error {
		return s.rules.RunDailyChecksForAllUsers()
	})

	go s.runAt(s.nextWeekly(time.Sunday, weeklyHour), "weekly", func() error {
		return s.rules.RunWeeklyChecksForAllUsers()
	})

	go s.runAt(s.nextMonthStart(monthStartHour), "month-start", func() error {
		return s.rules.RunMonthStartChecksForAllUsers()
	})

	// the month-end sweep wakes every evening; the last-day test lives in
	// the rule itself, so off-days are cheap no-ops
	go s.runAt(s.nextDaily(monthEndHour), "month-end", func() error {
		now := time.Now().In(s.location)
		if !clock.IsLastDayOfMonth(now) {
			return nil
		}
		return s.rules.RunMonthEndChecksForAllUsers()
	})

	slog.Info("Scheduler started", "timezone", s.location.String())
}

// Stop terminates all sweep goroutines
func (s *Scheduler) Stop() {
	close(s.stop)
}

type nextRunFunc func(now time.Time) time.Time

func (s *Scheduler) runAt(next nextRunFunc, name string, job func() error) {
	for {
		now := time.Now().In(s.location)
		timer := time.NewTimer(next(now).Sub(now))

		select {
		case <-timer.C:
			s.execute(name, job)
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

// execute runs one sweep, isolating panics and logging failures
func (s *Scheduler) execute(name string, job func() error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Scheduled sweep panicked", "sweep", name, "panic", r)
		}
	}()

	slog.Info("Running scheduled sweep", "sweep", name)
	if err := job(); err != nil {
		slog.Error("Scheduled sweep failed", "sweep", name, "error", err)
	}
}

// nextDaily returns the next occurrence of hour:00 local time
func (s *Scheduler) nextDaily(hour int) nextRunFunc {
	return func(now time.Time) time.Time {
		return NextDailyRun(now, hour)
	}
}

// nextWeekly returns the next occurrence of hour:00 on the given weekday
func (s *Scheduler) nextWeekly(weekday time.Weekday, hour int) nextRunFunc {
	return func(now time.Time) time.Time {
		return NextWeeklyRun(now, weekday, hour)
	}
}

// nextMonthStart returns the next occurrence of hour:00 on the 1st
func (s *Scheduler) nextMonthStart(hour int) nextRunFunc {
	return func(now time.Time) time.Time {
		return NextMonthStartRun(now, hour)
	}
}

// NextDailyRun computes the next hour:00 after now, today or tomorrow
func NextDailyRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextWeeklyRun computes the next hour:00 on the given weekday after now
func NextWeeklyRun(now time.Time, weekday time.Weekday, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// NextMonthStartRun computes the next hour:00 on the first day of a month
func NextMonthStartRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), 1, hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}
