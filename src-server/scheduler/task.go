// Package scheduler runs the long-lived periodic tasks: the daily digest
// fan-out, the reminder drain and the announcement ingest.
//
// Every task recomputes its next wake from the clock on each cycle, so a
// restart or a slow body never shifts the schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"neneka/src-server/clock"
	"neneka/src-server/metric"
	"neneka/src-server/utils"

	"github.com/robfig/cron/v3"
)

// Task is one periodic job.
type Task struct {
	Name       string
	Schedule   cron.Schedule
	Clock      clock.Clock
	Job        func(ctx context.Context) error
	RunOnStart bool

	// after waits for d; time.After when nil.
	after func(d time.Duration) <-chan time.Time

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
	runs    int
}

// NewDailySchedule parses a standard 5-field cron spec evaluated in UTC.
func NewDailySchedule(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard("CRON_TZ=UTC " + spec)
	if err != nil {
		return nil, fmt.Errorf("NewDailySchedule: %w", err)
	}
	return schedule, nil
}

// NextRun is the first trigger strictly after the clock's current time.
func (t *Task) NextRun() time.Time {
	return t.Schedule.Next(t.Clock.Now())
}

// State reports the last outcome and the next trigger.
func (t *Task) State() utils.TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return utils.TaskState{
		Name:    t.Name,
		NextRun: t.NextRun(),
		LastRun: t.lastRun,
		LastErr: t.lastErr,
		Runs:    t.runs,
	}
}

// Run blocks until ctx is done. A cancelled ctx stops the loop before the next
// cycle is armed; a body already running is allowed to finish.
func (t *Task) Run(ctx context.Context) {
	after := t.after
	if after == nil {
		after = time.After
	}

	if t.RunOnStart {
		t.runOnce(ctx)
	}
	for {
		now := t.Clock.Now()
		next := t.Schedule.Next(now)
		slog.Debug("task sleeping", "task", t.Name, "next", next, "in", next.Sub(now))

		select {
		case <-ctx.Done():
			slog.Info("task stopped", "task", t.Name)
			return
		case <-after(next.Sub(now)):
		}
		t.runOnce(ctx)
	}
}

func (t *Task) runOnce(ctx context.Context) {
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return t.Job(context.WithoutCancel(ctx))
	}()

	t.mu.Lock()
	t.lastRun, t.lastErr = t.Clock.Now(), err
	t.runs++
	t.mu.Unlock()

	if err != nil {
		metric.TaskRuns.WithLabelValues(t.Name, "error").Inc()
		slog.Error("task failed", "task", t.Name, "took", time.Since(start), "error", err)
		return
	}
	metric.TaskRuns.WithLabelValues(t.Name, "ok").Inc()
	slog.Debug("task done", "task", t.Name, "took", time.Since(start))
}
