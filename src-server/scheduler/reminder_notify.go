package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"neneka/src-server/metric"
	"neneka/src-server/model"
	"neneka/src-server/notifier"
)

// ReminderSource hands out due reminders exactly once.
type ReminderSource interface {
	DrainDueReminders(ctx context.Context) ([]model.Reminder, error)
}

type ReminderNotify struct {
	reminders ReminderSource
	notifier  notifier.DirectNotifier
}

func NewReminderNotify(reminders ReminderSource, n notifier.DirectNotifier) *ReminderNotify {
	return &ReminderNotify{reminders: reminders, notifier: n}
}

// Job drains due reminders and delivers each one. Drained reminders are
// already gone from storage, a failed delivery is logged and dropped.
func (r *ReminderNotify) Job(ctx context.Context) error {
	reminders, err := r.reminders.DrainDueReminders(ctx)
	if err != nil {
		return fmt.Errorf("(*ReminderNotify).Job: %w", err)
	}
	if len(reminders) == 0 {
		return nil
	}
	metric.RemindersDrained.Add(float64(len(reminders)))

	for _, reminder := range reminders {
		if err := r.deliver(ctx, reminder); err != nil {
			slog.Warn("can't deliver reminder", "reminder", reminder.ID, "user", reminder.UserID, "error", err)
			metric.Deliveries.WithLabelValues("reminder", "failed").Inc()
			continue
		}
		metric.Deliveries.WithLabelValues("reminder", "delivered").Inc()
	}
	return nil
}

// deliver prefers the channel the reminder was created in and falls back to a
// direct message when the owner left, the channel is gone or the send fails.
func (r *ReminderNotify) deliver(ctx context.Context, reminder model.Reminder) error {
	if reminder.HasOrigin() {
		reachable, err := r.notifier.OriginReachable(ctx, reminder.GuildID, reminder.ChannelID, reminder.UserID)
		if err != nil {
			slog.Debug("can't check reminder origin", "reminder", reminder.ID, "error", err)
		}
		if reachable {
			err := r.notifier.Deliver(ctx, reminder.ChannelID, notifier.ReminderMessage(reminder, true))
			if err == nil {
				return nil
			}
			slog.Debug("origin delivery failed, falling back to DM", "reminder", reminder.ID, "error", err)
		}
	}

	target, err := r.notifier.ResolveDirectTarget(ctx, reminder.UserID)
	if err != nil {
		return err
	}
	return r.notifier.Deliver(ctx, target, notifier.ReminderMessage(reminder, false))
}
