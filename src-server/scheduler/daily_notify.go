package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"neneka/src-server/metric"
	"neneka/src-server/notifier"
	"neneka/src-server/service"

	"github.com/bwmarrin/discordgo"
)

// EventSource is the part of the event lifecycle the digest reads from.
type EventSource interface {
	GetEventsEnding(ctx context.Context, days int) ([]service.EventView, error)
	GetEventsUpcoming(ctx context.Context, days int) ([]service.EventView, error)
}

// DailyReport counts fan-out outcomes of one wake.
type DailyReport struct {
	Delivered []string
	Failed    []string
	Skipped   []string
}

type DailyNotify struct {
	events        EventSource
	notifier      notifier.Notifier
	windowDays    int
	fallbackNames []string
}

func NewDailyNotify(events EventSource, n notifier.Notifier, windowDays int, fallbackNames []string) *DailyNotify {
	return &DailyNotify{
		events:        events,
		notifier:      n,
		windowDays:    windowDays,
		fallbackNames: fallbackNames,
	}
}

// Job adapts Notify to a Task body.
func (d *DailyNotify) Job(ctx context.Context) error {
	report, err := d.Notify(ctx)
	if err != nil {
		return err
	}
	slog.Info("daily update sent",
		"delivered", len(report.Delivered),
		"failed", len(report.Failed),
		"skipped", len(report.Skipped),
	)
	return nil
}

// Notify sends the digest to every destination, one at a time. A failure for
// one destination is logged and never stops the rest.
func (d *DailyNotify) Notify(ctx context.Context) (DailyReport, error) {
	var report DailyReport

	ending, err := d.events.GetEventsEnding(ctx, d.windowDays)
	if err != nil {
		return report, fmt.Errorf("(*DailyNotify).Notify: %w", err)
	}
	upcoming, err := d.events.GetEventsUpcoming(ctx, d.windowDays)
	if err != nil {
		return report, fmt.Errorf("(*DailyNotify).Notify: %w", err)
	}
	if len(ending) == 0 && len(upcoming) == 0 {
		slog.Debug("nothing to announce today")
		return report, nil
	}

	destinations, err := d.notifier.ListDestinations(ctx)
	if err != nil {
		return report, fmt.Errorf("(*DailyNotify).Notify: %w", err)
	}

	embed := notifier.DailyUpdateEmbed(ending, upcoming, d.windowDays)
	for _, destination := range destinations {
		delivered, err := d.notifyOne(ctx, destination, embed)
		switch {
		case err != nil:
			slog.Warn("can't deliver daily update", "destination", destination, "error", err)
			metric.Deliveries.WithLabelValues("daily", "failed").Inc()
			report.Failed = append(report.Failed, destination)
		case !delivered:
			metric.Deliveries.WithLabelValues("daily", "skipped").Inc()
			report.Skipped = append(report.Skipped, destination)
		default:
			metric.Deliveries.WithLabelValues("daily", "delivered").Inc()
			report.Delivered = append(report.Delivered, destination)
		}
	}
	return report, nil
}

func (d *DailyNotify) notifyOne(ctx context.Context, destination string, embed *discordgo.MessageEmbed) (delivered bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			delivered, err = false, fmt.Errorf("panic: %v", r)
		}
	}()

	settings, err := d.notifier.GetDestinationSettings(ctx, destination)
	if err != nil {
		return false, err
	}

	var target, pingRole string
	if settings != nil && settings.NotificationChannelID != "" {
		target = settings.NotificationChannelID
		pingRole = settings.PingRoleID
	} else {
		target, err = d.notifier.ResolveFallbackTarget(ctx, destination, d.fallbackNames)
		if err != nil {
			return false, err
		}
		if target == "" {
			return false, nil
		}
	}

	if err := d.notifier.Deliver(ctx, target, notifier.DailyUpdateMessage(embed, pingRole)); err != nil {
		return false, err
	}
	return true, nil
}
