// Package service holds the event, reminder and guild-settings logic the
// schedulers and slash commands are built on.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neneka/src-server/model"
	"neneka/src-server/storage"
)

var (
	// ErrStorage wraps every failure coming out of a store.
	ErrStorage = errors.New("storage failure")

	ErrInvalidDays      = errors.New("days must be positive")
	ErrInvalidOffset    = errors.New("reminder offset must be positive")
	ErrBlankDescription = errors.New("reminder description is blank")
	ErrBlankUser        = errors.New("reminder user is blank")
)

// StaleAfter is how long an event without an end date is kept after it starts.
const StaleAfter = 7 * 24 * time.Hour

type EventStore interface {
	SaveEvents(ctx context.Context, events []model.Event) error
	DeleteEvents(ctx context.Context, events []model.Event) error
	FindEventsByExactMatch(ctx context.Context, name string, start time.Time, end *time.Time) ([]model.Event, error)
	FindEventsByEndDate(ctx context.Context, date *time.Time) ([]model.Event, error)
	FindEventsEndedBy(ctx context.Context, date time.Time) ([]model.Event, error)
	FindEventsActiveAt(ctx context.Context, date time.Time) ([]model.Event, error)
	FindEventsBetween(ctx context.Context, field storage.EventDateField, lo, hi time.Time) ([]model.Event, error)
}

type ReminderStore interface {
	SaveReminder(ctx context.Context, reminder model.Reminder) error
	FindRemindersByUser(ctx context.Context, userID string) ([]model.Reminder, error)
	DeleteReminders(ctx context.Context, reminders []model.Reminder) error
	DrainRemindersDue(ctx context.Context, now time.Time) ([]model.Reminder, error)
}

type GuildStore interface {
	FindGuildSettings(ctx context.Context, guildID string) (*model.GuildSettings, error)
	EnsureGuildSettings(ctx context.Context, guildID string) (bool, error)
	UpsertGuildSettings(ctx context.Context, settings model.GuildSettings) error
	DeleteGuildSettings(ctx context.Context, guildID string) (bool, error)
}

// Scraper yields the raw announcement lines of the upstream news page.
type Scraper interface {
	FetchAnnouncementLines(ctx context.Context) ([]string, error)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
