package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neneka/src-server/clock"
	"neneka/src-server/model"

	"github.com/google/uuid"
)

// Offset is how far from now a reminder fires.
type Offset struct {
	Days    int
	Hours   int
	Minutes int
}

// Validate rejects negative parts and an all-zero offset.
func (o Offset) Validate() error {
	if o.Days < 0 || o.Hours < 0 || o.Minutes < 0 {
		return fmt.Errorf("%w: negative offset %+v", ErrInvalidOffset, o)
	}
	if o.Days == 0 && o.Hours == 0 && o.Minutes == 0 {
		return fmt.Errorf("%w: offset is zero", ErrInvalidOffset)
	}
	return nil
}

func (o Offset) Duration() time.Duration {
	return time.Duration(o.Days)*24*time.Hour +
		time.Duration(o.Hours)*time.Hour +
		time.Duration(o.Minutes)*time.Minute
}

// ReminderRequest is who asked for a reminder and where.
type ReminderRequest struct {
	Description string
	UserID      string
	GuildID     string
	ChannelID   string
}

type ReminderService struct {
	store ReminderStore
	clock clock.Clock
}

func NewReminderService(store ReminderStore, c clock.Clock) *ReminderService {
	return &ReminderService{store: store, clock: c}
}

func (s *ReminderService) AddReminder(ctx context.Context, req ReminderRequest, offset Offset) (model.Reminder, error) {
	if err := offset.Validate(); err != nil {
		return model.Reminder{}, fmt.Errorf("(*ReminderService).AddReminder: %w", err)
	}
	now := s.clock.Now()
	return s.add(ctx, req, now, now.Add(offset.Duration()))
}

// AddReminderAt schedules a reminder for an absolute time, which must be in
// the future.
func (s *ReminderService) AddReminderAt(ctx context.Context, req ReminderRequest, fireAt time.Time) (model.Reminder, error) {
	now := s.clock.Now()
	if !fireAt.After(now) {
		return model.Reminder{}, fmt.Errorf("(*ReminderService).AddReminderAt: %w: %s is not in the future", ErrInvalidOffset, fireAt)
	}
	return s.add(ctx, req, now, fireAt)
}

func (s *ReminderService) add(ctx context.Context, req ReminderRequest, now, fireAt time.Time) (model.Reminder, error) {
	req.Description = strings.TrimSpace(req.Description)
	switch {
	case req.Description == "":
		return model.Reminder{}, fmt.Errorf("(*ReminderService).AddReminder: %w", ErrBlankDescription)
	case req.UserID == "":
		return model.Reminder{}, fmt.Errorf("(*ReminderService).AddReminder: %w", ErrBlankUser)
	}

	reminder := model.Reminder{
		ID:               uuid.NewString(),
		Description:      req.Description,
		StartDateUnixUTC: now.Unix(),
		EndDateUnixUTC:   fireAt.UTC().Unix(),
		UserID:           req.UserID,
		GuildID:          req.GuildID,
		ChannelID:        req.ChannelID,
	}
	if err := s.store.SaveReminder(ctx, reminder); err != nil {
		return model.Reminder{}, storageError("(*ReminderService).AddReminder", err)
	}
	return reminder, nil
}

// DeleteAllReminders removes every reminder of the user and returns how many
// there were.
func (s *ReminderService) DeleteAllReminders(ctx context.Context, userID string) (int, error) {
	reminders, err := s.store.FindRemindersByUser(ctx, userID)
	if err != nil {
		return 0, storageError("(*ReminderService).DeleteAllReminders", err)
	}
	if len(reminders) == 0 {
		return 0, nil
	}
	if err := s.store.DeleteReminders(ctx, reminders); err != nil {
		return 0, storageError("(*ReminderService).DeleteAllReminders", err)
	}
	return len(reminders), nil
}

// DrainDueReminders claims every reminder whose fire time has passed. The
// claimed reminders are already gone from the store: delivery is at most once.
func (s *ReminderService) DrainDueReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.store.DrainRemindersDue(ctx, s.clock.Now())
	if err != nil {
		return nil, storageError("(*ReminderService).DrainDueReminders", err)
	}
	return reminders, nil
}
