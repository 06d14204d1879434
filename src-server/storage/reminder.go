package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"neneka/src-server/model"

	"github.com/uptrace/bun"
)

func (s *Storage) SaveReminder(ctx context.Context, reminder model.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return fmt.Errorf("(*Storage).SaveReminder: %w", err)
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&reminder).
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Storage).SaveReminder: %w", err)
	}
	return nil
}

func (s *Storage) FindRemindersByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	reminders := make([]model.Reminder, 0)
	if err := s.db.NewSelect().
		Model(&reminders).
		Where("user_id = ?", userID).
		Order("end_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindRemindersByUser: %w", err)
	}
	return reminders, nil
}

func (s *Storage) DeleteReminders(ctx context.Context, reminders []model.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return deleteReminders(ctx, tx, reminders)
	}); err != nil {
		return fmt.Errorf("(*Storage).DeleteReminders: %w", err)
	}
	return nil
}

// FindRemindersDue is a plain read; it doesn't claim the reminders.
func (s *Storage) FindRemindersDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	reminders := make([]model.Reminder, 0)
	if err := s.db.NewSelect().
		Model(&reminders).
		Where("end_date <= ?", now.UTC().Unix()).
		Order("end_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindRemindersDue: %w", err)
	}
	return reminders, nil
}

// DrainRemindersDue selects and deletes the due reminders in one transaction,
// so each reminder is handed out at most once.
func (s *Storage) DrainRemindersDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	var drained []model.Reminder
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		reminders := make([]model.Reminder, 0)
		if err := tx.NewSelect().
			Model(&reminders).
			Where("end_date <= ?", now.UTC().Unix()).
			Order("end_date ASC", "id ASC").
			Scan(ctx); err != nil {
			return err
		}
		if err := deleteReminders(ctx, tx, reminders); err != nil {
			return err
		}
		drained = reminders
		return nil
	}); err != nil {
		return nil, fmt.Errorf("(*Storage).DrainRemindersDue: %w", err)
	}
	return drained, nil
}

func deleteReminders(ctx context.Context, tx bun.Tx, reminders []model.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	ids := make([]string, len(reminders))
	for i, reminder := range reminders {
		ids[i] = reminder.ID
	}
	_, err := tx.NewDelete().
		Model((*model.Reminder)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return err
}
