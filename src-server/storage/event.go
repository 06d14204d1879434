package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"neneka/src-server/model"

	"github.com/uptrace/bun"
)

// EventDateField names the timestamp column a range query runs against.
type EventDateField string

const (
	EventStartDate EventDateField = "start_date"
	EventEndDate   EventDateField = "end_date"
)

func (f EventDateField) valid() bool {
	return f == EventStartDate || f == EventEndDate
}

func (s *Storage) SaveEvent(ctx context.Context, event model.Event) error {
	if err := s.SaveEvents(ctx, []model.Event{event}); err != nil {
		return fmt.Errorf("(*Storage).SaveEvent: %w", err)
	}
	return nil
}

// SaveEvents inserts the whole batch or nothing.
func (s *Storage) SaveEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return fmt.Errorf("(*Storage).SaveEvents: %w", err)
		}
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&events).
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Storage).SaveEvents: %w", err)
	}
	return nil
}

func (s *Storage) DeleteEvents(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*model.Event)(nil)).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Storage).DeleteEvents: %w", err)
	}
	return nil
}

// FindEventsByExactMatch matches on the (name, start, end) triple; a nil end
// only matches events without an end date.
func (s *Storage) FindEventsByExactMatch(ctx context.Context, name string, start time.Time, end *time.Time) ([]model.Event, error) {
	events := make([]model.Event, 0)
	query := s.db.NewSelect().
		Model(&events).
		Where("name = ?", name).
		Where("start_date = ?", start.UTC().Unix())
	if end == nil {
		query = query.Where("end_date IS NULL")
	} else {
		query = query.Where("end_date = ?", end.UTC().Unix())
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindEventsByExactMatch: %w", err)
	}
	return events, nil
}

// FindEventsByEndDate returns events ending exactly at date, or the events
// without an end date when date is nil.
func (s *Storage) FindEventsByEndDate(ctx context.Context, date *time.Time) ([]model.Event, error) {
	events := make([]model.Event, 0)
	query := s.db.NewSelect().Model(&events)
	if date == nil {
		query = query.Where("end_date IS NULL").Order("start_date ASC", "id ASC")
	} else {
		query = query.Where("end_date = ?", date.UTC().Unix()).Order("id ASC")
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindEventsByEndDate: %w", err)
	}
	return events, nil
}

// FindEventsEndedBy returns events whose end date is at or before date.
func (s *Storage) FindEventsEndedBy(ctx context.Context, date time.Time) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := s.db.NewSelect().
		Model(&events).
		Where("end_date IS NOT NULL").
		Where("end_date <= ?", date.UTC().Unix()).
		Order("end_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindEventsEndedBy: %w", err)
	}
	return events, nil
}

// FindEventsActiveAt returns events with start <= date <= end, soonest end first.
func (s *Storage) FindEventsActiveAt(ctx context.Context, date time.Time) ([]model.Event, error) {
	events := make([]model.Event, 0)
	unix := date.UTC().Unix()
	if err := s.db.NewSelect().
		Model(&events).
		Where("start_date <= ?", unix).
		Where("end_date IS NOT NULL").
		Where("end_date >= ?", unix).
		Order("end_date ASC", "name ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindEventsActiveAt: %w", err)
	}
	return events, nil
}

// FindEventsBetween returns events whose field lies in [lo, hi], ordered by
// that field ascending.
func (s *Storage) FindEventsBetween(ctx context.Context, field EventDateField, lo, hi time.Time) ([]model.Event, error) {
	if !field.valid() {
		return nil, fmt.Errorf("(*Storage).FindEventsBetween: unknown field %q", field)
	}
	events := make([]model.Event, 0)
	column := bun.Ident(string(field))
	if err := s.db.NewSelect().
		Model(&events).
		Where("? IS NOT NULL", column).
		Where("? >= ?", column, lo.UTC().Unix()).
		Where("? <= ?", column, hi.UTC().Unix()).
		OrderExpr("? ASC", column).
		Order("name ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Storage).FindEventsBetween: %w", err)
	}
	return events, nil
}
