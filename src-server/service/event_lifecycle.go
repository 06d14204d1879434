package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neneka/src-server/clock"
	"neneka/src-server/model"
	"neneka/src-server/storage"
)

// EventLifecycleService answers "what's on" questions and purges dead events.
// Every list is ordered most imminent first: current events and ending events
// by end date ascending, upcoming events by start date ascending, ties broken
// by name then id.
type EventLifecycleService struct {
	store EventStore
	clock clock.Clock
}

func NewEventLifecycleService(store EventStore, c clock.Clock) *EventLifecycleService {
	return &EventLifecycleService{store: store, clock: c}
}

// CleanExpiredEvents deletes events that have ended and events without an end
// date that started more than StaleAfter ago. It returns how many were removed.
func (s *EventLifecycleService) CleanExpiredEvents(ctx context.Context) (int, error) {
	now := s.clock.Now()

	ended, err := s.store.FindEventsEndedBy(ctx, now)
	if err != nil {
		return 0, storageError("(*EventLifecycleService).CleanExpiredEvents", err)
	}
	openEnded, err := s.store.FindEventsByEndDate(ctx, nil)
	if err != nil {
		return 0, storageError("(*EventLifecycleService).CleanExpiredEvents", err)
	}
	stale := make([]model.Event, 0)
	for _, event := range openEnded {
		if event.Expired(now, StaleAfter) {
			stale = append(stale, event)
		}
	}

	if len(ended) == 0 && len(stale) == 0 {
		slog.Info("there are no outdated events")
		return 0, nil
	}
	if err := s.store.DeleteEvents(ctx, append(ended, stale...)); err != nil {
		return 0, storageError("(*EventLifecycleService).CleanExpiredEvents", err)
	}
	slog.Info("outdated events cleaned", "ended", len(ended), "stale", len(stale))
	return len(ended) + len(stale), nil
}

func (s *EventLifecycleService) GetCurrentEvents(ctx context.Context) ([]EventView, error) {
	now := s.clock.Now()
	events, err := s.store.FindEventsActiveAt(ctx, now)
	if err != nil {
		return nil, storageError("(*EventLifecycleService).GetCurrentEvents", err)
	}
	return newEventViews(events, now), nil
}

// GetEventsEnding returns events whose end date falls in [now, now+days].
func (s *EventLifecycleService) GetEventsEnding(ctx context.Context, days int) ([]EventView, error) {
	return s.between(ctx, "(*EventLifecycleService).GetEventsEnding", storage.EventEndDate, days)
}

// GetEventsUpcoming returns events whose start date falls in [now, now+days].
func (s *EventLifecycleService) GetEventsUpcoming(ctx context.Context, days int) ([]EventView, error) {
	return s.between(ctx, "(*EventLifecycleService).GetEventsUpcoming", storage.EventStartDate, days)
}

func (s *EventLifecycleService) between(ctx context.Context, op string, field storage.EventDateField, days int) ([]EventView, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrInvalidDays, days)
	}
	now := s.clock.Now()
	events, err := s.store.FindEventsBetween(ctx, field, now, now.Add(time.Duration(days)*24*time.Hour))
	if err != nil {
		return nil, storageError(op, err)
	}
	return newEventViews(events, now), nil
}
