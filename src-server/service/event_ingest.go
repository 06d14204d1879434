package service

import (
	"context"
	"fmt"
	"log/slog"

	"neneka/src-server/clock"
	"neneka/src-server/model"
	"neneka/src-server/parser"
)

// IngestReport summarizes one ingest cycle.
type IngestReport struct {
	Cleaned  int
	Lines    int
	Rejected int
	Inserted int
}

// EventIngestService pulls announcements from the scraper and stores the
// events it hasn't seen yet.
type EventIngestService struct {
	store     EventStore
	lifecycle *EventLifecycleService
	scraper   Scraper
	clock     clock.Clock
}

func NewEventIngestService(store EventStore, lifecycle *EventLifecycleService, scraper Scraper, c clock.Clock) *EventIngestService {
	return &EventIngestService{
		store:     store,
		lifecycle: lifecycle,
		scraper:   scraper,
		clock:     c,
	}
}

func (s *EventIngestService) CleanExpiredEvents(ctx context.Context) (int, error) {
	return s.lifecycle.CleanExpiredEvents(ctx)
}

// AddEvents stores the drafts that don't exist yet and aren't already expired.
// It returns false when nothing was inserted; that isn't an error.
func (s *EventIngestService) AddEvents(ctx context.Context, drafts []model.EventDraft) (bool, error) {
	inserted, err := s.addEvents(ctx, drafts)
	return inserted > 0, err
}

func (s *EventIngestService) addEvents(ctx context.Context, drafts []model.EventDraft) (int, error) {
	if len(drafts) == 0 {
		return 0, nil
	}

	// every lookup has to succeed before anything is written
	exists := make([]bool, len(drafts))
	for i, draft := range drafts {
		found, err := s.store.FindEventsByExactMatch(ctx, draft.Name, draft.StartDate, draft.EndDate)
		if err != nil {
			return 0, storageError("(*EventIngestService).AddEvents", err)
		}
		exists[i] = len(found) > 0
	}

	now := s.clock.Now()
	seen := make(map[string]struct{}, len(drafts))
	events := make([]model.Event, 0)
	for i, draft := range drafts {
		if exists[i] {
			continue
		}
		if _, ok := seen[draft.Key()]; ok {
			continue
		}
		seen[draft.Key()] = struct{}{}

		event := model.NewEvent(draft, now)
		if event.Expired(now, StaleAfter) {
			slog.Debug("skipping expired event", "name", draft.Name, "start", draft.StartDate)
			continue
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		slog.Info("there are no new events added")
		return 0, nil
	}
	if err := s.store.SaveEvents(ctx, events); err != nil {
		return 0, storageError("(*EventIngestService).AddEvents", err)
	}
	slog.Info("events added", "count", len(events))
	return len(events), nil
}

// Ingest runs one full cycle: purge, fetch, parse, add. A purge failure is
// logged and the cycle carries on; a fetch or storage failure ends it.
func (s *EventIngestService) Ingest(ctx context.Context) (IngestReport, error) {
	var report IngestReport

	cleaned, err := s.CleanExpiredEvents(ctx)
	if err != nil {
		slog.Error("can't clean expired events", "error", err)
	}
	report.Cleaned = cleaned

	lines, err := s.scraper.FetchAnnouncementLines(ctx)
	if err != nil {
		return report, fmt.Errorf("(*EventIngestService).Ingest: %w", err)
	}
	report.Lines = len(lines)

	drafts, parseErrs := parser.ParseLines(lines, s.clock.Now())
	for _, err := range parseErrs {
		slog.Warn("skipping announcement line", "error", err)
	}
	report.Rejected = len(parseErrs)

	inserted, err := s.addEvents(ctx, drafts)
	if err != nil {
		return report, fmt.Errorf("(*EventIngestService).Ingest: %w", err)
	}
	report.Inserted = inserted
	return report, nil
}
