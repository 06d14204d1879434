package service

import (
	"time"

	"neneka/src-server/model"
)

// EventView is an event as seen at AsOf. The relative offsets are negative once
// the date has passed.
type EventView struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   *time.Time

	AsOf     time.Time
	StartsIn time.Duration
	EndsIn   *time.Duration
}

func NewEventView(event model.Event, now time.Time) EventView {
	view := EventView{
		ID:        event.ID,
		Name:      event.Name,
		StartDate: event.StartDate(),
		EndDate:   event.EndDate(),
		AsOf:      now,
	}
	view.StartsIn = view.StartDate.Sub(now)
	if view.EndDate != nil {
		endsIn := view.EndDate.Sub(now)
		view.EndsIn = &endsIn
	}
	return view
}

func newEventViews(events []model.Event, now time.Time) []EventView {
	views := make([]EventView, len(events))
	for i, event := range events {
		views[i] = NewEventView(event, now)
	}
	return views
}
