package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventDraft is a parsed announcement that hasn't been deduplicated or stored yet.
type EventDraft struct {
	Name      string
	StartDate time.Time
	EndDate   *time.Time // nil when the announcement has no end
}

// Key identifies a draft for deduplication; two drafts with the same key are
// the same event.
func (d EventDraft) Key() string {
	end := "-"
	if d.EndDate != nil {
		end = fmt.Sprint(d.EndDate.Unix())
	}
	return fmt.Sprintf("%s|%d|%s", d.Name, d.StartDate.Unix(), end)
}

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID               string `bun:"id,pk"`             // required
	Name             string `bun:"name,notnull"`      // required
	StartDateUnixUTC int64  `bun:"start_date,notnull"` // required
	EndDateUnixUTC   *int64 `bun:"end_date"`

	CreatedAt int64 `bun:"created_at,notnull"`
}

// NewEvent builds a storable event out of a draft.
func NewEvent(d EventDraft, now time.Time) Event {
	e := Event{
		ID:               uuid.NewString(),
		Name:             d.Name,
		StartDateUnixUTC: d.StartDate.UTC().Unix(),
		CreatedAt:        now.UTC().Unix(),
	}
	if d.EndDate != nil {
		end := d.EndDate.UTC().Unix()
		e.EndDateUnixUTC = &end
	}
	return e
}

func (e *Event) StartDate() time.Time {
	return time.Unix(e.StartDateUnixUTC, 0).UTC()
}

// EndDate returns nil if the event has no end.
func (e *Event) EndDate() *time.Time {
	if e.EndDateUnixUTC == nil {
		return nil
	}
	end := time.Unix(*e.EndDateUnixUTC, 0).UTC()
	return &end
}

func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Validate: event id is blank")
	case e.Name == "":
		return fmt.Errorf("(*Event).Validate: name is blank")
	case e.StartDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Validate: start date is blank")
	case e.EndDateUnixUTC != nil && *e.EndDateUnixUTC < e.StartDateUnixUTC:
		return fmt.Errorf("(*Event).Validate: end date must not be before start date")
	}
	return nil
}

// Expired reports whether the event should be purged: it has ended, or it never
// got an end date and started more than staleAfter ago.
func (e *Event) Expired(now time.Time, staleAfter time.Duration) bool {
	if e.EndDateUnixUTC != nil {
		return *e.EndDateUnixUTC <= now.Unix()
	}
	return e.StartDateUnixUTC <= now.Add(-staleAfter).Unix()
}
