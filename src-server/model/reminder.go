package model

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Reminder struct {
	bun.BaseModel `bun:"table:reminders"`

	ID               string `bun:"id,pk"`              // required
	Description      string `bun:"description,notnull"` // required
	StartDateUnixUTC int64  `bun:"start_date,notnull"`  // creation time
	EndDateUnixUTC   int64  `bun:"end_date,notnull"`    // fire time

	UserID    string `bun:"user_id,notnull"` // required
	GuildID   string `bun:"guild_id,nullzero"`
	ChannelID string `bun:"channel_id,nullzero"`
}

func (r *Reminder) StartDate() time.Time {
	return time.Unix(r.StartDateUnixUTC, 0).UTC()
}

func (r *Reminder) EndDate() time.Time {
	return time.Unix(r.EndDateUnixUTC, 0).UTC()
}

// HasOrigin reports whether the reminder was created inside a guild channel.
func (r *Reminder) HasOrigin() bool {
	return r.GuildID != "" && r.ChannelID != ""
}

func (r *Reminder) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("(*Reminder).Validate: reminder id is blank")
	case r.UserID == "":
		return fmt.Errorf("(*Reminder).Validate: user id is blank")
	case r.Description == "":
		return fmt.Errorf("(*Reminder).Validate: description is blank")
	case r.EndDateUnixUTC <= r.StartDateUnixUTC:
		return fmt.Errorf("(*Reminder).Validate: fire time must be after creation time")
	}
	return nil
}
