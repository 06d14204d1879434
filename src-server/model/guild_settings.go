package model

import (
	"github.com/uptrace/bun"
)

// GuildSettings is the per-guild delivery configuration. Blank fields mean
// "not configured".
type GuildSettings struct {
	bun.BaseModel `bun:"table:guild_settings"`

	GuildID               string `bun:"guild_id,pk"`
	NotificationChannelID string `bun:"notification_channel_id,nullzero"`
	PingRoleID            string `bun:"ping_role_id,nullzero"`
}
