package service

import (
	"context"
	"fmt"

	"neneka/src-server/model"
)

type GuildService struct {
	store GuildStore
}

func NewGuildService(store GuildStore) *GuildService {
	return &GuildService{store: store}
}

// AddGuild registers a guild and reports whether it was new.
func (s *GuildService) AddGuild(ctx context.Context, guildID string) (bool, error) {
	created, err := s.store.EnsureGuildSettings(ctx, guildID)
	if err != nil {
		return false, storageError("(*GuildService).AddGuild", err)
	}
	return created, nil
}

// UpdateSettings sets the notification channel and ping role; blank values
// leave the stored ones untouched.
func (s *GuildService) UpdateSettings(ctx context.Context, guildID, channelID, roleID string) error {
	if guildID == "" {
		return fmt.Errorf("(*GuildService).UpdateSettings: guild id is blank")
	}
	if err := s.store.UpsertGuildSettings(ctx, model.GuildSettings{
		GuildID:               guildID,
		NotificationChannelID: channelID,
		PingRoleID:            roleID,
	}); err != nil {
		return storageError("(*GuildService).UpdateSettings", err)
	}
	return nil
}

func (s *GuildService) DeleteSettings(ctx context.Context, guildID string) (bool, error) {
	deleted, err := s.store.DeleteGuildSettings(ctx, guildID)
	if err != nil {
		return false, storageError("(*GuildService).DeleteSettings", err)
	}
	return deleted, nil
}

// GetSettings returns nil when the guild never configured anything.
func (s *GuildService) GetSettings(ctx context.Context, guildID string) (*model.GuildSettings, error) {
	settings, err := s.store.FindGuildSettings(ctx, guildID)
	if err != nil {
		return nil, storageError("(*GuildService).GetSettings", err)
	}
	return settings, nil
}
