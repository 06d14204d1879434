package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"neneka/src-server/model"

	"github.com/uptrace/bun"
)

// FindGuildSettings returns nil without an error when the guild has no row.
func (s *Storage) FindGuildSettings(ctx context.Context, guildID string) (*model.GuildSettings, error) {
	settings := new(model.GuildSettings)
	if err := s.db.NewSelect().
		Model(settings).
		Where("guild_id = ?", guildID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("(*Storage).FindGuildSettings: %w", err)
	}
	return settings, nil
}

// EnsureGuildSettings creates an empty row for the guild and reports whether
// it didn't exist before.
func (s *Storage) EnsureGuildSettings(ctx context.Context, guildID string) (bool, error) {
	if guildID == "" {
		return false, fmt.Errorf("(*Storage).EnsureGuildSettings: guild id is blank")
	}
	var created bool
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().
			Model(&model.GuildSettings{GuildID: guildID}).
			On("CONFLICT (guild_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		created = affected > 0
		return nil
	}); err != nil {
		return false, fmt.Errorf("(*Storage).EnsureGuildSettings: %w", err)
	}
	return created, nil
}

// UpsertGuildSettings only overwrites the fields that are set on settings.
func (s *Storage) UpsertGuildSettings(ctx context.Context, settings model.GuildSettings) error {
	if settings.GuildID == "" {
		return fmt.Errorf("(*Storage).UpsertGuildSettings: guild id is blank")
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		query := tx.NewInsert().Model(&settings)
		switch {
		case settings.NotificationChannelID == "" && settings.PingRoleID == "":
			query = query.On("CONFLICT (guild_id) DO NOTHING")
		default:
			query = query.On("CONFLICT (guild_id) DO UPDATE")
			if settings.NotificationChannelID != "" {
				query = query.Set("notification_channel_id = EXCLUDED.notification_channel_id")
			}
			if settings.PingRoleID != "" {
				query = query.Set("ping_role_id = EXCLUDED.ping_role_id")
			}
		}
		_, err := query.Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("(*Storage).UpsertGuildSettings: %w", err)
	}
	return nil
}

// DeleteGuildSettings reports whether a row was removed.
func (s *Storage) DeleteGuildSettings(ctx context.Context, guildID string) (bool, error) {
	var deleted bool
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*model.GuildSettings)(nil)).
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	}); err != nil {
		return false, fmt.Errorf("(*Storage).DeleteGuildSettings: %w", err)
	}
	return deleted, nil
}
