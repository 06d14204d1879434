package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neneka/src-server/model"

	"github.com/bwmarrin/discordgo"
)

// SettingsStore is where guild delivery settings live.
type SettingsStore interface {
	GetSettings(ctx context.Context, guildID string) (*model.GuildSettings, error)
}

// Discord implements Notifier and DirectNotifier on top of a gateway session.
type Discord struct {
	session  *discordgo.Session
	settings SettingsStore

	// OnDeliver, if set, receives the latency of every successful send.
	OnDeliver func(latency time.Duration)
}

func NewDiscord(session *discordgo.Session, settings SettingsStore) *Discord {
	return &Discord{session: session, settings: settings}
}

func (d *Discord) ListDestinations(ctx context.Context) ([]string, error) {
	d.session.State.RLock()
	defer d.session.State.RUnlock()

	ids := make([]string, 0, len(d.session.State.Guilds))
	for _, guild := range d.session.State.Guilds {
		ids = append(ids, guild.ID)
	}
	return ids, nil
}

// GetDestinationSettings drops a configured channel the bot can no longer see
// so callers fall back to the conventional channel names.
func (d *Discord) GetDestinationSettings(ctx context.Context, guildID string) (*model.GuildSettings, error) {
	settings, err := d.settings.GetSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("(*Discord).GetDestinationSettings: %w", err)
	}
	if settings == nil || settings.NotificationChannelID == "" {
		return settings, nil
	}
	if _, err := d.channel(ctx, settings.NotificationChannelID); err != nil {
		slog.Warn("configured notification channel is gone", "guild", guildID, "channel", settings.NotificationChannelID, "error", err)
		settings.NotificationChannelID = ""
	}
	return settings, nil
}

func (d *Discord) ResolveFallbackTarget(ctx context.Context, guildID string, candidateNames []string) (string, error) {
	var channels []*discordgo.Channel
	if guild, err := d.session.State.Guild(guildID); err == nil {
		d.session.State.RLock()
		channels = append(channels, guild.Channels...)
		d.session.State.RUnlock()
	} else {
		channels, err = d.session.GuildChannels(guildID, discordgo.WithContext(ctx))
		if err != nil {
			return "", fmt.Errorf("(*Discord).ResolveFallbackTarget: %w", err)
		}
	}
	if channel := FindTextChannel(channels, candidateNames); channel != nil {
		return channel.ID, nil
	}
	return "", nil
}

func (d *Discord) Deliver(ctx context.Context, targetID string, msg Message) error {
	if targetID == "" {
		return fmt.Errorf("(*Discord).Deliver: %w", ErrNoTarget)
	}
	start := time.Now()
	if _, err := d.session.ChannelMessageSendComplex(targetID, &discordgo.MessageSend{
		Content: msg.Content,
		Embeds:  msg.Embeds,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("(*Discord).Deliver: %w", err)
	}
	if d.OnDeliver != nil {
		d.OnDeliver(time.Since(start))
	}
	return nil
}

func (d *Discord) OriginReachable(ctx context.Context, guildID, channelID, userID string) (bool, error) {
	if _, err := d.session.State.Member(guildID, userID); err != nil {
		if _, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx)); err != nil {
			return false, nil
		}
	}
	if _, err := d.channel(ctx, channelID); err != nil {
		return false, nil
	}
	return true, nil
}

func (d *Discord) ResolveDirectTarget(ctx context.Context, userID string) (string, error) {
	channel, err := d.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("(*Discord).ResolveDirectTarget: %w", err)
	}
	return channel.ID, nil
}

func (d *Discord) channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if channel, err := d.session.State.Channel(channelID); err == nil {
		return channel, nil
	}
	return d.session.Channel(channelID, discordgo.WithContext(ctx))
}

// FindTextChannel returns the first guild text channel matching a name, trying
// names in order.
func FindTextChannel(channels []*discordgo.Channel, names []string) *discordgo.Channel {
	for _, name := range names {
		for _, channel := range channels {
			if channel != nil && channel.Type == discordgo.ChannelTypeGuildText && channel.Name == name {
				return channel
			}
		}
	}
	return nil
}
