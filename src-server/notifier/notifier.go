package notifier

import (
	"context"
	"errors"

	"neneka/src-server/model"

	"github.com/bwmarrin/discordgo"
)

var ErrNoTarget = errors.New("no delivery target")

// Message is what gets delivered to a target.
type Message struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

// Notifier fans messages out to destinations (guilds) and their targets
// (channels).
type Notifier interface {
	ListDestinations(ctx context.Context) ([]string, error)
	// GetDestinationSettings returns nil when the destination configured nothing.
	GetDestinationSettings(ctx context.Context, destinationID string) (*model.GuildSettings, error)
	// ResolveFallbackTarget returns the first target named after one of
	// candidateNames, in order, or "" if there is none.
	ResolveFallbackTarget(ctx context.Context, destinationID string, candidateNames []string) (string, error)
	Deliver(ctx context.Context, targetID string, msg Message) error
}

// DirectNotifier reaches single users, for reminders.
type DirectNotifier interface {
	// OriginReachable reports whether the user is still in the guild and the
	// channel still exists.
	OriginReachable(ctx context.Context, guildID, channelID, userID string) (bool, error)
	ResolveDirectTarget(ctx context.Context, userID string) (string, error)
	Deliver(ctx context.Context, targetID string, msg Message) error
}
