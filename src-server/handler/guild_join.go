package handler

import (
	"context"
	"log/slog"
	"strings"

	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// GuildJoin registers every guild the bot is in. The owner of a guild seen for
// the first time gets setup instructions in their DMs.
func GuildJoin(as *utils.AppState) {
	as.DgSession.AddHandler(guildJoinHandler(as))
}

func guildJoinHandler(as *utils.AppState) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if g.Guild == nil || g.Unavailable {
			return
		}
		created, err := as.Guilds.AddGuild(context.Background(), g.ID)
		if err != nil {
			slog.Error("can't register guild", "guild", g.ID, "error", err)
			return
		}
		if !created || g.OwnerID == "" {
			return
		}
		slog.Info("joined a new guild", "guild", g.ID, "name", g.Name)

		channel, err := s.UserChannelCreate(g.OwnerID)
		if err != nil {
			slog.Debug("guild owner has their DMs turned off", "guild", g.ID, "error", err)
			return
		}
		if _, err := s.ChannelMessageSendEmbed(channel.ID, welcomeEmbed(as.Config.GetFallbackChannelNames())); err != nil {
			slog.Debug("can't send setup instructions", "guild", g.ID, "error", err)
		}
	}
}

func welcomeEmbed(fallbackNames []string) *discordgo.MessageEmbed {
	channels := make([]string, len(fallbackNames))
	for idx, name := range fallbackNames {
		channels[idx] = "`#" + name + "`"
	}
	return &discordgo.MessageEmbed{
		Title:       "Hello!",
		Description: "Time to setup this bot to receive notifications.",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Instructions:",
				Value: "- Use `/setup server` to choose the channel this bot will send messages to, and a role to ping.\n" +
					"- Alternatively, create a " + strings.Join(channels, " or ") + " channel to receive notifications.\n\n" +
					"- Use `/help` to see a list of commands.",
			},
		},
	}
}
