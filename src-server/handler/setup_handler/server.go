package setup_handler

import (
	"context"
	"fmt"

	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func server(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "server"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Choose where the daily update goes and who gets pinged.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "The channel to send notifications to.",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role to ping with every daily update.",
			},
		},
	})
	cmdHandler[id] = serverHandler(as)
}

func serverHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		optionMap := utils.OptionMap(i.ApplicationCommandData().Options[0].Options)

		var channelID, roleID string
		if opt, ok := optionMap["channel"]; ok {
			channelID = fmt.Sprint(opt.Value)
		}
		if opt, ok := optionMap["role"]; ok {
			roleID = fmt.Sprint(opt.Value)
		}
		if channelID == "" && roleID == "" {
			utils.InteractRespHiddenReply(s, i, "Please pick a notification channel, a role, or both.")
			return nil
		}

		if err := as.Guilds.UpdateSettings(context.Background(), i.GuildID, channelID, roleID); err != nil {
			utils.InteractRespHiddenReply(s, i, "Unable to update server settings.")
			return fmt.Errorf("serverHandler: %w", err)
		}
		utils.InteractRespHiddenReply(s, i, "Server has successfully updated settings.")
		return nil
	}
}
