package setup_handler

import (
	"context"
	"fmt"

	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func delete(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "delete"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Delete server settings.",
	})
	cmdHandler[id] = deleteHandler(as)
}

func deleteHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		deleted, err := as.Guilds.DeleteSettings(context.Background(), i.GuildID)
		switch {
		case err != nil:
			utils.InteractRespHiddenReply(s, i, "Unable to delete server settings.")
			return fmt.Errorf("deleteHandler: %w", err)
		case !deleted:
			utils.InteractRespHiddenReply(s, i, "This server has no settings to delete.")
		default:
			utils.InteractRespHiddenReply(s, i, "Server settings deleted, the daily update falls back to the default channel names.")
		}
		return nil
	}
}
