package reminder_handler

import (
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Init injects the "reminder" slash command into AppState.
func Init(as *utils.AppState) {
	localCmdInfo := make(
		[]*discordgo.ApplicationCommandOption, 0,
	)
	localCmdHandler := make(
		map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error,
	)

	create(as, &localCmdInfo, localCmdHandler)
	delete(as, &localCmdInfo, localCmdHandler)

	id := "reminder"
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Make a reminder to yourself.",
		Options:     localCmdInfo,
	})
	as.AddAppCmdHandler(id, func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		data := i.ApplicationCommandData()
		if handler, ok := localCmdHandler[data.Options[0].Name]; ok {
			return handler(s, i)
		}
		return nil
	})
}
