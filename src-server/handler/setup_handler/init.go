package setup_handler

import (
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

var adminOnly = int64(discordgo.PermissionAdministrator)

// Init injects the "setup" slash command into AppState. Only administrators
// see it, Discord enforces that through DefaultMemberPermissions.
func Init(as *utils.AppState) {
	localCmdInfo := make(
		[]*discordgo.ApplicationCommandOption, 0,
	)
	localCmdHandler := make(
		map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error,
	)

	server(as, &localCmdInfo, localCmdHandler)
	delete(as, &localCmdInfo, localCmdHandler)

	id := "setup"
	dmPermission := false
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Server notification settings.",
		Options:                  localCmdInfo,
		DefaultMemberPermissions: &adminOnly,
		DMPermission:             &dmPermission,
	})
	as.AddAppCmdHandler(id, func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" {
			utils.InteractRespHiddenReply(s, i, "This command can only be used in a server.")
			return nil
		}
		data := i.ApplicationCommandData()
		if handler, ok := localCmdHandler[data.Options[0].Name]; ok {
			return handler(s, i)
		}
		return nil
	})
}
