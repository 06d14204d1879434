package handler

import (
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

const helpText = `__**User Commands**__
**/event current** - Displays current events.
**/event upcoming** - Displays upcoming events.
**/event ending** - Displays events ending.
**/reminder create** - Add a new reminder.
**/reminder delete** - Delete all your reminders.
**/ping** - Bot status.
**/help** - Gets a list of commands.

__**Setting Commands**__
**/setup server** - Setup notification channel and ping role server settings.
**/setup delete** - Delete server settings.`

func Help(as *utils.AppState) {
	id := "help"
	as.AddAppCmdHandler(id, helpHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Gets a list of commands.",
	})
}

func helpHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		utils.InteractRespEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Command List",
			Description: helpText,
			Color:       0x5865F2,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Uptime " + as.GetUptime().String(),
			},
		})
		return nil
	}
}
