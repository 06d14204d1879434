package event_handler

import (
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Init injects one "event" slash command with the current, ending and
// upcoming subcommands into appCmdInfo and appCmdHandler in AppState.
func Init(as *utils.AppState) {
	localCmdInfo := make(
		[]*discordgo.ApplicationCommandOption, 0,
	)
	localCmdHandler := make(
		map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error,
	)

	current(as, &localCmdInfo, localCmdHandler)
	ending(as, &localCmdInfo, localCmdHandler)
	upcoming(as, &localCmdInfo, localCmdHandler)

	id := "event"
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Get the dates of Princess Connect updates and events.",
		Options:     localCmdInfo,
	})
	as.AddAppCmdHandler(id, func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		data := i.ApplicationCommandData()
		if len(data.Options) == 0 {
			return localCmdHandler["current"](s, i)
		}
		if handler, ok := localCmdHandler[data.Options[0].Name]; ok {
			return handler(s, i)
		}
		return nil
	})
}

func daysOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "days",
		Description: "The number of days from now, defaults to 1.",
	}
}

// daysFrom reads the optional days option of a subcommand.
func daysFrom(i *discordgo.InteractionCreate) int {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return 1
	}
	if opt, ok := utils.OptionMap(options[0].Options)["days"]; ok {
		return int(opt.IntValue())
	}
	return 1
}
