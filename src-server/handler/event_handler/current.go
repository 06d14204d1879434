package event_handler

import (
	"context"
	"fmt"

	"neneka/src-server/notifier"
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func current(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "current"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Display current events.",
	})
	cmdHandler[id] = currentHandler(as)
}

func currentHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		utils.InteractRespDefer(s, i, false)

		views, err := as.Events.GetCurrentEvents(context.Background())
		if err != nil {
			utils.InteractRespEdit(s, i, "Unable to get events.")
			return fmt.Errorf("currentHandler: %w", err)
		}
		if len(views) == 0 {
			utils.InteractRespEdit(s, i, "There are no current events.")
			return nil
		}
		utils.InteractRespEdit(s, i, "", notifier.EventsEmbed("Current Events", views, 0, notifier.RelativeEnd))
		return nil
	}
}
