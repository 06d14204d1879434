package event_handler

import (
	"context"
	"errors"
	"fmt"

	"neneka/src-server/notifier"
	"neneka/src-server/service"
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func ending(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "ending"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Displays events ending soon.",
		Options:     []*discordgo.ApplicationCommandOption{daysOption()},
	})
	cmdHandler[id] = windowHandler(as.Events.GetEventsEnding, "Events Ending", "There are no events ending within %s.", notifier.RelativeEnd)
}

func upcoming(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "upcoming"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Displays upcoming events.",
		Options:     []*discordgo.ApplicationCommandOption{daysOption()},
	})
	cmdHandler[id] = windowHandler(as.Events.GetEventsUpcoming, "Upcoming Events", "There are no future events within %s.", notifier.RelativeStart)
}

func windowHandler(
	query func(ctx context.Context, days int) ([]service.EventView, error),
	title, emptyFormat string,
	relative notifier.Relative,
) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		days := daysFrom(i)
		if days <= 0 {
			utils.InteractRespHiddenReply(s, i, "Please provide a valid number of days.")
			return nil
		}
		utils.InteractRespDefer(s, i, false)

		views, err := query(context.Background(), days)
		switch {
		case errors.Is(err, service.ErrInvalidDays):
			utils.InteractRespEdit(s, i, "Please provide a valid number of days.")
			return nil
		case err != nil:
			utils.InteractRespEdit(s, i, "Unable to get events.")
			return fmt.Errorf("windowHandler: %s: %w", title, err)
		case len(views) == 0:
			utils.InteractRespEdit(s, i, fmt.Sprintf(emptyFormat, notifier.PluralDays(days)))
			return nil
		}
		utils.InteractRespEdit(s, i, "", notifier.EventsEmbed(title, views, days, relative))
		return nil
	}
}
