package reminder_handler

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
		Description: "Delete all reminders you have made.",
	})
	cmdHandler[id] = deleteHandler(as)
}

func deleteHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		user := utils.InteractionUser(i)
		if user == nil {
			return nil
		}

		count, err := as.Reminders.DeleteAllReminders(context.Background(), user.ID)
		switch {
		case err != nil:
			utils.InteractRespHiddenReply(s, i, "Unable to delete your reminders.")
			return fmt.Errorf("deleteHandler: %w", err)
		case count == 0:
			utils.InteractRespHiddenReply(s, i, "You don't have any reminders.")
		default:
			utils.InteractRespHiddenReply(s, i, fmt.Sprintf("Successfully deleted %d of your reminders.", count))
		}
		return nil
	}
}
