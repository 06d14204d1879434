package reminder_handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"neneka/src-server/model"
	"neneka/src-server/notifier"
	"neneka/src-server/service"
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
)

var errUnknownTime = errors.New("can't understand the time")

func create(as *utils.AppState, cmdInfo *[]*discordgo.ApplicationCommandOption, cmdHandler map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	id := "create"
	*cmdInfo = append(*cmdInfo, &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        id,
		Description: "Add a new reminder.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "What to remind you about.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "days",
				Description: "The number of days from now.",
				MinValue:    ptrFloat(0),
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "hours",
				Description: "The number of hours from now.",
				MinValue:    ptrFloat(0),
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "minutes",
				Description: "The number of minutes from now.",
				MinValue:    ptrFloat(0),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "at",
				Description: `A time in plain English instead of an offset, e.g. "tomorrow at 5pm".`,
			},
		},
	})
	cmdHandler[id] = createHandler(as)
}

func ptrFloat(f float64) *float64 {
	return &f
}

type createOptions struct {
	description string
	offset      service.Offset
	at          string
}

func readCreateOptions(options []*discordgo.ApplicationCommandInteractionDataOption) createOptions {
	optionMap := utils.OptionMap(options)
	var opts createOptions
	if opt, ok := optionMap["description"]; ok {
		opts.description = opt.StringValue()
	}
	if opt, ok := optionMap["days"]; ok {
		opts.offset.Days = int(opt.IntValue())
	}
	if opt, ok := optionMap["hours"]; ok {
		opts.offset.Hours = int(opt.IntValue())
	}
	if opt, ok := optionMap["minutes"]; ok {
		opts.offset.Minutes = int(opt.IntValue())
	}
	if opt, ok := optionMap["at"]; ok {
		opts.at = strings.TrimSpace(opt.StringValue())
	}
	return opts
}

// parseAt resolves a plain English time relative to now.
func parseAt(w *when.Parser, text string, now time.Time) (time.Time, error) {
	result, err := w.Parse(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parseAt: %w", err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("parseAt: %w: %q", errUnknownTime, text)
	}
	return result.Time.UTC(), nil
}

func createHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		user := utils.InteractionUser(i)
		if user == nil {
			return nil
		}
		opts := readCreateOptions(i.ApplicationCommandData().Options[0].Options)
		req := service.ReminderRequest{
			Description: opts.description,
			UserID:      user.ID,
			GuildID:     i.GuildID,
			ChannelID:   i.ChannelID,
		}

		var err error
		var reminder model.Reminder
		switch opts.at {
		case "":
			reminder, err = as.Reminders.AddReminder(context.Background(), req, opts.offset)
		default:
			fireAt, parseErr := parseAt(as.When, opts.at, as.Clock.Now())
			if parseErr != nil {
				utils.InteractRespHiddenReply(s, i, fmt.Sprintf("I couldn't figure out when %q is.", opts.at))
				return nil
			}
			reminder, err = as.Reminders.AddReminderAt(context.Background(), req, fireAt)
		}

		switch {
		case errors.Is(err, service.ErrInvalidOffset):
			utils.InteractRespHiddenReply(s, i, "Please enter the proper amount of time to make the reminder.")
			return nil
		case errors.Is(err, service.ErrBlankDescription):
			utils.InteractRespHiddenReply(s, i, "Please enter the proper description for the reminder.")
			return nil
		case err != nil:
			utils.InteractRespHiddenReply(s, i, "I was not able to make the reminder.")
			return fmt.Errorf("createHandler: %w", err)
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{notifier.ReminderCreatedEmbed(reminder)},
			},
		}); err != nil {
			slog.Warn("can't respond", "handler", "reminder-create", "error", err)
		}
		return nil
	}
}
