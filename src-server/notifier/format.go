package notifier

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"neneka/src-server/model"
	"neneka/src-server/service"

	"github.com/bwmarrin/discordgo"
)

const (
	colorBlurple = 0x5865F2

	// discord rejects embed field values longer than this
	maxFieldValue = 1024
)

// Relative picks which date gets the countdown line.
type Relative int

const (
	RelativeAuto Relative = iota
	RelativeStart
	RelativeEnd
)

func discordTime(t time.Time) string {
	return fmt.Sprintf("<t:%d:f>", t.Unix())
}

func discordRelative(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

// PluralDays renders "1 day" or "N days".
func PluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func eventLines(views []service.EventView, relative Relative) string {
	var sb strings.Builder
	for _, view := range views {
		sb.WriteString(fmt.Sprintf("__**%s**__\n", view.Name))
		if view.EndDate != nil {
			sb.WriteString(fmt.Sprintf("%s to %s\n", discordTime(view.StartDate), discordTime(*view.EndDate)))
		} else {
			sb.WriteString(fmt.Sprintf("Starting at %s\n", discordTime(view.StartDate)))
		}

		switch {
		case relative == RelativeEnd && view.EndDate != nil,
			relative == RelativeAuto && view.EndDate != nil && view.StartsIn <= 0:
			sb.WriteString(fmt.Sprintf("End: %s\n\n", discordRelative(*view.EndDate)))
		default:
			sb.WriteString(fmt.Sprintf("Start: %s\n\n", discordRelative(view.StartDate)))
		}
	}
	return truncate(strings.TrimSpace(sb.String()), maxFieldValue)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := max - len("\n…")
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	cut := s[:n]
	if i := strings.LastIndex(cut, "\n\n"); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n…"
}

// EventsEmbed renders one list of events. days is the query window, 0 when the
// list isn't windowed.
func EventsEmbed(title string, views []service.EventView, days int, relative Relative) *discordgo.MessageEmbed {
	name := "Events:"
	if days > 0 {
		name = fmt.Sprintf("Within %s:", PluralDays(days))
	}
	return &discordgo.MessageEmbed{
		Title: title,
		Color: colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: name, Value: eventLines(views, relative)},
		},
	}
}

// DailyUpdateEmbed renders the daily digest; empty sections are left out.
func DailyUpdateEmbed(ending, upcoming []service.EventView, days int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Princess Connect Daily Update",
		Description: fmt.Sprintf("Events within the next %s.", PluralDays(days)),
		Color:       colorBlurple,
	}
	if len(ending) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Ending soon",
			Value: eventLines(ending, RelativeEnd),
		})
	}
	if len(upcoming) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Starting soon",
			Value: eventLines(upcoming, RelativeStart),
		})
	}
	return embed
}

// DailyUpdateMessage adds a role mention in front of the digest when pingRoleID
// is set.
func DailyUpdateMessage(embed *discordgo.MessageEmbed, pingRoleID string) Message {
	msg := Message{Embeds: []*discordgo.MessageEmbed{embed}}
	if pingRoleID != "" {
		msg.Content = fmt.Sprintf("<@&%s>", pingRoleID)
	}
	return msg
}

// ReminderMessage is the message a due reminder is delivered as. mention pings
// the owner, used when it goes to a guild channel.
func ReminderMessage(reminder model.Reminder, mention bool) Message {
	msg := Message{
		Embeds: []*discordgo.MessageEmbed{{
			Title: fmt.Sprintf("Reminder from %s.", discordTime(reminder.StartDate())),
			Description: fmt.Sprintf(
				"Hello, today is %s and I am here to notify you about your reminder.\n\n**Your message:**\n%s",
				discordTime(reminder.EndDate()), strings.TrimSpace(reminder.Description),
			),
			Color: colorBlurple,
		}},
	}
	if mention {
		msg.Content = fmt.Sprintf("<@%s>", reminder.UserID)
	}
	return msg
}

// ReminderCreatedEmbed confirms a new reminder to its owner.
func ReminderCreatedEmbed(reminder model.Reminder) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Reminder",
		Description: fmt.Sprintf(
			"Hi, I will notify you %s.\nDate: %s\n\n**With the message:**\n%s",
			discordRelative(reminder.EndDate()), discordTime(reminder.EndDate()), reminder.Description,
		),
		Color: colorBlurple,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Make sure the bot can DM you just in case.",
		},
	}
}
