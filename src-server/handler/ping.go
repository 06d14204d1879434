package handler

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func Ping(as *utils.AppState) {
	id := "ping"
	as.AddAppCmdHandler(id, pingHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Bot status, schedules and latency.",
	})
}

// taskField renders one scheduled task: its last outcome and its next trigger.
func taskField(state utils.TaskState) *discordgo.MessageEmbedField {
	last := "not run yet"
	switch {
	case state.LastRun.IsZero():
	case state.LastErr != nil:
		last = fmt.Sprintf("failed <t:%d:R>", state.LastRun.Unix())
	default:
		last = fmt.Sprintf("ok <t:%d:R>", state.LastRun.Unix())
	}
	return &discordgo.MessageEmbedField{
		Name: state.Name,
		// discord timestamps must stay ungrouped
		Value: fmt.Sprintf("Last: %s\nNext: <t:%d:R>\nRuns: %s",
			last, state.NextRun.Unix(), printer.Sprintf("%d", state.Runs)),
		Inline: true,
	}
}

func statusEmbed(as *utils.AppState, s *discordgo.Session) *discordgo.MessageEmbed {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	embed := &discordgo.MessageEmbed{
		Title: "Pong!",
		Color: 0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Up %s · %s", as.GetUptime(), runtime.Version()),
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Latency",
				Value:  fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()),
				Inline: true,
			},
			{
				Name:   "Servers",
				Value:  printer.Sprintf("%d", len(s.State.Guilds)),
				Inline: true,
			},
			{
				Name:   "Memory",
				Value:  printer.Sprintf("%.2fMB", float64(m.Sys)/1024/1024),
				Inline: true,
			},
		},
	}
	for _, state := range as.TaskStates() {
		embed.Fields = append(embed.Fields, taskField(state))
	}
	return embed
}

func pingHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		startTimer := time.Now()
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:  discordgo.MessageFlagsEphemeral,
				Embeds: []*discordgo.MessageEmbed{statusEmbed(as, s)},
			},
		}); err != nil {
			slog.Warn("pingHandler: can't respond", "error", err)
		}
		as.MetricChans.ReportDiscordSend(time.Since(startTimer))
		return nil
	}
}
