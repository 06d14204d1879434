package notifier_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"neneka/src-server/model"
	"neneka/src-server/notifier"
	"neneka/src-server/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 5, 14, 0, 0, 0, time.UTC)

func view(name string, start time.Time, end *time.Time) service.EventView {
	e := model.NewEvent(model.EventDraft{Name: name, StartDate: start, EndDate: end}, now)
	return service.NewEventView(e, now)
}

func TestDailyUpdateEmbed(t *testing.T) {
	end := now.Add(24 * time.Hour)
	embed := notifier.DailyUpdateEmbed(
		[]service.EventView{view("Summer Fest", now.Add(-time.Hour), &end)},
		nil, 2,
	)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Ending soon", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "__**Summer Fest**__")
	assert.Contains(t, embed.Fields[0].Value, "End: <t:")

	msg := notifier.DailyUpdateMessage(embed, "42")
	assert.Equal(t, "<@&42>", msg.Content)
	assert.Empty(t, notifier.DailyUpdateMessage(embed, "").Content)
}

func TestEventsEmbedTruncates(t *testing.T) {
	views := make([]service.EventView, 0)
	for i := 0; i < 60; i++ {
		views = append(views, view(strings.Repeat("x", 30), now.Add(time.Hour), nil))
	}
	embed := notifier.EventsEmbed("Upcoming Events", views, 1, notifier.RelativeStart)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Within 1 day:", embed.Fields[0].Name)
	assert.LessOrEqual(t, len(embed.Fields[0].Value), 1024)
	assert.True(t, strings.HasSuffix(embed.Fields[0].Value, "…"))
}

func TestEventsEmbedTruncatesOnRuneBoundary(t *testing.T) {
	name := "x" + strings.Repeat("é", 1000)
	embed := notifier.EventsEmbed("Upcoming Events", []service.EventView{view(name, now.Add(time.Hour), nil)}, 0, notifier.RelativeStart)
	value := embed.Fields[0].Value
	assert.LessOrEqual(t, len(value), 1024)
	assert.True(t, utf8.ValidString(value))
	assert.True(t, strings.HasSuffix(value, "\n…"))
}

func TestPluralDays(t *testing.T) {
	assert.Equal(t, "1 day", notifier.PluralDays(1))
	assert.Equal(t, "3 days", notifier.PluralDays(3))
}

func TestReminderMessage(t *testing.T) {
	r := model.Reminder{ID: "r", Description: "buy gems", UserID: "7", StartDateUnixUTC: now.Unix(), EndDateUnixUTC: now.Add(time.Hour).Unix()}
	assert.Equal(t, "<@7>", notifier.ReminderMessage(r, true).Content)
	assert.Empty(t, notifier.ReminderMessage(r, false).Content)
	// free text is shown as the user wrote it
	r.Description = "  buy gems at 5pm. "
	description := notifier.ReminderMessage(r, false).Embeds[0].Description
	assert.Contains(t, description, "\nbuy gems at 5pm.")
	assert.NotContains(t, description, "Buy Gems")
}

func TestFindTextChannel(t *testing.T) {
	channels := []*discordgo.Channel{
		{ID: "1", Name: "general", Type: discordgo.ChannelTypeGuildText},
		{ID: "2", Name: "princess-connect-notifications", Type: discordgo.ChannelTypeGuildText},
		{ID: "3", Name: "priconne-notifications", Type: discordgo.ChannelTypeGuildVoice},
		{ID: "4", Name: "priconne-notifications", Type: discordgo.ChannelTypeGuildText},
	}
	names := []string{"priconne-notifications", "princess-connect-notifications"}

	found := notifier.FindTextChannel(channels, names)
	require.NotNil(t, found)
	assert.Equal(t, "4", found.ID)

	assert.Nil(t, notifier.FindTextChannel(channels[:1], names))
}
