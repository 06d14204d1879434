package reminder_handler

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWhen() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

func TestParseAt(t *testing.T) {
	now := time.Date(2024, 7, 5, 12, 0, 0, 0, time.UTC)

	got, err := parseAt(newWhen(), "in 2 hours", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), got)

	_, err = parseAt(newWhen(), "banana", now)
	assert.ErrorIs(t, err, errUnknownTime)
}

func TestReadCreateOptions(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "description", Type: discordgo.ApplicationCommandOptionString, Value: "daily quests"},
		{Name: "hours", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
		{Name: "at", Type: discordgo.ApplicationCommandOptionString, Value: "  tomorrow  "},
	}

	opts := readCreateOptions(options)
	assert.Equal(t, "daily quests", opts.description)
	assert.Equal(t, 0, opts.offset.Days)
	assert.Equal(t, 3, opts.offset.Hours)
	assert.Equal(t, "tomorrow", opts.at)
}
