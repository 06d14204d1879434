package scheduler

import (
	"context"
	"testing"
	"time"

	"neneka/src-server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminder(id, user, guild, channel string) model.Reminder {
	return model.Reminder{
		ID:               id,
		Description:      "do the thing",
		StartDateUnixUTC: july5At15.Add(-time.Hour).Unix(),
		EndDateUnixUTC:   july5At15.Unix(),
		UserID:           user,
		GuildID:          guild,
		ChannelID:        channel,
	}
}

func TestReminderNotifyRouting(t *testing.T) {
	n := &fakeNotifier{
		reachable:   map[string]bool{"origin": true, "broken": true},
		failTargets: map[string]bool{"broken": true},
		dms:         map[string]string{"u2": "dm2", "u3": "dm3", "u4": "dm4", "u6": "dm6"},
		failDMs:     map[string]bool{"u5": true},
	}
	source := &fakeReminders{reminders: []model.Reminder{
		reminder("r1", "u1", "g", "origin"),
		reminder("r2", "u2", "g", "gone"),
		reminder("r3", "u3", "", ""),
		reminder("r4", "u4", "g", "broken"),
		reminder("r5", "u5", "", ""),
		reminder("r6", "u6", "", ""),
	}}

	require.NoError(t, NewReminderNotify(source, n).Job(context.Background()))
	assert.Equal(t, []string{"origin", "dm2", "dm3", "dm4", "dm6"}, n.targets())
	assert.Equal(t, "<@u1>", n.deliveries[0].msg.Content)
	assert.Empty(t, n.deliveries[1].msg.Content)

	// drained reminders are never delivered twice
	require.NoError(t, NewReminderNotify(source, n).Job(context.Background()))
	assert.Len(t, n.targets(), 5)
}
