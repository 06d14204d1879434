package scheduler

import (
	"context"
	"testing"

	"neneka/src-server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fallbackNames = []string{"priconne-notifications", "princess-connect-notifications"}

func TestDailyNotifyIsolatesFailures(t *testing.T) {
	n := &fakeNotifier{
		destinations: []string{"g1", "g2", "g3"},
		settings: map[string]*model.GuildSettings{
			"g1": {GuildID: "g1", NotificationChannelID: "c1"},
			"g2": {GuildID: "g2", NotificationChannelID: "c2"},
			"g3": {GuildID: "g3", NotificationChannelID: "c3"},
		},
		failTargets: map[string]bool{"c2": true},
	}

	report, err := NewDailyNotify(someEvents(), n, 2, fallbackNames).Notify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g3"}, report.Delivered)
	assert.Equal(t, []string{"g2"}, report.Failed)
	assert.Equal(t, []string{"c1", "c3"}, n.targets())
}

func TestDailyNotifyIsolatesPanics(t *testing.T) {
	n := &fakeNotifier{
		destinations: []string{"g1", "g2", "g3"},
		fallbacks:    map[string]string{"g1": "c1", "g2": "c2", "g3": "c3"},
		panicOn:      map[string]bool{"g2": true},
	}

	report, err := NewDailyNotify(someEvents(), n, 2, fallbackNames).Notify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g3"}, report.Delivered)
	assert.Equal(t, []string{"g2"}, report.Failed)
	assert.Equal(t, []string{"c1", "c3"}, n.targets())
}

func TestDailyNotifyTargets(t *testing.T) {
	n := &fakeNotifier{
		destinations: []string{"configured", "fallback", "optout", "blank"},
		settings: map[string]*model.GuildSettings{
			"configured": {GuildID: "configured", NotificationChannelID: "c1", PingRoleID: "r1"},
			"blank":      {GuildID: "blank", PingRoleID: "r2"},
		},
		fallbacks: map[string]string{"fallback": "f1", "blank": "f2"},
	}

	report, err := NewDailyNotify(someEvents(), n, 2, fallbackNames).Notify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"configured", "fallback", "blank"}, report.Delivered)
	assert.Equal(t, []string{"optout"}, report.Skipped)
	assert.Empty(t, report.Failed)

	require.Len(t, n.deliveries, 3)
	assert.Equal(t, "<@&r1>", n.deliveries[0].msg.Content)
	assert.Empty(t, n.deliveries[1].msg.Content)
	// the ping role only applies to a configured channel
	assert.Empty(t, n.deliveries[2].msg.Content)
	assert.Equal(t, "Princess Connect Daily Update", n.deliveries[0].msg.Embeds[0].Title)
}

func TestDailyNotifyNothingToSay(t *testing.T) {
	n := &fakeNotifier{destinations: []string{"g1"}}

	report, err := NewDailyNotify(&fakeEvents{}, n, 2, fallbackNames).Notify(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n.listed)
	assert.Empty(t, report.Delivered)
}

func TestDailyNotifyEventError(t *testing.T) {
	events := someEvents()
	events.err = assert.AnError
	n := &fakeNotifier{destinations: []string{"g1"}}

	_, err := NewDailyNotify(events, n, 2, fallbackNames).Notify(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, n.targets())
}
