package service_test

import (
	"context"
	"testing"
	"time"

	"neneka/src-server/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetValidate(t *testing.T) {
	assert.NoError(t, service.Offset{Minutes: 5}.Validate())
	assert.NoError(t, service.Offset{Days: 1, Hours: 2}.Validate())
	assert.ErrorIs(t, service.Offset{}.Validate(), service.ErrInvalidOffset)
	assert.ErrorIs(t, service.Offset{Days: 1, Hours: -1}.Validate(), service.ErrInvalidOffset)
	assert.Equal(t, 26*time.Hour+5*time.Minute, service.Offset{Days: 1, Hours: 2, Minutes: 5}.Duration())
}

func TestReminderFiresOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	c := newClock()
	reminders := service.NewReminderService(store, c)

	created, err := reminders.AddReminder(ctx, service.ReminderRequest{
		Description: "  claim the daily stamina ",
		UserID:      "u1",
		GuildID:     "g1",
		ChannelID:   "c1",
	}, service.Offset{Minutes: 5})
	require.NoError(t, err)
	assert.Equal(t, "claim the daily stamina", created.Description)
	assert.Equal(t, july5.Add(5*time.Minute), created.EndDate())

	due, err := store.FindRemindersDue(ctx, july5.Add(4*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, due)
	due, err = store.FindRemindersDue(ctx, july5.Add(6*time.Minute))
	require.NoError(t, err)
	assert.Len(t, due, 1)

	c.Advance(6 * time.Minute)
	drained, err := reminders.DrainDueReminders(ctx)
	require.NoError(t, err)
	require.Len(t, drained, 1)
	assert.Equal(t, created.ID, drained[0].ID)

	drained, err = reminders.DrainDueReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, drained)
}

func TestAddReminderRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	reminders := service.NewReminderService(newTestStorage(t), newClock())

	_, err := reminders.AddReminder(ctx, service.ReminderRequest{Description: "x", UserID: "u"}, service.Offset{})
	assert.ErrorIs(t, err, service.ErrInvalidOffset)
	_, err = reminders.AddReminder(ctx, service.ReminderRequest{Description: " ", UserID: "u"}, service.Offset{Hours: 1})
	assert.ErrorIs(t, err, service.ErrBlankDescription)
	_, err = reminders.AddReminderAt(ctx, service.ReminderRequest{Description: "x", UserID: "u"}, july5)
	assert.ErrorIs(t, err, service.ErrInvalidOffset)

	at, err := reminders.AddReminderAt(ctx, service.ReminderRequest{Description: "x", UserID: "u"}, july5.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, july5.Add(time.Hour), at.EndDate())
}

func TestDeleteAllReminders(t *testing.T) {
	ctx := context.Background()
	reminders := service.NewReminderService(newTestStorage(t), newClock())

	for range 3 {
		_, err := reminders.AddReminder(ctx, service.ReminderRequest{Description: "x", UserID: "u1"}, service.Offset{Hours: 1})
		require.NoError(t, err)
	}
	_, err := reminders.AddReminder(ctx, service.ReminderRequest{Description: "x", UserID: "u2"}, service.Offset{Hours: 1})
	require.NoError(t, err)

	deleted, err := reminders.DeleteAllReminders(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	deleted, err = reminders.DeleteAllReminders(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
