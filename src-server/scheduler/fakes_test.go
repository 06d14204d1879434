package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"neneka/src-server/model"
	"neneka/src-server/notifier"
	"neneka/src-server/service"
)

var (
	july5At15 = time.Date(2024, 7, 5, 15, 0, 0, 0, time.UTC)
	errSend   = errors.New("send failed")
)

type delivery struct {
	target string
	msg    notifier.Message
}

type fakeNotifier struct {
	mu sync.Mutex

	destinations []string
	settings     map[string]*model.GuildSettings
	fallbacks    map[string]string
	failTargets  map[string]bool
	panicOn      map[string]bool

	// reminder side
	reachable map[string]bool // by channel id
	dms       map[string]string
	failDMs   map[string]bool

	listed     int
	deliveries []delivery
}

func (f *fakeNotifier) ListDestinations(ctx context.Context) ([]string, error) {
	f.listed++
	return f.destinations, nil
}

func (f *fakeNotifier) GetDestinationSettings(ctx context.Context, id string) (*model.GuildSettings, error) {
	if f.panicOn[id] {
		panic("settings lookup blew up")
	}
	return f.settings[id], nil
}

func (f *fakeNotifier) ResolveFallbackTarget(ctx context.Context, id string, names []string) (string, error) {
	return f.fallbacks[id], nil
}

func (f *fakeNotifier) Deliver(ctx context.Context, target string, msg notifier.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTargets[target] {
		return errSend
	}
	f.deliveries = append(f.deliveries, delivery{target: target, msg: msg})
	return nil
}

func (f *fakeNotifier) OriginReachable(ctx context.Context, guildID, channelID, userID string) (bool, error) {
	return f.reachable[channelID], nil
}

func (f *fakeNotifier) ResolveDirectTarget(ctx context.Context, userID string) (string, error) {
	if f.failDMs[userID] {
		return "", errors.New("dms closed")
	}
	return f.dms[userID], nil
}

func (f *fakeNotifier) targets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deliveries))
	for i, d := range f.deliveries {
		out[i] = d.target
	}
	return out
}

type fakeEvents struct {
	ending, upcoming []service.EventView
	err              error
}

func (f *fakeEvents) GetEventsEnding(ctx context.Context, days int) ([]service.EventView, error) {
	return f.ending, f.err
}

func (f *fakeEvents) GetEventsUpcoming(ctx context.Context, days int) ([]service.EventView, error) {
	return f.upcoming, f.err
}

type fakeReminders struct {
	reminders []model.Reminder
}

func (f *fakeReminders) DrainDueReminders(ctx context.Context) ([]model.Reminder, error) {
	out := f.reminders
	f.reminders = nil
	return out, nil
}

func someEvents() *fakeEvents {
	end := july5At15.Add(24 * time.Hour)
	event := model.NewEvent(model.EventDraft{Name: "Summer Fest", StartDate: july5At15.Add(-time.Hour), EndDate: &end}, july5At15)
	return &fakeEvents{ending: []service.EventView{service.NewEventView(event, july5At15)}}
}
