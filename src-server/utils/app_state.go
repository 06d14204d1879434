package utils

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"neneka/src-server/clock"
	"neneka/src-server/scraper"
	"neneka/src-server/service"
	"neneka/src-server/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

type AppState struct {
	Config      *Config
	Store       *storage.Storage
	DgSession   *discordgo.Session
	When        *when.Parser
	Clock       clock.Clock
	MetricChans *Metric

	Events    *service.EventLifecycleService
	Ingest    *service.EventIngestService
	Reminders *service.ReminderService
	Guilds    *service.GuildService

	// receives SIGINT/SIGTERM, or a manual close from a failing component
	AppCloseSignalChan chan os.Signal

	startTime time.Time

	// will be send to Discord
	appCmdInfo   map[string]*discordgo.ApplicationCommand
	appCmdInfoMu sync.RWMutex
	// handling commands from Discord WSAPI
	appCmdHandler   map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error
	appCmdHandlerMu sync.RWMutex

	gracefulShutdownChans   []*chan struct{}
	gracefulShutdownChansMu sync.Mutex

	tasks   []TaskStatus
	tasksMu sync.RWMutex
}

func NewAppState() *AppState {
	as := &AppState{
		startTime:          time.Now(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		appCmdInfo:         make(map[string]*discordgo.ApplicationCommand),
		appCmdHandler:      make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) error),
		MetricChans:        NewMetric(),
		Clock:              clock.System{},
	}

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database
	db, err := storage.Open(as.Config.GetDatabaseURL())
	if err != nil {
		slog.Error("can't open database", "error", err)
		os.Exit(1)
	}
	as.Store = storage.New(db)

	// services
	as.Events = service.NewEventLifecycleService(as.Store, as.Clock)
	as.Ingest = service.NewEventIngestService(
		as.Store,
		as.Events,
		scraper.NewAnnouncement(as.Config.GetAnnouncementURL(), &http.Client{Timeout: time.Minute}),
		as.Clock,
	)
	as.Reminders = service.NewReminderService(as.Store, as.Clock)
	as.Guilds = service.NewGuildService(as.Store)

	// discord
	as.DgSession, err = discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		slog.Error("can't create discord session", "error", err)
		os.Exit(1)
	}
	as.DgSession.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	return as
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}

func (as *AppState) AddAppCmdInfo(id string, info *discordgo.ApplicationCommand) {
	as.appCmdInfoMu.Lock()
	defer as.appCmdInfoMu.Unlock()
	if _, ok := as.appCmdInfo[id]; ok {
		slog.Warn("app command info overwritten", "id", id)
	}
	as.appCmdInfo[id] = info
}

func (as *AppState) IterateAppCmdInfo(fn func(k string, v *discordgo.ApplicationCommand)) {
	as.appCmdInfoMu.RLock()
	defer as.appCmdInfoMu.RUnlock()
	for k, v := range as.appCmdInfo {
		fn(k, v)
	}
}

// NukeAppCmdInfo frees the command info once it's been sent to Discord.
func (as *AppState) NukeAppCmdInfo() {
	as.appCmdInfoMu.Lock()
	defer as.appCmdInfoMu.Unlock()
	as.appCmdInfo = make(map[string]*discordgo.ApplicationCommand)
}

func (as *AppState) AddAppCmdHandler(id string, handler func(s *discordgo.Session, i *discordgo.InteractionCreate) error) {
	as.appCmdHandlerMu.Lock()
	defer as.appCmdHandlerMu.Unlock()
	as.appCmdHandler[id] = handler
}

func (as *AppState) GetAppCmdHandler(id string) (func(s *discordgo.Session, i *discordgo.InteractionCreate) error, bool) {
	as.appCmdHandlerMu.RLock()
	defer as.appCmdHandlerMu.RUnlock()
	handler, ok := as.appCmdHandler[id]
	return handler, ok
}

func (as *AppState) RemoveAppCmdHandler(id string) {
	as.appCmdHandlerMu.Lock()
	defer as.appCmdHandlerMu.Unlock()
	delete(as.appCmdHandler, id)
}

// CreateGracefulShutdownChan returns a channel closed by GracefulShutdown.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownChansMu.Lock()
	defer as.gracefulShutdownChansMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownChansMu.Lock()
	defer as.gracefulShutdownChansMu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil

	if as.Store == nil {
		return
	}
	if err := as.Store.DB().Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}
