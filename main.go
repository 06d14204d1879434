package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"neneka/src-server/handler"
	"neneka/src-server/handler/event_handler"
	"neneka/src-server/handler/reminder_handler"
	"neneka/src-server/handler/setup_handler"
	"neneka/src-server/metric"
	"neneka/src-server/model"
	"neneka/src-server/notifier"
	"neneka/src-server/scheduler"
	"neneka/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	// There are 2 important things (and others) inside the AppState:
	// - appCmdInfo: a map of all slash commands
	// - appCmdHandler: a map of all slash command handlers
	as := utils.NewAppState()

	if err := model.CreateSchema(context.Background(), as.Store.DB()); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	// injecting interaction handlers into appCmdInfo, appCmdHandler in AppState
	event_handler.Init(as)
	reminder_handler.Init(as)
	setup_handler.Init(as)
	handler.Help(as)
	handler.Ping(as)
	handler.GuildJoin(as)

	// tell discordgo how to handle interactions from Discord (w/ appCmdHandler)
	as.DgSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			slog.Debug("unhandled interaction type", "type", i.Type)
			return
		}
		id := i.ApplicationCommandData().Name
		handler, ok := as.GetAppCmdHandler(id)
		if !ok {
			utils.InteractRespHiddenReply(s, i, "Unknown command")
			return
		}
		if err := handler(s, i); err != nil {
			slog.Error("handler error", "command", id, "error", err.Error())
		}
	})

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		slog.Error("can't open discord connection", "error", err)
		os.Exit(1)
	}
	defer as.DgSession.Close()

	// tell Discord what commands we have (w/ appCmdInfo)
	if _, err := as.DgSession.ApplicationCommandBulkOverwrite(
		as.Config.GetDiscordClientId(),
		as.Config.GetDiscordGuildID(),
		func() []*discordgo.ApplicationCommand {
			var cmds []*discordgo.ApplicationCommand
			as.IterateAppCmdInfo(func(k string, v *discordgo.ApplicationCommand) {
				cmds = append(cmds, v)
			})
			return cmds
		}()); err != nil {
		slog.Error("can't create slash commands", "error", err.Error())
	}

	// cleanup appCmdInfo from memory
	as.NukeAppCmdInfo()
	runtime.GC()

	metric.Init(as)

	// schedulers
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, task := range tasks(as) {
		as.AddTask(task)
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.Run(ctx)
		}()
	}

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("number of guilds", "guilds", len(as.DgSession.State.Guilds))
	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan

	slog.Info("Gracefully shutting down...")
	cancel()
	wg.Wait()
	as.GracefulShutdown()
}

func tasks(as *utils.AppState) []*scheduler.Task {
	discord := notifier.NewDiscord(as.DgSession, as.Guilds)
	discord.OnDeliver = as.MetricChans.ReportDiscordSend

	daily, err := scheduler.NewDailySchedule(as.Config.GetDailyNotifyCron())
	if err != nil {
		slog.Error("invalid DAILY_NOTIFY_CRON", "error", err)
		os.Exit(1)
	}

	return []*scheduler.Task{
		{
			Name:       "ingest",
			Schedule:   cron.Every(as.Config.GetIngestInterval()),
			Clock:      as.Clock,
			Job:        scheduler.IngestJob(as.Ingest),
			RunOnStart: true,
		},
		{
			Name:     "daily-notify",
			Schedule: daily,
			Clock:    as.Clock,
			Job: scheduler.NewDailyNotify(
				as.Events,
				discord,
				as.Config.GetNotifyWindowDays(),
				as.Config.GetFallbackChannelNames(),
			).Job,
		},
		{
			Name:     "reminder-notify",
			Schedule: cron.Every(as.Config.GetReminderPollInterval()),
			Clock:    as.Clock,
			Job:      scheduler.NewReminderNotify(as.Reminders, discord).Job,
		},
	}
}
