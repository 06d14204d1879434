package utils

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	port string

	discordGuildID  string
	discordAppToken string
	discordClientId string

	databaseURL     string
	announcementURL string

	dailyNotifyCron      string
	notifyWindowDays     int
	ingestInterval       time.Duration
	reminderPollInterval time.Duration
	fallbackChannelNames []string

	metricCollectionInterval time.Duration
}

func durationEnv(key, fallback string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		slog.Warn(key+" is not set", "default", fallback)
		value = fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("invalid "+key, "value", value, "error", err)
		os.Exit(1)
	}
	slog.Debug("env", key, value, "duration", duration)
	return duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			if discordGuildID == "" {
				slog.Debug("DISCORD_GUILD_ID is not set, registering global commands")
			}
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if len(discordAppToken) < 3 {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordClientId: func() string {
			discordClientId := os.Getenv("DISCORD_CLIENT_ID")
			if discordClientId == "" {
				slog.Error("DISCORD_CLIENT_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientId)
			return discordClientId
		}(),

		databaseURL: func() string {
			databaseURL := os.Getenv("DATABASE_URL")
			if databaseURL == "" {
				databaseURL = "file:./sqlite.db?mode=rwc"
				slog.Warn("DATABASE_URL is not set", "default", databaseURL)
			}
			return databaseURL
		}(),
		announcementURL: func() string {
			announcementURL := os.Getenv("ANNOUNCEMENT_URL")
			if announcementURL == "" {
				announcementURL = "https://got.cr/priconne-update"
			}
			slog.Debug("env", "ANNOUNCEMENT_URL", announcementURL)
			return announcementURL
		}(),

		dailyNotifyCron: func() string {
			dailyNotifyCron := os.Getenv("DAILY_NOTIFY_CRON")
			if dailyNotifyCron == "" {
				dailyNotifyCron = "0 14 * * *"
			}
			slog.Debug("env", "DAILY_NOTIFY_CRON", dailyNotifyCron)
			return dailyNotifyCron
		}(),
		notifyWindowDays: func() int {
			value := os.Getenv("NOTIFY_WINDOW_DAYS")
			if value == "" {
				return 2
			}
			days, err := strconv.Atoi(value)
			if err != nil || days <= 0 {
				slog.Error("invalid NOTIFY_WINDOW_DAYS", "value", value, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "NOTIFY_WINDOW_DAYS", days)
			return days
		}(),
		ingestInterval:       durationEnv("INGEST_INTERVAL", "24h"),
		reminderPollInterval: durationEnv("REMINDER_POLL_INTERVAL", "30s"),
		fallbackChannelNames: func() []string {
			value := os.Getenv("FALLBACK_CHANNEL_NAMES")
			if value == "" {
				value = "priconne-notifications,princess-connect-notifications"
			}
			names := make([]string, 0)
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
			slog.Debug("env", "FALLBACK_CHANNEL_NAMES", names)
			return names
		}(),

		metricCollectionInterval: durationEnv("METRIC_COLLECTION_INTERVAL", "15s"),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DISCORD_GUILD_ID env, empty means global commands
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientId() string {
	return c.discordClientId
}

// Get DATABASE_URL env
func (c *Config) GetDatabaseURL() string {
	return c.databaseURL
}

// Get ANNOUNCEMENT_URL env
func (c *Config) GetAnnouncementURL() string {
	return c.announcementURL
}

// Get DAILY_NOTIFY_CRON env, evaluated in UTC
func (c *Config) GetDailyNotifyCron() string {
	return c.dailyNotifyCron
}

// Get NOTIFY_WINDOW_DAYS env
func (c *Config) GetNotifyWindowDays() int {
	return c.notifyWindowDays
}

// Get INGEST_INTERVAL env
func (c *Config) GetIngestInterval() time.Duration {
	return c.ingestInterval
}

// Get REMINDER_POLL_INTERVAL env
func (c *Config) GetReminderPollInterval() time.Duration {
	return c.reminderPollInterval
}

// Get FALLBACK_CHANNEL_NAMES env
func (c *Config) GetFallbackChannelNames() []string {
	return c.fallbackChannelNames
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
