package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port string

	secret string

	location *time.Location

	discordAppToken  string
	discordChannelID string

	metricCollectionInterval time.Duration

	staticWebClientDir string
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

		secret: func() string {
			secret := os.Getenv("SECRET")
			if secret == "" {
				slog.Warn("SECRET is not set")
				secret = "secret"
			}
			return secret
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Info("DISCORD_APP_TOKEN is not set, event reminders disabled")
				return ""
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordChannelID: func() string {
			discordChannelID := os.Getenv("DISCORD_CHANNEL_ID")
			if discordChannelID == "" {
				slog.Info("DISCORD_CHANNEL_ID is not set, event reminders disabled")
				return ""
			}
			slog.Debug("env", "DISCORD_CHANNEL_ID", discordChannelID)
			return discordChannelID
		}(),

		metricCollectionInterval: func() time.Duration {
			metricCollectionInterval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if metricCollectionInterval == "" {
				metricCollectionInterval = "15s"
			}
			duration, err := time.ParseDuration(metricCollectionInterval)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),

		staticWebClientDir: func() string {
			staticWebClientDir := os.Getenv("STATIC_WEB_CLIENT_DIR")
			if staticWebClientDir == "" {
				slog.Info("STATIC_WEB_CLIENT_DIR is not set, not serving a web client")
				return ""
			}
			info, err := os.Stat(staticWebClientDir)
			if err != nil {
				slog.Error("can't get info of STATIC_WEB_CLIENT_DIR", "error", err)
				os.Exit(1)
			}
			if !info.IsDir() {
				slog.Error("STATIC_WEB_CLIENT_DIR is not a directory")
				os.Exit(1)
			}
			slog.Debug("env", "STATIC_WEB_CLIENT_DIR", staticWebClientDir)
			return filepath.Clean(staticWebClientDir)
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get SECRET env; signs password hashes
func (c *Config) GetSecret() string {
	return c.secret
}

// Get TIMEZONE env; the location all naive dates and times are read in
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DISCORD_APP_TOKEN env, blank when reminders are disabled
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CHANNEL_ID env, blank when reminders are disabled
func (c *Config) GetDiscordChannelID() string {
	return c.discordChannelID
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get STATIC_WEB_CLIENT_DIR env, blank when no web client is served
func (c *Config) GetStaticWebClientDir() string {
	return c.staticWebClientDir
}
