package scheduler

import (
	"context"
	"log/slog"
	"time"
	"zlot/src-server/model"
	"zlot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// EventNotify posts a reminder to the configured Discord channel for every
// one-time event starting within the next 15 minutes. Recurring series are
// skipped: notification_sent is a one-shot flag and would silence every later
// week of the series.
func EventNotify(as *utils.AppState) {
	if as.DgSession == nil || as.Config.GetDiscordChannelID() == "" {
		slog.Info("event reminders disabled")
		return
	}
	channelID := as.Config.GetDiscordChannelID()
	loc := as.Config.GetLocation()

	for {
		time.Sleep(time.Second * 30)

		eventModels := make([]model.Event, 0)
		if err := as.BunDB.
			NewSelect().
			Model(&eventModels).
			Where("is_recurring = ?", false).
			Where("notification_sent = ?", false).
			Scan(context.Background()); err != nil {
			slog.Error("can't get events", "error", err)
			continue
		}

		// dates are stored as naive strings, so the window check happens
		// here rather than in SQL
		now := time.Now().In(loc)
		dueEventModels := make([]model.Event, 0)
		for _, eventModel := range eventModels {
			startsAt, err := eventModel.StartsAt(loc)
			if err != nil {
				slog.Warn("can't compute event start", "id", eventModel.ID, "error", err)
				continue
			}
			if startsAt.After(now) && startsAt.Before(now.Add(15*time.Minute)) {
				dueEventModels = append(dueEventModels, eventModel)
			}
		}
		if len(dueEventModels) == 0 {
			continue
		}

		if _, err := as.DgSession.ChannelMessageSendEmbeds(
			channelID,
			func() []*discordgo.MessageEmbed {
				embeds := make([]*discordgo.MessageEmbed, len(dueEventModels))
				for i, eventModel := range dueEventModels {
					embeds[i] = eventModel.ToDiscordEmbed(loc)
				}
				return embeds
			}(),
		); err != nil {
			slog.Error("EventNotify: can't send message", "error", err)
			continue
		}

		if _, err := as.BunDB.NewUpdate().
			With("_data", as.BunDB.NewValues(&dueEventModels)).
			Model((*model.Event)(nil)).
			TableExpr("_data").
			Set("notification_sent = ?", true).
			Where("event.id = _data.id").
			Exec(context.Background()); err != nil {
			slog.Error("EventNotify: can't update notification_sent field", "error", err)
			continue
		}
	}
}
