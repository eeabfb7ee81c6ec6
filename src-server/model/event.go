package model

import (
	"context"
	"fmt"
	"time"
	"zlot/src-server/occurrence"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
)

type EventIDCtxKeyType string

const EventIDCtxKey EventIDCtxKeyType = "event-id"

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk"`         // required
	Title       string `bun:"title,notnull"` // required
	Description string `bun:"description"`
	Location    string `bun:"location"`

	Date       string `bun:"date,notnull"` // yyyy-mm-dd, required
	Time       string `bun:"time,notnull"` // HH:MM, required
	EndDate    string `bun:"end_date"`
	EndTime    string `bun:"end_time"`
	HasEndTime bool   `bun:"has_end_time"`

	CreatedBy   string `bun:"created_by,notnull"` // required
	IsRecurring bool   `bun:"is_recurring"`
	Weekday     *int   `bun:"weekday"` // 0-6, Sunday=0; set iff is_recurring

	CreatedAt        int64 `bun:"created_at,notnull"`
	UpdatedAt        int64 `bun:"updated_at"`
	NotificationSent bool  `bun:"notification_sent"`

	Participants []*Participant `bun:"rel:has-many,join:id=event_id"`
	Creator      *User          `bun:"rel:belongs-to,join:created_by=id"`
}

var _ bun.AfterDeleteHook = (*Event)(nil)

// Cleanup participant rows of deleted events
func (e *Event) AfterDelete(ctx context.Context, query *bun.DeleteQuery) error {
	if query.DB() == nil {
		return fmt.Errorf("(*Event).AfterDelete: db is nil")
	}

	switch eventID := ctx.Value(EventIDCtxKey).(type) {
	case string:
		if eventID == "" {
			return fmt.Errorf("(*Event).AfterDelete: event id is blank")
		}
		if _, err := query.DB().NewDelete().
			Model((*Participant)(nil)).
			Where("event_id = ?", eventID).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).AfterDelete: can't delete participants: %w", err)
		}
	case []string:
		if len(eventID) == 0 {
			return fmt.Errorf("(*Event).AfterDelete: event ids are empty")
		}
		if _, err := query.DB().NewDelete().
			Model((*Participant)(nil)).
			Where("event_id IN (?)", bun.In(eventID)).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).AfterDelete: can't delete participants: %w", err)
		}
	case nil:
		return fmt.Errorf("(*Event).AfterDelete: event id is nil")
	default:
		return fmt.Errorf("(*Event).AfterDelete: wrong event id type | type=%T", eventID)
	}

	return nil
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Upsert: title is blank")
	case e.CreatedBy == "":
		return fmt.Errorf("(*Event).Upsert: created by is blank")
	case e.Date == "":
		return fmt.Errorf("(*Event).Upsert: date is blank")
	case e.Time == "":
		return fmt.Errorf("(*Event).Upsert: time is blank")
	case e.IsRecurring && e.Weekday == nil:
		return fmt.Errorf("(*Event).Upsert: recurring event without weekday")
	case !e.IsRecurring && e.Weekday != nil:
		return fmt.Errorf("(*Event).Upsert: weekday set on a one-time event")
	case e.HasEndTime && e.EndTime == "":
		return fmt.Errorf("(*Event).Upsert: has_end_time set but end time is blank")
	}
	if e.Weekday != nil && (*e.Weekday < 0 || *e.Weekday > 6) {
		return fmt.Errorf("(*Event).Upsert: weekday out of range | weekday=%d", *e.Weekday)
	}
	if _, err := time.Parse(occurrence.DateLayout, e.Date); err != nil {
		return fmt.Errorf("(*Event).Upsert: invalid date: %w", err)
	}
	if _, err := time.Parse(occurrence.TimeLayout, e.Time); err != nil {
		return fmt.Errorf("(*Event).Upsert: invalid time: %w", err)
	}
	if e.EndDate != "" {
		if _, err := time.Parse(occurrence.DateLayout, e.EndDate); err != nil {
			return fmt.Errorf("(*Event).Upsert: invalid end date: %w", err)
		}
	}
	if e.EndTime != "" {
		if _, err := time.Parse(occurrence.TimeLayout, e.EndTime); err != nil {
			return fmt.Errorf("(*Event).Upsert: invalid end time: %w", err)
		}
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

// ToDefinition flattens the model (participant statuses included) into the
// read-only shape the occurrence package consumes. Relations must already be
// loaded; an event scanned without its Participants relation classifies
// everyone but the owner as other.
func (e *Event) ToDefinition() occurrence.Definition {
	participantIDs := make([]string, 0, len(e.Participants))
	for _, participant := range e.Participants {
		participantIDs = append(participantIDs, participant.UserID)
	}
	return occurrence.Definition{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		Date:           e.Date,
		Time:           e.Time,
		EndDate:        e.EndDate,
		EndTime:        e.EndTime,
		HasEndTime:     e.HasEndTime,
		CreatedBy:      e.CreatedBy,
		IsRecurring:    e.IsRecurring,
		Weekday:        e.Weekday,
		ParticipantIDs: participantIDs,
	}
}

// StartsAt is the event's start instant in loc; for a recurring event this
// is the series start, not the next occurrence.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	return occurrence.Combine(e.Date, e.Time, loc)
}

func (e *Event) ToDiscordEmbed(loc *time.Location) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Footer: &discordgo.MessageEmbedFooter{
			Text: e.ID,
		},
	}
	if startsAt, err := e.StartsAt(loc); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Starts",
			Value:  fmt.Sprintf("<t:%d:f>", startsAt.Unix()),
			Inline: true,
		})
	}
	if e.IsRecurring && e.Weekday != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Repeats",
			Value:  fmt.Sprintf("weekly on %s", time.Weekday(*e.Weekday)),
			Inline: true,
		})
	}
	if e.Location != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Location",
			Value: e.Location,
		})
	}
	return embed
}
