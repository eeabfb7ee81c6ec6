package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type ParticipantStatus string

const (
	PARTICIPANT_STATUS_ACCEPTED = ParticipantStatus("accepted")
	PARTICIPANT_STATUS_PENDING  = ParticipantStatus("pending")
	PARTICIPANT_STATUS_DECLINED = ParticipantStatus("declined")
)

type Participant struct {
	bun.BaseModel `bun:"table:event_participants"`

	ID      string            `bun:"id,pk"`                       // required
	EventID string            `bun:"event_id,notnull"`            // required
	UserID  string            `bun:"user_id,notnull"`             // required
	Status  ParticipantStatus `bun:"status,notnull,type:varchar"` // required

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
	User  *User  `bun:"rel:belongs-to,join:user_id=id"`
}

func (p *Participant) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("(*Participant).Upsert: id is blank")
	case p.EventID == "":
		return fmt.Errorf("(*Participant).Upsert: event id is blank")
	case p.UserID == "":
		return fmt.Errorf("(*Participant).Upsert: user id is blank")
	}
	switch p.Status {
	case PARTICIPANT_STATUS_ACCEPTED, PARTICIPANT_STATUS_PENDING, PARTICIPANT_STATUS_DECLINED:
	default:
		return fmt.Errorf("(*Participant).Upsert: unknown status | status=%s", p.Status)
	}

	if _, err := db.NewInsert().
		Model(p).
		On("CONFLICT (id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Participant).Upsert: %w", err)
	}

	return nil
}
