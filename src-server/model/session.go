package model

import (
	"github.com/uptrace/bun"
)

// How long a session cookie stays valid; enforced by the auth middleware.
const SESSION_MAX_AGE_DAYS = 7

type Session struct {
	bun.BaseModel `bun:"table:sessions"`

	Secret           string `bun:"secret,pk"`          // required
	UserID           string `bun:"user_id,notnull"`    // required
	CreatedAtUnixUTC int64  `bun:"created_at,notnull"` // required

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}
