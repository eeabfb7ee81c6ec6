package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           string `bun:"id,pk,notnull,unique"`
	Name         string `bun:"name,notnull"`
	Email        string `bun:"email,notnull,unique"`
	PasswordHash string `bun:"password_hash,notnull"`
	AvatarURL    string `bun:"avatar_url"`
}

func (u *User) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case u.ID == "":
		return fmt.Errorf("(*User).Upsert: user id is blank")
	case u.Email == "":
		return fmt.Errorf("(*User).Upsert: email is blank")
	case u.PasswordHash == "":
		return fmt.Errorf("(*User).Upsert: password hash is blank")
	}

	if _, err := db.
		NewInsert().
		Model(u).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("password_hash = EXCLUDED.password_hash").
		Set("avatar_url = EXCLUDED.avatar_url").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*User).Upsert: %w", err)
	}

	return nil
}
