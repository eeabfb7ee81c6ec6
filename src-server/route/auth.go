package route

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"zlot/src-server/model"
	"zlot/src-server/utils"

	"github.com/google/uuid"
)

func Auth(muxer *http.ServeMux, as *utils.AppState) {
	// logout
	muxer.HandleFunc("DELETE /auth", func(w http.ResponseWriter, r *http.Request) {
		if sessionCookie, err := r.Cookie(SessionSecretCookieName); err == nil {
			if _, err := as.BunDB.
				NewDelete().
				Model((*model.Session)(nil)).
				Where("secret = ?", sessionCookie.Value).
				Exec(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete session model in DB"))
				return
			}
		}
		w.Header().Set("Set-Cookie", SessionSecretCookieName+"=; Path=/; HttpOnly; SameSite=Lax")
		w.WriteHeader(http.StatusOK)
	})

	type RegisterReqBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// register a new account
	muxer.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var reqBody RegisterReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}
		if reqBody.Email == "" || reqBody.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Please provide an email and password"))
			return
		}

		exists, err := as.BunDB.
			NewSelect().
			Model((*model.User)(nil)).
			Where("email = ?", reqBody.Email).
			Exists(r.Context())
		switch {
		case err != nil:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't check if email is taken"))
			return
		case exists:
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte("Email already registered"))
			return
		}

		userModel := model.User{
			ID:           uuid.NewString(),
			Name:         utils.CleanupString(reqBody.Name),
			Email:        reqBody.Email,
			PasswordHash: utils.HashPassword(reqBody.Password, as.Config.GetSecret()),
		}
		if err := userModel.Upsert(r.Context(), as.BunDB); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't create user"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(userModel.ID))
	})

	type LoginReqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// login, the success response carries the session cookie
	muxer.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		var reqBody LoginReqBody
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid request body"))
			return
		}

		userModel := new(model.User)
		if err := as.BunDB.
			NewSelect().
			Model(userModel).
			Where("email = ?", reqBody.Email).
			Scan(r.Context()); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Invalid email or password"))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't get user from DB"))
			return
		}
		if !utils.VerifyPassword(reqBody.Password, userModel.PasswordHash, as.Config.GetSecret()) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid email or password"))
			return
		}

		newSessionSecret := uuid.NewString()
		if _, err := as.BunDB.
			NewInsert().
			Model(&model.Session{
				Secret:           newSessionSecret,
				UserID:           userModel.ID,
				CreatedAtUnixUTC: time.Now().UTC().Unix(),
			}).
			Exec(r.Context()); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't insert session model to DB"))
			return
		}

		w.Header().Set("Set-Cookie", SessionSecretCookieName+"="+newSessionSecret+"; Path=/; HttpOnly; SameSite=Lax")
		w.WriteHeader(http.StatusOK)
	})
}
