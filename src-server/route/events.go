package route

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
	"zlot/src-server/model"
	"zlot/src-server/occurrence"
	"zlot/src-server/utils"

	"github.com/google/uuid"
)

func Events(muxer *http.ServeMux, as *utils.AppState) {
	type EventReqBody struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Date        string `json:"date"` // yyyy-mm-dd
		Time        string `json:"time"` // HH:MM
		EndDate     string `json:"endDate"`
		EndTime     string `json:"endTime"`
		HasEndTime  bool   `json:"hasEndTime"`
		IsRecurring bool   `json:"isRecurring"`
		Weekday     *int   `json:"weekday"`
		// free-text alternative to date+time, e.g. "next friday 18:00"
		When string `json:"when"`
	}

	type ModifyEventReqBody struct {
		ID string `json:"id"`
		EventReqBody
	}

	type OneParticipantRespBody struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
		Status string `json:"status"`
	}

	type OneEventRespBody struct {
		ID           string                   `json:"id"`
		Title        string                   `json:"title"`
		Description  string                   `json:"description"`
		Location     string                   `json:"location"`
		Date         string                   `json:"date"`
		Time         string                   `json:"time"`
		EndDate      string                   `json:"endDate,omitempty"`
		EndTime      string                   `json:"endTime,omitempty"`
		HasEndTime   bool                     `json:"hasEndTime"`
		CreatedBy    string                   `json:"createdBy"`
		IsRecurring  bool                     `json:"isRecurring"`
		Weekday      *int                     `json:"weekday"`
		Participants []OneParticipantRespBody `json:"participants"`
	}

	fillFromWhen := func(reqBody *EventReqBody) bool {
		if reqBody.When == "" || reqBody.Date != "" {
			return true
		}
		result, err := as.When.Parse(reqBody.When, time.Now().In(as.Config.GetLocation()))
		if err != nil || result == nil {
			return false
		}
		reqBody.Date = result.Time.Format(occurrence.DateLayout)
		reqBody.Time = result.Time.Format(occurrence.TimeLayout)
		return true
	}

	// create a new event, the success response is the event ID
	muxer.HandleFunc("POST /events/create", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			var reqBody EventReqBody
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if !fillFromWhen(&reqBody) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't understand the schedule text"))
				return
			}

			newEvent := model.Event{
				ID:          uuid.NewString(),
				Title:       utils.CleanupString(reqBody.Title),
				Description: reqBody.Description,
				Location:    reqBody.Location,
				Date:        reqBody.Date,
				Time:        reqBody.Time,
				EndDate:     reqBody.EndDate,
				EndTime:     reqBody.EndTime,
				HasEndTime:  reqBody.HasEndTime,
				IsRecurring: reqBody.IsRecurring,
				Weekday:     reqBody.Weekday,
				CreatedBy:   sessionModel.UserID,
			}
			if err := newEvent.Upsert(r.Context(), as.BunDB); err != nil {
				slog.Warn("can't create event", "error", err)
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't create event"))
				return
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(newEvent.ID))
		}))

	// modify an existing event, owner only
	muxer.HandleFunc("POST /events/modify", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			var reqBody ModifyEventReqBody
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			eventModel := new(model.Event)
			if err := as.BunDB.
				NewSelect().
				Model(eventModel).
				Where("id = ?", reqBody.ID).
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			}
			if eventModel.CreatedBy != sessionModel.UserID {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Only the owner can modify an event"))
				return
			}
			if !fillFromWhen(&reqBody.EventReqBody) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't understand the schedule text"))
				return
			}

			eventModel.Title = utils.CleanupString(reqBody.Title)
			eventModel.Description = reqBody.Description
			eventModel.Location = reqBody.Location
			eventModel.Date = reqBody.Date
			eventModel.Time = reqBody.Time
			eventModel.EndDate = reqBody.EndDate
			eventModel.EndTime = reqBody.EndTime
			eventModel.HasEndTime = reqBody.HasEndTime
			eventModel.IsRecurring = reqBody.IsRecurring
			eventModel.Weekday = reqBody.Weekday

			if err := eventModel.Upsert(r.Context(), as.BunDB); err != nil {
				slog.Warn("can't modify event", "error", err)
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't modify event"))
				return
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(eventModel.ID))
		}))

	// delete an event, owner only
	muxer.HandleFunc("DELETE /events/{id}", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			id := r.PathValue("id")
			if id == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event ID"))
				return
			}

			eventModel := new(model.Event)
			if err := as.BunDB.
				NewSelect().
				Model(eventModel).
				Where("id = ?", id).
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			}
			if eventModel.CreatedBy != sessionModel.UserID {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Only the owner can delete an event"))
				return
			}

			if _, err := as.BunDB.NewDelete().
				Model((*model.Event)(nil)).
				Where("id = ?", id).
				Exec(context.WithValue(r.Context(), model.EventIDCtxKey, id)); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete event"))
				return
			}

			w.WriteHeader(http.StatusOK)
		}))

	// all events split into current and past, both ascending by start date;
	// unlike calendar coloring, this surface does expose participant status
	muxer.HandleFunc("GET /events/list", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			eventModels := make([]model.Event, 0)
			if err := as.BunDB.
				NewSelect().
				Model(&eventModels).
				Relation("Participants").
				Relation("Participants.User").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				return
			}

			modelByID := make(map[string]*model.Event, len(eventModels))
			defs := make([]occurrence.Definition, 0, len(eventModels))
			for i := range eventModels {
				modelByID[eventModels[i].ID] = &eventModels[i]
				defs = append(defs, eventModels[i].ToDefinition())
			}

			current, past := occurrence.Partition(defs, time.Now().In(as.Config.GetLocation()))

			toRespBody := func(defs []occurrence.Definition) []OneEventRespBody {
				respBody := make([]OneEventRespBody, 0, len(defs))
				for _, def := range defs {
					eventModel := modelByID[def.ID]
					participants := make([]OneParticipantRespBody, 0, len(eventModel.Participants))
					for _, participant := range eventModel.Participants {
						one := OneParticipantRespBody{
							UserID: participant.UserID,
							Status: string(participant.Status),
						}
						if participant.User != nil {
							one.Name = participant.User.Name
						}
						participants = append(participants, one)
					}
					respBody = append(respBody, OneEventRespBody{
						ID:           eventModel.ID,
						Title:        eventModel.Title,
						Description:  eventModel.Description,
						Location:     eventModel.Location,
						Date:         eventModel.Date,
						Time:         eventModel.Time,
						EndDate:      eventModel.EndDate,
						EndTime:      eventModel.EndTime,
						HasEndTime:   eventModel.HasEndTime,
						CreatedBy:    eventModel.CreatedBy,
						IsRecurring:  eventModel.IsRecurring,
						Weekday:      eventModel.Weekday,
						Participants: participants,
					})
				}
				return respBody
			}

			respBodyJson, err := json.Marshal(struct {
				Current []OneEventRespBody `json:"current"`
				Past    []OneEventRespBody `json:"past"`
			}{
				Current: toRespBody(current),
				Past:    toRespBody(past),
			})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// join an event as a pending participant
	muxer.HandleFunc("POST /events/{id}/join", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			id := r.PathValue("id")
			exists, err := as.BunDB.
				NewSelect().
				Model((*model.Event)(nil)).
				Where("id = ?", id).
				Exists(r.Context())
			switch {
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't check if event exists"))
				return
			case !exists:
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			}

			alreadyJoined, err := as.BunDB.
				NewSelect().
				Model((*model.Participant)(nil)).
				Where("event_id = ?", id).
				Where("user_id = ?", sessionModel.UserID).
				Exists(r.Context())
			switch {
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't check if already joined"))
				return
			case alreadyJoined:
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte("Already joined"))
				return
			}

			participantModel := model.Participant{
				ID:      uuid.NewString(),
				EventID: id,
				UserID:  sessionModel.UserID,
				Status:  model.PARTICIPANT_STATUS_PENDING,
			}
			if err := participantModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't join event"))
				return
			}

			w.WriteHeader(http.StatusOK)
		}))

	type RespondReqBody struct {
		Status string `json:"status"`
	}

	// accept or decline an invitation to an event already joined
	muxer.HandleFunc("POST /events/{id}/respond", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			var reqBody RespondReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			id := r.PathValue("id")
			participantModel := new(model.Participant)
			if err := as.BunDB.
				NewSelect().
				Model(participantModel).
				Where("event_id = ?", id).
				Where("user_id = ?", sessionModel.UserID).
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Not a participant of this event"))
				return
			}

			participantModel.Status = model.ParticipantStatus(reqBody.Status)
			if err := participantModel.Upsert(r.Context(), as.BunDB); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't update participation status"))
				return
			}

			w.WriteHeader(http.StatusOK)
		}))
}
