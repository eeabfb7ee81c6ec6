package route

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
	"zlot/src-server/model"
	"zlot/src-server/occurrence"
	"zlot/src-server/utils"
)

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	type GetOccurrencesReqBody struct {
		StartDateUnixUTC int64 `json:"startDateUnixUTC"`
		EndDateUnixUTC   int64 `json:"endDateUnixUTC"`
	}

	type OneOccurrenceRespBody struct {
		ID         string `json:"id"`
		OriginalID string `json:"originalId"`
		Title      string `json:"title"`
		Start      string `json:"start"`
		End        string `json:"end,omitempty"`
		Color      string `json:"color"`
		Type       string `json:"type"`
	}

	// one window tracker per session: the calendar surface reports its
	// visible range on every navigation, and only an actual change triggers
	// a recompute log line
	trackers := make(map[string]*occurrence.Tracker)
	var trackersMu sync.Mutex
	trackerFor := func(sessionSecret string) *occurrence.Tracker {
		trackersMu.Lock()
		defer trackersMu.Unlock()
		if tracker, ok := trackers[sessionSecret]; ok {
			return tracker
		}
		tracker := occurrence.NewTracker(func(window occurrence.Window) {
			slog.Debug("visible window changed",
				"start", window.Start.Format(occurrence.DateLayout),
				"end", window.End.Format(occurrence.DateLayout))
		})
		trackers[sessionSecret] = tracker
		return tracker
	}

	// materialize all occurrences inside the reported window for the
	// viewing user; a request without a window falls back to the last
	// reported one, or an empty list when none was ever reported
	muxer.HandleFunc("POST /calendar/get-occurrences", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			sessionModel, ok := r.Context().Value(SessionCtxKey).(*model.Session)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get session from middleware"))
				return
			}

			var reqBody GetOccurrencesReqBody
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			tracker := trackerFor(sessionModel.Secret)
			loc := as.Config.GetLocation()
			if reqBody.StartDateUnixUTC != 0 && reqBody.EndDateUnixUTC != 0 {
				tracker.SetWindow(occurrence.Window{
					Start: time.Unix(reqBody.StartDateUnixUTC, 0).In(loc),
					End:   time.Unix(reqBody.EndDateUnixUTC, 0).In(loc),
				})
			}

			// every definition is fetched; one-time events are not bounded
			// by the window at all, recurring ones are bounded during
			// generation
			eventModels := make([]model.Event, 0)
			if err := as.BunDB.
				NewSelect().
				Model(&eventModels).
				Relation("Participants").
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				return
			}
			defs := make([]occurrence.Definition, 0, len(eventModels))
			for _, eventModel := range eventModels {
				defs = append(defs, eventModel.ToDefinition())
			}

			startTimer := time.Now()
			occurrences := tracker.Occurrences(defs, sessionModel.UserID)
			select {
			case as.MetricChans.Aggregation <- float64(time.Since(startTimer).Microseconds()):
			default:
			}
			select {
			case as.MetricChans.OccurrenceCount <- float64(len(occurrences)):
			default:
			}

			respBody := make([]OneOccurrenceRespBody, 0, len(occurrences))
			for _, occ := range occurrences {
				one := OneOccurrenceRespBody{
					ID:         occ.ID,
					OriginalID: occ.SourceID,
					Title:      occ.Title,
					Start:      occ.Start.Format(time.RFC3339),
					Color:      occ.Color,
					Type:       string(occ.Classification),
				}
				if occ.HasEnd {
					one.End = occ.End.Format(time.RFC3339)
				}
				respBody = append(respBody, one)
			}
			respBodyJson, err := json.Marshal(respBody)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}

			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))
}
