package route

import (
	"fmt"
	"net/http"
	"strings"
	"zlot/src-server/model"
	"zlot/src-server/utils"

	"github.com/xyedo/rrule"
)

const icalDatetimeLayout = "20060102T150405Z"

// Sunday=0 weekday indices to RRULE BYDAY values
var icalWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	// export every stored event as an iCalendar feed; weekly series become
	// a single VEVENT with an RRULE instead of materialized occurrences
	muxer.HandleFunc("GET /ical", AuthMiddleware(as,
		func(w http.ResponseWriter, r *http.Request) {
			eventModels := make([]model.Event, 0)
			if err := as.BunDB.
				NewSelect().
				Model(&eventModels).
				Scan(r.Context()); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				return
			}

			loc := as.Config.GetLocation()
			var sb strings.Builder
			sb.WriteString("BEGIN:VCALENDAR\n")
			sb.WriteString("VERSION:2.0\n")
			sb.WriteString("PRODID:-//zlot//calendar//EN\n")

			for _, eventModel := range eventModels {
				startsAt, err := eventModel.StartsAt(loc)
				if err != nil {
					continue
				}

				sb.WriteString("BEGIN:VEVENT\n")
				sb.WriteString(fmt.Sprintf("UID:%s\n", eventModel.ID))
				sb.WriteString(fmt.Sprintf("SUMMARY:%s\n", eventModel.Title))
				if eventModel.Description != "" {
					sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\n", eventModel.Description))
				}
				if eventModel.Location != "" {
					sb.WriteString(fmt.Sprintf("LOCATION:%s\n", eventModel.Location))
				}
				sb.WriteString(fmt.Sprintf("DTSTART:%s\n", startsAt.UTC().Format(icalDatetimeLayout)))
				if endsAt, ok, err := eventModel.ToDefinition().EndsAt(loc); err == nil && ok {
					sb.WriteString(fmt.Sprintf("DTEND:%s\n", endsAt.UTC().Format(icalDatetimeLayout)))
				}
				if eventModel.IsRecurring && eventModel.Weekday != nil &&
					*eventModel.Weekday >= 0 && *eventModel.Weekday <= 6 {
					option := rrule.ROption{
						Freq:      rrule.WEEKLY,
						Byweekday: []rrule.Weekday{icalWeekdays[*eventModel.Weekday]},
					}
					sb.WriteString(fmt.Sprintf("RRULE:%s\n", option.RRuleString()))
				}
				sb.WriteString("END:VEVENT\n")
			}

			sb.WriteString("END:VCALENDAR\n")

			w.Header().Set("Content-Type", "text/calendar")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(sb.String()))
		}))
}
