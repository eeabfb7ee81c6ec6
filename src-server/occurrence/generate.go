package occurrence

import (
	"time"
)

// Appended to the title of every generated occurrence so recurring entries
// are recognizable on the calendar grid.
const RecurringMarker = " (weekly)"

// One concrete calendar appearance of a definition. Ephemeral: recomputed
// from the definitions and the visible window on every change, never stored.
type Occurrence struct {
	// date-keyed: "<SourceID>@<yyyy-mm-dd>", stable across window changes
	ID string
	// the definition this occurrence came from; what a click resolves to
	SourceID string

	Title string
	Start time.Time
	End   time.Time // meaningful only when HasEnd
	HasEnd bool

	Classification Classification
	Color          string
}

// Generate expands one weekly-recurring definition into occurrences inside
// the month-expanded window: one per day whose weekday matches def.Weekday
// and whose date is on or after def.Date. The walk is bounded by the
// expanded window alone, so it terminates regardless of def.Date.
func Generate(def Definition, window Window) ([]Occurrence, error) {
	if !def.IsRecurring {
		return nil, NewInvalidDefinitionError(def.ID, map[string]any{
			"reason": "not a recurring definition",
		})
	}
	if def.Weekday == nil {
		return nil, NewInvalidDefinitionError(def.ID, map[string]any{
			"reason": "recurring definition without weekday",
		})
	}
	weekday := *def.Weekday
	if weekday < 0 || weekday > 6 {
		return nil, NewInvalidDefinitionError(def.ID, map[string]any{
			"reason":  "weekday out of range",
			"weekday": weekday,
		})
	}

	loc := window.Start.Location()
	seriesStart, err := time.ParseInLocation(DateLayout, def.Date, loc)
	if err != nil {
		return nil, NewInvalidDefinitionError(def.ID, map[string]any{
			"reason": "unparseable start date",
			"date":   def.Date,
		})
	}

	from, to := window.ExpandToMonths()

	occurrences := make([]Occurrence, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if int(day.Weekday()) != weekday || day.Before(seriesStart) {
			continue
		}

		dateStr := day.Format(DateLayout)
		start, err := Combine(dateStr, def.Time, loc)
		if err != nil {
			return nil, NewInvalidDefinitionError(def.ID, map[string]any{
				"reason": "unparseable start time",
				"time":   def.Time,
			})
		}

		occ := Occurrence{
			ID:       def.ID + "@" + dateStr,
			SourceID: def.ID,
			Title:    def.Title + RecurringMarker,
			Start:    start,
		}
		if def.HasEndTime && def.EndTime != "" {
			end, err := Combine(dateStr, def.EndTime, loc)
			if err != nil {
				return nil, NewInvalidDefinitionError(def.ID, map[string]any{
					"reason": "unparseable end time",
					"time":   def.EndTime,
				})
			}
			occ.End = end
			occ.HasEnd = true
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences, nil
}
