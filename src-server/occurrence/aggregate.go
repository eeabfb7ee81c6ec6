package occurrence

import (
	"log/slog"
)

// Aggregate merges every definition into one flat occurrence list for the
// window: recurring definitions go through Generate, one-time definitions
// become a single occurrence with no window filtering (all one-time events
// are always included; bounding them is the caller's concern). Each
// occurrence carries the viewer-relative classification and its color.
//
// Failure policy: skip-and-log. A definition the generator rejects is logged
// and skipped so one bad record can't blank the whole calendar; the skipped
// count is returned for callers that want to surface it. No ordering is
// guaranteed beyond "one-time events appear in input order".
func Aggregate(defs []Definition, window Window, viewerID string) (occurrences []Occurrence, skipped int) {
	occurrences = make([]Occurrence, 0, len(defs))
	loc := window.Start.Location()

	for _, def := range defs {
		classification := Classify(def, viewerID)
		color := classification.Color()

		if def.IsRecurring {
			generated, err := Generate(def, window)
			if err != nil {
				slog.Warn("can't expand recurring definition, skipping", "id", def.ID, "error", err)
				skipped++
				continue
			}
			for i := range generated {
				generated[i].Classification = classification
				generated[i].Color = color
			}
			occurrences = append(occurrences, generated...)
			continue
		}

		start, err := Combine(def.Date, def.Time, loc)
		if err != nil {
			slog.Warn("can't build one-time occurrence, skipping", "id", def.ID, "error", err)
			skipped++
			continue
		}
		occ := Occurrence{
			ID:             def.ID,
			SourceID:       def.ID,
			Title:          def.Title,
			Start:          start,
			Classification: classification,
			Color:          color,
		}
		if def.HasEndTime && def.EndTime != "" {
			end, err := Combine(def.Date, def.EndTime, loc)
			if err != nil {
				slog.Warn("can't build one-time occurrence, skipping", "id", def.ID, "error", err)
				skipped++
				continue
			}
			occ.End = end
			occ.HasEnd = true
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences, skipped
}
