package occurrence

import "time"

// The date range currently rendered by the calendar view. Start/End come
// straight from the calendar widget; generation expands them to whole-month
// boundaries so partial leading/trailing weeks of adjacent months still get
// their occurrences.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Value comparison, not reference comparison.
func (w Window) Equal(other Window) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// ExpandToMonths widens the window to the first day of Start's month through
// the last day of End's month, both inclusive.
func (w Window) ExpandToMonths() (from time.Time, to time.Time) {
	from = time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	// day 0 of the next month is the last day of End's month
	to = time.Date(w.End.Year(), w.End.Month()+1, 0, 0, 0, 0, 0, w.End.Location())
	return from, to
}

// Tracker holds the window last reported by the calendar surface and invokes
// onChange whenever a different window comes in. Single assignment point,
// last-write-wins; the recomputation it triggers is synchronous, so no
// cancellation protocol is needed.
type Tracker struct {
	window   Window
	set      bool
	onChange func(Window)
}

func NewTracker(onChange func(Window)) *Tracker {
	return &Tracker{onChange: onChange}
}

func (t *Tracker) SetWindow(window Window) {
	if t.set && t.window.Equal(window) {
		return
	}
	t.window = window
	t.set = true
	if t.onChange != nil {
		t.onChange(window)
	}
}

func (t *Tracker) Current() (Window, error) {
	if !t.set {
		return Window{}, ErrWindowUnset
	}
	return t.window, nil
}

// Occurrences aggregates defs against the tracked window. Before any window
// has been set it returns an empty list rather than failing.
func (t *Tracker) Occurrences(defs []Definition, viewerID string) []Occurrence {
	if !t.set {
		return []Occurrence{}
	}
	occurrences, _ := Aggregate(defs, t.window, viewerID)
	return occurrences
}
