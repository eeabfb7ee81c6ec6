package occurrence

import (
	"fmt"
	"time"
)

const (
	// calendar dates are stored timezone-naive
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// A fully fetched event definition, detached from any storage concern. The
// functions in this package only ever read it.
type Definition struct {
	ID          string
	Title       string
	Description string
	Location    string

	Date       string // DateLayout
	Time       string // TimeLayout
	EndDate    string
	EndTime    string
	HasEndTime bool

	CreatedBy   string
	IsRecurring bool
	// 0-6, Sunday=0; nil unless IsRecurring
	Weekday *int

	ParticipantIDs []string
}

// Combine a naive calendar date and wall-clock time into one instant in loc.
func Combine(date string, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("Combine: can't parse date: %w", err)
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("Combine: can't parse time: %w", err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// StartsAt is the definition's own start instant (first occurrence start for
// a recurring definition).
func (d Definition) StartsAt(loc *time.Location) (time.Time, error) {
	return Combine(d.Date, d.Time, loc)
}

// EndsAt is the explicit end instant, or ok=false when the definition has no
// end date+time pair.
func (d Definition) EndsAt(loc *time.Location) (endsAt time.Time, ok bool, err error) {
	if d.EndDate == "" || d.EndTime == "" {
		return time.Time{}, false, nil
	}
	endsAt, err = Combine(d.EndDate, d.EndTime, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return endsAt, true, nil
}
