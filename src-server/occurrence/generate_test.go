package occurrence_test

import (
	"errors"
	"testing"
	"time"
	"zlot/src-server/occurrence"
)

func intPtr(i int) *int { return &i }

func window(start, end string) occurrence.Window {
	startDate, err := time.ParseInLocation(occurrence.DateLayout, start, time.UTC)
	if err != nil {
		panic(err)
	}
	endDate, err := time.ParseInLocation(occurrence.DateLayout, end, time.UTC)
	if err != nil {
		panic(err)
	}
	return occurrence.Window{Start: startDate, End: endDate}
}

func TestGenerateMondaysInFebruary(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-1",
		Title:       "Board games",
		Date:        "2024-01-01", // a Monday
		Time:        "18:00",
		IsRecurring: true,
		Weekday:     intPtr(1),
	}

	got, err := occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}

	wantDates := []string{"2024-02-05", "2024-02-12", "2024-02-19", "2024-02-26"}
	if len(got) != len(wantDates) {
		t.Fatalf("expected %d occurrences, got %d", len(wantDates), len(got))
	}
	for i, occ := range got {
		if occ.ID != "ev-1@"+wantDates[i] {
			t.Errorf("occurrence %d: id = %q, want %q", i, occ.ID, "ev-1@"+wantDates[i])
		}
		if occ.SourceID != "ev-1" {
			t.Errorf("occurrence %d: source id = %q", i, occ.SourceID)
		}
		wantStart, _ := occurrence.Combine(wantDates[i], "18:00", time.UTC)
		if !occ.Start.Equal(wantStart) {
			t.Errorf("occurrence %d: start = %v, want %v", i, occ.Start, wantStart)
		}
		if occ.HasEnd {
			t.Errorf("occurrence %d: has end instant but definition has no end time", i)
		}
		if occ.Title != "Board games"+occurrence.RecurringMarker {
			t.Errorf("occurrence %d: title = %q", i, occ.Title)
		}
	}
}

func TestGenerateWindowBeforeSeriesStart(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-2",
		Title:       "Hiking",
		Date:        "2024-03-15",
		Time:        "10:00",
		IsRecurring: true,
		Weekday:     intPtr(3),
	}

	got, err := occurrence.Generate(def, window("2024-01-01", "2024-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no occurrences before series start, got %d", len(got))
	}
}

func TestGenerateExpandsWindowToWholeMonths(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-3",
		Title:       "Standup",
		Date:        "2024-01-01",
		Time:        "09:00",
		IsRecurring: true,
		Weekday:     intPtr(1),
	}

	// a narrow mid-month window still yields every February Monday
	got, err := occurrence.Generate(def, window("2024-02-10", "2024-02-20"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Errorf("expected 4 occurrences in month-expanded window, got %d", len(got))
	}

	// a calendar-grid window leaking into adjacent months expands to all
	// three months: Mondays of Jan (5) + Feb (4) + Mar (4) 2024
	got, err = occurrence.Generate(def, window("2024-01-29", "2024-03-03"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 13 {
		t.Errorf("expected 13 occurrences across expanded Jan-Mar, got %d", len(got))
	}
}

func TestGenerateStartDateFloorMidMonth(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-4",
		Title:       "Book club",
		Date:        "2024-02-13", // a Tuesday
		Time:        "19:30",
		IsRecurring: true,
		Weekday:     intPtr(2),
	}

	got, err := occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	// Feb 6 falls before the series start and must be excluded
	wantDates := []string{"2024-02-13", "2024-02-20", "2024-02-27"}
	if len(got) != len(wantDates) {
		t.Fatalf("expected %d occurrences, got %d", len(wantDates), len(got))
	}
	for i, occ := range got {
		if occ.ID != "ev-4@"+wantDates[i] {
			t.Errorf("occurrence %d: id = %q, want %q", i, occ.ID, "ev-4@"+wantDates[i])
		}
	}
}

func TestGenerateEndTimeGate(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-5",
		Title:       "Yoga",
		Date:        "2024-01-01",
		Time:        "08:00",
		EndTime:     "09:00",
		HasEndTime:  true,
		IsRecurring: true,
		Weekday:     intPtr(1),
	}

	got, err := occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	for i, occ := range got {
		if !occ.HasEnd {
			t.Fatalf("occurrence %d: missing end instant", i)
		}
		wantEnd, _ := occurrence.Combine(occ.Start.Format(occurrence.DateLayout), "09:00", time.UTC)
		if !occ.End.Equal(wantEnd) {
			t.Errorf("occurrence %d: end = %v, want %v", i, occ.End, wantEnd)
		}
	}

	// hasEndTime false means endTime is not meaningful even when present
	def.HasEndTime = false
	got, err = occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	for i, occ := range got {
		if occ.HasEnd {
			t.Errorf("occurrence %d: end instant emitted despite hasEndTime=false", i)
		}
	}
}

func TestGenerateInvalidDefinitions(t *testing.T) {
	for _, tc := range []struct {
		name string
		def  occurrence.Definition
	}{
		{
			name: "weekday out of range",
			def: occurrence.Definition{
				ID: "bad-1", Date: "2024-01-01", Time: "18:00",
				IsRecurring: true, Weekday: intPtr(7),
			},
		},
		{
			name: "negative weekday",
			def: occurrence.Definition{
				ID: "bad-2", Date: "2024-01-01", Time: "18:00",
				IsRecurring: true, Weekday: intPtr(-1),
			},
		},
		{
			name: "recurring without weekday",
			def: occurrence.Definition{
				ID: "bad-3", Date: "2024-01-01", Time: "18:00",
				IsRecurring: true,
			},
		},
		{
			name: "not recurring",
			def: occurrence.Definition{
				ID: "bad-4", Date: "2024-01-01", Time: "18:00",
				Weekday: intPtr(1),
			},
		},
		{
			name: "unparseable start date",
			def: occurrence.Definition{
				ID: "bad-5", Date: "01/02/2024", Time: "18:00",
				IsRecurring: true, Weekday: intPtr(1),
			},
		},
	} {
		_, err := occurrence.Generate(tc.def, window("2024-02-01", "2024-02-29"))
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
			continue
		}
		var invalidErr *occurrence.InvalidDefinitionError
		if !errors.As(err, &invalidErr) {
			t.Errorf("%s: expected InvalidDefinitionError, got %T", tc.name, err)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	def := occurrence.Definition{
		ID:          "ev-6",
		Title:       "Run club",
		Date:        "2023-11-04",
		Time:        "07:00",
		IsRecurring: true,
		Weekday:     intPtr(6),
	}

	first, err := occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := occurrence.Generate(def, window("2024-02-01", "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID ||
			!first[i].Start.Equal(second[i].Start) ||
			first[i].HasEnd != second[i].HasEnd {
			t.Errorf("occurrence %d differs between identical calls", i)
		}
	}
}
