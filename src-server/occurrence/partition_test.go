package occurrence_test

import (
	"testing"
	"time"
	"zlot/src-server/occurrence"
)

func TestPartitionOpenRecurringSeriesNeverExpires(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	started := now.AddDate(0, 0, -400).Format(occurrence.DateLayout)

	defs := []occurrence.Definition{
		{
			ID: "weekly-old", Title: "Chess night",
			Date: started, Time: "19:00",
			IsRecurring: true, Weekday: intPtr(2),
		},
	}

	current, past := occurrence.Partition(defs, now)
	if len(past) != 0 {
		t.Errorf("open-ended recurring series landed in past: %+v", past)
	}
	if len(current) != 1 || current[0].ID != "weekly-old" {
		t.Errorf("expected the series in current, got %+v", current)
	}
}

func TestPartitionExplicitEndWins(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	defs := []occurrence.Definition{
		{
			// recurring but with an explicit end already behind us: past
			ID: "weekly-closed", Date: "2024-01-02", Time: "19:00",
			EndDate: "2024-05-01", EndTime: "21:00",
			IsRecurring: true, Weekday: intPtr(2),
		},
		{
			// explicit end still ahead: current even though it started
			ID: "running", Date: "2024-06-01", Time: "08:00",
			EndDate: "2024-06-01", EndTime: "18:00",
		},
	}

	current, past := occurrence.Partition(defs, now)
	if len(past) != 1 || past[0].ID != "weekly-closed" {
		t.Errorf("past = %+v, want only weekly-closed", past)
	}
	if len(current) != 1 || current[0].ID != "running" {
		t.Errorf("current = %+v, want only running", current)
	}
}

func TestPartitionOneTimeByStartInstant(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	defs := []occurrence.Definition{
		{ID: "earlier-today", Date: "2024-06-01", Time: "09:00"},
		{ID: "later-today", Date: "2024-06-01", Time: "15:00"},
		{ID: "exactly-now", Date: "2024-06-01", Time: "12:00"},
	}

	current, past := occurrence.Partition(defs, now)
	if len(past) != 1 || past[0].ID != "earlier-today" {
		t.Errorf("past = %+v, want only earlier-today", past)
	}
	// strictly-before comparison: an event starting exactly now is current
	if len(current) != 2 {
		t.Fatalf("current = %+v, want later-today and exactly-now", current)
	}
}

func TestPartitionSortsAscendingByStartDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	defs := []occurrence.Definition{
		{ID: "c", Date: "2024-08-01", Time: "10:00"},
		{ID: "a", Date: "2024-06-10", Time: "10:00"},
		{ID: "b", Date: "2024-07-01", Time: "10:00"},
		{ID: "z", Date: "2024-03-01", Time: "10:00"},
		{ID: "y", Date: "2024-01-01", Time: "10:00"},
	}

	current, past := occurrence.Partition(defs, now)

	wantCurrent := []string{"a", "b", "c"}
	if len(current) != len(wantCurrent) {
		t.Fatalf("current length = %d, want %d", len(current), len(wantCurrent))
	}
	for i, id := range wantCurrent {
		if current[i].ID != id {
			t.Errorf("current[%d] = %q, want %q", i, current[i].ID, id)
		}
	}

	wantPast := []string{"y", "z"}
	if len(past) != len(wantPast) {
		t.Fatalf("past length = %d, want %d", len(past), len(wantPast))
	}
	for i, id := range wantPast {
		if past[i].ID != id {
			t.Errorf("past[%d] = %q, want %q", i, past[i].ID, id)
		}
	}
}
