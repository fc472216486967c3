package schedule

import (
	"testing"
	"time"

	"ccdash/internal/model"
)

func TestEnrichFullRange(t *testing.T) {
	rows := Enrich([]model.Row{{
		WeekLabel:     "W11",
		DateText:      "2026-03-10",
		TimeRangeText: "15:30-16:00 IST",
	}})

	r := rows[0]
	wantStart := time.Date(2026, 3, 10, 15, 30, 0, 0, Zone)
	wantEnd := time.Date(2026, 3, 10, 16, 0, 0, 0, Zone)

	if r.Start == nil || !r.Start.Equal(wantStart) {
		t.Fatalf("Start = %v, want %v", r.Start, wantStart)
	}
	if r.End == nil || !r.End.Equal(wantEnd) {
		t.Fatalf("End = %v, want %v", r.End, wantEnd)
	}
}

func TestEnrichDefaultsEndToThirtyMinutes(t *testing.T) {
	rows := Enrich([]model.Row{{
		DateText:      "2026-03-10",
		TimeRangeText: "15:30 IST",
	}})

	r := rows[0]
	if r.Start == nil || r.End == nil {
		t.Fatalf("expected both instants, got start=%v end=%v", r.Start, r.End)
	}
	if got, want := r.End.Sub(*r.Start), 30*time.Minute; got != want {
		t.Errorf("default duration = %v, want %v", got, want)
	}
}

func TestEnrichUnparsableDate(t *testing.T) {
	rows := Enrich([]model.Row{{
		DateText:      "March 10th",
		TimeRangeText: "15:30-16:00",
	}})

	r := rows[0]
	if r.Start != nil || r.End != nil {
		t.Errorf("expected absent instants for bad date, got start=%v end=%v", r.Start, r.End)
	}
	if r.MonthNumber != nil {
		t.Errorf("expected absent month number, got %d", *r.MonthNumber)
	}
	if r.DayName != "" {
		t.Errorf("expected absent day name, got %q", r.DayName)
	}
}

func TestEnrichUnparsableTime(t *testing.T) {
	rows := Enrich([]model.Row{{
		DateText:      "2026-03-10",
		TimeRangeText: "afternoon",
	}})

	if r := rows[0]; r.Start != nil || r.End != nil {
		t.Errorf("expected absent instants for bad time, got start=%v end=%v", r.Start, r.End)
	}
}

func TestEnrichDerivesMonthAndDay(t *testing.T) {
	rows := Enrich([]model.Row{{
		DateText:      "2026-03-10", // a Tuesday
		TimeRangeText: "15:30",
	}})

	r := rows[0]
	if r.MonthNumber == nil || *r.MonthNumber != 3 {
		t.Errorf("MonthNumber = %v, want 3", r.MonthNumber)
	}
	if r.DayName != "Tue" {
		t.Errorf("DayName = %q, want Tue", r.DayName)
	}
}

func TestEnrichKeepsSuppliedMonthAndDay(t *testing.T) {
	seven := 7
	rows := Enrich([]model.Row{{
		MonthNumber:   &seven,
		DayName:       "Wed",
		DateText:      "2026-03-10",
		TimeRangeText: "15:30",
	}})

	r := rows[0]
	if r.MonthNumber == nil || *r.MonthNumber != 7 {
		t.Errorf("MonthNumber = %v, want supplied 7", r.MonthNumber)
	}
	if r.DayName != "Wed" {
		t.Errorf("DayName = %q, want supplied Wed", r.DayName)
	}
}

func TestEnrichCleansTextFields(t *testing.T) {
	rows := Enrich([]model.Row{{
		Participants: "Priya_x000D_Raman,  Arjun ",
		Notes:        "bring\x1fagenda",
	}})

	r := rows[0]
	if r.Participants != "Priya Raman, Arjun" {
		t.Errorf("Participants = %q", r.Participants)
	}
	if r.Notes != "bring agenda" {
		t.Errorf("Notes = %q", r.Notes)
	}
}

func TestEnrichSortsByStartThenWeek(t *testing.T) {
	rows := Enrich([]model.Row{
		{WeekLabel: "W2", DateText: "2026-03-17", TimeRangeText: "10:00"},
		{WeekLabel: "W9", DateText: "not-a-date", TimeRangeText: "10:00"},
		{WeekLabel: "W1", DateText: "2026-03-10", TimeRangeText: "10:00"},
		{WeekLabel: "W0", DateText: "2026-03-10", TimeRangeText: "10:00"},
	})

	var weeks []string
	for _, r := range rows {
		weeks = append(weeks, r.WeekLabel)
	}

	// Absent start sorts first, then by start instant, ties by week label.
	want := []string{"W9", "W0", "W1", "W2"}
	for i := range want {
		if weeks[i] != want[i] {
			t.Fatalf("sort order = %v, want %v", weeks, want)
		}
	}
}

func TestEnrichEndNeverBeforeStart(t *testing.T) {
	rows := Enrich([]model.Row{
		{DateText: "2026-03-10", TimeRangeText: "15:30-16:00"},
		{DateText: "2026-03-10", TimeRangeText: "15:30"},
		{DateText: "2026-03-10", TimeRangeText: "15:30-junk"},
		{DateText: "2026-03-10", TimeRangeText: "16:00-15:30 IST"},
	})

	for i, r := range rows {
		if r.Start == nil {
			continue
		}
		if r.End == nil || r.End.Before(*r.Start) {
			t.Errorf("row %d: End %v before Start %v", i, r.End, r.Start)
		}
	}
}

func TestEnrichDiscardsEndBeforeStart(t *testing.T) {
	rows := Enrich([]model.Row{{
		DateText:      "2026-03-10",
		TimeRangeText: "16:00-15:30 IST",
	}})

	r := rows[0]
	wantStart := time.Date(2026, 3, 10, 16, 0, 0, 0, Zone)
	if r.Start == nil || !r.Start.Equal(wantStart) {
		t.Fatalf("Start = %v, want %v", r.Start, wantStart)
	}
	// The inverted end time is dropped and the 30-minute default applies.
	if r.End == nil || !r.End.Equal(wantStart.Add(30*time.Minute)) {
		t.Errorf("End = %v, want %v", r.End, wantStart.Add(30*time.Minute))
	}
}

func TestEnrichIdempotent(t *testing.T) {
	input := []model.Row{
		{WeekLabel: "W1", DateText: "2026-03-10", TimeRangeText: "15:30-16:00 IST"},
		{WeekLabel: "W2", DateText: "2026-04-02", TimeRangeText: "09:00"},
		{WeekLabel: "W3", DateText: "junk", TimeRangeText: "junk"},
	}

	first := Enrich(input)
	second := Enrich(first)

	if len(first) != len(second) {
		t.Fatalf("row count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !instantEqual(first[i].Start, second[i].Start) {
			t.Errorf("row %d: Start changed on re-run: %v vs %v", i, first[i].Start, second[i].Start)
		}
		if !instantEqual(first[i].End, second[i].End) {
			t.Errorf("row %d: End changed on re-run: %v vs %v", i, first[i].End, second[i].End)
		}
	}
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	input := []model.Row{{DateText: "2026-03-10", TimeRangeText: "15:30"}}
	_ = Enrich(input)
	if input[0].Start != nil {
		t.Error("input slice was mutated")
	}
}

func instantEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
