package schedule

import (
	"testing"

	"ccdash/internal/model"
)

func sampleRows() []model.Row {
	return []model.Row{
		{MonthName: "March", WeekLabel: "W1", LocationFocus: "Chennai", TeamFocus: "Platform", ModeOfConnect: "In person"},
		{MonthName: "March", WeekLabel: "W2", LocationFocus: "Bengaluru", TeamFocus: "Data", ModeOfConnect: "Video"},
		{MonthName: "April", WeekLabel: "W5", LocationFocus: "Chennai", TeamFocus: "Platform", ModeOfConnect: "Video"},
	}
}

func TestFilterEmptyCriteriaReturnsAll(t *testing.T) {
	rows := sampleRows()
	got := Filter(rows, Criteria{})
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
}

func TestFilterSingleColumn(t *testing.T) {
	got := Filter(sampleRows(), Criteria{Months: []string{"March"}})
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	for _, r := range got {
		if r.MonthName != "March" {
			t.Errorf("unexpected month %q", r.MonthName)
		}
	}
}

func TestFilterConjunctive(t *testing.T) {
	got := Filter(sampleRows(), Criteria{
		Months:    []string{"March", "April"},
		Locations: []string{"Chennai"},
		Modes:     []string{"Video"},
	})
	if len(got) != 1 || got[0].WeekLabel != "W5" {
		t.Fatalf("got %+v, want only W5", got)
	}
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(sampleRows(), Criteria{Teams: []string{"Security"}})
	if len(got) != 0 {
		t.Fatalf("got %d rows, want 0", len(got))
	}
}

func TestDistinct(t *testing.T) {
	rows := append(sampleRows(), model.Row{MonthName: "March"}) // duplicate month, blanks elsewhere
	opts := Distinct(rows)

	wantMonths := []string{"April", "March"}
	if len(opts.Months) != len(wantMonths) {
		t.Fatalf("Months = %v, want %v", opts.Months, wantMonths)
	}
	for i := range wantMonths {
		if opts.Months[i] != wantMonths[i] {
			t.Fatalf("Months = %v, want %v", opts.Months, wantMonths)
		}
	}

	if len(opts.Modes) != 2 {
		t.Errorf("Modes = %v, want two distinct values", opts.Modes)
	}
	for _, v := range opts.Weeks {
		if v == "" {
			t.Error("Distinct included an empty value")
		}
	}
}
