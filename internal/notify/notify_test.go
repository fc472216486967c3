package notify

import (
	"strings"
	"testing"
	"time"

	"ccdash/internal/model"
	"ccdash/internal/schedule"
)

func TestEvents(t *testing.T) {
	start := time.Date(2026, 3, 10, 15, 30, 0, 0, schedule.Zone)
	rows := []model.Row{
		{
			WeekLabel:     "W11",
			Participants:  "Priya, Arjun",
			LocationFocus: "Chennai",
			ModeOfConnect: "In person",
			Start:         &start,
		},
		{WeekLabel: "no-start"},
	}

	events := Events(rows)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (row without start skipped)", len(events))
	}

	ev := events[0]
	if ev.ID != "202603101530-W11" {
		t.Errorf("ID = %q", ev.ID)
	}
	if !strings.HasPrefix(ev.Title, "W11 — ") || !strings.HasSuffix(ev.Title, " IST") {
		t.Errorf("Title = %q", ev.Title)
	}
	if !strings.Contains(ev.Body, "Priya, Arjun") || !strings.Contains(ev.Body, "Chennai") {
		t.Errorf("Body = %q", ev.Body)
	}
	if ev.StartTS != start.UnixMilli() {
		t.Errorf("StartTS = %d, want %d", ev.StartTS, start.UnixMilli())
	}
}

func TestEventsEmpty(t *testing.T) {
	if got := Events(nil); len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
