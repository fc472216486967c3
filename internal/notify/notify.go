// Package notify builds reminder descriptors for the browser
// notification layer. The descriptors carry everything the client-side
// scheduler needs; the actual 1-day and 30-minute offset alarms are
// scheduled by the embedded UI script, not here.
package notify

import (
	"ccdash/internal/model"
)

// Event is one reminder descriptor handed to the notification mechanism.
// StartTS is milliseconds since the Unix epoch.
type Event struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	StartTS int64  `json:"start_ts"`
}

// Events converts enriched rows into reminder descriptors. Rows without
// a start instant are skipped.
func Events(rows []model.Row) []Event {
	out := make([]Event, 0, len(rows))
	for _, r := range rows {
		if r.Start == nil {
			continue
		}
		start := *r.Start
		out = append(out, Event{
			ID:      start.Format("200601021504") + "-" + r.WeekLabel,
			Title:   r.WeekLabel + " — " + start.Format("Jan 02, 03:04 PM") + " IST",
			Body: "Participants: " + r.Participants +
				" • Focus: " + r.LocationFocus +
				" • Mode: " + r.ModeOfConnect,
			StartTS: start.UnixMilli(),
		})
	}
	return out
}
