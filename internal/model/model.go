package model

import "time"

// Row is one recurring one-on-one session from the schedule sheet.
//
// Raw fields carry the sheet's text as loaded (already cleaned by the
// enricher); Start/End are derived instants in the fixed schedule zone.
// Optional values use pointers so that "absent" is representable: a row
// with an unparsable date simply has nil Start/End and is excluded from
// time-based views.
type Row struct {
	// MonthNumber is 1-12; derived from Start when the sheet omits it.
	MonthNumber *int `json:"month_number,omitempty"`

	MonthName string `json:"month"`
	WeekLabel string `json:"week"`

	// DayName is the abbreviated weekday (e.g. "Tue"); derived from Start
	// when the sheet omits it.
	DayName string `json:"day,omitempty"`

	// DateText is the raw Date cell, expected as YYYY-MM-DD.
	DateText string `json:"date"`

	// TimeRangeText is the raw Time cell, e.g. "15:30-16:00 IST".
	TimeRangeText string `json:"time"`

	LocationFocus string `json:"location_focus"`
	TeamFocus     string `json:"team_focus"`
	Participants  string `json:"participants"`
	Manager       string `json:"manager"`
	Notes         string `json:"notes"`
	ModeOfConnect string `json:"mode_of_connect"`

	// Start is present iff both the date and a start time parsed.
	Start *time.Time `json:"start,omitempty"`

	// End is never before Start when both are present; a missing end time
	// defaults to Start plus 30 minutes.
	End *time.Time `json:"end,omitempty"`
}

// HasInstants reports whether the row carries both derived instants and is
// therefore eligible for calendar export.
func (r Row) HasInstants() bool {
	return r.Start != nil && r.End != nil
}
