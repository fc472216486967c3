package schedule

import (
	"sort"
	"strings"
	"time"

	"ccdash/internal/model"
)

// Zone is the fixed schedule timezone: UTC+05:30 with no daylight-saving
// rules. All derived instants are constructed in this zone; exports
// convert to UTC at encode time.
var Zone = time.FixedZone("IST", 5*3600+30*60)

const (
	dateLayout = "2006-01-02"

	// defaultDuration is applied when a row has a start time but no end
	// time, which also guarantees End >= Start for such rows.
	defaultDuration = 30 * time.Minute
)

// Enrich cleans every text field, derives Start/End instants from the
// Date and Time cells, reconstructs missing month numbers and day names,
// and returns the table stable-sorted by (Start, WeekLabel).
//
// Malformed cells never fail the table: a row whose date or start time
// does not parse simply carries nil instants and drops out of the
// time-based views. The function is pure; the input slice is not
// modified.
func Enrich(rows []model.Row) []model.Row {
	out := make([]model.Row, len(rows))
	for i, r := range rows {
		out[i] = enrichRow(r)
	}
	sortRows(out)
	return out
}

func enrichRow(r model.Row) model.Row {
	r.MonthName = CleanText(r.MonthName)
	r.WeekLabel = CleanText(r.WeekLabel)
	r.DayName = CleanText(r.DayName)
	r.DateText = CleanText(r.DateText)
	r.TimeRangeText = CleanText(r.TimeRangeText)
	r.LocationFocus = CleanText(r.LocationFocus)
	r.TeamFocus = CleanText(r.TeamFocus)
	r.Participants = CleanText(r.Participants)
	r.Manager = CleanText(r.Manager)
	r.Notes = CleanText(r.Notes)
	r.ModeOfConnect = CleanText(r.ModeOfConnect)

	var day *time.Time
	if t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(r.DateText), Zone); err == nil {
		day = &t
	}

	startClock, endClock := ParseTimeRange(r.TimeRangeText)

	// Derived fields are always recomputed from the raw cells so that
	// re-running the enricher is idempotent.
	r.Start = nil
	r.End = nil

	if day != nil && startClock != nil {
		s := combine(*day, *startClock)
		r.Start = &s
	}
	if day != nil && endClock != nil {
		e := combine(*day, *endClock)
		// An end instant before the start would break the End >= Start
		// invariant; treat it like a missing end time instead.
		if r.Start == nil || !e.Before(*r.Start) {
			r.End = &e
		}
	}
	if r.End == nil && r.Start != nil {
		e := r.Start.Add(defaultDuration)
		r.End = &e
	}

	if r.MonthNumber == nil && r.Start != nil {
		m := int(r.Start.Month())
		r.MonthNumber = &m
	}
	if r.DayName == "" && r.Start != nil {
		r.DayName = r.Start.Format("Mon")
	}

	return r
}

// combine anchors a wall-clock time onto a calendar day in the schedule
// zone.
func combine(day time.Time, c ClockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, Zone)
}

// sortRows stable-sorts by (Start, WeekLabel). Rows without a start
// instant sort first: the zero time orders before any real instant, and
// stability keeps their source order.
func sortRows(rows []model.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := sortKey(rows[i]), sortKey(rows[j])
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return rows[i].WeekLabel < rows[j].WeekLabel
	})
}

func sortKey(r model.Row) time.Time {
	if r.Start != nil {
		return *r.Start
	}
	return time.Time{}
}
