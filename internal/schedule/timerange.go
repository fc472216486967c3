package schedule

import (
	"strings"
	"time"
)

// timezoneSuffix is the label appended to Time cells in the sheet. It is
// informational only; the fixed schedule zone is applied by the enricher.
const timezoneSuffix = " IST"

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseTimeRange parses a Time cell such as "15:30–16:00 IST" or
// "15:30-16:00" into a start and an optional end time. A lone "15:30"
// yields only a start. Any component that fails to parse comes back nil;
// the function itself never fails. Defaulting a missing end time is the
// enricher's job, not the parser's.
func ParseTimeRange(s string) (start, end *ClockTime) {
	s = CleanText(s)
	s = strings.ReplaceAll(s, timezoneSuffix, "")
	s = strings.TrimSpace(s)

	// The sheet mixes en-dashes and ASCII hyphens between the two times.
	s = strings.ReplaceAll(s, "–", "-")

	parts := strings.SplitN(s, "-", 2)
	start = parseClock(parts[0])
	if len(parts) > 1 {
		end = parseClock(parts[1])
	}
	return start, end
}

// parseClock parses a strict 24-hour "HH:MM" value, returning nil on any
// malformed or out-of-range input.
func parseClock(s string) *ClockTime {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}
