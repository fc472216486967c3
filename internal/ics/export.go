// Package ics serializes enriched schedule rows into an iCalendar
// document suitable for import into Outlook or Google Calendar.
package ics

import (
	"strings"

	"ccdash/internal/model"
)

const (
	prodID        = "-//CoffeeConnect//Schedule//EN"
	uidSuffix     = "coffee-connect@atul"
	summaryPrefix = "Coffee & Connect"

	// stampLayout is the compact UTC form required for DTSTART/DTEND.
	stampLayout = "20060102T150405Z"
)

// Encode builds a VCALENDAR document from the given rows. Rows lacking
// either derived instant are silently skipped. Instants are converted
// from the fixed schedule zone to UTC before formatting, lines are
// CRLF-terminated, and the output is deterministic for a given input.
func Encode(rows []model.Row, calName string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"X-WR-CALNAME:" + calName,
	}

	for _, r := range rows {
		if !r.HasInstants() {
			continue
		}

		start := r.Start.UTC().Format(stampLayout)
		end := r.End.UTC().Format(stampLayout)

		week := r.WeekLabel
		if week == "" {
			week = "W"
		}

		// Field lines inside DESCRIPTION use the iCalendar \n escape so
		// the document stays parseable while calendar apps still render
		// one field per line.
		desc := strings.Join([]string{
			"Manager: " + r.Manager,
			"Participants: " + r.Participants,
			"Focus: " + r.LocationFocus,
			"Mode: " + r.ModeOfConnect,
		}, `\n`)

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+start+"-"+week+"-"+uidSuffix,
			"DTSTAMP:"+start,
			"DTSTART:"+start,
			"DTEND:"+end,
			"SUMMARY:"+summaryPrefix+" — "+r.WeekLabel,
			"DESCRIPTION:"+desc,
			"LOCATION:"+r.LocationFocus,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}
