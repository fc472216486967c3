package schedule

import (
	"sort"

	"ccdash/internal/model"
)

// Criteria restricts the table along the dashboard's filterable columns.
// An empty slice means "no restriction" for that column; non-empty
// criteria are combined conjunctively.
type Criteria struct {
	Months    []string `json:"months,omitempty"`
	Weeks     []string `json:"weeks,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Teams     []string `json:"teams,omitempty"`
	Modes     []string `json:"modes,omitempty"`
}

// Empty reports whether the criteria impose no restriction at all.
func (c Criteria) Empty() bool {
	return len(c.Months) == 0 && len(c.Weeks) == 0 && len(c.Locations) == 0 &&
		len(c.Teams) == 0 && len(c.Modes) == 0
}

// Filter returns the rows matching the criteria, preserving input order.
func Filter(rows []model.Row, c Criteria) []model.Row {
	if c.Empty() {
		out := make([]model.Row, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if !matches(c.Months, r.MonthName) {
			continue
		}
		if !matches(c.Weeks, r.WeekLabel) {
			continue
		}
		if !matches(c.Locations, r.LocationFocus) {
			continue
		}
		if !matches(c.Teams, r.TeamFocus) {
			continue
		}
		if !matches(c.Modes, r.ModeOfConnect) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(allowed []string, v string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// Options holds the sorted distinct values per filterable column, used to
// populate the dashboard's filter dropdowns.
type Options struct {
	Months    []string `json:"months"`
	Weeks     []string `json:"weeks"`
	Locations []string `json:"locations"`
	Teams     []string `json:"teams"`
	Modes     []string `json:"modes"`
}

// Distinct collects the filter options present in the table. Empty cells
// are skipped so blank rows do not produce a phantom dropdown entry.
func Distinct(rows []model.Row) Options {
	return Options{
		Months:    distinct(rows, func(r model.Row) string { return r.MonthName }),
		Weeks:     distinct(rows, func(r model.Row) string { return r.WeekLabel }),
		Locations: distinct(rows, func(r model.Row) string { return r.LocationFocus }),
		Teams:     distinct(rows, func(r model.Row) string { return r.TeamFocus }),
		Modes:     distinct(rows, func(r model.Row) string { return r.ModeOfConnect }),
	}
}

func distinct(rows []model.Row, get func(model.Row) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		v := get(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
