package schedule

import (
	"sort"
	"time"

	"ccdash/internal/model"
)

// UpcomingBetween returns the rows whose start instant falls inside the
// half-open window (now, now+horizon], ordered by start ascending. Rows
// without a start instant are excluded. The caller supplies now so the
// function stays deterministic.
func UpcomingBetween(rows []model.Row, now time.Time, horizon time.Duration) []model.Row {
	limit := now.Add(horizon)

	out := make([]model.Row, 0)
	for _, r := range rows {
		if r.Start == nil {
			continue
		}
		if r.Start.After(now) && !r.Start.After(limit) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(*out[j].Start)
	})
	return out
}

// Next returns the earliest row starting strictly after now, or nil when
// no future session exists.
func Next(rows []model.Row, now time.Time) *model.Row {
	var best *model.Row
	for i := range rows {
		r := &rows[i]
		if r.Start == nil || !r.Start.After(now) {
			continue
		}
		if best == nil || r.Start.Before(*best.Start) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}
