package domain

import "time"

// BusyInterval is a half-open committed period [Start, End) on one of the
// owner's calendars. Intervals carry no identity beyond their bounds;
// once fetched, intervals from different backends are interchangeable.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the half-open range [start, end) intersects the
// interval. Touching boundaries do not conflict.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
