package utils

import "time"

// DayStart returns 00:00 of t's calendar date in the given location.
func DayStart(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayEnd returns 23:59:59.999 of t's calendar date in the given location.
func DayEnd(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, loc)
}

// At combines t's calendar date with a wall-clock hour and minute.
func At(t time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, loc)
}
