// Package stats owns the calendar math for weekly statistics.
//
// Weeks are Monday-bounded slices of a calendar month. The days before
// the month's first Monday form week 1, however short; every following
// week starts on a Monday. A month therefore has between 4 and 6 weeks
// and week numbers never carry across months.
package stats

import (
	"time"

	"github.com/QyongGin/learnkit/internal/models"
)

// WeekOf returns the week key containing t, in t's location.
func WeekOf(t time.Time) models.WeekKey {
	year, month, day := t.Date()
	offset := mondayIndex(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).Weekday())
	return models.WeekKey{
		Year:       year,
		Month:      int(month),
		WeekNumber: (offset+day-1)/7 + 1,
	}
}

// Bounds returns the half-open [start, end) range of a week, clipped to
// its month on both sides.
func Bounds(key models.WeekKey, loc *time.Location) (time.Time, time.Time) {
	month := time.Month(key.Month)
	first := time.Date(key.Year, month, 1, 0, 0, 0, 0, loc)
	offset := mondayIndex(first.Weekday())

	startDay := 1
	if key.WeekNumber > 1 {
		startDay = (key.WeekNumber-1)*7 - offset + 1
	}
	endDay := key.WeekNumber*7 - offset + 1

	start := time.Date(key.Year, month, startDay, 0, 0, 0, 0, loc)
	end := time.Date(key.Year, month, endDay, 0, 0, 0, 0, loc)

	nextMonth := first.AddDate(0, 1, 0)
	if end.After(nextMonth) {
		end = nextMonth
	}
	return start, end
}

// mondayIndex maps a weekday to its Monday-based index, Mon=0 .. Sun=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
