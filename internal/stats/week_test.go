package stats

import (
	"testing"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want models.WeekKey
	}{
		// March 2026 starts on a Sunday, so week 1 is a single day.
		{"partial first week", date(2026, time.March, 1), models.WeekKey{Year: 2026, Month: 3, WeekNumber: 1}},
		{"first monday starts week 2", date(2026, time.March, 2), models.WeekKey{Year: 2026, Month: 3, WeekNumber: 2}},
		{"sunday closes week 2", date(2026, time.March, 8), models.WeekKey{Year: 2026, Month: 3, WeekNumber: 2}},
		{"mid month", date(2026, time.March, 15), models.WeekKey{Year: 2026, Month: 3, WeekNumber: 3}},
		{"month end", date(2026, time.March, 31), models.WeekKey{Year: 2026, Month: 3, WeekNumber: 6}},

		// June 2026 starts on a Monday, so week 1 is a full week.
		{"monday first full week", date(2026, time.June, 1), models.WeekKey{Year: 2026, Month: 6, WeekNumber: 1}},
		{"sunday closes full week 1", date(2026, time.June, 7), models.WeekKey{Year: 2026, Month: 6, WeekNumber: 1}},
		{"second week of aligned month", date(2026, time.June, 8), models.WeekKey{Year: 2026, Month: 6, WeekNumber: 2}},

		// Week numbers restart at each month boundary.
		{"saturday late august", date(2026, time.August, 29), models.WeekKey{Year: 2026, Month: 8, WeekNumber: 5}},
		{"year end", date(2026, time.December, 31), models.WeekKey{Year: 2026, Month: 12, WeekNumber: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekOf(tt.t); got != tt.want {
				t.Errorf("WeekOf(%s) = %+v, want %+v", tt.t.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name      string
		key       models.WeekKey
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"partial first week",
			models.WeekKey{Year: 2026, Month: 3, WeekNumber: 1},
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"full interior week",
			models.WeekKey{Year: 2026, Month: 3, WeekNumber: 3},
			time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"last week clipped to month end",
			models.WeekKey{Year: 2026, Month: 3, WeekNumber: 6},
			time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"aligned month full first week",
			models.WeekKey{Year: 2026, Month: 6, WeekNumber: 1},
			time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.June, 8, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Bounds(tt.key, time.UTC)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("Bounds(%+v) = [%s, %s), want [%s, %s)",
					tt.key,
					start.Format("2006-01-02"), end.Format("2006-01-02"),
					tt.wantStart.Format("2006-01-02"), tt.wantEnd.Format("2006-01-02"))
			}
		})
	}
}

func TestWeekOfMatchesBounds(t *testing.T) {
	// Every day of 2026 must fall inside the bounds of its own week key.
	for d := date(2026, time.January, 1); d.Year() == 2026; d = d.AddDate(0, 0, 1) {
		key := WeekOf(d)
		start, end := Bounds(key, time.UTC)
		if d.Before(start) || !d.Before(end) {
			t.Fatalf("%s outside bounds [%s, %s) of its week %+v",
				d.Format("2006-01-02"), start.Format("2006-01-02"), end.Format("2006-01-02"), key)
		}
	}
}
