// Package dateutil provides the day-granularity helpers the engine relies
// on: effective dates are truncated to days and trend windows are split into
// contiguous daily or monthly intervals.
package dateutil

import (
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
)

// TruncateToDay normalizes a timestamp to midnight UTC of its calendar day.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyIntervals splits [start, end] into one interval per calendar day.
// Both bounds are truncated to days first; an inverted range yields nil.
func DailyIntervals(start, end time.Time) []domain.Interval {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if end.Before(start) {
		return nil
	}

	var intervals []domain.Interval
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		intervals = append(intervals, domain.Interval{Start: d, End: d})
	}
	return intervals
}

// MonthlyIntervals splits [start, end] into calendar-month intervals, the
// first and last clipped to the requested bounds.
func MonthlyIntervals(start, end time.Time) []domain.Interval {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	if end.Before(start) {
		return nil
	}

	var intervals []domain.Interval
	cursor := start
	for !cursor.After(end) {
		monthEnd := endOfMonth(cursor)
		if monthEnd.After(end) {
			monthEnd = end
		}
		intervals = append(intervals, domain.Interval{Start: cursor, End: monthEnd})
		cursor = monthEnd.AddDate(0, 0, 1)
	}
	return intervals
}

func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
