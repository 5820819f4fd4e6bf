package dateutil_test

import (
	"testing"
	"time"

	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 45, 12, 999, time.FixedZone("UTC+2", 2*3600))
	got := dateutil.TruncateToDay(in)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestTruncateToDay_Idempotent(t *testing.T) {
	in := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, in, dateutil.TruncateToDay(dateutil.TruncateToDay(in)))
}

func TestDailyIntervals(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	intervals := dateutil.DailyIntervals(start, end)

	require.Len(t, intervals, 4) // leap year: Feb 27, 28, 29, Mar 1
	assert.Equal(t, start, intervals[0].Start)
	assert.Equal(t, start, intervals[0].End)
	assert.Equal(t, end, intervals[3].End)
	for _, interval := range intervals {
		assert.Equal(t, interval.Start, interval.End)
	}
}

func TestDailyIntervals_InvertedRange(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, dateutil.DailyIntervals(start, end))
}

func TestMonthlyIntervals_ClipsFirstAndLast(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	intervals := dateutil.MonthlyIntervals(start, end)

	require.Len(t, intervals, 3)

	assert.Equal(t, start, intervals[0].Start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), intervals[0].End)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), intervals[1].Start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), intervals[1].End)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), intervals[2].Start)
	assert.Equal(t, end, intervals[2].End)
}

func TestMonthlyIntervals_Contiguous(t *testing.T) {
	start := time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	intervals := dateutil.MonthlyIntervals(start, end)
	require.NotEmpty(t, intervals)

	for i := 1; i < len(intervals); i++ {
		assert.Equal(t, intervals[i-1].End.AddDate(0, 0, 1), intervals[i].Start,
			"gap between interval %d and %d", i-1, i)
	}
}

func TestMonthlyIntervals_SingleDay(t *testing.T) {
	d := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	intervals := dateutil.MonthlyIntervals(d, d)

	require.Len(t, intervals, 1)
	assert.Equal(t, d, intervals[0].Start)
	assert.Equal(t, d, intervals[0].End)
}
