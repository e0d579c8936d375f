package stime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingPeriodActiveDays(t *testing.T) {
	sp := SchedulingPeriod{
		DateRange: DateRange{Start: "2024-02-01", End: "2024-02-07"},
		DayOfWeek: Weekdays{Saturday, Sunday},
	}
	days, err := sp.ActiveDays()
	assert.NoError(t, err)
	assert.Equal(t, Days{"2024-02-03", "2024-02-04"}, days)
}

func TestSchedulingPeriodExplicitDates(t *testing.T) {
	sp := SchedulingPeriod{
		DateRange: DateRange{Start: "2024-02-01", End: "2024-02-10"},
		Dates:     Days{"2024-02-05", "2024-02-09"},
	}
	days, err := sp.ActiveDays()
	assert.NoError(t, err)
	assert.Equal(t, Days{"2024-02-05", "2024-02-09"}, days)
}

func TestDayWeekday(t *testing.T) {
	assert.Equal(t, Saturday, Day("2026-02-14").Weekday())
}

func TestLooksLikeDay(t *testing.T) {
	assert.True(t, LooksLikeDay("2024-02-01"))
	assert.False(t, LooksLikeDay("not-a-day"))
}
