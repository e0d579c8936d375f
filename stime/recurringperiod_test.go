package stime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecurringPeriodMatches(t *testing.T) {
	summer := RecurringPeriod{StartMonth: 6, StartDay: 1, EndMonth: 8, EndDay: 31}
	assert.True(t, summer.Matches(7, 4))
	assert.False(t, summer.Matches(12, 25))

	// Wrap-around: winter holidays Dec 15 - Jan 5.
	winter := RecurringPeriod{StartMonth: 12, StartDay: 15, EndMonth: 1, EndDay: 5}
	assert.True(t, winter.Matches(12, 24))
	assert.True(t, winter.Matches(1, 1))
	assert.False(t, winter.Matches(6, 1))
}

func TestRecurringPeriodsMatchesDay(t *testing.T) {
	rps := RecurringPeriods{
		{StartMonth: 2, StartDay: 14, EndMonth: 2, EndDay: 14},
	}
	assert.True(t, rps.MatchesDay(Day("2026-02-14")))
	assert.False(t, rps.MatchesDay(Day("2026-02-15")))
}
