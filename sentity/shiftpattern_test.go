package sentity

import (
	"testing"

	"github.com/jpfluger/shiftsolve/stime"
	"github.com/stretchr/testify/assert"
)

func TestShiftPatternDuration(t *testing.T) {
	sp := &ShiftPattern{ID: "night", StartTime: stime.TimeOfDay{Hours: 18}, EndTime: stime.TimeOfDay{Hours: 6}}
	assert.NoError(t, sp.Validate())
	assert.Equal(t, 12*60, sp.Duration())
}

func TestShiftPatternAvailableOnWeekday(t *testing.T) {
	sp := &ShiftPattern{ID: "weekend", DayOfWeek: stime.Weekdays{stime.Saturday, stime.Sunday}}
	assert.True(t, sp.AvailableOnWeekday(stime.Saturday))
	assert.False(t, sp.AvailableOnWeekday(stime.Monday))

	unrestricted := &ShiftPattern{ID: "any"}
	assert.True(t, unrestricted.AvailableOnWeekday(stime.Monday))
}

func TestShiftPatternSharesRole(t *testing.T) {
	sp := &ShiftPattern{ID: "day", RoleIDs: []string{"w"}}
	assert.True(t, sp.SharesRole([]string{"w", "student"}))
	assert.False(t, sp.SharesRole([]string{"manager"}))

	unrestricted := &ShiftPattern{ID: "open"}
	assert.True(t, unrestricted.SharesRole([]string{"anything"}))
}
