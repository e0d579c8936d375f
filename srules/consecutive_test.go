package srules

import (
	"testing"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveDayFixture() (sentity.Members, sentity.ShiftPatterns, stime.Days) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{
		stime.Day("2024-02-05"), stime.Day("2024-02-06"), stime.Day("2024-02-07"),
		stime.Day("2024-02-08"), stime.Day("2024-02-09"),
	}
	return members, patterns, days
}

func TestMaxConsecutiveDaysSlidesAWindowOverEveryStart(t *testing.T) {
	members, patterns, days := fiveDayFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := MaxConsecutiveDaysRule{MemberIDs: []string{"alice"}, Params: ConsecutiveDaysParams{Days: 3, Priority: sentity.PriorityMandatory}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	req, err := b.Finalize()
	require.NoError(t, err)

	var windows int
	for _, c := range req.Constraints {
		if c.Kind == "linear" && c.Op == "<=" && c.Rhs == 3 && len(c.Terms) == 4 {
			windows++
		}
	}
	// 5 days, window size 4 (Days+1): starts at index 0 and 1 => 2 windows.
	assert.Equal(t, 2, windows)
}

func TestMinConsecutiveDaysForcesZeroStartWhenWindowDoesNotFit(t *testing.T) {
	members, patterns, days := fiveDayFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := MinConsecutiveDaysRule{MemberIDs: []string{"alice"}, Params: ConsecutiveDaysParams{Days: 3, Priority: sentity.PriorityMandatory}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	req, err := b.Finalize()
	require.NoError(t, err)

	// The last two days (idx 3, 4) can't start a fresh 3-day streak within
	// the 5-day scope, so their work_start_ variable is forced to 0.
	var forcedZero int
	for _, c := range req.Constraints {
		if c.Kind == "linear" && c.Op == "<=" && c.Rhs == 0 && len(c.Terms) == 1 {
			forcedZero++
		}
	}
	assert.Equal(t, 2, forcedZero)
}

func TestMinConsecutiveDaysLinksStartToSubsequentWorkedDays(t *testing.T) {
	members, patterns, days := fiveDayFixture()
	b := smodel.NewBuilder(members, patterns, days, stime.Monday, false)
	rule := MinConsecutiveDaysRule{MemberIDs: []string{"alice"}, Params: ConsecutiveDaysParams{Days: 2, Priority: sentity.PriorityMandatory}}

	require.NoError(t, b.Compile([]smodel.Rule{rule}))
	req, err := b.Finalize()
	require.NoError(t, err)

	var found bool
	for _, c := range req.Constraints {
		if c.Kind == "linear" && c.Op == ">=" && len(c.Terms) == 3 {
			found = true
		}
	}
	assert.True(t, found, "expected a works(d)+works(d+1) >= 2*start style constraint")
}
