package smodel

import (
	"testing"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoMembersTwoPatterns() (sentity.Members, sentity.ShiftPatterns, stime.Days) {
	members := sentity.Members{
		{ID: "alice", RoleIDs: []string{"w"}},
		{ID: "bob", RoleIDs: []string{"w"}},
	}
	patterns := sentity.ShiftPatterns{
		{ID: "morning", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 8}, EndTime: stime.TimeOfDay{Hours: 12}},
		{ID: "evening", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 13}, EndTime: stime.TimeOfDay{Hours: 17}},
	}
	days := stime.Days{stime.Day("2024-02-05")}
	return members, patterns, days
}

func TestFairDistributionPenalizesSpreadNotTotal(t *testing.T) {
	members, patterns, days := twoMembersTwoPatterns()
	b := NewBuilder(members, patterns, days, stime.Monday, true)

	req, err := b.Finalize()
	require.NoError(t, err)

	byVar := map[string]int{}
	for _, term := range req.Objective.Terms {
		byVar[term.Var] = term.Coeff
	}

	// fair_spread must carry the FAIRNESS penalty; per-member fair_count_*
	// variables must NOT be penalized directly, since Σcounts is invariant
	// under reshuffling and penalizing them would add no equalizing pressure.
	assert.Equal(t, int(sentity.WeightFairness), byVar["fair_spread"])
	assert.Zero(t, byVar["fair_count_alice"])
	assert.Zero(t, byVar["fair_count_bob"])

	var hasMaxBound, hasMinBound, hasSpreadLink bool
	for _, c := range req.Constraints {
		if c.Kind != swire.KindLinear {
			continue
		}
		switch {
		case len(c.Terms) == 2 && c.Terms[0].Var == "fair_max":
			hasMaxBound = true
		case len(c.Terms) == 2 && c.Terms[1].Var == "fair_min":
			hasMinBound = true
		case len(c.Terms) == 3 && c.Terms[0].Var == "fair_max" && c.Terms[1].Var == "fair_min":
			hasSpreadLink = true
		}
	}
	assert.True(t, hasMaxBound, "expected fair_max >= count for each member")
	assert.True(t, hasMinBound, "expected count >= fair_min for each member")
	assert.True(t, hasSpreadLink, "expected fair_spread == fair_max - fair_min")
}

func TestFairDistributionNoOpWithFewerThanTwoEligibleMembers(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{stime.Day("2024-02-05")}
	b := NewBuilder(members, patterns, days, stime.Monday, true)

	req, err := b.Finalize()
	require.NoError(t, err)

	for _, v := range req.Variables {
		assert.NotEqual(t, "fair_spread", v.Name)
		assert.NotEqual(t, "fair_max", v.Name)
		assert.NotEqual(t, "fair_min", v.Name)
	}
}

func TestFairDistributionDisabledByDefault(t *testing.T) {
	members, patterns, days := twoMembersTwoPatterns()
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	req, err := b.Finalize()
	require.NoError(t, err)

	for _, v := range req.Variables {
		assert.NotEqual(t, "fair_spread", v.Name)
	}
}
