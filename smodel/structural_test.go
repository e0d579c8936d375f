package smodel

import (
	"testing"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termVars(c swire.Constraint) []string {
	var out []string
	for _, t := range c.Terms {
		out = append(out, t.Var)
	}
	return out
}

func TestEmitCoverageMandatoryAddsHardConstraint(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	cr := &sentity.CoverageRequirement{
		Day: days[0], StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17},
		RoleIDs: []string{"w"}, TargetCount: 1, Priority: sentity.PriorityMandatory,
	}
	b.EmitStructuralConstraints(sentity.CoverageRequirements{cr})

	require.Len(t, b.constraints, 1)
	assert.Equal(t, swire.KindLinear, b.constraints[0].Kind)
	assert.True(t, b.reporter.CanSolve())
	require.Len(t, b.reporter.Tracked, 1)
	assert.True(t, b.reporter.Tracked[0].Mandatory)
}

func TestEmitCoverageSoftAddsSoftConstraint(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	cr := &sentity.CoverageRequirement{
		Day: days[0], StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17},
		RoleIDs: []string{"w"}, TargetCount: 1, Priority: sentity.PriorityHigh,
	}
	b.EmitStructuralConstraints(sentity.CoverageRequirements{cr})

	require.Len(t, b.constraints, 1)
	assert.Equal(t, swire.KindSoftLinear, b.constraints[0].Kind)
	assert.Equal(t, 25, b.constraints[0].Penalty)
}

func TestEmitCoverageWithNoEligibleMembersRecordsStructuralError(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"doctor"}}}
	patterns := sentity.ShiftPatterns{{ID: "day", RoleIDs: []string{"doctor"}, StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17}}}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	cr := &sentity.CoverageRequirement{
		Day: days[0], StartTime: stime.TimeOfDay{Hours: 9}, EndTime: stime.TimeOfDay{Hours: 17},
		RoleIDs: []string{"nurse"}, TargetCount: 1, Priority: sentity.PriorityMandatory,
	}
	b.EmitStructuralConstraints(sentity.CoverageRequirements{cr})

	assert.Empty(t, b.constraints)
	assert.False(t, b.reporter.CanSolve())
	require.Len(t, b.reporter.Errors, 1)
}

func TestEmitCoverageJointlySatisfiedWindowForcesEachPatternIndependently(t *testing.T) {
	members := sentity.Members{
		{ID: "alice", RoleIDs: []string{"w"}},
		{ID: "bob", RoleIDs: []string{"w"}},
	}
	patterns := sentity.ShiftPatterns{
		{ID: "morning", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 8}, EndTime: stime.TimeOfDay{Hours: 16}},
		{ID: "evening", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 16}, EndTime: stime.TimeOfDay{Hours: 24}},
	}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	// A day-long requirement (8:00-24:00) no single pattern spans alone:
	// morning and evening must each independently reach the target, not just
	// their sum.
	cr := &sentity.CoverageRequirement{
		Day: days[0], StartTime: stime.TimeOfDay{Hours: 8}, EndTime: stime.TimeOfDay{Hours: 24},
		RoleIDs: []string{"w"}, TargetCount: 1, Priority: sentity.PriorityMandatory,
	}
	b.EmitStructuralConstraints(sentity.CoverageRequirements{cr})

	require.Len(t, b.constraints, 2, "expected a separate hard constraint for the morning bucket and the evening bucket")
	for _, c := range b.constraints {
		assert.Equal(t, swire.KindLinear, c.Kind)
		assert.Equal(t, 1, c.Rhs)
		assert.Len(t, c.Terms, 2, "each bucket is covered by exactly one pattern, across both members")
	}

	morningVars := termVars(b.constraints[0])
	eveningVars := termVars(b.constraints[1])
	assert.ElementsMatch(t, []string{"assign:alice:morning:2024-02-01", "assign:bob:morning:2024-02-01"}, morningVars)
	assert.ElementsMatch(t, []string{"assign:alice:evening:2024-02-01", "assign:bob:evening:2024-02-01"}, eveningVars)
}

func TestEmitNoOverlapForbidsOverlappingPatternsSameDay(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{
		{ID: "morning", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 8}, EndTime: stime.TimeOfDay{Hours: 14}},
		{ID: "afternoon", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 12}, EndTime: stime.TimeOfDay{Hours: 18}},
	}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	b.EmitStructuralConstraints(nil)

	require.Len(t, b.constraints, 1)
	c := b.constraints[0]
	assert.ElementsMatch(t, []string{"assign:alice:morning:2024-02-01", "assign:alice:afternoon:2024-02-01"}, termVars(c))
}

func TestEmitNoOverlapAllowsNonOverlappingPatterns(t *testing.T) {
	members := sentity.Members{{ID: "alice", RoleIDs: []string{"w"}}}
	patterns := sentity.ShiftPatterns{
		{ID: "morning", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 8}, EndTime: stime.TimeOfDay{Hours: 12}},
		{ID: "evening", RoleIDs: []string{"w"}, StartTime: stime.TimeOfDay{Hours: 13}, EndTime: stime.TimeOfDay{Hours: 18}},
	}
	days := stime.Days{stime.Day("2024-02-01")}
	b := NewBuilder(members, patterns, days, stime.Monday, false)

	b.EmitStructuralConstraints(nil)

	assert.Empty(t, b.constraints)
}
