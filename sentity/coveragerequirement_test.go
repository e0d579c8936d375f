package sentity

import (
	"testing"

	"github.com/jpfluger/shiftsolve/stime"
	"github.com/stretchr/testify/assert"
)

func TestCoverageRequirementMatchesMemberConjunctive(t *testing.T) {
	cr := &CoverageRequirement{
		Day:         "2024-02-01",
		RoleIDs:     []string{"w"},
		SkillIDs:    []string{"cpr"},
		TargetCount: 1,
		Priority:    PriorityHigh,
	}
	assert.NoError(t, cr.Validate())

	withBoth := &Member{ID: "alice", RoleIDs: []string{"w"}, SkillIDs: []string{"cpr"}}
	assert.True(t, cr.MatchesMember(withBoth))

	onlyRole := &Member{ID: "bob", RoleIDs: []string{"w"}}
	assert.False(t, cr.MatchesMember(onlyRole), "role+skill filters are conjunctive")

	onlySkill := &Member{ID: "carl", RoleIDs: []string{"x"}, SkillIDs: []string{"cpr"}}
	assert.False(t, cr.MatchesMember(onlySkill))
}

func TestCoverageRequirementMinuteRangeCrossesMidnight(t *testing.T) {
	cr := &CoverageRequirement{
		Day:       "2024-01-01",
		StartTime: stime.TimeOfDay{Hours: 0},
		EndTime:   stime.TimeOfDay{Hours: 6},
		Priority:  PriorityMandatory,
	}
	mr := cr.MinuteRange()
	assert.Equal(t, 0, mr.Start)
	assert.Equal(t, 6*60, mr.End)
}
