package sentity

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/stime"
)

// GroupKey is a branded string grouping validation items that originated
// from the same user-facing coverage instruction. Equality is plain string
// equality.
type GroupKey string

func (gk GroupKey) IsEmpty() bool { return gk == "" }

// CoverageRequirement is a demand for at least targetCount eligible members
// on duty during a (day, interval).
type CoverageRequirement struct {
	Day         stime.Day       `json:"day" validate:"required"`
	StartTime   stime.TimeOfDay `json:"startTime"`
	EndTime     stime.TimeOfDay `json:"endTime"`
	RoleIDs     []string        `json:"roleIds,omitempty"`
	SkillIDs    []string        `json:"skillIds,omitempty"`
	TargetCount int             `json:"targetCount" validate:"gte=0"`
	Priority    Priority        `json:"priority" validate:"required"`
	GroupKey    GroupKey        `json:"groupKey,omitempty"`
}

func (cr *CoverageRequirement) Validate() error {
	if cr == nil {
		return fmt.Errorf("coverageRequirement is nil")
	}
	if _, err := stime.ParseDay(string(cr.Day)); err != nil {
		return fmt.Errorf("coverageRequirement.day: %w", err)
	}
	if cr.TargetCount < 0 {
		return fmt.Errorf("coverageRequirement.targetCount must be >= 0")
	}
	if !cr.Priority.IsValid() {
		return fmt.Errorf("coverageRequirement.priority %q invalid", cr.Priority)
	}
	return nil
}

// MinuteRange returns the requirement's [start, end) span, possibly
// crossing midnight.
func (cr *CoverageRequirement) MinuteRange() stime.MinuteRange {
	start := stime.TimeToMinutes(cr.StartTime)
	return stime.MinuteRange{Start: start, End: stime.NormalizeEnd(cr.StartTime, cr.EndTime)}
}

// MatchesMember reports whether m satisfies the requirement's role/skill
// filters. When both RoleIDs and SkillIDs are present they are
// conjunctive: the member must satisfy both.
func (cr *CoverageRequirement) MatchesMember(m *Member) bool {
	if len(cr.RoleIDs) > 0 && !m.SharesAnyRole(cr.RoleIDs) {
		return false
	}
	if len(cr.SkillIDs) > 0 {
		hasAny := false
		for _, s := range cr.SkillIDs {
			if m.HasSkill(s) {
				hasAny = true
				break
			}
		}
		if !hasAny {
			return false
		}
	}
	return true
}

// CoverageRequirements is an ordered list of CoverageRequirement.
type CoverageRequirements []*CoverageRequirement
