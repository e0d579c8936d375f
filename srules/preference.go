package srules

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
)

// LocationPreferenceParams configures location-preference.
type LocationPreferenceParams struct {
	PreferredLocationID string
	Priority            sentity.Priority
}

// LocationPreferenceRule implements location-preference:
// patterns not at the preferred location get a positive objective penalty;
// matching patterns are left unpenalized.
type LocationPreferenceRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    LocationPreferenceParams
}

func (r LocationPreferenceRule) Compile(b *smodel.Builder) error {
	weight := r.Params.Priority.Penalty()
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			for _, p := range b.ShiftPatterns() {
				if p.LocationID == r.Params.PreferredLocationID {
					continue
				}
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				b.AddPenalty(name, weight)
			}
		}
	}
	return nil
}

// Preference names the direction of an assignment-priority steer.
type Preference string

const (
	PreferencePositive Preference = "positive"
	PreferenceLow      Preference = "low"
)

// AssignmentPriorityParams configures assignment-priority.
type AssignmentPriorityParams struct {
	PatternIDs []string
	Preference Preference
}

// AssignmentPriorityRule implements assignment-priority: a
// positive preference nudges the solver toward the listed patterns, a low
// preference nudges away.
type AssignmentPriorityRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    AssignmentPriorityParams
}

func (r AssignmentPriorityRule) Compile(b *smodel.Builder) error {
	weight := int(sentity.WeightAssignmentPreference)
	if r.Params.Preference == PreferenceLow {
		// keep positive: a low preference adds +ASSIGNMENT_PREFERENCE
	} else {
		weight = -weight
	}
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			for _, patternID := range r.Params.PatternIDs {
				name, ok := b.Assignment(m.ID, patternID, d)
				if !ok {
					continue
				}
				b.AddPenalty(name, weight)
			}
		}
	}
	return nil
}
