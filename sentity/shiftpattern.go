package sentity

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/stime"
)

// ShiftPattern is a recurring shift template: a role
// restriction (empty = unrestricted), a start/end TimeOfDay that may cross
// midnight, and an optional weekday restriction.
type ShiftPattern struct {
	ID         string          `json:"id" validate:"required"`
	RoleIDs    []string        `json:"roleIds,omitempty"`
	StartTime  stime.TimeOfDay `json:"startTime"`
	EndTime    stime.TimeOfDay `json:"endTime"`
	DayOfWeek  stime.Weekdays  `json:"dayOfWeek,omitempty"`
	LocationID string          `json:"locationId,omitempty"`
}

func (sp *ShiftPattern) Validate() error {
	if sp == nil {
		return fmt.Errorf("shiftPattern is nil")
	}
	if err := ValidateEntityID(sp.ID); err != nil {
		return fmt.Errorf("shiftPattern.id: %w", err)
	}
	if err := sp.StartTime.Validate(); err != nil {
		return fmt.Errorf("shiftPattern.startTime: %w", err)
	}
	if err := sp.EndTime.Validate(); err != nil {
		return fmt.Errorf("shiftPattern.endTime: %w", err)
	}
	for _, d := range sp.DayOfWeek {
		if !d.IsValid() {
			return fmt.Errorf("shiftPattern.dayOfWeek: unrecognized weekday %q", d)
		}
	}
	return nil
}

// Duration returns the shift length in minutes, accounting for midnight
// crossing per normalizeEnd rule.
func (sp *ShiftPattern) Duration() int {
	return stime.Duration(sp.StartTime, sp.EndTime)
}

// MinuteRange returns the pattern's [start, end) span in minutes-since
// midnight, where End may exceed 1440 for an overnight pattern.
func (sp *ShiftPattern) MinuteRange() stime.MinuteRange {
	start := stime.TimeToMinutes(sp.StartTime)
	return stime.MinuteRange{Start: start, End: stime.NormalizeEnd(sp.StartTime, sp.EndTime)}
}

// AvailableOnWeekday reports whether the pattern runs on the given weekday:
// true when DayOfWeek is empty (unrestricted) or contains w.
func (sp *ShiftPattern) AvailableOnWeekday(w stime.Weekday) bool {
	if len(sp.DayOfWeek) == 0 {
		return true
	}
	return sp.DayOfWeek.Contains(w)
}

// RestrictsRoles reports whether the pattern has a non-empty role
// restriction (an empty RoleIDs set means unrestricted by convention).
func (sp *ShiftPattern) RestrictsRoles() bool {
	return len(sp.RoleIDs) > 0
}

// SharesRole reports whether roleIDs intersects the pattern's RoleIDs, or
// the pattern is unrestricted.
func (sp *ShiftPattern) SharesRole(roleIDs []string) bool {
	if !sp.RestrictsRoles() {
		return true
	}
	for _, r := range roleIDs {
		for _, pr := range sp.RoleIDs {
			if r == pr {
				return true
			}
		}
	}
	return false
}

// ShiftPatterns is an ordered list of ShiftPattern.
type ShiftPatterns []*ShiftPattern

func (sps ShiftPatterns) Find(id string) *ShiftPattern {
	for _, sp := range sps {
		if sp.ID == id {
			return sp
		}
	}
	return nil
}

func (sps ShiftPatterns) ByID() map[string]*ShiftPattern {
	out := make(map[string]*ShiftPattern, len(sps))
	for _, sp := range sps {
		out[sp.ID] = sp
	}
	return out
}
