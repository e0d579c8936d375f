package sscope

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jpfluger/shiftsolve/stime"
)

// TimeScope names which days/times a rule config applies on. Exactly one
// field may be set; the zero value means "always".
type TimeScope struct {
	DateRange        *stime.DateRange       `json:"dateRange,omitempty"`
	SpecificDates    stime.Days             `json:"specificDates,omitempty"`
	DayOfWeek        stime.Weekdays         `json:"dayOfWeek,omitempty"`
	RecurringPeriods stime.RecurringPeriods `json:"recurringPeriods,omitempty"`
}

func (ts TimeScope) validate() error {
	count := 0
	if ts.DateRange != nil {
		count++
	}
	if len(ts.SpecificDates) > 0 {
		count++
	}
	if len(ts.DayOfWeek) > 0 {
		count++
	}
	if len(ts.RecurringPeriods) > 0 {
		count++
	}
	if count > 1 {
		return fmt.Errorf("time scope may set only one of dateRange/specificDates/dayOfWeek/recurringPeriods")
	}
	return nil
}

// key returns a canonical serialization used to group rule configs so that
// two rules with different time scopes never compete.
func (ts TimeScope) key() string {
	switch {
	case ts.DateRange != nil:
		return fmt.Sprintf("dateRange:%s..%s", ts.DateRange.Start, ts.DateRange.End)
	case len(ts.SpecificDates) > 0:
		dates := make([]string, len(ts.SpecificDates))
		for i, d := range ts.SpecificDates {
			dates[i] = string(d)
		}
		sort.Strings(dates)
		return "dates:" + strings.Join(dates, ",")
	case len(ts.DayOfWeek) > 0:
		names := make([]string, len(ts.DayOfWeek))
		for i, w := range ts.DayOfWeek {
			names[i] = string(w)
		}
		sort.Strings(names)
		return "dow:" + strings.Join(names, ",")
	case len(ts.RecurringPeriods) > 0:
		parts := make([]string, len(ts.RecurringPeriods))
		for i, rp := range ts.RecurringPeriods {
			parts[i] = fmt.Sprintf("%d-%d..%d-%d", rp.StartMonth, rp.StartDay, rp.EndMonth, rp.EndDay)
		}
		sort.Strings(parts)
		return "recur:" + strings.Join(parts, ",")
	default:
		return "always"
	}
}

// Allows reports whether d passes this time scope's filter.
func (ts TimeScope) Allows(d stime.Day) bool {
	switch {
	case ts.DateRange != nil:
		days, err := ts.DateRange.Days()
		if err != nil {
			return false
		}
		return days.Contains(d)
	case len(ts.SpecificDates) > 0:
		return ts.SpecificDates.Contains(d)
	case len(ts.DayOfWeek) > 0:
		return ts.DayOfWeek.Contains(d.Weekday())
	case len(ts.RecurringPeriods) > 0:
		return ts.RecurringPeriods.MatchesDay(d)
	default:
		return true
	}
}
