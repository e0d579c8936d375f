package stime

import (
	"fmt"
	"sort"
	"time"
)

// Day is an ISO date string ("YYYY-MM-DD"), the unit the wire format's
// assign:{member}:{pattern}:{day} variable name carries as its third part.
type Day string

const dayLayout = "2006-01-02"

// ParseDay validates and returns the Day's canonical string form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return Day(t.Format(dayLayout)), nil
}

// LooksLikeDay reports whether s has the shape of an ISO date, without
// validating calendar correctness beyond what time.Parse enforces. Used by
// the response parser to recognize the fourth colon-part of assign:* names.
func LooksLikeDay(s string) bool {
	_, err := time.Parse(dayLayout, s)
	return err == nil
}

// Time parses the Day back into a time.Time at midnight UTC.
func (d Day) Time() (time.Time, error) {
	return time.Parse(dayLayout, string(d))
}

// MustTime panics if d is not a valid ISO date; used only where d has
// already been validated upstream (e.g. entity construction).
func (d Day) MustTime() time.Time {
	t, err := d.Time()
	if err != nil {
		panic(err)
	}
	return t
}

// Weekday returns the lowercase weekday name for d.
func (d Day) Weekday() Weekday {
	return FromStdlib(d.MustTime().Weekday())
}

// AddDays returns the Day offset by n days (n may be negative).
func (d Day) AddDays(n int) Day {
	t := d.MustTime().AddDate(0, 0, n)
	return Day(t.Format(dayLayout))
}

// Before reports whether d occurs strictly before other.
func (d Day) Before(other Day) bool {
	return d.MustTime().Before(other.MustTime())
}

// Compare returns -1, 0, or 1 as d is before, equal to, or after other.
func (d Day) Compare(other Day) int {
	if d == other {
		return 0
	}
	if d.Before(other) {
		return -1
	}
	return 1
}

// Days is a list of ISO dates, typically sorted ascending per
// SchedulingPeriod's active-days invariant.
type Days []Day

func (ds Days) Len() int           { return len(ds) }
func (ds Days) Less(i, j int) bool { return ds[i].Before(ds[j]) }
func (ds Days) Swap(i, j int)      { ds[i], ds[j] = ds[j], ds[i] }

// SortAscending sorts ds in place and returns it for chaining.
func (ds Days) SortAscending() Days {
	sort.Sort(ds)
	return ds
}

// Contains reports whether d appears in ds.
func (ds Days) Contains(d Day) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

// DateRange is an inclusive [Start, End] span of ISO dates.
type DateRange struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// Days enumerates every ISO date in the inclusive range, ascending.
func (dr DateRange) Days() (Days, error) {
	start, err := dr.Start.Time()
	if err != nil {
		return nil, fmt.Errorf("dateRange.start: %w", err)
	}
	end, err := dr.End.Time()
	if err != nil {
		return nil, fmt.Errorf("dateRange.end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("dateRange end %s precedes start %s", dr.End, dr.Start)
	}

	var days Days
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		days = append(days, Day(t.Format(dayLayout)))
	}
	return days, nil
}
