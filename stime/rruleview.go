package stime

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// AsRRule exports a RecurringPeriod as a teambition/rrule-go yearly RRULE so
// callers can enumerate occurrences outside the compiled horizon for
// diagnostics/export. The rule recurs on the period's start month/day only
// (50 occurrences from anchorYear); the end month/day is not encoded in it.
// This never backs the compiled model itself: compile
// uses RecurringPeriod.Matches directly so it stays a closed-form,
// allocation-bounded check,
// rather than materializing an occurrence stream.
func (rp RecurringPeriod) AsRRule(anchorYear int) (*rrule.RRule, error) {
	dtstart := time.Date(anchorYear, time.Month(rp.StartMonth), rp.StartDay, 0, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: dtstart,
		Count:   50,
	})
	if err != nil {
		return nil, fmt.Errorf("recurringPeriod.AsRRule: %w", err)
	}
	return r, nil
}
