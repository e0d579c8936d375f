package stime

import "fmt"

// SchedulingPeriod computes the active days list by convention: the
// inclusive dateRange intersected with optional dayOfWeek and explicit
// dates filters, sorted ascending.
type SchedulingPeriod struct {
	DateRange DateRange `json:"dateRange"`
	DayOfWeek Weekdays  `json:"dayOfWeek,omitempty"`
	Dates     Days      `json:"dates,omitempty"`

	// ObserveHolidays/HolidayCalendarID are carried as configuration only:
	// ActiveDays does not consult them and no other code in this module
	// reads them (holiday-surcharge takes its own CalendarID).
	ObserveHolidays   bool   `json:"observeHolidays,omitempty"`
	HolidayCalendarID string `json:"holidayCalendarId,omitempty"`
}

// ActiveDays returns the ascending list of ISO dates in range that pass
// every provided filter (dayOfWeek subset AND/intersect explicit dates, when
// both present — filters are conjunctive restrictions on the date-range
// superset).
func (sp SchedulingPeriod) ActiveDays() (Days, error) {
	all, err := sp.DateRange.Days()
	if err != nil {
		return nil, fmt.Errorf("schedulingPeriod: %w", err)
	}

	var out Days
	for _, d := range all {
		if !sp.DayOfWeek.IsEmpty() && !sp.DayOfWeek.Contains(d.Weekday()) {
			continue
		}
		if len(sp.Dates) > 0 && !sp.Dates.Contains(d) {
			continue
		}
		out = append(out, d)
	}
	return out.SortAscending(), nil
}
