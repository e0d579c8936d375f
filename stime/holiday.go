package stime

import (
	"fmt"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendar answers business-day/holiday questions for the
// holiday-surcharge rule, built on rickar/cal/v2's BusinessCalendar.
type HolidayCalendar struct {
	id  string
	cal *cal.BusinessCalendar
}

// NewHolidayCalendar builds a calendar for the given ID. Only "US" (also the
// default for an empty ID) is wired; unknown IDs return a calendar with no
// holidays loaded (only weekends are non-business days) rather than an
// error, since an unrecognized ID is a
// configuration choice the caller should validate, not a hard failure deep
// in scoring.
func NewHolidayCalendar(id string) *HolidayCalendar {
	bc := cal.NewBusinessCalendar()
	switch id {
	case "US", "us", "":
		bc.AddHoliday(us.Holidays...)
		if id == "" {
			id = "US"
		}
	}
	return &HolidayCalendar{id: id, cal: bc}
}

func (hc *HolidayCalendar) ID() string {
	return hc.id
}

// IsBusinessDay reports whether d is a workday under this calendar (not a
// weekend and not an observed holiday).
func (hc *HolidayCalendar) IsBusinessDay(d Day) bool {
	return hc.cal.IsWorkday(d.MustTime())
}

// IsHoliday reports whether d is an observed holiday, and if so its name.
func (hc *HolidayCalendar) IsHoliday(d Day) (bool, string) {
	t := d.MustTime()
	actual, observed, h := hc.cal.IsHoliday(t)
	if !actual && !observed {
		return false, ""
	}
	if h == nil {
		return true, ""
	}
	return true, h.Name
}

func (hc *HolidayCalendar) String() string {
	return fmt.Sprintf("HolidayCalendar(%s)", hc.id)
}
