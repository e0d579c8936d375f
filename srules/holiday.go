package srules

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
)

// HolidaySurchargeParams configures holiday-surcharge.
type HolidaySurchargeParams struct {
	AmountCentsPerHour int
	CalendarID         string
}

// HolidaySurchargeRule implements the holiday-surcharge: like
// day-cost-surcharge, but scoped to days stime.HolidayCalendar reports as an
// observed holiday rather than to an explicit TimeScope.
type HolidaySurchargeRule struct {
	MemberIDs []string
	Params    HolidaySurchargeParams
}

func (r HolidaySurchargeRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	cal := stime.NewHolidayCalendar(r.Params.CalendarID)
	for _, m := range membersFor(b, r.MemberIDs) {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, d := range b.Days() {
			if holiday, _ := cal.IsHoliday(d); !holiday {
				continue
			}
			for _, p := range b.ShiftPatterns() {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				hours := float64(p.Duration()) / 60.0
				premium := float64(r.Params.AmountCentsPerHour) * hours
				b.AddPenalty(name, maxInt(1, int(premium/cc.NormFactor)))
			}
		}
	}
	return nil
}

// Cost implements smodel.CostRule, recomputing the same holiday membership
// test against the full post-solve assignment list.
func (r HolidaySurchargeRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	cal := stime.NewHolidayCalendar(r.Params.CalendarID)
	scoped := filterMembersByIDs(members, r.MemberIDs)
	membersByID := scoped.ByID()
	patternsByID := patterns.ByID()

	var entries []smodel.CostEntry
	for _, a := range assignments {
		m, ok := membersByID[a.MemberID]
		if !ok {
			continue
		}
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		holiday, name := cal.IsHoliday(a.Day)
		if !holiday {
			continue
		}
		p, ok := patternsByID[a.PatternID]
		if !ok {
			continue
		}
		hours := float64(p.Duration()) / 60.0
		amount := int(float64(r.Params.AmountCentsPerHour) * hours)
		entries = append(entries, smodel.CostEntry{
			MemberID: a.MemberID, Day: a.Day, Category: smodel.CategoryPremium, Tag: name, Amount: amount,
		})
	}
	return entries
}
