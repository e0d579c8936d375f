package srules

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
)

// Cost modifier rules add an extra premium on top of
// minimize-cost's baseline. All three only price hourly members: salaried
// cost is charged per worked week rather than per assignment, so there is no
// per-assignment raw cost to scale a surcharge from. A modifier rule reads
// CostContext rather than installing it — if minimize-cost never ran (or
// found every in-scope member's raw cost to be zero), CostContext.Installed
// is false and these rules are a no-op, since there is no baseline to scale
// the premium against.

// DayCostMultiplierParams configures day-cost-multiplier.
type DayCostMultiplierParams struct {
	Factor float64 // e.g. 1.5 for a 50% premium
}

// DayCostMultiplierRule implements day-cost-multiplier: an
// additional penalty of (factor-1)·rawCost/normFactor on every hourly
// assignment whose day falls in Time's scope.
type DayCostMultiplierRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    DayCostMultiplierParams
}

func (r DayCostMultiplierRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	for _, m := range membersFor(b, r.MemberIDs) {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		for _, d := range activeDaysFor(b, r.Time) {
			for _, p := range b.ShiftPatterns() {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				raw := float64(hourly.RateCents) * float64(p.Duration()) / 60.0
				premium := (r.Params.Factor - 1) * raw
				b.AddPenalty(name, maxInt(1, int(premium/cc.NormFactor)))
			}
		}
	}
	return nil
}

func (r DayCostMultiplierRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	return dayPremiumEntries(assignments, filterMembersByIDs(members, r.MemberIDs), patterns, r.Time, func(hourly sentity.Hourly, p *sentity.ShiftPattern) int {
		raw := hourly.RateCents * p.Duration() / 60
		return int(float64(raw) * (r.Params.Factor - 1))
	})
}

// DayCostSurchargeParams configures day-cost-surcharge.
type DayCostSurchargeParams struct {
	AmountCentsPerHour int
}

// DayCostSurchargeRule implements day-cost-surcharge: a flat
// per-hour surcharge on every hourly assignment whose day falls in scope.
type DayCostSurchargeRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    DayCostSurchargeParams
}

func (r DayCostSurchargeRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	for _, m := range membersFor(b, r.MemberIDs) {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, d := range activeDaysFor(b, r.Time) {
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

func (r DayCostSurchargeRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	return dayPremiumEntries(assignments, filterMembersByIDs(members, r.MemberIDs), patterns, r.Time, func(_ sentity.Hourly, p *sentity.ShiftPattern) int {
		hours := float64(p.Duration()) / 60.0
		return int(float64(r.Params.AmountCentsPerHour) * hours)
	})
}

// TimeCostSurchargeParams configures time-cost-surcharge.
type TimeCostSurchargeParams struct {
	AmountCentsPerHour int
	From, Until        stime.TimeOfDay
}

// TimeCostSurchargeRule implements time-cost-surcharge: a
// per-hour surcharge proportional only to the portion of a pattern's minutes
// that overlap [From, Until). Patterns are assumed not to cross midnight
// relative to From/Until here; an overnight pattern is priced on its
// same-day overlap only, a documented simplification of the general case.
type TimeCostSurchargeRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    TimeCostSurchargeParams
}

func (r TimeCostSurchargeRule) overlapMinutes(p *sentity.ShiftPattern) int {
	windowStart := stime.TimeToMinutes(r.Params.From)
	windowEnd := stime.NormalizeEnd(r.Params.From, r.Params.Until)
	patternStart := stime.TimeToMinutes(p.StartTime)
	patternEnd := stime.NormalizeEnd(p.StartTime, p.EndTime)

	lo := patternStart
	if windowStart > lo {
		lo = windowStart
	}
	hi := patternEnd
	if windowEnd < hi {
		hi = windowEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func (r TimeCostSurchargeRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	for _, m := range membersFor(b, r.MemberIDs) {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, d := range activeDaysFor(b, r.Time) {
			for _, p := range b.ShiftPatterns() {
				overlap := r.overlapMinutes(p)
				if overlap <= 0 {
					continue
				}
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				premium := float64(r.Params.AmountCentsPerHour) * float64(overlap) / 60.0
				b.AddPenalty(name, maxInt(1, int(premium/cc.NormFactor)))
			}
		}
	}
	return nil
}

func (r TimeCostSurchargeRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	return dayPremiumEntries(assignments, filterMembersByIDs(members, r.MemberIDs), patterns, r.Time, func(_ sentity.Hourly, p *sentity.ShiftPattern) int {
		overlap := r.overlapMinutes(p)
		if overlap <= 0 {
			return 0
		}
		return int(float64(r.Params.AmountCentsPerHour) * float64(overlap) / 60.0)
	})
}

// dayPremiumEntries is the shared Cost() shape for the three day/time cost
// modifiers: one CategoryPremium entry per in-scope hourly assignment whose
// day matches ts, amount computed by perAssignment.
func dayPremiumEntries(assignments []smodel.Assignment, scoped sentity.Members, patterns sentity.ShiftPatterns, ts sscope.TimeScope, perAssignment func(sentity.Hourly, *sentity.ShiftPattern) int) []smodel.CostEntry {
	membersByID := scoped.ByID()
	patternsByID := patterns.ByID()

	var entries []smodel.CostEntry
	for _, a := range assignments {
		m, ok := membersByID[a.MemberID]
		if !ok {
			continue
		}
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		if !ts.Allows(a.Day) {
			continue
		}
		p, ok := patternsByID[a.PatternID]
		if !ok {
			continue
		}
		amount := perAssignment(hourly, p)
		if amount == 0 {
			continue
		}
		entries = append(entries, smodel.CostEntry{
			MemberID: a.MemberID, Day: a.Day, Category: smodel.CategoryPremium, Amount: amount,
		})
	}
	return entries
}
