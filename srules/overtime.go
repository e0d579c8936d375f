package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// overtimeSlack declares an integer slack bounded by [0, maxOvertime] and
// constrains it to be at least the excess of terms (in minutes) over
// thresholdMinutes: Σterms - slack <= threshold. Only hourly members carry a
// per-minute rate to price the excess against, so callers skip salaried
// members before calling this.
func overtimeSlack(b *smodel.Builder, name string, terms []swire.Term, thresholdMinutes, maxOvertime int) (string, bool) {
	if maxOvertime <= 0 {
		return "", false
	}
	v := b.IntVar(name, 0, maxOvertime)
	ineq := append(append([]swire.Term{}, terms...), swire.Term{Var: v, Coeff: -1})
	b.AddLinear(ineq, swire.OpLE, thresholdMinutes)
	return v, true
}

func workedMinutes(assignments []smodel.Assignment, patternsByID map[string]*sentity.ShiftPattern, memberID string, days stime.Days) int {
	total := 0
	for _, a := range assignments {
		if a.MemberID != memberID || !days.Contains(a.Day) {
			continue
		}
		if p, ok := patternsByID[a.PatternID]; ok {
			total += p.Duration()
		}
	}
	return total
}

// OvertimeDailyMultiplierParams configures overtime-daily-multiplier.
type OvertimeDailyMultiplierParams struct {
	AfterHours int
	Factor     float64
}

// OvertimeDailyMultiplierRule implements overtime-daily-multiplier:
// minutes worked past AfterHours in a single day are penalized at the
// member's rate times (Factor-1), via an overtime:daily-multiplier slack var.
type OvertimeDailyMultiplierRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    OvertimeDailyMultiplierParams
}

func (r OvertimeDailyMultiplierRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	threshold := r.Params.AfterHours * 60
	for _, m := range membersFor(b, r.MemberIDs) {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		for _, d := range activeDaysFor(b, r.Time) {
			maxPossible := maxReachableMinutes(b, m.ID, stime.Days{d})
			name := fmt.Sprintf("overtime:daily-multiplier:%s:%s", m.ID, d)
			slack, ok := overtimeSlack(b, name, dayDurationTerms(b, m.ID, d), threshold, maxPossible-threshold)
			if !ok {
				continue
			}
			perMinute := float64(hourly.RateCents) / 60.0 * (r.Params.Factor - 1)
			b.AddPenalty(slack, maxInt(1, int(perMinute/cc.NormFactor)))
		}
	}
	return nil
}

func (r OvertimeDailyMultiplierRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
	patternsByID := patterns.ByID()
	threshold := r.Params.AfterHours * 60

	var entries []smodel.CostEntry
	for _, m := range scoped {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		for _, d := range activeDaysByMember(assignments, m.ID, r.Time) {
			worked := workedMinutes(assignments, patternsByID, m.ID, stime.Days{d})
			over := worked - threshold
			if over <= 0 {
				continue
			}
			amount := int(float64(over) * float64(hourly.RateCents) / 60.0 * (r.Params.Factor - 1))
			entries = append(entries, smodel.CostEntry{MemberID: m.ID, Day: d, Category: smodel.CategoryOvertime, Amount: amount})
		}
	}
	return entries
}

// OvertimeDailySurchargeParams configures overtime-daily-surcharge.
type OvertimeDailySurchargeParams struct {
	AfterHours         int
	AmountCentsPerHour int
}

// OvertimeDailySurchargeRule implements overtime-daily-surcharge:
// a flat per-hour surcharge on minutes worked past AfterHours in a day.
type OvertimeDailySurchargeRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    OvertimeDailySurchargeParams
}

func (r OvertimeDailySurchargeRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	threshold := r.Params.AfterHours * 60
	for _, m := range membersFor(b, r.MemberIDs) {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, d := range activeDaysFor(b, r.Time) {
			maxPossible := maxReachableMinutes(b, m.ID, stime.Days{d})
			name := fmt.Sprintf("overtime:daily-surcharge:%s:%s", m.ID, d)
			slack, ok := overtimeSlack(b, name, dayDurationTerms(b, m.ID, d), threshold, maxPossible-threshold)
			if !ok {
				continue
			}
			perMinute := float64(r.Params.AmountCentsPerHour) / 60.0
			b.AddPenalty(slack, maxInt(1, int(perMinute/cc.NormFactor)))
		}
	}
	return nil
}

func (r OvertimeDailySurchargeRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
	patternsByID := patterns.ByID()
	threshold := r.Params.AfterHours * 60

	var entries []smodel.CostEntry
	for _, m := range scoped {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, d := range activeDaysByMember(assignments, m.ID, r.Time) {
			worked := workedMinutes(assignments, patternsByID, m.ID, stime.Days{d})
			over := worked - threshold
			if over <= 0 {
				continue
			}
			amount := int(float64(over) / 60.0 * float64(r.Params.AmountCentsPerHour))
			entries = append(entries, smodel.CostEntry{MemberID: m.ID, Day: d, Category: smodel.CategoryOvertime, Amount: amount})
		}
	}
	return entries
}

// OvertimeWeeklyMultiplierParams configures overtime-weekly-multiplier.
type OvertimeWeeklyMultiplierParams struct {
	AfterHours   int
	Factor       float64
	WeekStartsOn stime.Weekday
}

// OvertimeWeeklyMultiplierRule implements
// overtime-weekly-multiplier, the weekly analogue of
// OvertimeDailyMultiplierRule.
type OvertimeWeeklyMultiplierRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    OvertimeWeeklyMultiplierParams
}

func (r OvertimeWeeklyMultiplierRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	threshold := r.Params.AfterHours * 60
	weeks := stime.SplitIntoWeeks(activeDaysFor(b, r.Time), weekStartsOn(b, r.Params.WeekStartsOn))
	for _, m := range membersFor(b, r.MemberIDs) {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		for wi, week := range weeks {
			maxPossible := maxReachableMinutes(b, m.ID, week)
			name := fmt.Sprintf("overtime:weekly-multiplier:%s:w%d", m.ID, wi)
			slack, ok := overtimeSlack(b, name, weekDurationTerms(b, m.ID, week), threshold, maxPossible-threshold)
			if !ok {
				continue
			}
			perMinute := float64(hourly.RateCents) / 60.0 * (r.Params.Factor - 1)
			b.AddPenalty(slack, maxInt(1, int(perMinute/cc.NormFactor)))
		}
	}
	return nil
}

func (r OvertimeWeeklyMultiplierRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
	patternsByID := patterns.ByID()
	threshold := r.Params.AfterHours * 60
	weeks := weeksByMember(assignments, r.Time, weekStartsOnOf(r.Params.WeekStartsOn))

	var entries []smodel.CostEntry
	for _, m := range scoped {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		for _, week := range weeks {
			worked := workedMinutes(assignments, patternsByID, m.ID, week)
			over := worked - threshold
			if over <= 0 || len(week) == 0 {
				continue
			}
			amount := int(float64(over) * float64(hourly.RateCents) / 60.0 * (r.Params.Factor - 1))
			// Attribute the weekly overtime charge to the week's last active day.
			entries = append(entries, smodel.CostEntry{MemberID: m.ID, Day: week[len(week)-1], Category: smodel.CategoryOvertime, Amount: amount})
		}
	}
	return entries
}

// OvertimeWeeklySurchargeParams configures overtime-weekly-surcharge.
type OvertimeWeeklySurchargeParams struct {
	AfterHours         int
	AmountCentsPerHour int
	WeekStartsOn       stime.Weekday
}

// OvertimeWeeklySurchargeRule implements
// overtime-weekly-surcharge, the weekly analogue of
// OvertimeDailySurchargeRule.
type OvertimeWeeklySurchargeRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    OvertimeWeeklySurchargeParams
}

func (r OvertimeWeeklySurchargeRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}
	threshold := r.Params.AfterHours * 60
	weeks := stime.SplitIntoWeeks(activeDaysFor(b, r.Time), weekStartsOn(b, r.Params.WeekStartsOn))
	for _, m := range membersFor(b, r.MemberIDs) {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for wi, week := range weeks {
			maxPossible := maxReachableMinutes(b, m.ID, week)
			name := fmt.Sprintf("overtime:weekly-surcharge:%s:w%d", m.ID, wi)
			slack, ok := overtimeSlack(b, name, weekDurationTerms(b, m.ID, week), threshold, maxPossible-threshold)
			if !ok {
				continue
			}
			perMinute := float64(r.Params.AmountCentsPerHour) / 60.0
			b.AddPenalty(slack, maxInt(1, int(perMinute/cc.NormFactor)))
		}
	}
	return nil
}

func (r OvertimeWeeklySurchargeRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
	patternsByID := patterns.ByID()
	threshold := r.Params.AfterHours * 60
	weeks := weeksByMember(assignments, r.Time, weekStartsOnOf(r.Params.WeekStartsOn))

	var entries []smodel.CostEntry
	for _, m := range scoped {
		if _, ok := m.Pay.(sentity.Hourly); !ok {
			continue
		}
		for _, week := range weeks {
			worked := workedMinutes(assignments, patternsByID, m.ID, week)
			over := worked - threshold
			if over <= 0 || len(week) == 0 {
				continue
			}
			amount := int(float64(over) / 60.0 * float64(r.Params.AmountCentsPerHour))
			entries = append(entries, smodel.CostEntry{MemberID: m.ID, Day: week[len(week)-1], Category: smodel.CategoryOvertime, Amount: amount})
		}
	}
	return entries
}

// OvertimeTier is one bracket of overtime-tiered-multiplier: hours beyond
// AfterHours (and below the next tier's AfterHours, if any) are penalized at
// Factor. Tiers must be supplied sorted ascending by AfterHours.
type OvertimeTier struct {
	AfterHours int
	Factor     float64
}

// OvertimeTieredMultiplierParams configures overtime-tiered-multiplier.
type OvertimeTieredMultiplierParams struct {
	Tiers []OvertimeTier
}

// OvertimeTieredMultiplierRule implements
// overtime-tiered-multiplier: a tax-bracket-style schedule of overtime
// multipliers applied cumulatively over the rule's entire active-day scope
// (not per day or per week — each tier's threshold is a total-hours
// cutoff over the whole scheduling window in scope).
//
// Bracket i's marginal minutes are slack_i - slack_{i+1} (slack_{i+1} = 0 for
// the last tier), where slack_i is minutes worked beyond tier i's threshold.
// Rather than materializing that difference as its own variable, the tier's
// weight is added to slack_i's objective coefficient and subtracted from
// slack_{i+1}'s — AddPenalty accumulates per variable, so the net effect on
// the objective is exactly Σ weight_i·(slack_i - slack_{i+1}).
type OvertimeTieredMultiplierRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    OvertimeTieredMultiplierParams
}

func (r OvertimeTieredMultiplierRule) Compile(b *smodel.Builder) error {
	cc := b.CostContext()
	if !cc.Installed || len(r.Params.Tiers) == 0 {
		return nil
	}
	days := activeDaysFor(b, r.Time)
	for _, m := range membersFor(b, r.MemberIDs) {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		maxPossible := maxReachableMinutes(b, m.ID, days)
		terms := weekDurationTerms(b, m.ID, days)

		slacks := make([]string, len(r.Params.Tiers))
		for i, tier := range r.Params.Tiers {
			threshold := tier.AfterHours * 60
			name := fmt.Sprintf("overtime:tiered-multiplier:%s:t%d", m.ID, i)
			slack, ok := overtimeSlack(b, name, terms, threshold, maxPossible-threshold)
			if !ok {
				continue
			}
			slacks[i] = slack
		}
		for i := len(r.Params.Tiers) - 1; i >= 0; i-- {
			if slacks[i] == "" {
				continue
			}
			perMinute := float64(hourly.RateCents) / 60.0 * (r.Params.Tiers[i].Factor - 1)
			weight := maxInt(1, int(perMinute/cc.NormFactor))
			b.AddPenalty(slacks[i], weight)
			if i+1 < len(slacks) && slacks[i+1] != "" {
				b.AddPenalty(slacks[i+1], -weight)
			}
		}
	}
	return nil
}

func (r OvertimeTieredMultiplierRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
	patternsByID := patterns.ByID()
	if len(r.Params.Tiers) == 0 {
		return nil
	}

	var entries []smodel.CostEntry
	for _, m := range scoped {
		hourly, ok := m.Pay.(sentity.Hourly)
		if !ok {
			continue
		}
		days := activeDaysByMember(assignments, m.ID, r.Time)
		if len(days) == 0 {
			continue
		}
		worked := workedMinutes(assignments, patternsByID, m.ID, days)
		lastDay := days[len(days)-1]

		for i, tier := range r.Params.Tiers {
			lo := tier.AfterHours * 60
			hi := -1
			if i+1 < len(r.Params.Tiers) {
				hi = r.Params.Tiers[i+1].AfterHours * 60
			}
			bracketMinutes := worked - lo
			if hi >= 0 && worked-lo > hi-lo {
				bracketMinutes = hi - lo
			}
			if bracketMinutes <= 0 {
				continue
			}
			amount := int(float64(bracketMinutes) * float64(hourly.RateCents) / 60.0 * (tier.Factor - 1))
			entries = append(entries, smodel.CostEntry{MemberID: m.ID, Day: lastDay, Category: smodel.CategoryOvertime, Amount: amount})
		}
	}
	return entries
}

// activeDaysByMember returns the distinct days, in ascending order, on which
// assignments places memberID while ts allows the day — the post-solve
// analogue of activeDaysFor, reconstructed without a Builder.
func activeDaysByMember(assignments []smodel.Assignment, memberID string, ts sscope.TimeScope) stime.Days {
	seen := map[stime.Day]bool{}
	var out stime.Days
	for _, a := range assignments {
		if a.MemberID != memberID || seen[a.Day] || !ts.Allows(a.Day) {
			continue
		}
		seen[a.Day] = true
		out = append(out, a.Day)
	}
	return out.SortAscending()
}

func weekStartsOnOf(override stime.Weekday) stime.Weekday {
	if override != "" {
		return override
	}
	return stime.Monday
}

// weeksByMember splits the days present across all assignments (filtered by
// ts) into weeks, the post-solve analogue of stime.SplitIntoWeeks over a
// builder's active days.
func weeksByMember(assignments []smodel.Assignment, ts sscope.TimeScope, startsOn stime.Weekday) []stime.Days {
	seen := map[stime.Day]bool{}
	var all stime.Days
	for _, a := range assignments {
		if seen[a.Day] || !ts.Allows(a.Day) {
			continue
		}
		seen[a.Day] = true
		all = append(all, a.Day)
	}
	return stime.SplitIntoWeeks(all.SortAscending(), startsOn)
}
