package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
)

// MinimizeCostParams configures minimize-cost. It carries no fields of its
// own today — the objective weight comes from sentity.WeightCost — but
// exists for symmetry with the other rule Params types and as a home for
// future tuning knobs.
type MinimizeCostParams struct{}

// MinimizeCostRule implements minimize-cost: during PrepareCost
// it installs the builder's shared CostContext normalization factor, then
// during Compile it adds a per-assignment penalty for hourly members and a
// per-week active(member, week) penalty for salaried members.
//
// If no in-scope member has a nonzero raw cost, PrepareCost leaves the
// context uninstalled and Compile is a no-op.
type MinimizeCostRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    MinimizeCostParams

	// weeks caches the week split computed during Compile so Cost can
	// reconstruct the same week boundaries without access to the builder.
	weeks []stime.Days
}

func (r *MinimizeCostRule) PrepareCost(b *smodel.Builder) {
	max := 0.0
	for _, m := range membersFor(b, r.MemberIDs) {
		switch pay := m.Pay.(type) {
		case sentity.Hourly:
			for _, p := range b.ShiftPatterns() {
				raw := float64(pay.RateCents) * float64(p.Duration()) / 60.0
				if raw > max {
					max = raw
				}
			}
		case sentity.Salaried:
			weekly, _ := sentity.WeeklyCostCents(pay)
			if float64(weekly) > max {
				max = float64(weekly)
			}
		}
	}
	if max == 0 {
		b.InstallCostContext(&smodel.CostContext{})
		return
	}
	b.InstallCostContext(&smodel.CostContext{
		NormFactor: max / float64(sentity.WeightCost),
		Installed:  true,
	})
}

func (r *MinimizeCostRule) Compile(b *smodel.Builder) error {
	r.weeks = stime.SplitIntoWeeks(activeDaysFor(b, r.Time), b.WeekStartsOn())

	cc := b.CostContext()
	if !cc.Installed {
		return nil
	}

	for _, m := range membersFor(b, r.MemberIDs) {
		switch pay := m.Pay.(type) {
		case sentity.Hourly:
			for _, d := range activeDaysFor(b, r.Time) {
				for _, p := range b.ShiftPatterns() {
					name, ok := b.Assignment(m.ID, p.ID, d)
					if !ok {
						continue
					}
					raw := float64(pay.RateCents) * float64(p.Duration()) / 60.0
					weight := maxInt(1, int(raw/cc.NormFactor))
					b.AddPenalty(name, weight)
				}
			}
		case sentity.Salaried:
			weekly, _ := sentity.WeeklyCostCents(pay)
			weight := maxInt(1, int(float64(weekly)/cc.NormFactor))
			for wi, week := range r.weeks {
				activeVar := b.BoolVar(fmt.Sprintf("active:cost:%s:w%d", m.ID, wi))
				for _, d := range week {
					for _, p := range b.ShiftPatterns() {
						name, ok := b.Assignment(m.ID, p.ID, d)
						if !ok {
							continue
						}
						b.AddImplication(name, activeVar)
					}
				}
				b.AddPenalty(activeVar, weight)
			}
		}
	}
	return nil
}

// Cost implements smodel.CostRule: it recomputes the same dollar amounts the
// objective was scaled from, for reporting rather than solving. Hourly
// members get one CategoryBase entry per assignment; salaried members get
// their weekly salary share distributed evenly across the days they
// actually worked that week, remainder cents front-loaded so the per-week
// sum always reconciles exactly.
func (r *MinimizeCostRule) Cost(assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []smodel.CostEntry {
	scoped := filterMembersByIDs(members, r.MemberIDs)
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
		p, ok := patternsByID[a.PatternID]
		if !ok {
			continue
		}
		amount := hourly.RateCents * p.Duration() / 60
		entries = append(entries, smodel.CostEntry{
			MemberID: a.MemberID, Day: a.Day, Category: smodel.CategoryBase, Amount: amount,
		})
	}

	for _, m := range scoped {
		salaried, ok := m.Pay.(sentity.Salaried)
		if !ok {
			continue
		}
		weekly, ok := sentity.WeeklyCostCents(salaried)
		if !ok {
			continue
		}
		for _, week := range r.weeks {
			var worked stime.Days
			for _, d := range week {
				for _, a := range assignments {
					if a.MemberID == m.ID && a.Day == d {
						worked = append(worked, d)
						break
					}
				}
			}
			if len(worked) == 0 {
				continue
			}
			base := weekly / len(worked)
			remainder := weekly % len(worked)
			for i, d := range worked {
				amount := base
				if i < remainder {
					amount++
				}
				entries = append(entries, smodel.CostEntry{
					MemberID: m.ID, Day: d, Category: smodel.CategoryBase, Amount: amount,
				})
			}
		}
	}
	return entries
}
