package sresult

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
)

// MemberCostSummary is one member's aggregated cost entries.
type MemberCostSummary struct {
	Categories map[string]int
	TotalHours float64
}

// CostSummary is the full aggregation names: byMember, byDay,
// byCategory, and a grand total.
type CostSummary struct {
	ByMember   map[string]*MemberCostSummary
	ByDay      map[stime.Day]int
	ByCategory map[string]int
	Total      int
}

func newCostSummary() *CostSummary {
	return &CostSummary{
		ByMember:   map[string]*MemberCostSummary{},
		ByDay:      map[stime.Day]int{},
		ByCategory: map[string]int{},
	}
}

// CalculateCost runs every rule's Cost method, in the order rules were
// compiled, and aggregates the returned CostEntry values.
// Rules that don't implement smodel.CostRule are skipped; every CostEntry is
// folded into all four aggregations regardless of which rule produced it.
func CalculateCost(rules []smodel.Rule, assignments []smodel.Assignment, members sentity.Members, patterns sentity.ShiftPatterns) *CostSummary {
	summary := newCostSummary()
	patternsByID := patterns.ByID()

	for _, rule := range rules {
		costRule, ok := rule.(smodel.CostRule)
		if !ok {
			continue
		}
		for _, entry := range costRule.Cost(assignments, members, patterns) {
			addEntry(summary, entry)
		}
	}

	// totalHours per member is derived from the resolved assignment list
	// itself, independent of which rules contributed cost entries, since a
	// member can have worked hours with zero cost entries (e.g. an unpaid
	// volunteer Member with no Pay variant set).
	for _, a := range assignments {
		if p, ok := patternsByID[a.PatternID]; ok {
			ms := memberSummary(summary, a.MemberID)
			ms.TotalHours += float64(p.Duration()) / 60.0
		}
	}
	return summary
}

func memberSummary(summary *CostSummary, memberID string) *MemberCostSummary {
	ms, ok := summary.ByMember[memberID]
	if !ok {
		ms = &MemberCostSummary{Categories: map[string]int{}}
		summary.ByMember[memberID] = ms
	}
	return ms
}

func addEntry(summary *CostSummary, e smodel.CostEntry) {
	ms := memberSummary(summary, e.MemberID)
	ms.Categories[e.Category] += e.Amount

	summary.ByDay[e.Day] += e.Amount
	summary.ByCategory[e.Category] += e.Amount
	summary.Total += e.Amount
}
