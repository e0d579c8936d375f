// Package srules is the rule compilation library: each rule
// kind is a small value implementing smodel.Rule (and optionally
// smodel.CostRule / smodel.CostPreparer), reading the model builder's
// entity tables and emitting variables, constraints, and penalties. Rules
// with an empty resolved scope compile to a no-op.
package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// toSet builds a membership set from an ID list.
func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// filterMembersByIDs returns, in all's order, the members named by ids.
func filterMembersByIDs(all sentity.Members, ids []string) sentity.Members {
	if len(ids) == 0 {
		return nil
	}
	want := toSet(ids)
	var out sentity.Members
	for _, m := range all {
		if want[m.ID] {
			out = append(out, m)
		}
	}
	return out
}

// membersFor returns, in builder order, the members named by ids.
func membersFor(b *smodel.Builder, ids []string) sentity.Members {
	return filterMembersByIDs(b.Members(), ids)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// activeDaysFor returns the builder's active days passing ts's filter, in
// the builder's existing ascending order.
func activeDaysFor(b *smodel.Builder, ts sscope.TimeScope) stime.Days {
	var out stime.Days
	for _, d := range b.Days() {
		if ts.Allows(d) {
			out = append(out, d)
		}
	}
	return out
}

// weekStartsOn resolves a per-rule override or falls back to the builder's
// default.
func weekStartsOn(b *smodel.Builder, override stime.Weekday) stime.Weekday {
	if override != "" {
		return override
	}
	return b.WeekStartsOn()
}

// negated returns terms with every coefficient's sign flipped.
func negated(terms []swire.Term) []swire.Term {
	out := make([]swire.Term, len(terms))
	for i, t := range terms {
		out[i] = swire.Term{Var: t.Var, Coeff: -t.Coeff}
	}
	return out
}

// ensureWorks lazily declares and links works_{memberID}_{day}: a boolean
// that is 1 iff the member has at least one assignment that day. Idempotent
// across rules and calls, since more than one rule (e.g. max- and
// min-consecutive-days) may reference the same day.
func ensureWorks(b *smodel.Builder, memberID string, day stime.Day) string {
	name := fmt.Sprintf("works_%s_%s", memberID, day)
	if b.IsDeclared(name) {
		return name
	}
	b.BoolVar(name)

	var terms []swire.Term
	for _, p := range b.ShiftPatterns() {
		aName, ok := b.Assignment(memberID, p.ID, day)
		if !ok {
			continue
		}
		terms = append(terms, swire.Term{Var: aName, Coeff: 1})
		b.AddImplication(aName, name)
	}
	if len(terms) == 0 {
		b.AddLinear([]swire.Term{{Var: name, Coeff: 1}}, swire.OpLE, 0)
		return name
	}
	// works <= Σ assigns
	upper := append([]swire.Term{{Var: name, Coeff: 1}}, negated(terms)...)
	b.AddLinear(upper, swire.OpLE, 0)
	return name
}

// ensureStart lazily declares and links work_start_{memberID}_{day}: a
// boolean that is 1 iff day begins a new streak of worked days.
func ensureStart(b *smodel.Builder, memberID string, day stime.Day, yesterday stime.Day, hasYesterday bool) string {
	name := fmt.Sprintf("work_start_%s_%s", memberID, day)
	if b.IsDeclared(name) {
		return name
	}
	b.BoolVar(name)
	today := ensureWorks(b, memberID, day)

	if !hasYesterday {
		// No prior day in scope: start == works(today).
		b.AddLinear([]swire.Term{{Var: name, Coeff: 1}, {Var: today, Coeff: -1}}, swire.OpLE, 0)
		b.AddLinear([]swire.Term{{Var: today, Coeff: 1}, {Var: name, Coeff: -1}}, swire.OpLE, 0)
		return name
	}

	yest := ensureWorks(b, memberID, yesterday)
	// start <= works(today)
	b.AddLinear([]swire.Term{{Var: name, Coeff: 1}, {Var: today, Coeff: -1}}, swire.OpLE, 0)
	// start <= 1 - works(yesterday)
	b.AddLinear([]swire.Term{{Var: name, Coeff: 1}, {Var: yest, Coeff: 1}}, swire.OpLE, 1)
	// start >= works(today) - works(yesterday)
	b.AddLinear([]swire.Term{{Var: today, Coeff: 1}, {Var: yest, Coeff: -1}, {Var: name, Coeff: -1}}, swire.OpLE, 0)
	return name
}

// emitCapped adds either a hard or a soft (tracked) linear constraint
// depending on priority, the common shape most rule kinds share.
func emitCapped(b *smodel.Builder, terms []swire.Term, op swire.Op, rhs int, priority sentity.Priority, groupKey sentity.GroupKey, description string) {
	if len(terms) == 0 {
		return
	}
	if priority.IsMandatory() {
		b.AddLinear(terms, op, rhs)
		return
	}
	id := b.AddSoftLinear(terms, op, rhs, priority.Penalty(), "")
	b.Reporter().Track(smodel.TrackedConstraint{
		ID:          id,
		Kind:        smodel.TrackedRule,
		Description: description,
		GroupKey:    groupKey,
		Mandatory:   false,
	})
}
