package smodel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// EmitStructuralConstraints emits the constraints the builder itself owns,
// before any rule compiles: no-overlap across every member's day, and one
// aggregate coverage constraint per minute-bucket of each requirement.
// Assignability needs no separate emission — Assignment already refuses to
// declare a variable for an infeasible triple.
func (b *Builder) EmitStructuralConstraints(coverages sentity.CoverageRequirements) {
	b.emitNoOverlap()
	for i, cr := range coverages {
		b.emitCoverage(cr, i)
	}
}

// emitNoOverlap emits, for every member and every day, a pairwise exclusion
// between any two patterns whose minute ranges intersect. Two patterns that
// never share a minute are never mutually exclusive, so pairwise exclusion
// is exactly the no-overlap relation — no clique/union bookkeeping is needed
// beyond it.
func (b *Builder) emitNoOverlap() {
	type eligiblePattern struct {
		varName string
		pattern *sentity.ShiftPattern
	}

	for _, m := range b.members {
		for _, d := range b.days {
			var eligible []eligiblePattern
			for _, p := range b.patterns {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				eligible = append(eligible, eligiblePattern{varName: name, pattern: p})
			}
			for i := 0; i < len(eligible); i++ {
				for j := i + 1; j < len(eligible); j++ {
					if eligible[i].pattern.MinuteRange().Overlaps(eligible[j].pattern.MinuteRange()) {
						b.AddLinear([]swire.Term{
							{Var: eligible[i].varName, Coeff: 1},
							{Var: eligible[j].varName, Coeff: 1},
						}, swire.OpLE, 1)
					}
				}
			}
		}
	}
}

// coverageBreakpoints returns the sorted, deduplicated minute offsets that
// partition reqRange into maximal sub-intervals over which the set of
// overlapping patterns never changes: reqRange's own bounds, plus every
// pattern boundary strictly inside it. A pattern overlapping one of the
// resulting [lo, hi) buckets necessarily covers it in full, since no pattern
// boundary falls inside a bucket by construction.
func coverageBreakpoints(reqRange stime.MinuteRange, patterns sentity.ShiftPatterns) []int {
	set := map[int]bool{reqRange.Start: true, reqRange.End: true}
	for _, p := range patterns {
		pr := p.MinuteRange()
		if !pr.Overlaps(reqRange) {
			continue
		}
		if pr.Start > reqRange.Start && pr.Start < reqRange.End {
			set[pr.Start] = true
		}
		if pr.End > reqRange.Start && pr.End < reqRange.End {
			set[pr.End] = true
		}
	}
	out := make([]int, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// termsKey builds a cheap fingerprint of a bucket's qualifying variable set,
// used to collapse adjacent buckets whose coverage happens to be identical
// (e.g. the breakpoint between them comes from a pattern that contributes no
// terms) back into a single constraint instead of emitting one per breakpoint.
func termsKey(terms []swire.Term) string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Var
	}
	return strings.Join(names, ",")
}

// emitCoverage emits one aggregate constraint per maximal sub-interval of the
// requirement's window rather than a single constraint over the whole span:
// a requirement spanning several patterns end-to-end (e.g. a day-long window
// satisfied jointly by a morning and an evening pattern) must have every
// covered minute independently guaranteed targetCount, not just the window's
// total assignment count — a single aggregate constraint lets the solver set
// one contributing pattern to 0 as long as another picks up the slack,
// leaving the first pattern's exclusive minutes uncovered. Partitioning on
// pattern-boundary breakpoints means every bucket's contributing pattern set
// is exactly the patterns that cover it in full, so no pattern can
// short-cover part of the window while the aggregate still holds.
func (b *Builder) emitCoverage(cr *sentity.CoverageRequirement, index int) {
	reqRange := cr.MinuteRange()
	if reqRange.End <= reqRange.Start {
		if cr.TargetCount > 0 {
			b.reporter.AddError(StructuralError{
				Kind:     TrackedCoverage,
				Message:  "coverage requirement's window is empty",
				Day:      cr.Day,
				GroupKey: cr.GroupKey,
			})
		}
		return
	}

	mandatory := cr.Priority.IsMandatory()
	breakpoints := coverageBreakpoints(reqRange, b.patterns)

	var prevKey string
	var hasPrev bool
	bucketIdx := 0
	for i := 0; i+1 < len(breakpoints); i++ {
		lo, hi := breakpoints[i], breakpoints[i+1]
		bucket := stime.MinuteRange{Start: lo, End: hi}

		var terms []swire.Term
		for _, p := range b.patterns {
			if !p.MinuteRange().Overlaps(bucket) {
				continue
			}
			for _, m := range b.members {
				if !cr.MatchesMember(m) {
					continue
				}
				name, ok := b.Assignment(m.ID, p.ID, cr.Day)
				if !ok {
					continue
				}
				terms = append(terms, swire.Term{Var: name, Coeff: 1})
			}
		}

		key := termsKey(terms)
		if hasPrev && key == prevKey {
			continue // identical coverage as the preceding bucket: already emitted
		}
		prevKey, hasPrev = key, true

		if len(terms) == 0 {
			if cr.TargetCount > 0 {
				b.reporter.AddError(StructuralError{
					Kind:     TrackedCoverage,
					Message:  fmt.Sprintf("no eligible member/pattern combination covers minutes %d-%d of this coverage requirement", lo, hi),
					Day:      cr.Day,
					GroupKey: cr.GroupKey,
				})
			}
			continue
		}

		id := fmt.Sprintf("coverage:%d:%s:%d", index, cr.Day, bucketIdx)
		bucketIdx++
		if mandatory {
			b.AddLinear(terms, swire.OpGE, cr.TargetCount)
		} else {
			id = b.AddSoftLinear(terms, swire.OpGE, cr.TargetCount, cr.Priority.Penalty(), id)
		}

		b.reporter.Track(TrackedConstraint{
			ID:          id,
			Kind:        TrackedCoverage,
			Description: fmt.Sprintf("coverage %s %d-%d of %s-%s (target %d)", cr.Day, lo, hi, cr.StartTime, cr.EndTime, cr.TargetCount),
			Days:        stime.Days{cr.Day},
			GroupKey:    cr.GroupKey,
			Mandatory:   mandatory,
		})
	}
}
