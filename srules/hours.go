package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// HoursParams configures max/min-hours-day and max/min-hours-week.
type HoursParams struct {
	Hours        int
	Priority     sentity.Priority
	WeekStartsOn stime.Weekday // optional override, max/min-hours-week only
}

func dayDurationTerms(b *smodel.Builder, memberID string, day stime.Day) []swire.Term {
	var terms []swire.Term
	for _, p := range b.ShiftPatterns() {
		name, ok := b.Assignment(memberID, p.ID, day)
		if !ok {
			continue
		}
		terms = append(terms, swire.Term{Var: name, Coeff: b.PatternDuration(p.ID)})
	}
	return terms
}

func maxReachableMinutes(b *smodel.Builder, memberID string, days stime.Days) int {
	if len(days) == 0 {
		return 0
	}
	first := days[0].MustTime()
	var ranges []stime.MinuteRange
	for _, d := range days {
		offset := int(d.MustTime().Sub(first).Hours()/24) * 1440
		for _, p := range b.ShiftPatterns() {
			if _, ok := b.Assignment(memberID, p.ID, d); ok {
				mr := p.MinuteRange()
				ranges = append(ranges, stime.MinuteRange{Start: mr.Start + offset, End: mr.End + offset})
			}
		}
	}
	return stime.UnionMinutes(ranges)
}

// MaxHoursDayRule implements max-hours-day.
type MaxHoursDayRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    HoursParams
}

func (r MaxHoursDayRule) Compile(b *smodel.Builder) error {
	rhs := r.Params.Hours * 60
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			terms := dayDurationTerms(b, m.ID, d)
			emitCapped(b, terms, swire.OpLE, rhs, r.Params.Priority, "", fmt.Sprintf("max-hours-day %s %s", m.ID, d))
		}
	}
	return nil
}

// MinHoursDayRule implements min-hours-day.
type MinHoursDayRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    HoursParams
}

func (r MinHoursDayRule) Compile(b *smodel.Builder) error {
	rhs := r.Params.Hours * 60
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			if maxReachableMinutes(b, m.ID, stime.Days{d}) < rhs {
				continue // member cannot reach H that day: skip by convention
			}
			terms := dayDurationTerms(b, m.ID, d)
			emitCapped(b, terms, swire.OpGE, rhs, r.Params.Priority, "", fmt.Sprintf("min-hours-day %s %s", m.ID, d))
		}
	}
	return nil
}

func weekDurationTerms(b *smodel.Builder, memberID string, week stime.Days) []swire.Term {
	var terms []swire.Term
	for _, d := range week {
		terms = append(terms, dayDurationTerms(b, memberID, d)...)
	}
	return terms
}

// MaxHoursWeekRule implements max-hours-week.
type MaxHoursWeekRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    HoursParams
}

func (r MaxHoursWeekRule) Compile(b *smodel.Builder) error {
	rhs := r.Params.Hours * 60
	weeks := stime.SplitIntoWeeks(activeDaysFor(b, r.Time), weekStartsOn(b, r.Params.WeekStartsOn))
	for _, m := range membersFor(b, r.MemberIDs) {
		for wi, week := range weeks {
			terms := weekDurationTerms(b, m.ID, week)
			emitCapped(b, terms, swire.OpLE, rhs, r.Params.Priority, "", fmt.Sprintf("max-hours-week %s w%d", m.ID, wi))
		}
	}
	return nil
}

// MinHoursWeekRule implements min-hours-week.
type MinHoursWeekRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    HoursParams
}

func (r MinHoursWeekRule) Compile(b *smodel.Builder) error {
	rhs := r.Params.Hours * 60
	weeks := stime.SplitIntoWeeks(activeDaysFor(b, r.Time), weekStartsOn(b, r.Params.WeekStartsOn))
	for _, m := range membersFor(b, r.MemberIDs) {
		for wi, week := range weeks {
			if maxReachableMinutes(b, m.ID, week) < rhs {
				continue
			}
			terms := weekDurationTerms(b, m.ID, week)
			emitCapped(b, terms, swire.OpGE, rhs, r.Params.Priority, "", fmt.Sprintf("min-hours-week %s w%d", m.ID, wi))
		}
	}
	return nil
}
