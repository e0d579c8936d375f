package smodel

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
)

// TrackedKind distinguishes a coverage-originated tracked constraint from a
// rule-originated one.
type TrackedKind string

const (
	TrackedCoverage TrackedKind = "coverage"
	TrackedRule     TrackedKind = "rule"
)

// TrackedConstraint is a soft (or hard-but-trackable) constraint registered
// for the validation reporter to classify after the solve, by matching its
// ID against the solver's reported soft violations.
type TrackedConstraint struct {
	ID          string
	Kind        TrackedKind
	Description string
	Days        stime.Days
	GroupKey    sentity.GroupKey
	Mandatory   bool
}

// StructuralError records a MANDATORY requirement the builder could not
// even express — e.g. a coverage requirement with no eligible member or
// pattern. It is non-fatal to compile: the request is
// still emitted, but Reporter.CanSolve reports false.
type StructuralError struct {
	Kind     TrackedKind
	Message  string
	Day      stime.Day
	GroupKey sentity.GroupKey
}

// Reporter accumulates tracked constraints and structural errors during
// compile, for the validation reporter (svalidate) to interpret once the
// solver has replied.
type Reporter struct {
	Tracked []TrackedConstraint
	Errors  []StructuralError
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Track registers a tracked constraint.
func (r *Reporter) Track(tc TrackedConstraint) {
	r.Tracked = append(r.Tracked, tc)
}

// AddError registers a structural error.
func (r *Reporter) AddError(se StructuralError) {
	r.Errors = append(r.Errors, se)
}

// CanSolve reports whether no structural error was recorded. Callers use
// this to decide whether to submit the (still-emitted) request to the
// solver at all.
func (r *Reporter) CanSolve() bool {
	return len(r.Errors) == 0
}
