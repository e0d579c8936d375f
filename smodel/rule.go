// Package smodel is the model builder: it allocates
// variables, holds the constraint and penalty lists, exposes the protocol
// methods rules use to emit constraints, and enforces the structural
// coverage/no-overlap/assignability constraints itself before any rule
// compiles.
package smodel

import (
	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
)

// Assignment is one (member, pattern, day) triple the response parser
// recovered from a solved assign:* variable, or that a rule's Cost method
// receives to compute post-solve cost contributions.
type Assignment struct {
	MemberID  string
	PatternID string
	Day       stime.Day
}

// Cost categories emitted by CostRule.Cost implementations.
const (
	CategoryBase     = "BASE"
	CategoryPremium  = "PREMIUM"
	CategoryOvertime = "OVERTIME"
)

// CostEntry is one labor-cost contribution, in the smallest currency unit
// (cents). Tag carries an optional human-readable label for the
// contribution — e.g. the holiday name behind a PREMIUM entry — and is
// empty when the category needs no further qualification.
type CostEntry struct {
	MemberID string
	Day      stime.Day
	Category string
	Tag      string
	Amount   int
}

// Rule is the compilation protocol every rule kind implements: it reads the
// builder's entity tables and emits variables, constraints, and penalties.
// Rules with an empty resolved scope must compile to a no-op rather than
// erroring.
type Rule interface {
	Compile(b *Builder) error
}

// CostRule is implemented by rules that also contribute post-solve cost
// entries (minimize-cost and its modifiers).
type CostRule interface {
	Rule
	Cost(assignments []Assignment, members sentity.Members, patterns sentity.ShiftPatterns) []CostEntry
}

// CostPreparer is implemented only by minimize-cost. Builder.Compile runs
// every rule's PrepareCost before any rule's Compile — a two-phase compile
// in place of a same-pass mutable costContext: normFactor is computed and
// installed before any modifier rule can read it, making the objective
// independent of where minimize-cost sits in the resolved rule order.
type CostPreparer interface {
	PrepareCost(b *Builder)
}
