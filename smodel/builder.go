package smodel

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// Builder is the compile session: owned by a single
// compile call, surrendered once the wire request is emitted. Rules borrow
// it for the duration of their Compile call and must not retain it.
type Builder struct {
	members          sentity.Members
	patterns         sentity.ShiftPatterns
	days             stime.Days
	weekStartsOn     stime.Weekday
	fairDistribution bool

	membersByID  map[string]*sentity.Member
	patternsByID map[string]*sentity.ShiftPattern

	varNames  map[string]bool
	variables []swire.Variable

	constraints []swire.Constraint

	objective      map[string]int
	objectiveOrder []string

	patternDurationCache map[string]int

	costContext *CostContext
	reporter    *Reporter

	softIDSeq int
}

// NewBuilder constructs a Builder over the given entity tables. members,
// patterns, and days are iterated in the order given throughout compile for
// determinism — callers must not reorder them between compiles that are
// expected to produce stable variable names.
func NewBuilder(members sentity.Members, patterns sentity.ShiftPatterns, days stime.Days, weekStartsOn stime.Weekday, fairDistribution bool) *Builder {
	return &Builder{
		members:              members,
		patterns:             patterns,
		days:                 days,
		weekStartsOn:         weekStartsOn,
		fairDistribution:     fairDistribution,
		membersByID:          members.ByID(),
		patternsByID:         patterns.ByID(),
		varNames:             map[string]bool{},
		objective:            map[string]int{},
		patternDurationCache: map[string]int{},
		costContext:          &CostContext{},
		reporter:             NewReporter(),
	}
}

// Members is the read-only member view.
func (b *Builder) Members() sentity.Members { return b.members }

// ShiftPatterns is the read-only pattern view.
func (b *Builder) ShiftPatterns() sentity.ShiftPatterns { return b.patterns }

// Days is the read-only active-day view.
func (b *Builder) Days() stime.Days { return b.days }

// WeekStartsOn is the configured week-boundary weekday.
func (b *Builder) WeekStartsOn() stime.Weekday { return b.weekStartsOn }

// Reporter returns the builder's tracked-constraint/structural-error sink.
func (b *Builder) Reporter() *Reporter { return b.reporter }

// CostContext returns the builder's shared cost-normalization slot. Before
// minimize-cost's PrepareCost runs, Installed is false.
func (b *Builder) CostContext() *CostContext { return b.costContext }

// InstallCostContext installs the cost-normalization scale. Called only by
// minimize-cost's PrepareCost, during Compile's first pass.
func (b *Builder) InstallCostContext(cc *CostContext) { b.costContext = cc }

// CanAssign reports whether member and pattern share a role, or the pattern
// is unrestricted.
func (b *Builder) CanAssign(member *sentity.Member, pattern *sentity.ShiftPattern) bool {
	if member == nil || pattern == nil {
		return false
	}
	return pattern.SharesRole(member.RoleIDs)
}

// PatternAvailableOnDay reports whether pattern runs on day's weekday.
func (b *Builder) PatternAvailableOnDay(pattern *sentity.ShiftPattern, day stime.Day) bool {
	if pattern == nil {
		return false
	}
	return pattern.AvailableOnWeekday(day.Weekday())
}

func assignmentVarName(memberID, patternID string, day stime.Day) string {
	return fmt.Sprintf("assign:%s:%s:%s", memberID, patternID, day)
}

// Assignment lazily declares the boolean assignment variable for
// (memberID, patternID, day) and returns its canonical name. ok is false
// when the triple is infeasible — unknown member/pattern, no shared role,
// or the pattern is unavailable that weekday — in which case no variable is
// declared.
func (b *Builder) Assignment(memberID, patternID string, day stime.Day) (name string, ok bool) {
	member, found := b.membersByID[memberID]
	if !found {
		return "", false
	}
	pattern, found := b.patternsByID[patternID]
	if !found {
		return "", false
	}
	if !b.CanAssign(member, pattern) {
		return "", false
	}
	if !b.PatternAvailableOnDay(pattern, day) {
		return "", false
	}
	name = assignmentVarName(memberID, patternID, day)
	b.declare(swire.BoolVar(name))
	return name, true
}

// IsDeclared reports whether a variable with the given name already exists.
// Rules use this to share derived variables (works_, work_start_, …) across
// multiple rule instances without redeclaring their linking constraints.
func (b *Builder) IsDeclared(name string) bool {
	return b.varNames[name]
}

func (b *Builder) declare(v swire.Variable) {
	if b.varNames[v.Name] {
		return
	}
	b.varNames[v.Name] = true
	b.variables = append(b.variables, v)
}

// BoolVar declares a boolean variable (idempotent) and returns its name.
func (b *Builder) BoolVar(name string) string {
	b.declare(swire.BoolVar(name))
	return name
}

// IntVar declares an integer variable with domain [min, max] (idempotent)
// and returns its name.
func (b *Builder) IntVar(name string, min, max int) string {
	b.declare(swire.IntVar(name, min, max))
	return name
}

// AddLinear appends a hard constraint: Σ terms op rhs.
func (b *Builder) AddLinear(terms []swire.Term, op swire.Op, rhs int) {
	b.constraints = append(b.constraints, swire.Linear(terms, op, rhs))
}

// AddSoftLinear appends a soft constraint, delegated to the wire format's
// native soft_linear primitive — the solver is assumed to translate it into
// a hard constraint plus a penalized slack internally. If id is empty, a
// sequential one is synthesized so every soft constraint can still be
// tracked.
func (b *Builder) AddSoftLinear(terms []swire.Term, op swire.Op, rhs int, penalty int, id string) string {
	if id == "" {
		b.softIDSeq++
		id = fmt.Sprintf("soft:%d", b.softIDSeq)
	}
	b.constraints = append(b.constraints, swire.SoftLinear(terms, op, rhs, penalty, id))
	return id
}

// AddImplication appends a ⇒ b as its own wire constraint kind.
func (b *Builder) AddImplication(a, bVar string) {
	b.constraints = append(b.constraints, swire.Implication(a, bVar))
}

// AddPenalty adds weight·var to the objective. Negative
// weight expresses a preference to set var to 1. Calling it more than once
// for the same var accumulates the weights.
func (b *Builder) AddPenalty(varName string, weight int) {
	if _, exists := b.objective[varName]; !exists {
		b.objectiveOrder = append(b.objectiveOrder, varName)
	}
	b.objective[varName] += weight
}

// PatternDuration returns the pattern's duration in minutes, memoized per
// builder since it is looked up often during compile.
func (b *Builder) PatternDuration(patternID string) int {
	if d, ok := b.patternDurationCache[patternID]; ok {
		return d
	}
	p, ok := b.patternsByID[patternID]
	if !ok {
		return 0
	}
	d := p.Duration()
	b.patternDurationCache[patternID] = d
	return d
}

// Compile runs the two-phase compile: every rule's PrepareCost (if it
// implements CostPreparer) runs before any rule's Compile, so costContext is
// fully installed before any modifier rule reads it regardless of resolved
// rule order.
func (b *Builder) Compile(rules []Rule) error {
	for _, r := range rules {
		if cp, ok := r.(CostPreparer); ok {
			cp.PrepareCost(b)
		}
	}
	for _, r := range rules {
		if err := r.Compile(b); err != nil {
			return err
		}
	}
	return nil
}
