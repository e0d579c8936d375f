// Package sresult implements the response parser and cost calculator: it
// recovers assignments from a solved SolverResponse, joins them against the
// shift pattern table, and aggregates each rule's post-solve CostEntry
// values into summary totals.
package sresult

import (
	"strings"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/serr"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// assignVarPrefix is the variable-name prefix the parser recognizes;
// every other prefix is ignored.
const assignVarPrefix = "assign:"

// ParseResult is the response parser's output: the solved assignment list
// plus the status/error it was derived from.
type ParseResult struct {
	Status      swire.Status
	Error       string
	Assignments []smodel.Assignment
}

// Parse walks resp.Values for assign:* variables holding 1. If resp.Status
// doesn't carry a usable solution (INFEASIBLE, TIMEOUT, ERROR), it returns
// no assignments but preserves the status/error so the caller can report
// why.
func Parse(resp *swire.SolverResponse) ParseResult {
	result := ParseResult{Status: resp.Status, Error: resp.Error}
	if !resp.Status.IsSolved() {
		return result
	}
	for name, value := range resp.Values {
		if value != 1 || !strings.HasPrefix(name, assignVarPrefix) {
			continue
		}
		a, ok := parseAssignmentVar(name)
		if !ok {
			continue
		}
		result.Assignments = append(result.Assignments, a)
	}
	return result
}

// parseAssignmentVar splits "assign:{memberId}:{patternId}:{day}" into its
// parts, validating the day looks like YYYY-MM-DD. Any other shape is not
// an assignment variable and is ignored rather than erroring, since rules
// may declare their own colon-prefixed variables (overtime:, active:cost:).
func parseAssignmentVar(name string) (smodel.Assignment, bool) {
	parts := strings.Split(name, ":")
	if len(parts) != 4 {
		return smodel.Assignment{}, false
	}
	memberID, patternID, dayStr := parts[1], parts[2], parts[3]
	if memberID == "" || patternID == "" || !stime.LooksLikeDay(dayStr) {
		return smodel.Assignment{}, false
	}
	return smodel.Assignment{MemberID: memberID, PatternID: patternID, Day: stime.Day(dayStr)}, true
}

// ResolvedAssignment is an Assignment joined against its shift pattern, with
// the pattern's time window filled in for display/export.
type ResolvedAssignment struct {
	smodel.Assignment
	StartTime stime.TimeOfDay
	EndTime   stime.TimeOfDay
}

// ResolveAssignments joins assignments against patterns on patternId,
// dropping any whose pattern is unknown — a solved assignment naming a
// pattern absent from the table indicates a stale pattern list, not a
// recoverable per-entry error.
func ResolveAssignments(assignments []smodel.Assignment, patterns sentity.ShiftPatterns) []ResolvedAssignment {
	byID := patterns.ByID()
	out := make([]ResolvedAssignment, 0, len(assignments))
	for _, a := range assignments {
		p, ok := byID[a.PatternID]
		if !ok {
			continue
		}
		out = append(out, ResolvedAssignment{Assignment: a, StartTime: p.StartTime, EndTime: p.EndTime})
	}
	return out
}

// SolverError wraps a non-solved response into the module's JSON-marshalable
// error type, for callers that want a single error return rather than
// branching on Status themselves.
func (r ParseResult) SolverError() error {
	if r.Status.IsSolved() {
		return nil
	}
	return serr.NewKind(serr.KindSolver, "solver returned status %s: %s", r.Status, r.Error).
		WithField("status")
}
