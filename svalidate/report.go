// Package svalidate implements the validation reporter: it
// classifies each tracked constraint's post-solve state (error/violation/
// passed), groups them by groupKey, and optionally renders the result as a
// Markdown/HTML report for a review UI.
package svalidate

import (
	"fmt"
	"sort"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// Status is one tracked item's post-solve state.
type Status string

const (
	StatusError     Status = "error"
	StatusViolation Status = "violation"
	StatusPassed    Status = "passed"
)

// Item is one tracked constraint or structural error, resolved to its
// post-solve status.
type Item struct {
	ID              string
	Kind            smodel.TrackedKind
	Description     string
	Days            stime.Days
	GroupKey        sentity.GroupKey
	Status          Status
	ViolationAmount int
}

// Classify resolves every tracked constraint and structural error in
// reporter against resp's soft violations into a flat Item list, each
// carrying its error/violation/passed state.
func Classify(reporter *smodel.Reporter, resp *swire.SolverResponse) []Item {
	violated := make(map[string]int, len(resp.SoftViolations))
	for _, v := range resp.SoftViolations {
		violated[v.ConstraintID] = v.ViolationAmount
	}

	items := make([]Item, 0, len(reporter.Tracked)+len(reporter.Errors))
	for _, se := range reporter.Errors {
		items = append(items, Item{
			Kind:        se.Kind,
			Description: se.Message,
			Days:        stime.Days{se.Day},
			GroupKey:    se.GroupKey,
			Status:      StatusError,
		})
	}
	for _, tc := range reporter.Tracked {
		item := Item{
			ID: tc.ID, Kind: tc.Kind, Description: tc.Description,
			Days: tc.Days, GroupKey: tc.GroupKey, Status: StatusPassed,
		}
		if amount, found := violated[tc.ID]; found && amount != 0 {
			item.Status = StatusViolation
			item.ViolationAmount = amount
		}
		items = append(items, item)
	}
	return items
}

// GroupStatus is a group's overall rollup: "failed" if any
// member item errored, "partial" if any violated (but none errored),
// "passed" otherwise.
type GroupStatus string

const (
	GroupPassed  GroupStatus = "passed"
	GroupPartial GroupStatus = "partial"
	GroupFailed  GroupStatus = "failed"
)

// Group is one groupKey's rolled-up items.
type Group struct {
	GroupKey       sentity.GroupKey
	Kind           smodel.TrackedKind
	Description    string
	Days           stime.Days
	Status         GroupStatus
	ErrorCount     int
	ViolationCount int
	PassedCount    int
}

// ValidationSummary is summarizeValidation's output: groups in the order
// their key first appears in the item list.
type ValidationSummary struct {
	Groups []Group
}

// Summarize groups items by GroupKey.
// Items with no GroupKey are kept under a synthesized "ungrouped:{id}" key
// ("ungrouped:{n}", a running count, for items with no ID such as
// structural errors) so each surfaces as its own singleton group rather
// than being merged.
func Summarize(items []Item) ValidationSummary {
	order := []sentity.GroupKey{}
	byKey := map[sentity.GroupKey]*Group{}

	ungroupedSeq := 0
	for _, it := range items {
		key := it.GroupKey
		if key.IsEmpty() {
			ungroupedSeq++
			suffix := it.ID
			if suffix == "" {
				suffix = fmt.Sprintf("%d", ungroupedSeq)
			}
			key = sentity.GroupKey("ungrouped:" + suffix)
		}
		g, ok := byKey[key]
		if !ok {
			g = &Group{GroupKey: key, Kind: it.Kind, Description: it.Description, Status: GroupPassed}
			byKey[key] = g
			order = append(order, key)
		}
		g.Days = mergeDays(g.Days, it.Days)
		switch it.Status {
		case StatusError:
			g.ErrorCount++
		case StatusViolation:
			g.ViolationCount++
		case StatusPassed:
			g.PassedCount++
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		switch {
		case g.ErrorCount > 0:
			g.Status = GroupFailed
		case g.ViolationCount > 0:
			g.Status = GroupPartial
		default:
			g.Status = GroupPassed
		}
		groups = append(groups, *g)
	}
	return ValidationSummary{Groups: groups}
}

func mergeDays(existing, add stime.Days) stime.Days {
	seen := map[stime.Day]bool{}
	for _, d := range existing {
		seen[d] = true
	}
	out := append(stime.Days{}, existing...)
	for _, d := range add {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Sort(out)
	return out
}
