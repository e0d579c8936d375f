package svalidate

import (
	"testing"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMarksViolationsAndPassed(t *testing.T) {
	reporter := smodel.NewReporter()
	reporter.Track(smodel.TrackedConstraint{ID: "soft:1", Kind: smodel.TrackedRule, GroupKey: "g1"})
	reporter.Track(smodel.TrackedConstraint{ID: "soft:2", Kind: smodel.TrackedRule, GroupKey: "g1"})
	reporter.AddError(smodel.StructuralError{Kind: smodel.TrackedCoverage, Message: "no eligible members", GroupKey: "g2"})

	resp := &swire.SolverResponse{SoftViolations: []swire.SoftViolation{{ConstraintID: "soft:1", ViolationAmount: 5}}}
	items := Classify(reporter, resp)

	require.Len(t, items, 3)
	byID := map[string]Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	assert.Equal(t, StatusViolation, byID["soft:1"].Status)
	assert.Equal(t, StatusPassed, byID["soft:2"].Status)
}

func TestSummarizeGroupsByKeyAndUngroupedSingletons(t *testing.T) {
	items := []Item{
		{GroupKey: "g1", Status: StatusPassed},
		{GroupKey: "g1", Status: StatusViolation},
		{GroupKey: "", Status: StatusError},
		{GroupKey: "g2", Status: StatusError},
	}
	summary := Summarize(items)
	require.Len(t, summary.Groups, 3)

	var g1, ungrouped, g2 *Group
	for i := range summary.Groups {
		switch summary.Groups[i].GroupKey {
		case "g1":
			g1 = &summary.Groups[i]
		case "g2":
			g2 = &summary.Groups[i]
		default:
			ungrouped = &summary.Groups[i]
		}
	}
	require.NotNil(t, g1)
	require.NotNil(t, g2)
	require.NotNil(t, ungrouped)
	assert.Equal(t, GroupPartial, g1.Status)
	assert.Equal(t, GroupFailed, g2.Status)
	assert.Equal(t, GroupFailed, ungrouped.Status)
}

func TestRenderMarkdownAndHTML(t *testing.T) {
	summary := ValidationSummary{Groups: []Group{
		{GroupKey: sentity.GroupKey("g1"), Status: GroupPassed, Days: stime.Days{stime.Day("2024-02-05")}, PassedCount: 1},
	}}
	md := RenderMarkdown(summary)
	assert.Contains(t, md, "g1")
	assert.Contains(t, md, "PASSED")

	html, err := RenderHTML(summary)
	require.NoError(t, err)
	assert.Contains(t, html, "<h2")
}
