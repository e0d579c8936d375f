package svalidate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
)

// RenderMarkdown renders a ValidationSummary to Markdown, one section per
// group. This never
// participates in model compilation — it is read-only reporting over an
// already-computed summary.
func RenderMarkdown(summary ValidationSummary) string {
	var b strings.Builder
	b.WriteString("# Validation summary\n\n")
	for _, g := range summary.Groups {
		fmt.Fprintf(&b, "## %s — %s\n\n", g.GroupKey, strings.ToUpper(string(g.Status)))
		if g.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", g.Description)
		}
		fmt.Fprintf(&b, "- days: %s\n", humanize.Comma(int64(len(g.Days))))
		fmt.Fprintf(&b, "- passed: %d, violations: %d, errors: %d\n\n", g.PassedCount, g.ViolationCount, g.ErrorCount)
	}
	return b.String()
}

// RenderHTML round-trips RenderMarkdown's output through goldmark to produce
// an HTML fragment for callers with a browser-based review UI.
func RenderHTML(summary ValidationSummary) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderMarkdown(summary)), &buf); err != nil {
		return "", fmt.Errorf("svalidate: render html: %w", err)
	}
	return buf.String(), nil
}
