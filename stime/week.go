package stime

// SplitIntoWeeks scans the ascending day list and cuts a new week whenever
// the current date's weekday equals weekStartsOn and it is not the first
// date of the current accumulator.
func SplitIntoWeeks(days Days, weekStartsOn Weekday) []Days {
	if len(days) == 0 {
		return nil
	}

	var weeks []Days
	var current Days
	for _, d := range days {
		if len(current) > 0 && d.Weekday() == weekStartsOn {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, d)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// MinuteRange is a half-open [Start, End) span of minutes-since-midnight,
// allowing End > 1440 to represent a shift that crosses midnight.
type MinuteRange struct {
	Start int
	End   int
}

// Overlaps reports whether two minute ranges share at least one minute.
func (mr MinuteRange) Overlaps(other MinuteRange) bool {
	return mr.Start < other.End && other.Start < mr.End
}

// UnionMinutes sorts ranges by start ascending, sweeps, and accumulates the
// total length of the merged (non-overlapping) coverage of all ranges. Used
// to cap per-day working minutes under the no-overlap assumption that a
// member can occupy only the union of their assigned ranges, never
// double-count overlapping minutes.
func UnionMinutes(ranges []MinuteRange) int {
	if len(ranges) == 0 {
		return 0
	}

	sorted := make([]MinuteRange, len(ranges))
	copy(sorted, ranges)
	// Simple insertion sort by Start: these lists are small (per member/day
	// pattern counts), and avoids importing sort for a handful of elements
	// while keeping behavior obviously stable.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Start > sorted[j].Start; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	total := 0
	curStart, curEnd := sorted[0].Start, sorted[0].End
	for _, r := range sorted[1:] {
		if r.Start > curEnd {
			total += curEnd - curStart
			curStart, curEnd = r.Start, r.End
			continue
		}
		if r.End > curEnd {
			curEnd = r.End
		}
	}
	total += curEnd - curStart
	return total
}
