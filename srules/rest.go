package srules

import (
	"fmt"
	"time"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// MinRestBetweenShiftsParams configures min-rest-between-shifts.
type MinRestBetweenShiftsParams struct {
	Hours    int
	Priority sentity.Priority
}

// MinRestBetweenShiftsRule implements min-rest-between-shifts.
type MinRestBetweenShiftsRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    MinRestBetweenShiftsParams
}

func patternAbsoluteWindow(day stime.Day, startMin, endMin int) (start, end time.Time) {
	base := day.MustTime()
	return base.Add(time.Duration(startMin) * time.Minute), base.Add(time.Duration(endMin) * time.Minute)
}

// restGapMinutes returns the non-overlapping gap between two windows: 0 if
// they overlap, otherwise the minutes strictly between them.
func restGapMinutes(aStart, aEnd, bStart, bEnd time.Time) float64 {
	if !aEnd.After(bStart) {
		return bStart.Sub(aEnd).Minutes()
	}
	if !bEnd.After(aStart) {
		return aStart.Sub(bEnd).Minutes()
	}
	return 0
}

func (r MinRestBetweenShiftsRule) Compile(b *smodel.Builder) error {
	requiredMinutes := float64(r.Params.Hours * 60)
	// Lookahead bound: a gap requirement under H hours can only be violated
	// by shifts within H/24 + 2 days of each other (one day for a shift that
	// ends after midnight, one for H/24 rounding down).
	dayWindow := r.Params.Hours/24 + 2

	for _, m := range membersFor(b, r.MemberIDs) {
		days := activeDaysFor(b, r.Time)
		for i, dayX := range days {
			for j := i; j < len(days) && j <= i+dayWindow; j++ {
				dayY := days[j]
				for _, pa := range b.ShiftPatterns() {
					nameA, okA := b.Assignment(m.ID, pa.ID, dayX)
					if !okA {
						continue
					}
					aStart, aEnd := patternAbsoluteWindow(dayX, stime.TimeToMinutes(pa.StartTime), stime.NormalizeEnd(pa.StartTime, pa.EndTime))

					for _, pb := range b.ShiftPatterns() {
						if i == j && pa.ID >= pb.ID {
							continue // same-day: only consider each unordered pair once
						}
						nameB, okB := b.Assignment(m.ID, pb.ID, dayY)
						if !okB {
							continue
						}
						bStart, bEnd := patternAbsoluteWindow(dayY, stime.TimeToMinutes(pb.StartTime), stime.NormalizeEnd(pb.StartTime, pb.EndTime))

						gap := restGapMinutes(aStart, aEnd, bStart, bEnd)
						if gap >= requiredMinutes {
							continue
						}
						terms := []swire.Term{{Var: nameA, Coeff: 1}, {Var: nameB, Coeff: 1}}
						emitCapped(b, terms, swire.OpLE, 1, r.Params.Priority, "",
							fmt.Sprintf("min-rest-between-shifts %s %s/%s %s/%s", m.ID, dayX, pa.ID, dayY, pb.ID))
					}
				}
			}
		}
	}
	return nil
}
