package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/stime"
	"github.com/jpfluger/shiftsolve/swire"
)

// ConsecutiveDaysParams configures both max- and min-consecutive-days.
type ConsecutiveDaysParams struct {
	Days     int
	Priority sentity.Priority
}

// MaxConsecutiveDaysRule implements max-consecutive-days: no
// window of Days+1 consecutive active days may all be worked.
type MaxConsecutiveDaysRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    ConsecutiveDaysParams
}

func (r MaxConsecutiveDaysRule) Compile(b *smodel.Builder) error {
	window := r.Params.Days + 1
	for _, m := range membersFor(b, r.MemberIDs) {
		days := activeDaysFor(b, r.Time)
		for i := 0; i+window <= len(days); i++ {
			var terms []swire.Term
			for _, d := range days[i : i+window] {
				terms = append(terms, swire.Term{Var: ensureWorks(b, m.ID, d), Coeff: 1})
			}
			emitCapped(b, terms, swire.OpLE, r.Params.Days, r.Params.Priority, "", fmt.Sprintf("max-consecutive-days %s @%s", m.ID, days[i]))
		}
	}
	return nil
}

// MinConsecutiveDaysRule implements min-consecutive-days: any
// day that starts a new streak must be followed by at least Days-1 more
// worked days.
type MinConsecutiveDaysRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    ConsecutiveDaysParams
}

func (r MinConsecutiveDaysRule) Compile(b *smodel.Builder) error {
	for _, m := range membersFor(b, r.MemberIDs) {
		days := activeDaysFor(b, r.Time)
		for idx, d := range days {
			hasYesterday := idx > 0
			var yesterday stime.Day
			if hasYesterday {
				yesterday = days[idx-1]
			}
			start := ensureStart(b, m.ID, d, yesterday, hasYesterday)

			if idx+r.Params.Days > len(days) {
				// Window doesn't fit in the remaining active days: this day
				// cannot begin a valid streak.
				b.AddLinear([]swire.Term{{Var: start, Coeff: 1}}, swire.OpLE, 0)
				continue
			}

			terms := []swire.Term{{Var: start, Coeff: -r.Params.Days}}
			for _, dd := range days[idx : idx+r.Params.Days] {
				terms = append(terms, swire.Term{Var: ensureWorks(b, m.ID, dd), Coeff: 1})
			}
			emitCapped(b, terms, swire.OpGE, 0, r.Params.Priority, "", fmt.Sprintf("min-consecutive-days %s @%s", m.ID, d))
		}
	}
	return nil
}
