package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/swire"
)

// MaxShiftsDayParams configures max-shifts-day.
type MaxShiftsDayParams struct {
	Shifts   int
	Priority sentity.Priority
}

// MaxShiftsDayRule implements max-shifts-day.
type MaxShiftsDayRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    MaxShiftsDayParams
}

func (r MaxShiftsDayRule) Compile(b *smodel.Builder) error {
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			var terms []swire.Term
			for _, p := range b.ShiftPatterns() {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				terms = append(terms, swire.Term{Var: name, Coeff: 1})
			}
			emitCapped(b, terms, swire.OpLE, r.Params.Shifts, r.Params.Priority, "", fmt.Sprintf("max-shifts-day %s %s", m.ID, d))
		}
	}
	return nil
}
