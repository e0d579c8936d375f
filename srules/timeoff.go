package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/sscope"
	"github.com/jpfluger/shiftsolve/swire"
)

// TimeOffParams configures time-off.
type TimeOffParams struct {
	Priority sentity.Priority
}

// TimeOffRule implements time-off: forces (or penalizes) every
// assignment variable for the in-scope member-day pairs.
type TimeOffRule struct {
	MemberIDs []string
	Time      sscope.TimeScope
	Params    TimeOffParams
}

func (r TimeOffRule) Compile(b *smodel.Builder) error {
	for _, m := range membersFor(b, r.MemberIDs) {
		for _, d := range activeDaysFor(b, r.Time) {
			for _, p := range b.ShiftPatterns() {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				emitCapped(b, []swire.Term{{Var: name, Coeff: 1}}, swire.OpLE, 0, r.Params.Priority, "",
					fmt.Sprintf("time-off %s %s %s", m.ID, d, p.ID))
			}
		}
	}
	return nil
}
