package srules

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/smodel"
	"github.com/jpfluger/shiftsolve/swire"
)

// AssignTogetherParams configures assign-together. Unlike most rules,
// assign-together is in sscope.NonScoped: it operates over an explicit
// member group carried in Params rather than a competing entity scope.
type AssignTogetherParams struct {
	MemberIDs []string
	Priority  sentity.Priority
}

// AssignTogetherRule implements assign-together.
type AssignTogetherRule struct {
	Params AssignTogetherParams
}

func (r AssignTogetherRule) Compile(b *smodel.Builder) error {
	group := membersFor(b, r.Params.MemberIDs)
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			mi, mj := group[i], group[j]
			for _, p := range b.ShiftPatterns() {
				for _, d := range b.Days() {
					aName, okA := b.Assignment(mi.ID, p.ID, d)
					bName, okB := b.Assignment(mj.ID, p.ID, d)
					if !okA || !okB {
						continue
					}
					if r.Params.Priority.IsMandatory() {
						b.AddLinear([]swire.Term{{Var: aName, Coeff: 1}, {Var: bName, Coeff: -1}}, swire.OpEQ, 0)
						continue
					}
					diff := b.BoolVar(fmt.Sprintf("together_diff_%s_%s_%s_%s", mi.ID, mj.ID, p.ID, d))
					b.AddLinear([]swire.Term{{Var: diff, Coeff: 1}, {Var: aName, Coeff: -1}, {Var: bName, Coeff: 1}}, swire.OpGE, 0)
					b.AddLinear([]swire.Term{{Var: diff, Coeff: 1}, {Var: bName, Coeff: -1}, {Var: aName, Coeff: 1}}, swire.OpGE, 0)
					b.AddPenalty(diff, r.Params.Priority.Penalty())
				}
			}
		}
	}
	return nil
}
