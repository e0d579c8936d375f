package smodel

import (
	"fmt"
	"strings"

	"github.com/jpfluger/shiftsolve/sentity"
	"github.com/jpfluger/shiftsolve/serr"
	"github.com/jpfluger/shiftsolve/swire"
)

// Finalize applies the builder-level baseline tiebreaker and optional fair
// distribution penalty, checks that every variable named in a constraint or
// the objective was actually declared, and assembles the wire request. The
// builder must not be reused afterward.
func (b *Builder) Finalize() (*swire.SolverRequest, error) {
	b.emitBaselineTiebreaker()
	b.emitFairDistribution()

	if err := b.checkDeclared(); err != nil {
		return nil, err
	}

	var terms []swire.ObjectiveTerm
	for _, name := range b.objectiveOrder {
		coeff := b.objective[name]
		if coeff == 0 {
			continue
		}
		terms = append(terms, swire.ObjectiveTerm{Var: name, Coeff: coeff})
	}

	return &swire.SolverRequest{
		Variables:   b.variables,
		Constraints: b.constraints,
		Objective:   &swire.Objective{Sense: swire.SenseMinimize, Terms: terms},
	}, nil
}

// emitBaselineTiebreaker adds a small positive weight to every declared
// assignment variable so the solver doesn't create gratuitous shifts with
// no other penalty pulling against them. Run at Finalize time since rules
// may still declare assignment variables during their own Compile.
func (b *Builder) emitBaselineTiebreaker() {
	for _, v := range b.variables {
		if strings.HasPrefix(v.Name, "assign:") {
			b.AddPenalty(v.Name, int(sentity.WeightAssignmentBase))
		}
	}
}

// emitFairDistribution implements the fairDistribution configuration option:
// for each member, an integer variable counts their total assignments, tied
// to the member's assignment sum by a hard equality. Penalizing each
// member's count directly is a no-op — Σ counts always equals the total
// number of assignments regardless of how they're split between members, so
// it never pulls against any particular distribution. Instead, fair_max and
// fair_min bound every member's count from above and below, fair_spread is
// tied to their difference, and fair_spread itself carries the FAIRNESS
// penalty: a schedule that piles assignments onto a few members widens the
// spread and costs more, without the combinatorial blowup of penalizing
// every pairwise difference directly.
func (b *Builder) emitFairDistribution() {
	if !b.fairDistribution {
		return
	}

	var countVars []string
	maxPossible := 0
	for _, m := range b.members {
		var terms []swire.Term
		for _, p := range b.patterns {
			for _, d := range b.days {
				name, ok := b.Assignment(m.ID, p.ID, d)
				if !ok {
					continue
				}
				terms = append(terms, swire.Term{Var: name, Coeff: 1})
			}
		}
		if len(terms) == 0 {
			continue
		}

		countVar := b.IntVar(fmt.Sprintf("fair_count_%s", m.ID), 0, len(terms))
		eqTerms := append(append([]swire.Term{}, terms...), swire.Term{Var: countVar, Coeff: -1})
		b.AddLinear(eqTerms, swire.OpEQ, 0)
		countVars = append(countVars, countVar)
		if len(terms) > maxPossible {
			maxPossible = len(terms)
		}
	}

	if len(countVars) < 2 {
		// Fewer than two eligible members: nothing to be unequal with.
		return
	}

	maxCount := b.IntVar("fair_max", 0, maxPossible)
	minCount := b.IntVar("fair_min", 0, maxPossible)
	for _, cv := range countVars {
		// fair_max >= count
		b.AddLinear([]swire.Term{{Var: maxCount, Coeff: 1}, {Var: cv, Coeff: -1}}, swire.OpGE, 0)
		// count >= fair_min
		b.AddLinear([]swire.Term{{Var: cv, Coeff: 1}, {Var: minCount, Coeff: -1}}, swire.OpGE, 0)
	}

	spread := b.IntVar("fair_spread", 0, maxPossible)
	b.AddLinear([]swire.Term{{Var: maxCount, Coeff: 1}, {Var: minCount, Coeff: -1}, {Var: spread, Coeff: -1}}, swire.OpEQ, 0)
	b.AddPenalty(spread, int(sentity.WeightFairness))
}

func (b *Builder) checkDeclared() error {
	declared := b.varNames
	missing := func(name string) error {
		return serr.NewKind(serr.KindConfig, "variable %q referenced but never declared", name).WithField(name)
	}

	for _, c := range b.constraints {
		for _, t := range c.Terms {
			if !declared[t.Var] {
				return missing(t.Var)
			}
		}
		for _, v := range c.Vars {
			if !declared[v] {
				return missing(v)
			}
		}
		for _, v := range c.IntervalVars {
			if !declared[v] {
				return missing(v)
			}
		}
		if c.A != "" && !declared[c.A] {
			return missing(c.A)
		}
		if c.B != "" && !declared[c.B] {
			return missing(c.B)
		}
	}
	for name := range b.objective {
		if !declared[name] {
			return missing(name)
		}
	}
	return nil
}
