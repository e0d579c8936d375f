// Package sscope implements the scope resolver: it reconciles
// overlapping rule applicability so more-specific entity scopes override
// broader ones, deterministically, with later insertion winning ties.
package sscope

import (
	"fmt"

	"github.com/jpfluger/shiftsolve/sentity"
)

// EntityScope names which members a rule config applies to. Exactly one
// field may be set; the zero value means "global".
type EntityScope struct {
	MemberIDs []string `json:"memberIds,omitempty"`
	RoleIDs   []string `json:"roleIds,omitempty"`
	SkillIDs  []string `json:"skillIds,omitempty"`
}

// specificity implements ordering: memberIds > roleIds > skillIds
// > global.
func (es EntityScope) specificity() int {
	switch {
	case len(es.MemberIDs) > 0:
		return 3
	case len(es.RoleIDs) > 0:
		return 2
	case len(es.SkillIDs) > 0:
		return 1
	default:
		return 0
	}
}

// validate rejects configs that set more than one entity-scope kind: a
// rule's scope must name exactly one of MemberIDs, RoleIDs, or SkillIDs.
func (es EntityScope) validate() error {
	count := 0
	if len(es.MemberIDs) > 0 {
		count++
	}
	if len(es.RoleIDs) > 0 {
		count++
	}
	if len(es.SkillIDs) > 0 {
		count++
	}
	if count > 1 {
		return fmt.Errorf("entity scope may set only one of memberIds/roleIds/skillIds")
	}
	return nil
}

// isGlobal reports whether no entity-scope kind is set.
func (es EntityScope) isGlobal() bool {
	return es.specificity() == 0
}

// expand resolves the scope to an explicit, order-preserving set of member
// IDs present in the member table.
func (es EntityScope) expand(members sentity.Members) []string {
	if es.isGlobal() {
		var ids []string
		for _, m := range members {
			ids = append(ids, m.ID)
		}
		return ids
	}

	byID := members.ByID()
	if len(es.MemberIDs) > 0 {
		var ids []string
		for _, id := range es.MemberIDs {
			if _, ok := byID[id]; ok {
				ids = append(ids, id)
			}
		}
		return ids
	}
	if len(es.RoleIDs) > 0 {
		seen := map[string]bool{}
		var ids []string
		for _, rid := range es.RoleIDs {
			for _, m := range members.WithRole(rid) {
				if !seen[m.ID] {
					seen[m.ID] = true
					ids = append(ids, m.ID)
				}
			}
		}
		return ids
	}
	// SkillIDs
	seen := map[string]bool{}
	var ids []string
	for _, sid := range es.SkillIDs {
		for _, m := range members.WithSkill(sid) {
			if !seen[m.ID] {
				seen[m.ID] = true
				ids = append(ids, m.ID)
			}
		}
	}
	return ids
}
