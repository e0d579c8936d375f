package sentity

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Member is a scheduling participant: roles they can cover, optional skills,
// and an optional Pay variant.
type Member struct {
	ID       string   `json:"id" validate:"required"`
	RoleIDs  []string `json:"roleIds" validate:"required,min=1"`
	SkillIDs []string `json:"skillIds,omitempty"`
	Pay      Pay      `json:"-"`
}

// Validate checks the struct tags and the ID's ':'-free invariant.
func (m *Member) Validate() error {
	if m == nil {
		return fmt.Errorf("member is nil")
	}
	if err := ValidateEntityID(m.ID); err != nil {
		return fmt.Errorf("member.id: %w", err)
	}
	if err := validate.Struct(m); err != nil {
		return err
	}
	return nil
}

// HasRole reports whether the member holds roleID.
func (m *Member) HasRole(roleID string) bool {
	for _, r := range m.RoleIDs {
		if r == roleID {
			return true
		}
	}
	return false
}

// HasSkill reports whether the member holds skillID.
func (m *Member) HasSkill(skillID string) bool {
	for _, s := range m.SkillIDs {
		if s == skillID {
			return true
		}
	}
	return false
}

// SharesAnyRole reports whether the member holds at least one role from
// roleIDs. An empty roleIDs set is the caller's responsibility to interpret
// (ShiftPattern treats empty roleIDs as "unrestricted" at a higher layer).
func (m *Member) SharesAnyRole(roleIDs []string) bool {
	for _, r := range roleIDs {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// Members is an ordered list of Member, indexed by ID for Table lookups.
type Members []*Member

// ByID builds a lookup map; used by the scope resolver and model builder,
// both of which must preserve the ordering of Members given by the input
// for deterministic variable naming, so this map is strictly
// an index, never a substitute for iterating Members itself.
func (ms Members) ByID() map[string]*Member {
	out := make(map[string]*Member, len(ms))
	for _, m := range ms {
		out[m.ID] = m
	}
	return out
}

// Find returns the member with the given ID, or nil.
func (ms Members) Find(id string) *Member {
	for _, m := range ms {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// WithRole returns, in input order, every member holding roleID.
func (ms Members) WithRole(roleID string) Members {
	var out Members
	for _, m := range ms {
		if m.HasRole(roleID) {
			out = append(out, m)
		}
	}
	return out
}

// WithSkill returns, in input order, every member holding skillID.
func (ms Members) WithSkill(skillID string) Members {
	var out Members
	for _, m := range ms {
		if m.HasSkill(skillID) {
			out = append(out, m)
		}
	}
	return out
}
