package sscope

import (
	"fmt"
	"sort"

	"github.com/jpfluger/shiftsolve/sentity"
)

// RawRuleConfig is one (ruleName, config) entry as supplied by the caller,
// before scope resolution.
type RawRuleConfig struct {
	RuleName string
	Entity   EntityScope
	Time     TimeScope
	// Params is the rule-specific configuration payload; the resolver never
	// inspects it, only clones the RawRuleConfig's scope fields.
	Params interface{}
}

// ResolvedRuleConfig is the output of resolution: its entity scope is always
// an explicit member-ID set.
type ResolvedRuleConfig struct {
	RuleName  string
	MemberIDs []string
	Time      TimeScope
	Params    interface{}
}

// NonScoped lists rule names exempt from scope resolution; today only
// assign-together, since it operates over an explicit group of members by
// construction rather than a competing entity scope.
var NonScoped = map[string]bool{
	"assign-together": true,
}

type indexedEntry struct {
	raw   RawRuleConfig
	index int
}

// Resolve partitions every rule's entity scope into disjoint member-ID sets:
// groups rules sharing the same scope group, sorts each group by
// specificity (ties broken by later insertion winning), and claims members
// in that order so a more specific rule's explicit scope always wins over a
// broader one.
func Resolve(rules []RawRuleConfig, members sentity.Members) ([]ResolvedRuleConfig, error) {
	for i, r := range rules {
		if err := r.Entity.validate(); err != nil {
			return nil, fmt.Errorf("rule[%d] %s: %w", i, r.RuleName, err)
		}
		if err := r.Time.validate(); err != nil {
			return nil, fmt.Errorf("rule[%d] %s: %w", i, r.RuleName, err)
		}
	}

	// Group scoped entries by (ruleName, timeScopeKey), remembering each
	// entry's original position so the final result can be emitted in
	// input order.
	type groupKey struct {
		rule string
		time string
	}
	groups := map[groupKey][]indexedEntry{}
	var groupOrder []groupKey

	resolved := make(map[int]ResolvedRuleConfig)
	passthrough := map[int]bool{}

	for i, r := range rules {
		if NonScoped[r.RuleName] {
			passthrough[i] = true
			continue
		}
		gk := groupKey{rule: r.RuleName, time: r.Time.key()}
		if _, ok := groups[gk]; !ok {
			groupOrder = append(groupOrder, gk)
		}
		groups[gk] = append(groups[gk], indexedEntry{raw: r, index: i})
	}

	for _, gk := range groupOrder {
		entries := groups[gk]

		// Sort descending by specificity; ties broken by later insertion
		// index first.
		sort.SliceStable(entries, func(a, b int) bool {
			sa := entries[a].raw.Entity.specificity()
			sb := entries[b].raw.Entity.specificity()
			if sa != sb {
				return sa > sb
			}
			return entries[a].index > entries[b].index
		})

		claimed := map[string]bool{}
		for _, e := range entries {
			ids := e.raw.Entity.expand(members)
			var remainder []string
			for _, id := range ids {
				if !claimed[id] {
					remainder = append(remainder, id)
				}
			}
			if len(remainder) == 0 {
				// Explicit scope matched nobody new: drop it entirely,
				// no fallback to a broader scope.
				continue
			}
			for _, id := range remainder {
				claimed[id] = true
			}
			resolved[e.index] = ResolvedRuleConfig{
				RuleName:  e.raw.RuleName,
				MemberIDs: remainder,
				Time:      e.raw.Time,
				Params:    e.raw.Params,
			}
		}
	}

	var out []ResolvedRuleConfig
	for i, r := range rules {
		if passthrough[i] {
			out = append(out, ResolvedRuleConfig{
				RuleName: r.RuleName,
				Time:     r.Time,
				Params:   r.Params,
			})
			continue
		}
		if rc, ok := resolved[i]; ok {
			out = append(out, rc)
		}
	}
	return out, nil
}
