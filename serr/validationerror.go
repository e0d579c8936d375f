package serr

import (
	"encoding/json"
	"strings"
)

// ValidationError captures a single config-conflict detail: a human message,
// the offending field, and the rule that produced it. It is distinct from
// svalidate's RuleViolation/CoverageViolation, which report solver-observed
// soft-constraint outcomes rather than fail-fast config problems.
type ValidationError struct {
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	RuleID  string `json:"ruleId,omitempty"`
}

func (ve *ValidationError) Error() string {
	if ve == nil {
		return ""
	}
	return ve.Message
}

// ValidationErrors aggregates multiple ValidationError values.
type ValidationErrors []*ValidationError

func (ves *ValidationErrors) Add(ve *ValidationError) {
	if ve == nil {
		return
	}
	*ves = append(*ves, ve)
}

func (ves ValidationErrors) Error() string {
	var messages []string
	for _, ve := range ves {
		messages = append(messages, ve.Error())
	}
	return strings.Join(messages, "; ")
}

func (ves ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal([]*ValidationError(ves))
}

func (ves ValidationErrors) HasErrors() bool {
	return len(ves) > 0
}
