// Package swire is the external wire adapter: it defines
// the solver request/response JSON envelope and an HTTP client that POSTs a
// SolverRequest to {baseURL}/solve and GETs {baseURL}/health.
package swire

// VariableType names the three wire variable kinds.
type VariableType string

const (
	VarTypeBool     VariableType = "bool"
	VarTypeInt      VariableType = "int"
	VarTypeInterval VariableType = "interval"
)

// Variable is one declared solver variable. Min/Max apply to "int"; Start,
// End, Size, and PresenceVar apply to "interval" (all naming other variable
// declarations by name, per the interval+no_overlap wire vocabulary).
type Variable struct {
	Type        VariableType `json:"type"`
	Name        string       `json:"name"`
	Min         int          `json:"min,omitempty"`
	Max         int          `json:"max,omitempty"`
	Start       string       `json:"start,omitempty"`
	End         string       `json:"end,omitempty"`
	Size        int          `json:"size,omitempty"`
	PresenceVar string       `json:"presenceVar,omitempty"`
}

// BoolVar declares a boolean variable.
func BoolVar(name string) Variable {
	return Variable{Type: VarTypeBool, Name: name}
}

// IntVar declares an integer variable with an inclusive [min, max] domain.
func IntVar(name string, min, max int) Variable {
	return Variable{Type: VarTypeInt, Name: name, Min: min, Max: max}
}
