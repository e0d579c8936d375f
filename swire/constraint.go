package swire

// Op is a linear-constraint comparison operator.
type Op string

const (
	OpLE Op = "<="
	OpGE Op = ">="
	OpEQ Op = "="
)

// Term is one coeff·var addend of a linear expression.
type Term struct {
	Var   string `json:"var"`
	Coeff int    `json:"coeff"`
}

// ConstraintKind tags the union in Constraint.
type ConstraintKind string

const (
	KindLinear      ConstraintKind = "linear"
	KindSoftLinear  ConstraintKind = "soft_linear"
	KindExactlyOne  ConstraintKind = "exactly_one"
	KindAtMostOne   ConstraintKind = "at_most_one"
	KindImplication ConstraintKind = "implication"
	KindBoolOr      ConstraintKind = "bool_or"
	KindBoolAnd     ConstraintKind = "bool_and"
	KindNoOverlap   ConstraintKind = "no_overlap"
)

// Constraint is the tagged union of every constraint shape the wire format
// supports. Only the field matching Kind is populated.
type Constraint struct {
	Kind ConstraintKind `json:"kind"`

	// linear / soft_linear
	Terms   []Term `json:"terms,omitempty"`
	Op      Op     `json:"op,omitempty"`
	Rhs     int    `json:"rhs,omitempty"`
	Penalty int    `json:"penalty,omitempty"`
	ID      string `json:"id,omitempty"`

	// exactly_one / at_most_one / bool_or / bool_and
	Vars []string `json:"vars,omitempty"`

	// implication: A => B (equivalent to the linear A - B <= 0), sent on the
	// wire as its own kind so a solver with a native implication
	// primitive doesn't have to pattern-match linear constraints back into
	// implications.
	A string `json:"a,omitempty"`
	B string `json:"b,omitempty"`

	// no_overlap
	IntervalVars []string `json:"intervalVars,omitempty"`
}

// Linear builds a hard linear constraint: Σ terms op rhs.
func Linear(terms []Term, op Op, rhs int) Constraint {
	return Constraint{Kind: KindLinear, Terms: terms, Op: op, Rhs: rhs}
}

// SoftLinear builds a soft linear constraint carrying a penalty and optional
// tracking ID.
func SoftLinear(terms []Term, op Op, rhs int, penalty int, id string) Constraint {
	return Constraint{Kind: KindSoftLinear, Terms: terms, Op: op, Rhs: rhs, Penalty: penalty, ID: id}
}

// Implication builds a ⇒ b.
func Implication(a, b string) Constraint {
	return Constraint{Kind: KindImplication, A: a, B: b}
}

// AtMostOne builds Σ vars <= 1.
func AtMostOne(vars []string) Constraint {
	return Constraint{Kind: KindAtMostOne, Vars: vars}
}

// NoOverlap builds a no_overlap constraint over interval variables.
func NoOverlap(intervalVars []string) Constraint {
	return Constraint{Kind: KindNoOverlap, IntervalVars: intervalVars}
}
