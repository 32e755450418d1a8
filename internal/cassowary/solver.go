// Package cassowary implements a small linear-constraint solver in the
// spirit of the Cassowary incremental simplex algorithm: variables, linear
// expressions, weighted relational constraints at one of four strength
// bands, and a solver that finds variable values satisfying every REQUIRED
// constraint while minimizing the weighted deviation of the softer ones.
//
// Unlike the original Cassowary algorithm this solver is not incremental —
// callers accumulate constraints and call Solve once, which matches how the
// diagram layout translator uses it (build everything, solve once, read
// back coordinates).
package cassowary

import (
	"fmt"
	"sort"
)

// Var is an opaque handle to a solver variable. All variables in this
// solver are implicitly constrained to be >= 0, matching the only domain
// this package is used for (block geometry).
type Var int

// Strength is the priority band of a constraint. REQUIRED constraints must
// hold exactly; the others are soft and minimized in order of priority.
type Strength int

const (
	Required Strength = iota
	Strong
	Medium
	Weak
)

// weight returns the Big-M-style cost multiplier used for a soft
// constraint's deviation variables. The bands are spaced by three orders
// of magnitude, so a STRONG violation costs as much as a thousand MEDIUM
// violations of the same size, and likewise down the chain.
func (s Strength) weight() float64 {
	switch s {
	case Strong:
		return 1e6
	case Medium:
		return 1e3
	case Weak:
		return 1
	default:
		return 0
	}
}

// RelOp is the relational operator of a constraint, read as "Expr OP 0".
type RelOp int

const (
	Eq RelOp = iota
	Le
	Ge
)

// Term is one addend of a linear Expression: coeff * Var.
type Term struct {
	Var   Var
	Coeff float64
}

// Expression is a sum of Terms plus a constant. Term order is preserved
// (not deduplicated) so that evaluation is deterministic regardless of Go's
// randomized map iteration — callers that want canonical form can call
// Simplify.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Const builds a constant Expression.
func Const(c float64) Expression { return Expression{Constant: c} }

// Expr builds a single-term Expression referencing v with coefficient 1.
func Expr(v Var) Expression { return Expression{Terms: []Term{{Var: v, Coeff: 1}}} }

// Scaled builds a single-term Expression referencing v with the given
// coefficient.
func Scaled(v Var, coeff float64) Expression { return Expression{Terms: []Term{{Var: v, Coeff: coeff}}} }

// Plus returns e + other.
func (e Expression) Plus(other Expression) Expression {
	terms := make([]Term, 0, len(e.Terms)+len(other.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, other.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + other.Constant}
}

// PlusConst returns e + c.
func (e Expression) PlusConst(c float64) Expression {
	return Expression{Terms: e.Terms, Constant: e.Constant + c}
}

// Minus returns e - other.
func (e Expression) Minus(other Expression) Expression {
	return e.Plus(other.Scale(-1))
}

// Scale returns e * k.
func (e Expression) Scale(k float64) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Var: t.Var, Coeff: t.Coeff * k}
	}
	return Expression{Terms: terms, Constant: e.Constant * k}
}

// Simplify combines duplicate variable terms, in a deterministic order
// (ascending Var id), dropping zero-coefficient terms.
func (e Expression) Simplify() Expression {
	sums := map[Var]float64{}
	for _, t := range e.Terms {
		sums[t.Var] += t.Coeff
	}
	vars := make([]Var, 0, len(sums))
	for v := range sums {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	terms := make([]Term, 0, len(vars))
	for _, v := range vars {
		if c := sums[v]; c != 0 {
			terms = append(terms, Term{Var: v, Coeff: c})
		}
	}
	return Expression{Terms: terms, Constant: e.Constant}
}

// Constraint is "Expr OP 0" at a given Strength.
type Constraint struct {
	Expr     Expression
	Op       RelOp
	Strength Strength
}

// EqualTo builds a REQUIRED-capable "a == b" constraint at strength s.
func EqualTo(a, b Expression, s Strength) Constraint {
	return Constraint{Expr: a.Minus(b), Op: Eq, Strength: s}
}

// LessOrEqual builds "a <= b" at strength s.
func LessOrEqual(a, b Expression, s Strength) Constraint {
	return Constraint{Expr: a.Minus(b), Op: Le, Strength: s}
}

// GreaterOrEqual builds "a >= b" at strength s.
func GreaterOrEqual(a, b Expression, s Strength) Constraint {
	return Constraint{Expr: a.Minus(b), Op: Ge, Strength: s}
}

// InfeasibleError is returned by Solve when the REQUIRED constraints admit
// no feasible solution. Per the layout design this is always a translator
// bug, never a consequence of user input.
type InfeasibleError struct {
	NumRequired int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("cassowary: infeasible system of %d required constraints", e.NumRequired)
}

// Solver owns a set of non-negative variables and the constraints relating
// them. Constraints accumulate via AddConstraint; Solve computes values for
// every variable once, satisfying all REQUIRED constraints exactly and
// minimizing the weighted L1 deviation of the softer ones.
type Solver struct {
	numVars  int
	values   []float64
	pending  []Constraint
	solved   bool
}

// NewSolver returns an empty solver.
func NewSolver() *Solver {
	return &Solver{}
}

// NewVariable allocates a fresh variable, implicitly constrained >= 0.
func (s *Solver) NewVariable() Var {
	v := Var(s.numVars)
	s.numVars++
	s.values = append(s.values, 0)
	s.solved = false
	return v
}

// AddConstraint appends c to the pending list. Constraints take effect on
// the next Solve call.
func (s *Solver) AddConstraint(c Constraint) {
	s.pending = append(s.pending, c)
	s.solved = false
}

// Pending returns the number of constraints accumulated but not yet solved.
func (s *Solver) Pending() int {
	return len(s.pending)
}

// Value returns the most recently solved value of v, or 0 if Solve has not
// run yet.
func (s *Solver) Value(v Var) float64 {
	if int(v) < 0 || int(v) >= len(s.values) {
		return 0
	}
	return s.values[v]
}

// ClearPending drops all accumulated constraints without solving, leaving
// variable values untouched.
func (s *Solver) ClearPending() {
	s.pending = nil
}

// Solve submits every pending constraint to the simplex tableau, solves
// once, writes results back into Value, clamps negative results to zero
// (defensive — the system is built so this should not trigger), and clears
// the pending list. Returns InfeasibleError if the REQUIRED constraints
// conflict.
func (s *Solver) Solve() error {
	required := make([]Constraint, 0, len(s.pending))
	soft := make([]Constraint, 0, len(s.pending))
	for _, c := range s.pending {
		if c.Strength == Required || c.Op != Eq {
			// Soft inequalities are not meaningful for the shapes this
			// solver is used for (only soft equalities size text blocks);
			// treat them as hard rather than silently dropping them.
			required = append(required, c)
		} else {
			soft = append(soft, c)
		}
	}

	t := newTableau(s.numVars)
	for _, c := range required {
		t.addRequiredRow(c)
	}
	for _, c := range soft {
		t.addSoftEqualityRow(c)
	}

	if err := t.run(); err != nil {
		return err
	}

	values := make([]float64, s.numVars)
	for i := range values {
		values[i] = t.valueOf(i)
		if values[i] < 0 {
			values[i] = 0
		}
	}
	s.values = values
	s.pending = nil
	s.solved = true
	return nil
}
