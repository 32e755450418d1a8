package cassowary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/axelerator/triton/internal/cassowary"
)

func TestSolveSimpleEquality(t *testing.T) {
	t.Parallel()
	s := cassowary.NewSolver()
	a := s.NewVariable()
	b := s.NewVariable()
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(a), cassowary.Const(5), cassowary.Required))
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(b), cassowary.Expr(a).PlusConst(3), cassowary.Required))
	require.NoError(t, s.Solve())
	assert.InDelta(t, 5, s.Value(a), 1e-6)
	assert.InDelta(t, 8, s.Value(b), 1e-6)
}

func TestSolveInequalityChain(t *testing.T) {
	t.Parallel()
	s := cassowary.NewSolver()
	a := s.NewVariable()
	b := s.NewVariable()
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(a), cassowary.Const(10), cassowary.Required))
	s.AddConstraint(cassowary.LessOrEqual(cassowary.Expr(a).PlusConst(5), cassowary.Expr(b), cassowary.Required))
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(b), cassowary.Const(0), cassowary.Strong))
	require.NoError(t, s.Solve())
	assert.GreaterOrEqual(t, s.Value(b), 15.0-1e-6)
}

func TestSolveStrongPreference(t *testing.T) {
	t.Parallel()
	s := cassowary.NewSolver()
	v := s.NewVariable()
	s.AddConstraint(cassowary.GreaterOrEqual(cassowary.Expr(v), cassowary.Const(0), cassowary.Required))
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(v), cassowary.Const(42), cassowary.Strong))
	require.NoError(t, s.Solve())
	assert.InDelta(t, 42, s.Value(v), 1e-6)
}

func TestSolveConflictingRequiredIsInfeasible(t *testing.T) {
	t.Parallel()
	s := cassowary.NewSolver()
	v := s.NewVariable()
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(v), cassowary.Const(1), cassowary.Required))
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(v), cassowary.Const(2), cassowary.Required))
	err := s.Solve()
	require.Error(t, err)
	var infeasible *cassowary.InfeasibleError
	assert.ErrorAs(t, err, &infeasible)
}

func TestSolveNeverNegative(t *testing.T) {
	t.Parallel()
	s := cassowary.NewSolver()
	v := s.NewVariable()
	s.AddConstraint(cassowary.EqualTo(cassowary.Expr(v), cassowary.Const(0), cassowary.Strong))
	require.NoError(t, s.Solve())
	assert.GreaterOrEqual(t, s.Value(v), 0.0)
}

// TestDistributedChainIsAlwaysFeasible exercises the constraint shape the
// diagram translator actually emits (a chain of required gutter
// inequalities anchored to a strong preferred size) across random preferred
// sizes and gutters, asserting the solver never reports infeasibility —
// matching the layout design's claim that a correctly translated diagram
// never produces a conflicting REQUIRED set.
func TestDistributedChainIsAlwaysFeasible(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		gutter := rapid.Float64Range(0, 50).Draw(rt, "gutter")
		s := cassowary.NewSolver()
		tops := make([]cassowary.Var, n)
		heights := make([]cassowary.Var, n)
		for i := 0; i < n; i++ {
			tops[i] = s.NewVariable()
			heights[i] = s.NewVariable()
			h := rapid.Float64Range(0, 100).Draw(rt, "h")
			s.AddConstraint(cassowary.GreaterOrEqual(cassowary.Expr(tops[i]), cassowary.Const(0), cassowary.Required))
			s.AddConstraint(cassowary.EqualTo(cassowary.Expr(heights[i]), cassowary.Const(h), cassowary.Strong))
			if i > 0 {
				bottom := cassowary.Expr(tops[i-1]).Plus(cassowary.Expr(heights[i-1]))
				s.AddConstraint(cassowary.LessOrEqual(bottom.PlusConst(gutter), cassowary.Expr(tops[i]), cassowary.Required))
			}
		}
		require.NoError(rt, s.Solve())
		for i := 0; i < n; i++ {
			assert.GreaterOrEqual(rt, s.Value(tops[i]), -1e-6)
		}
	})
}
