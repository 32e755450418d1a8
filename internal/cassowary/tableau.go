package cassowary

import "math"

// bigM is the Big-M penalty applied to artificial variables: large enough
// to dominate every real cost in this domain (block coordinates stay in the
// low thousands of pixels) while remaining far from float64's range limits.
const bigM = 1e9

const epsilon = 1e-7

// tableau is a dense Big-M simplex tableau. Columns 0..numOriginal-1 are the
// caller's variables; columns beyond that are row-local slack, surplus,
// artificial, or deviation variables introduced while normalizing
// constraints into equalities over non-negative variables.
type tableau struct {
	numOriginal int
	cost        []float64   // cost[j] for every column, including original vars (always 0)
	rows        [][]float64 // each row has len(cost)+1 entries; last is RHS
	basic       []int       // basic[i] = column index basic in row i
	artificial  map[int]bool
}

func newTableau(numOriginal int) *tableau {
	return &tableau{
		numOriginal: numOriginal,
		cost:        make([]float64, numOriginal),
		artificial:  map[int]bool{},
	}
}

// addColumn appends a new column (present in no existing row except the one
// currently being built) with the given cost, returning its index.
func (t *tableau) addColumn(cost float64) int {
	idx := len(t.cost)
	t.cost = append(t.cost, cost)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i][:len(t.rows[i])-1], 0, t.rows[i][len(t.rows[i])-1])
	}
	return idx
}

// newRow starts a fresh row of the current width (all zero), to be filled
// in by the caller before being appended via commitRow.
func (t *tableau) newRow() []float64 {
	row := make([]float64, len(t.cost)+1)
	return row
}

func (t *tableau) commitRow(row []float64, basicCol int) {
	// Pad row to current width in case columns were added by other rows
	// after this row's coefficients were computed for original variables
	// only; normalizeCoeffs always runs before any addColumn for this row,
	// so row is already numOriginal-wide plus any row-local extras appended
	// directly, but other rows' addColumn calls may have widened t.cost
	// since. Pad with zeros for those.
	for len(row) < len(t.cost)+1 {
		row = append(row[:len(row)-1], 0, row[len(row)-1])
	}
	t.rows = append(t.rows, row)
	t.basic = append(t.basic, basicCol)
}

// coeffRow builds a row of length numOriginal from an Expression's terms,
// and returns the (possibly sign-flipped) RHS alongside the final relation.
func coeffRow(numOriginal int, expr Expression, op RelOp) (coeffs []float64, rhs float64, finalOp RelOp) {
	coeffs = make([]float64, numOriginal)
	e := expr.Simplify()
	for _, term := range e.Terms {
		coeffs[term.Var] += term.Coeff
	}
	rhs = -e.Constant
	finalOp = op
	if rhs < 0 {
		for i := range coeffs {
			coeffs[i] = -coeffs[i]
		}
		rhs = -rhs
		switch op {
		case Le:
			finalOp = Ge
		case Ge:
			finalOp = Le
		default:
			finalOp = Eq
		}
	}
	return coeffs, rhs, finalOp
}

// addRequiredRow encodes a REQUIRED (or any non-soft) constraint as one
// row of the tableau, introducing slack/surplus/artificial columns as
// needed so every row starts from a feasible basic variable.
func (t *tableau) addRequiredRow(c Constraint) {
	coeffs, rhs, op := coeffRow(t.numOriginal, c.Expr, c.Op)
	row := t.newRow()
	copy(row, coeffs)
	row[len(row)-1] = rhs

	switch op {
	case Le:
		slack := t.addColumn(0)
		row = append(row[:len(row)-1], 0, rhs)
		row[slack] = 1
		t.commitRow(row, slack)
	case Ge:
		surplus := t.addColumn(0)
		artificial := t.addColumn(bigM)
		row = append(row[:len(row)-1], 0, 0, rhs)
		row[surplus] = -1
		row[artificial] = 1
		t.commitRow(row, artificial)
		t.artificial[artificial] = true
	default: // Eq
		artificial := t.addColumn(bigM)
		row = append(row[:len(row)-1], 0, rhs)
		row[artificial] = 1
		t.commitRow(row, artificial)
		t.artificial[artificial] = true
	}
}

// addSoftEqualityRow encodes a soft "expr == 0" constraint with a pair of
// non-negative deviation variables (plus, minus): expr + plus - minus = 0.
// One of the two is used directly as the row's basic variable, so no
// artificial is needed. The objective charges the constraint's weight for
// either deviation.
func (t *tableau) addSoftEqualityRow(c Constraint) {
	coeffs, rhs, _ := coeffRow(t.numOriginal, c.Expr, Eq)
	w := c.Strength.weight()
	plus := t.addColumn(w)
	minus := t.addColumn(w)
	row := t.newRow() // already full width: addColumn above widened it
	copy(row, coeffs)
	row[plus] = 1
	row[minus] = -1
	row[len(row)-1] = rhs
	t.commitRow(row, plus)
}

// valueOf returns the solved value of original column j.
func (t *tableau) valueOf(j int) float64 {
	for i, b := range t.basic {
		if b == j {
			return t.rows[i][len(t.rows[i])-1]
		}
	}
	return 0
}

// run executes the Big-M simplex primal algorithm until optimal or
// infeasible.
func (t *tableau) run() error {
	if len(t.rows) == 0 {
		return nil
	}
	width := len(t.cost)
	maxIter := 200 + 50*width
	for iter := 0; iter < maxIter; iter++ {
		reduced := t.reducedCosts()
		enter := -1
		best := -epsilon
		for j := 0; j < width; j++ {
			if reduced[j] < best {
				best = reduced[j]
				enter = j
			}
		}
		if enter == -1 {
			break // optimal
		}
		leave := -1
		bestRatio := math.Inf(1)
		for i, row := range t.rows {
			a := row[enter]
			if a <= epsilon {
				continue
			}
			ratio := row[len(row)-1] / a
			if ratio < bestRatio-epsilon {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return &InfeasibleError{NumRequired: len(t.rows)}
		}
		t.pivot(leave, enter)
	}

	for i, b := range t.basic {
		if t.artificial[b] && t.rows[i][len(t.rows[i])-1] > epsilon {
			return &InfeasibleError{NumRequired: len(t.rows)}
		}
	}
	return nil
}

// reducedCosts computes c_j - z_j for every column under the current basis.
func (t *tableau) reducedCosts() []float64 {
	width := len(t.cost)
	reduced := make([]float64, width)
	copy(reduced, t.cost)
	for i, b := range t.basic {
		cb := t.cost[b]
		if cb == 0 {
			continue
		}
		row := t.rows[i]
		for j := 0; j < width; j++ {
			reduced[j] -= cb * row[j]
		}
	}
	return reduced
}

func (t *tableau) pivot(row, col int) {
	pivotVal := t.rows[row][col]
	r := t.rows[row]
	for j := range r {
		r[j] /= pivotVal
	}
	for i := range t.rows {
		if i == row {
			continue
		}
		factor := t.rows[i][col]
		if factor == 0 {
			continue
		}
		for j := range t.rows[i] {
			t.rows[i][j] -= factor * r[j]
		}
	}
	t.basic[row] = col
}
