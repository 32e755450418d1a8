package cassowary

import (
	"github.com/axelerator/triton/internal/metrics"
)

// BlockId is an opaque handle into a Layout's block arena. External code
// never holds a block's internal Vars directly — it asks the Layout for
// them by id.
type BlockId int

// block holds a rectangle's four solver variables and the values written
// back after Solve. A text block additionally carries the line height used
// to size it and its wrapped content.
type block struct {
	x, y, width, height Var
	xVal, yVal, wVal, hVal float64
	lineHeight             float64
	wrappedLines           []string
}

// Orientation selects which axis distribute/align operates on.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Anchor selects which edge (or middle) align pins together.
type Anchor int

const (
	Start Anchor = iota
	Middle
	End
)

// Layout is a solver session over a growing arena of blocks: create blocks,
// accumulate constraints (directly or via the distribute/align helpers),
// solve once, then read back concrete coordinates.
type Layout struct {
	solver *Solver
	blocks []*block
	right  Var
	bottom Var
}

// NewLayout creates an empty layout session.
func NewLayout() *Layout {
	s := NewSolver()
	return &Layout{
		solver: s,
		right:  s.NewVariable(),
		bottom: s.NewVariable(),
	}
}

// AddBlock creates a free block: four new variables, each REQUIRED to be
// >= 0 (redundant with the solver's implicit non-negativity but kept
// explicit to document the invariant), and extends the layout's bounding
// right/bottom to REQUIRE covering this block.
func (l *Layout) AddBlock() BlockId {
	b := &block{
		x:      l.solver.NewVariable(),
		y:      l.solver.NewVariable(),
		width:  l.solver.NewVariable(),
		height: l.solver.NewVariable(),
	}
	l.blocks = append(l.blocks, b)
	id := BlockId(len(l.blocks) - 1)
	l.solver.AddConstraint(GreaterOrEqual(Expr(b.x), Const(0), Required))
	l.solver.AddConstraint(GreaterOrEqual(Expr(b.y), Const(0), Required))
	l.solver.AddConstraint(GreaterOrEqual(Expr(b.width), Const(0), Required))
	l.solver.AddConstraint(GreaterOrEqual(Expr(b.height), Const(0), Required))
	l.solver.AddConstraint(GreaterOrEqual(Expr(l.right), l.Right(id), Required))
	l.solver.AddConstraint(GreaterOrEqual(Expr(l.bottom), l.Bottom(id), Required))
	return id
}

// AddTextBlock wraps text to maxChars columns, measures each wrapped line
// at pixelSize, and adds STRONG constraints pinning the new block's width
// and height to the preferred content size (max line width + 2*padding;
// lineCount * lineHeight + 2*padding). Returns the block and the materialized wrapped
// lines, which the caller keeps for drawing — word wrapping is not
// recomputed later.
func (l *Layout) AddTextBlock(text string, maxChars int, padding, pixelSize float64, family metrics.Family) (BlockId, []string, error) {
	lines := metrics.WrapToColumns(text, maxChars)
	lineHeight, err := metrics.LineHeight(pixelSize, family)
	if err != nil {
		return 0, nil, err
	}
	var maxWidth float64
	for _, ln := range lines {
		size, err := metrics.Measure(ln, pixelSize, family)
		if err != nil {
			return 0, nil, err
		}
		if size.Width > maxWidth {
			maxWidth = size.Width
		}
	}
	prefWidth := maxWidth + 2*padding
	prefHeight := float64(len(lines))*lineHeight + 2*padding

	id := l.AddBlock()
	b := l.blocks[id]
	b.lineHeight = lineHeight
	b.wrappedLines = lines
	l.solver.AddConstraint(EqualTo(Expr(b.width), Const(prefWidth), Strong))
	l.solver.AddConstraint(EqualTo(Expr(b.height), Const(prefHeight), Strong))
	return id, lines, nil
}

// AddConstraint appends c to the pending list, to be applied on the next
// Solve.
func (l *Layout) AddConstraint(c Constraint) {
	l.solver.AddConstraint(c)
}

// Solve submits all pending constraints, fetches solved values, and caches
// them on each block.
func (l *Layout) Solve() error {
	if err := l.solver.Solve(); err != nil {
		return err
	}
	for _, b := range l.blocks {
		b.xVal = l.solver.Value(b.x)
		b.yVal = l.solver.Value(b.y)
		b.wVal = l.solver.Value(b.width)
		b.hVal = l.solver.Value(b.height)
	}
	return nil
}

// Left returns the expression for a block's left edge (== x).
func (l *Layout) Left(id BlockId) Expression { return Expr(l.blocks[id].x) }

// Top returns the expression for a block's top edge (== y).
func (l *Layout) Top(id BlockId) Expression { return Expr(l.blocks[id].y) }

// Right returns the expression for a block's right edge (x + width).
func (l *Layout) Right(id BlockId) Expression {
	b := l.blocks[id]
	return Expr(b.x).Plus(Expr(b.width))
}

// Bottom returns the expression for a block's bottom edge (y + height).
func (l *Layout) Bottom(id BlockId) Expression {
	b := l.blocks[id]
	return Expr(b.y).Plus(Expr(b.height))
}

// WidthVar and HeightVar expose the raw size variables for callers that
// need to reference a block's intrinsic size directly (e.g. activation
// width derived from glyph height).
func (l *Layout) WidthVar(id BlockId) Expression  { return Expr(l.blocks[id].width) }
func (l *Layout) HeightVar(id BlockId) Expression { return Expr(l.blocks[id].height) }

// X, Y, W, H return a block's solved coordinates after Solve.
func (l *Layout) X(id BlockId) float64      { return l.blocks[id].xVal }
func (l *Layout) Y(id BlockId) float64      { return l.blocks[id].yVal }
func (l *Layout) W(id BlockId) float64      { return l.blocks[id].wVal }
func (l *Layout) H(id BlockId) float64      { return l.blocks[id].hVal }
func (l *Layout) LineHeightOf(id BlockId) float64 { return l.blocks[id].lineHeight }
func (l *Layout) LinesOf(id BlockId) []string     { return l.blocks[id].wrappedLines }

// Width and Height return the solved bounding extents of every block added
// so far.
func (l *Layout) Width() float64  { return l.solver.Value(l.right) }
func (l *Layout) Height() float64 { return l.solver.Value(l.bottom) }

// Distribute lays out ids top-to-bottom (Vertical) or left-to-right
// (Horizontal) with a fixed REQUIRED gutter between each adjacent pair.
func (l *Layout) Distribute(o Orientation, gutter float64, ids []BlockId) {
	for i := 1; i < len(ids); i++ {
		prev, next := ids[i-1], ids[i]
		if o == Vertical {
			l.AddConstraint(LessOrEqual(l.Bottom(prev).PlusConst(gutter), l.Top(next), Required))
		} else {
			l.AddConstraint(LessOrEqual(l.Right(prev).PlusConst(gutter), l.Left(next), Required))
		}
	}
}

// Align pins the given anchor edge (or middle) of every block in ids to be
// REQUIRED-equal to the first block's corresponding edge.
func (l *Layout) Align(o Orientation, anchor Anchor, ids []BlockId) {
	if len(ids) < 2 {
		return
	}
	edge := func(id BlockId) Expression {
		switch {
		case o == Horizontal && anchor == Start:
			return l.Left(id)
		case o == Horizontal && anchor == End:
			return l.Right(id)
		case o == Horizontal && anchor == Middle:
			return l.Left(id).Plus(l.WidthVar(id).Scale(0.5))
		case o == Vertical && anchor == Start:
			return l.Top(id)
		case o == Vertical && anchor == End:
			return l.Bottom(id)
		default:
			return l.Top(id).Plus(l.HeightVar(id).Scale(0.5))
		}
	}
	first := edge(ids[0])
	for i := 1; i < len(ids); i++ {
		l.AddConstraint(EqualTo(edge(ids[i]), first, Required))
	}
}
