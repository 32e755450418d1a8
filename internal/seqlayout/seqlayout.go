// Package seqlayout is the domain core: it translates a parsed
// diagram.Diagram into a cassowary.Layout of blocks and constraints, solves
// it once, and returns a Scene of positioned, tagged elements ready for an
// emitter to draw. The translation is the nine-phase algorithm from the
// rendering design: arrow blocks, vertical distribution, per-participant
// horizontal alignment, lifelines, activations, anchor-to-lifeline ties,
// heads/footers, notes, solve.
package seqlayout

import (
	"github.com/axelerator/triton/internal/cassowary"
	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/metrics"
	"github.com/axelerator/triton/internal/trierr"
)

// Config holds the sizing knobs the translator and emitter share. Field
// names and defaults mirror the reference implementation's SvgConfig.
type Config struct {
	MsgGutter                float64
	FontSize                 float64
	FontScaleFactor          float64
	Padding                  float64
	CornerRadius             float64
	MaxMsgLabelLength        int
	MaxParticipantHeadLength int
}

// DefaultConfig returns the reference implementation's default SvgConfig
// values.
func DefaultConfig() Config {
	return Config{
		MsgGutter:                20.0,
		FontSize:                 10.0,
		FontScaleFactor:          1.2,
		Padding:                  5.0,
		CornerRadius:             2.0,
		MaxMsgLabelLength:        60,
		MaxParticipantHeadLength: 5,
	}
}

// ElementKind tags a Scene element's visual role, per the rendering
// design's "polymorphic renderable objects" note.
type ElementKind int

const (
	KindHead ElementKind = iota
	KindFooter
	KindLifeline
	KindActivation
	KindArrow
	KindNote
)

// Rect is a solved, axis-aligned position and size.
type Rect struct {
	X, Y, W, H float64
}

// Element is one positioned, drawable piece of the scene. Only the fields
// relevant to Kind are populated; the emitter dispatches on Kind.
type Element struct {
	Kind            ElementKind
	Rect            Rect
	Lines           []string
	ParticipantName string
	Dotted          bool
	Direction       diagram.Direction
	Level           int
}

// Scene is the solved, ordered list of drawable elements plus the overall
// bounding size. Elements are ordered back-to-front: heads, footers,
// lifelines, activations, arrows, notes.
type Scene struct {
	Width    float64
	Height   float64
	Elements []Element
}

// Translate runs the nine-phase layout algorithm over d and returns the
// solved Scene. A diagram with no participants at all yields an empty
// Scene with zero size, matching the "acceptable empty SVG" edge case. A
// diagram with participants but no messages still produces a head, a
// footer, and a zero-extent lifeline per participant.
func Translate(d *diagram.Diagram, cfg Config) (*Scene, error) {
	if len(d.Participants) == 0 {
		return &Scene{}, nil
	}
	hasArrows := len(d.Messages) > 0

	l := cassowary.NewLayout()

	// Phase 1 — message arrow blocks.
	arrowBlocks := make([]cassowary.BlockId, len(d.Messages))
	arrowLines := make([][]string, len(d.Messages))
	for i, m := range d.Messages {
		id, lines, err := l.AddTextBlock(m.Label, cfg.MaxMsgLabelLength, cfg.Padding, cfg.FontSize*cfg.FontScaleFactor, metrics.FamilySans)
		if err != nil {
			return nil, err
		}
		arrowBlocks[i] = id
		arrowLines[i] = lines
	}

	// Phase 2 — vertical distribution of arrows.
	l.Distribute(cassowary.Vertical, cfg.MsgGutter, arrowBlocks)

	// Phase 3 — horizontal alignment to participants, first pass.
	anchors := make([]participantAnchor, len(d.Participants))
	for _, p := range d.Participants {
		msgIDs := d.MessagesFor(p.ID)
		if len(msgIDs) == 0 {
			continue
		}
		firstMsg := d.Messages[msgIDs[0]]
		firstBlock := arrowBlocks[msgIDs[0]]
		edge, isLeft := ownEdge(l, p.ID, firstMsg, firstBlock)
		anchors[p.ID] = participantAnchor{has: true, edge: edge, isLeft: isLeft}

		for _, mid := range msgIDs[1:] {
			m := d.Messages[mid]
			block := arrowBlocks[mid]
			pIsLeft := p.ID == m.Left
			if pIsLeft == isLeft {
				own, _ := ownEdge(l, p.ID, m, block)
				l.AddConstraint(cassowary.EqualTo(own, edge, cassowary.Required))
			} else {
				// p is on the other side of this arrow than of the anchor, so
				// the edge pinned here is the anchor's opposite edge — still
				// the one at p's own end of the arrow.
				own, _ := ownEdge(l, p.ID, m, block)
				l.AddConstraint(cassowary.EqualTo(own, edge, cassowary.Required))
			}
		}
	}

	// Phase 4 — participant lifelines. Every participant gets a lifeline,
	// regardless of whether that individual participant has any incident
	// arrows: all lifelines share the same top/bottom bounds, tied to the
	// diagram's first and last arrow block rather than each participant's
	// own first/last incident arrow. With no arrows anywhere, every
	// lifeline still exists but degenerates to zero vertical extent.
	lifelines := make([]cassowary.BlockId, len(d.Participants))
	lifelineIDs := make([]cassowary.BlockId, len(d.Participants))
	if hasArrows {
		firstBlock := arrowBlocks[0]
		lastBlock := arrowBlocks[len(arrowBlocks)-1]
		for _, p := range d.Participants {
			life := l.AddBlock()
			l.AddConstraint(cassowary.EqualTo(l.Top(life), l.Top(firstBlock).PlusConst(-cfg.MsgGutter), cassowary.Required))
			l.AddConstraint(cassowary.GreaterOrEqual(l.Bottom(life), l.Bottom(lastBlock).PlusConst(cfg.MsgGutter), cassowary.Required))
			lifelines[p.ID] = life
			lifelineIDs[p.ID] = life
		}
	} else {
		for _, p := range d.Participants {
			life := l.AddBlock()
			l.AddConstraint(cassowary.EqualTo(l.Bottom(life), l.Top(life), cassowary.Required))
			lifelines[p.ID] = life
			lifelineIDs[p.ID] = life
		}
	}
	l.Align(cassowary.Vertical, cassowary.Start, lifelineIDs)
	l.Align(cassowary.Vertical, cassowary.End, lifelineIDs)

	// Phase 5 — activations.
	gh, err := glyphsHeight(cfg)
	if err != nil {
		return nil, err
	}
	type activationBlock struct {
		id    cassowary.BlockId
		level int
	}
	var activationBlocks []activationBlock
	for _, act := range d.Activations {
		block := l.AddBlock()
		fromBlock := arrowBlocks[act.From]
		toBlock := arrowBlocks[act.To]
		l.AddConstraint(cassowary.EqualTo(l.Top(block), l.Bottom(fromBlock), cassowary.Required))
		l.AddConstraint(cassowary.EqualTo(l.Bottom(block), l.Bottom(toBlock), cassowary.Required))
		l.AddConstraint(cassowary.EqualTo(l.WidthVar(block), cassowary.Const(gh), cassowary.Required))
		life := lifelines[act.Participant]
		lhs := l.Left(block).PlusConst(1.5*gh - float64(act.Level)*0.5*gh)
		l.AddConstraint(cassowary.EqualTo(lhs, l.Left(life), cassowary.Required))
		activationBlocks = append(activationBlocks, activationBlock{id: block, level: act.Level})
	}

	// Phase 6 — anchors tied to lifelines.
	for _, p := range d.Participants {
		if !anchors[p.ID].has {
			continue
		}
		l.AddConstraint(cassowary.EqualTo(anchors[p.ID].edge, l.Left(lifelines[p.ID]), cassowary.Required))
	}

	// Phase 7 — heads and footers.
	headBlocks := make([]cassowary.BlockId, len(d.Participants))
	headLines := make([][]string, len(d.Participants))
	footBlocks := make([]cassowary.BlockId, len(d.Participants))
	footLines := make([][]string, len(d.Participants))
	for _, p := range d.Participants {
		life := lifelines[p.ID]
		headID, hLines, err := l.AddTextBlock(p.Name, cfg.MaxParticipantHeadLength, cfg.Padding, cfg.FontSize*cfg.FontScaleFactor, metrics.FamilyBold)
		if err != nil {
			return nil, err
		}
		footID, fLines, err := l.AddTextBlock(p.Name, cfg.MaxParticipantHeadLength, cfg.Padding, cfg.FontSize*cfg.FontScaleFactor, metrics.FamilyBold)
		if err != nil {
			return nil, err
		}
		l.AddConstraint(cassowary.EqualTo(l.Bottom(headID), l.Top(life), cassowary.Required))
		l.AddConstraint(cassowary.EqualTo(l.Top(footID), l.Bottom(life), cassowary.Required))
		l.AddConstraint(cassowary.EqualTo(l.Left(headID).Plus(l.WidthVar(headID).Scale(0.5)), l.Left(life), cassowary.Required))
		l.AddConstraint(cassowary.EqualTo(l.Left(footID).Plus(l.WidthVar(footID).Scale(0.5)), l.Left(life), cassowary.Required))
		headBlocks[p.ID] = headID
		headLines[p.ID] = hLines
		footBlocks[p.ID] = footID
		footLines[p.ID] = fLines
	}

	var firstHeadBlock cassowary.BlockId
	haveFirstHead := false
	if len(d.Participants) > 0 {
		firstHeadBlock = headBlocks[d.Participants[0].ID]
		haveFirstHead = true
	}

	// Phase 8 — notes.
	noteBlocks := make([]cassowary.BlockId, len(d.Notes))
	noteLines := make([][]string, len(d.Notes))
	for i, n := range d.Notes {
		id, lines, err := l.AddTextBlock(n.Content, cfg.MaxMsgLabelLength, cfg.Padding, cfg.FontSize*cfg.FontScaleFactor, metrics.FamilySans)
		if err != nil {
			return nil, err
		}
		noteBlocks[i] = id
		noteLines[i] = lines

		applyNoteHorizontal(l, n.Horizontal, lifelines, cfg, id)

		switch n.Vertical.Kind {
		case diagram.First:
			if haveFirstHead {
				l.AddConstraint(cassowary.EqualTo(l.Top(id), l.Bottom(firstHeadBlock).PlusConst(cfg.MsgGutter), cassowary.Strong))
			}
		case diagram.AfterMessage:
			ref := arrowBlocks[n.Vertical.Message]
			l.AddConstraint(cassowary.EqualTo(l.Top(id), l.Bottom(ref).PlusConst(cfg.MsgGutter), cassowary.Strong))
		case diagram.AfterNote:
			ref := noteBlocks[n.Vertical.Note]
			l.AddConstraint(cassowary.EqualTo(l.Top(id), l.Bottom(ref).PlusConst(cfg.MsgGutter), cassowary.Strong))
		}
	}
	if len(d.Notes) > 0 {
		lastNote := noteBlocks[len(noteBlocks)-1]
		for _, life := range lifelineIDs {
			l.AddConstraint(cassowary.GreaterOrEqual(l.Bottom(life), l.Bottom(lastNote).PlusConst(cfg.MsgGutter), cassowary.Required))
		}
	}

	// Phase 9 — solve.
	if err := l.Solve(); err != nil {
		if _, ok := err.(*cassowary.InfeasibleError); ok {
			return nil, trierr.NewLayoutInfeasible(err.Error())
		}
		return nil, err
	}

	scene := &Scene{Width: l.Width(), Height: l.Height()}
	rect := func(id cassowary.BlockId) Rect {
		return Rect{X: l.X(id), Y: l.Y(id), W: l.W(id), H: l.H(id)}
	}

	for _, p := range d.Participants {
		scene.Elements = append(scene.Elements, Element{
			Kind: KindHead, Rect: rect(headBlocks[p.ID]), Lines: headLines[p.ID], ParticipantName: p.Name,
		})
	}
	for _, p := range d.Participants {
		scene.Elements = append(scene.Elements, Element{
			Kind: KindFooter, Rect: rect(footBlocks[p.ID]), Lines: footLines[p.ID], ParticipantName: p.Name,
		})
	}
	for _, p := range d.Participants {
		scene.Elements = append(scene.Elements, Element{Kind: KindLifeline, Rect: rect(lifelines[p.ID]), ParticipantName: p.Name})
	}
	for _, a := range activationBlocks {
		scene.Elements = append(scene.Elements, Element{Kind: KindActivation, Rect: rect(a.id), Level: a.level})
	}
	for i, m := range d.Messages {
		scene.Elements = append(scene.Elements, Element{
			Kind: KindArrow, Rect: rect(arrowBlocks[i]), Lines: arrowLines[i],
			Dotted: m.Arrow == diagram.ArrowDotted, Direction: m.Direction,
		})
	}
	for i := range d.Notes {
		scene.Elements = append(scene.Elements, Element{Kind: KindNote, Rect: rect(noteBlocks[i]), Lines: noteLines[i]})
	}

	return scene, nil
}

// participantAnchor records the first incident arrow's recorded edge for a
// participant, established in Phase 3 and consumed again in Phase 6.
type participantAnchor struct {
	has    bool
	edge   cassowary.Expression
	isLeft bool
}

// ownEdge returns the edge of block corresponding to p's side of message m,
// and whether that side is m.Left.
func ownEdge(l *cassowary.Layout, p diagram.ParticipantId, m diagram.Message, block cassowary.BlockId) (cassowary.Expression, bool) {
	if p == m.Left {
		return l.Left(block), true
	}
	return l.Right(block), false
}

// oppositeEdge returns the edge of block on the other side from p's side of
// message m.
func oppositeEdge(l *cassowary.Layout, p diagram.ParticipantId, m diagram.Message, block cassowary.BlockId) cassowary.Expression {
	if p == m.Left {
		return l.Right(block)
	}
	return l.Left(block)
}

// glyphsHeight is the measured line height of a single glyph at the
// configured font size, used to size and step activation rectangles.
func glyphsHeight(cfg Config) (float64, error) {
	size, err := metrics.Measure(" ", cfg.FontSize*cfg.FontScaleFactor, metrics.FamilySans)
	if err != nil {
		return 0, err
	}
	return size.Height, nil
}

func applyNoteHorizontal(l *cassowary.Layout, h diagram.HorizontalPosition, lifelines []cassowary.BlockId, cfg Config, note cassowary.BlockId) {
	switch h.Kind {
	case diagram.LeftOf:
		p := h.Participants[0]
		l.AddConstraint(cassowary.LessOrEqual(l.Right(note), l.Left(lifelines[p]).PlusConst(-cfg.MsgGutter), cassowary.Required))
		if p > 0 {
			l.AddConstraint(cassowary.GreaterOrEqual(l.Left(note), l.Right(lifelines[p-1]).PlusConst(cfg.MsgGutter), cassowary.Required))
		}
	case diagram.RightOf:
		p := h.Participants[0]
		l.AddConstraint(cassowary.GreaterOrEqual(l.Left(note), l.Right(lifelines[p]).PlusConst(cfg.MsgGutter), cassowary.Required))
	case diagram.Over:
		left, right := h.Participants[0], h.Participants[0]
		for _, p := range h.Participants {
			if p < left {
				left = p
			}
			if p > right {
				right = p
			}
		}
		l.AddConstraint(cassowary.LessOrEqual(l.Left(note), l.Left(lifelines[left]).PlusConst(-cfg.MsgGutter), cassowary.Required))
		l.AddConstraint(cassowary.GreaterOrEqual(l.Right(note), l.Left(lifelines[right]).PlusConst(cfg.MsgGutter), cassowary.Required))
	}
}
