// Package svgseq renders a solved seqlayout.Scene to an SVG document using
// github.com/ajstarks/svgo, dispatching on each element's visual class.
// Rendering order follows the scene's own element order (heads, footers,
// lifelines, activations, arrows, notes — back to front).
package svgseq

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/seqlayout"
	"github.com/axelerator/triton/internal/style"
)

// arrowTipLength is the amount a toRight arrow's shaft is shortened by
// before the end-arrow marker picks up the remaining distance.
const arrowTipLength = 10.0

const lineSpacing = 12

// Render draws scene to a standalone SVG document.
func Render(scene *seqlayout.Scene, cfg seqlayout.Config, pal style.Palette) ([]byte, error) {
	buf := new(bytes.Buffer)
	canvas := svg.New(buf)

	w := round(scene.Width)
	h := round(scene.Height)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	writeDefs(buf, cfg, pal)

	for _, e := range scene.Elements {
		switch e.Kind {
		case seqlayout.KindHead:
			drawHeadOrFooter(canvas, e, cfg, pal)
		case seqlayout.KindFooter:
			drawHeadOrFooter(canvas, e, cfg, pal)
		case seqlayout.KindLifeline:
			drawLifeline(canvas, e, pal)
		case seqlayout.KindActivation:
			drawActivation(canvas, e, cfg, pal)
		case seqlayout.KindArrow:
			drawArrow(canvas, e, cfg, pal)
		case seqlayout.KindNote:
			drawNote(canvas, e, cfg, pal)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

func round(v float64) int { return int(math.Round(v)) }

// writeDefs emits the document's <defs> block — the text style and the two
// arrowhead markers — as literal markup written directly to buf. The
// svgo canvas has no confirmed API for <marker>/<style> elements, so these
// are written by hand rather than guessed at.
func writeDefs(buf *bytes.Buffer, cfg seqlayout.Config, pal style.Palette) {
	fmt.Fprintf(buf, "<defs>\n")
	fmt.Fprintf(buf, "<style type=\"text/css\">text{font-family:sans-serif;font-size:%gpx;fill:%s}</style>\n", cfg.FontSize, pal.TextColor)
	fmt.Fprintf(buf, "<marker id=\"start-arrow\" markerWidth=\"10\" markerHeight=\"7\" refX=\"0\" refY=\"3.5\" orient=\"auto\">")
	fmt.Fprintf(buf, "<polygon points=\"10,0 10,7 0,3.5\" fill=\"%s\"/></marker>\n", pal.ArrowLine)
	fmt.Fprintf(buf, "<marker id=\"end-arrow\" markerWidth=\"10\" markerHeight=\"7\" refX=\"0\" refY=\"3.5\" orient=\"auto\">")
	fmt.Fprintf(buf, "<polygon points=\"0,0 10,3.5 0,7\" fill=\"%s\"/></marker>\n", pal.ArrowLine)
	fmt.Fprintf(buf, "</defs>\n")
}

func drawHeadOrFooter(canvas *svg.SVG, e seqlayout.Element, cfg seqlayout.Config, pal style.Palette) {
	canvas.Roundrect(round(e.Rect.X), round(e.Rect.Y), round(e.Rect.W), round(e.Rect.H),
		round(cfg.CornerRadius), round(cfg.CornerRadius),
		fmt.Sprintf("fill:%s;stroke:%s", pal.HeadFill, pal.HeadStroke))
	drawCenteredLines(canvas, e.Rect, e.Lines, cfg, pal.TextColor)
}

func drawLifeline(canvas *svg.SVG, e seqlayout.Element, pal style.Palette) {
	x := round(e.Rect.X)
	canvas.Line(x, round(e.Rect.Y), x, round(e.Rect.Y+e.Rect.H), fmt.Sprintf("stroke:%s", pal.LifelineLine))
}

func drawActivation(canvas *svg.SVG, e seqlayout.Element, cfg seqlayout.Config, pal style.Palette) {
	canvas.Roundrect(round(e.Rect.X), round(e.Rect.Y), round(e.Rect.W), round(e.Rect.H),
		round(cfg.CornerRadius), round(cfg.CornerRadius),
		fmt.Sprintf("fill:%s;stroke:%s", pal.ActivationFill, pal.ActivationStroke))
}

func drawArrow(canvas *svg.SVG, e seqlayout.Element, cfg seqlayout.Config, pal style.Palette) {
	x1 := round(e.Rect.X)
	x2 := round(e.Rect.X + e.Rect.W)
	lineY := round(e.Rect.Y + e.Rect.H)
	lineStyle := fmt.Sprintf("stroke:%s;stroke-width:1", pal.ArrowLine)
	if e.Dotted {
		lineStyle += ";stroke-dasharray:4,3"
	}
	switch e.Direction {
	case diagram.ToRight:
		x2 -= int(arrowTipLength)
		lineStyle += ";marker-end:url(#end-arrow)"
	case diagram.ToLeft:
		lineStyle += ";marker-start:url(#start-arrow)"
	}
	canvas.Line(x1, lineY, x2, lineY, lineStyle)
	drawCenteredLines(canvas, e.Rect, e.Lines, cfg, pal.TextColor)
}

func drawNote(canvas *svg.SVG, e seqlayout.Element, cfg seqlayout.Config, pal style.Palette) {
	canvas.Roundrect(round(e.Rect.X), round(e.Rect.Y), round(e.Rect.W), round(e.Rect.H),
		round(cfg.CornerRadius), round(cfg.CornerRadius),
		fmt.Sprintf("fill:%s;stroke:%s", pal.NoteFill, pal.NoteStroke))
	drawCenteredLines(canvas, e.Rect, e.Lines, cfg, pal.TextColor)
}

func drawCenteredLines(canvas *svg.SVG, r seqlayout.Rect, lines []string, cfg seqlayout.Config, color string) {
	if len(lines) == 0 {
		return
	}
	midX := round(r.X + r.W/2)
	baseY := round(r.Y+r.H/2) - (len(lines)-1)*lineSpacing/2
	style := fmt.Sprintf("text-anchor:middle;fill:%s", color)
	for i, ln := range lines {
		if ln == "" {
			continue
		}
		canvas.Text(midX, baseY+i*lineSpacing, ln, style)
	}
}
