// Package metrics measures rendered text using embedded TrueType fonts and
// wraps long lines to a maximum column width. Fonts are embedded in the
// binary via the golang.org/x/image/font/gofont packages, requiring no
// external font files at runtime — the rendering design's reference
// "Roboto-Regular" is swapped for the Go font family embedded by
// golang.org/x/image/font/gofont, since no TTF ships in this project; the
// interface is measure(text,size)->(width,lineHeight), not a specific font.
package metrics

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size holds pixel dimensions of a measured piece of text.
type Size struct {
	Width  float64
	Height float64
}

// Family identifies an embedded font family.
type Family string

const (
	FamilySans Family = "sans"
	FamilyBold Family = "bold"
)

var (
	parsedMu    sync.Mutex
	parsedFonts = map[Family]*opentype.Font{}

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	family Family
	size   float64
}

func parsedFont(family Family) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsedFonts[family]; ok {
		return f, nil
	}
	data := goregular.TTF
	if family == FamilyBold {
		data = gobold.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", family, err)
	}
	parsedFonts[family] = f
	return f, nil
}

func faceFor(family Family, size float64) (font.Face, error) {
	faceMu.Lock()
	defer faceMu.Unlock()
	key := faceKey{family, size}
	if f, ok := faces[key]; ok {
		return f, nil
	}
	f, err := parsedFont(family)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s at %.1f: %w", family, size, err)
	}
	faces[key] = face
	return face, nil
}

// LineHeight returns the uniform line height in pixels for text set in
// family at pixelSize: ascent plus descent, rounded up.
func LineHeight(pixelSize float64, family Family) (float64, error) {
	face, err := faceFor(family, pixelSize)
	if err != nil {
		return 0, err
	}
	return faceLineHeight(face), nil
}

// faceLineHeight is ceil(ascent + descent) of face; x/image reports the
// descent as a positive distance below the baseline.
func faceLineHeight(face font.Face) float64 {
	m := face.Metrics()
	return math.Ceil(fixedToFloat(m.Ascent + m.Descent))
}

// Measure computes the pixel width and total line height of text (which may
// contain embedded newlines) set in family at pixelSize. Width is the
// widest line's summed glyph advance; height is lineCount * lineHeight.
func Measure(text string, pixelSize float64, family Family) (Size, error) {
	face, err := faceFor(family, pixelSize)
	if err != nil {
		return Size{}, err
	}
	lineHeight := faceLineHeight(face)
	if text == "" {
		return Size{Width: 0, Height: lineHeight}, nil
	}
	lines := strings.Split(text, "\n")
	var maxWidth float64
	for _, line := range lines {
		w := fixedToFloat(font.MeasureString(face, line))
		if w > maxWidth {
			maxWidth = w
		}
	}
	return Size{Width: maxWidth, Height: float64(len(lines)) * lineHeight}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// WrapToColumns breaks text on word boundaries so that no materialized line
// exceeds maxChars runes. Lines are filled greedily: each line takes as
// many words as fit before the next word starts a new line; line lengths
// are not balanced against each other. A single word longer than maxChars
// occupies its own line unbroken. Returns at least one line, even for
// empty input.
func WrapToColumns(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wlen := len([]rune(w))
		switch {
		case curLen == 0:
			cur.WriteString(w)
			curLen = wlen
		case curLen+1+wlen <= maxChars:
			cur.WriteByte(' ')
			cur.WriteString(w)
			curLen += 1 + wlen
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			curLen = wlen
		}
	}
	lines = append(lines, cur.String())
	return lines
}
