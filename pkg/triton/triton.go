// Package triton provides the public library API for rendering the compact
// sequence-diagram notation to SVG.
//
// The primary entry point is Render, which reads source text and writes SVG
// output:
//
//	err := triton.Render(os.Stdin, os.Stdout)
//
// Use options to customize rendering:
//
//	err := triton.Render(input, output, triton.WithFontSize(12))
//
// For validation without rendering:
//
//	err := triton.Validate(input)
//
// For parsing to a diagram without rendering:
//
//	d, err := triton.Parse(input)
package triton

import (
	"fmt"
	"io"
	"strings"

	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/seqlayout"
	"github.com/axelerator/triton/internal/seqparse"
	"github.com/axelerator/triton/internal/style"
	"github.com/axelerator/triton/internal/svgseq"
	"github.com/axelerator/triton/internal/trierr"
)

// Error is the single error type surfaced by every operation in this
// package: malformed source, a dangling reference, activation-stack
// discipline violations, or an internal layout bug.
type Error = trierr.Error

// Kind classifies an Error. See the trierr.Kind constants, re-exported here
// so callers never need to import an internal package to switch on it.
type Kind = trierr.Kind

const (
	KindParseError            = trierr.KindParseError
	KindUnknownParticipant    = trierr.KindUnknownParticipant
	KindUnmatchedDeactivation = trierr.KindUnmatchedDeactivation
	KindUnclosedActivation    = trierr.KindUnclosedActivation
	KindLayoutInfeasible      = trierr.KindLayoutInfeasible
)

// Diagram is an opaque handle to a parsed diagram. Obtain one via Parse,
// then pass it to RenderDiagram.
type Diagram struct {
	internal *diagram.Diagram
}

// Config holds the sizing knobs that drive both layout and rendering. Use
// DefaultConfig and the With* options rather than constructing one
// directly, so new fields get sane defaults automatically.
type Config struct {
	MsgGutter                float64
	FontSize                 float64
	FontScaleFactor          float64
	Padding                  float64
	CornerRadius             float64
	MaxMsgLabelLength        int
	MaxParticipantHeadLength int
}

// DefaultConfig returns the reference SvgConfig defaults.
func DefaultConfig() Config {
	lc := seqlayout.DefaultConfig()
	return Config{
		MsgGutter:                lc.MsgGutter,
		FontSize:                 lc.FontSize,
		FontScaleFactor:          lc.FontScaleFactor,
		Padding:                  lc.Padding,
		CornerRadius:             lc.CornerRadius,
		MaxMsgLabelLength:        lc.MaxMsgLabelLength,
		MaxParticipantHeadLength: lc.MaxParticipantHeadLength,
	}
}

// Option configures rendering behavior.
type Option func(*Config)

// WithFontSize overrides the base font size in pixels.
func WithFontSize(px float64) Option {
	return func(c *Config) { c.FontSize = px }
}

// WithPadding overrides the padding inset applied inside every text block.
func WithPadding(px float64) Option {
	return func(c *Config) { c.Padding = px }
}

// WithMsgGutter overrides the fixed gutter between successive messages and
// between notes and the lifelines they sit beside.
func WithMsgGutter(px float64) Option {
	return func(c *Config) { c.MsgGutter = px }
}

// WithMaxMsgLabelLength overrides the column width message and note labels
// wrap to.
func WithMaxMsgLabelLength(cols int) Option {
	return func(c *Config) { c.MaxMsgLabelLength = cols }
}

// WithMaxParticipantHeadLength overrides the column width participant
// names wrap to.
func WithMaxParticipantHeadLength(cols int) Option {
	return func(c *Config) { c.MaxParticipantHeadLength = cols }
}

func (c Config) toLayoutConfig() seqlayout.Config {
	return seqlayout.Config{
		MsgGutter:                c.MsgGutter,
		FontSize:                 c.FontSize,
		FontScaleFactor:          c.FontScaleFactor,
		Padding:                  c.Padding,
		CornerRadius:             c.CornerRadius,
		MaxMsgLabelLength:        c.MaxMsgLabelLength,
		MaxParticipantHeadLength: c.MaxParticipantHeadLength,
	}
}

// Render reads diagram source from r and writes SVG to w. Options may be
// provided to override sizing defaults. No partial SVG is ever written: on
// any error w is left untouched.
func Render(r io.Reader, w io.Writer, opts ...Option) error {
	d, err := Parse(r)
	if err != nil {
		return err
	}
	return RenderDiagram(w, d, opts...)
}

// RenderDiagram renders a previously parsed Diagram to SVG.
func RenderDiagram(w io.Writer, d *Diagram, opts ...Option) error {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	scene, err := seqlayout.Translate(d.internal, cfg.toLayoutConfig())
	if err != nil {
		return err
	}
	out, err := svgseq.Render(scene, cfg.toLayoutConfig(), style.Default())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Parse reads source from r and returns the parsed Diagram, or the first
// Error encountered.
func Parse(r io.Reader) (*Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	d, err := seqparse.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return &Diagram{internal: d}, nil
}

// Validate reads source from r and returns the first parse error, if any,
// without rendering.
func Validate(r io.Reader) error {
	_, err := Parse(r)
	return err
}

// RenderString is a convenience wrapper around Render for in-memory use.
func RenderString(source string, opts ...Option) (string, error) {
	var buf strings.Builder
	if err := Render(strings.NewReader(source), &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
