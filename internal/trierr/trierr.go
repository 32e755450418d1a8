// Package trierr defines the single error type shared by the parser,
// translator, and public API: a Kind tag, a source position, and enough
// context to format the taxonomy from the rendering design doc.
package trierr

import "fmt"

// Kind classifies a triton error per the taxonomy in the rendering design:
// malformed source, a dangling reference, activation-stack discipline
// violations, or a solver that could not satisfy its REQUIRED constraints.
type Kind int

const (
	// KindParseError marks malformed input at a known source offset.
	KindParseError Kind = iota
	// KindUnknownParticipant marks a name referenced (by a note, typically)
	// that was never declared and never used as a message endpoint.
	KindUnknownParticipant
	// KindUnmatchedDeactivation marks a "-" with no open activation on the
	// sender's stack.
	KindUnmatchedDeactivation
	// KindUnclosedActivation marks a "+" whose activation is still open at
	// end of input.
	KindUnclosedActivation
	// KindLayoutInfeasible marks a solver that reported conflicting
	// REQUIRED constraints — always a translator bug, never bad input.
	KindLayoutInfeasible
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindUnknownParticipant:
		return "UnknownParticipant"
	case KindUnmatchedDeactivation:
		return "UnmatchedDeactivation"
	case KindUnclosedActivation:
		return "UnclosedActivation"
	case KindLayoutInfeasible:
		return "LayoutInfeasible"
	default:
		return "Unknown"
	}
}

// Pos is a 1-based line/column source position.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the single error type surfaced across the public API. The parser
// and translator fail fast: the first Error encountered is returned, with
// no partial SVG produced.
type Error struct {
	Kind Kind
	Pos  Pos
	Name string // participant name, when relevant
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d:%d: %s: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Msg)
	}
	if e.Name != "" {
		return fmt.Sprintf("%d:%d: %s: %q", e.Pos.Line, e.Pos.Column, e.Kind, e.Name)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Kind)
}

// NewParseError builds a KindParseError at pos describing what was expected.
func NewParseError(pos Pos, expected string) *Error {
	return &Error{Kind: KindParseError, Pos: pos, Msg: "expected " + expected}
}

// NewUnknownParticipant builds a KindUnknownParticipant error for name.
func NewUnknownParticipant(pos Pos, name string) *Error {
	return &Error{Kind: KindUnknownParticipant, Pos: pos, Name: name}
}

// NewUnmatchedDeactivation builds a KindUnmatchedDeactivation error for name.
func NewUnmatchedDeactivation(pos Pos, name string) *Error {
	return &Error{Kind: KindUnmatchedDeactivation, Pos: pos, Name: name}
}

// NewUnclosedActivation builds a KindUnclosedActivation error for name.
func NewUnclosedActivation(pos Pos, name string) *Error {
	return &Error{Kind: KindUnclosedActivation, Pos: pos, Name: name}
}

// NewLayoutInfeasible builds a KindLayoutInfeasible error with msg.
func NewLayoutInfeasible(msg string) *Error {
	return &Error{Kind: KindLayoutInfeasible, Msg: msg}
}
