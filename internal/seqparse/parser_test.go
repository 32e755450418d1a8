package seqparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/seqparse"
	"github.com/axelerator/triton/internal/trierr"
)

func TestParseSingleMessage(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi\n")
	require.NoError(t, err)
	require.Len(t, d.Participants, 2)
	assert.Equal(t, "Alice", d.Participants[0].Name)
	assert.Equal(t, "Bob", d.Participants[1].Name)
	require.Len(t, d.Messages, 1)
	msg := d.Messages[0]
	assert.Equal(t, diagram.MessageId(0), msg.ID)
	assert.Equal(t, diagram.ParticipantId(0), msg.Left)
	assert.Equal(t, diagram.ParticipantId(1), msg.Right)
	assert.Equal(t, diagram.ToRight, msg.Direction)
	assert.Equal(t, diagram.ArrowSolid, msg.Arrow)
	assert.Equal(t, "hi", msg.Label)
	assert.Empty(t, d.Activations)
	assert.Empty(t, d.Notes)
}

func TestParseReverseDirection(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Bob->Alice: hi\n")
	require.NoError(t, err)
	require.Len(t, d.Participants, 2)
	assert.Equal(t, "Bob", d.Participants[0].Name)
	assert.Equal(t, "Alice", d.Participants[1].Name)
	msg := d.Messages[0]
	assert.Equal(t, diagram.ParticipantId(0), msg.Left)
	assert.Equal(t, diagram.ParticipantId(1), msg.Right)
	assert.Equal(t, diagram.ToLeft, msg.Direction)
}

func TestParseNestedActivations(t *testing.T) {
	t.Parallel()
	src := "Alice->+John: q1\n" +
		"Alice->+John: q2\n" +
		"John->-Alice: a2\n" +
		"John->-Alice: a1\n"
	d, err := seqparse.Parse(src)
	require.NoError(t, err)
	require.Len(t, d.Messages, 4)
	require.Len(t, d.Activations, 2)
	assert.Equal(t, diagram.MessageId(1), d.Activations[0].From)
	assert.Equal(t, diagram.MessageId(2), d.Activations[0].To)
	assert.Equal(t, 2, d.Activations[0].Level)
	assert.Equal(t, diagram.MessageId(0), d.Activations[1].From)
	assert.Equal(t, diagram.MessageId(3), d.Activations[1].To)
	assert.Equal(t, 1, d.Activations[1].Level)
}

func TestParseDeclaredParticipantOrdering(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("participant John\nAlice->John: hi\n")
	require.NoError(t, err)
	require.Len(t, d.Participants, 2)
	assert.Equal(t, "John", d.Participants[0].Name)
	assert.Equal(t, "Alice", d.Participants[1].Name)
}

func TestParseNoteLeftOf(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->John: hi\nNote left of John: yeah\n")
	require.NoError(t, err)
	require.Len(t, d.Notes, 1)
	n := d.Notes[0]
	assert.Equal(t, diagram.LeftOf, n.Horizontal.Kind)
	require.Len(t, n.Horizontal.Participants, 1)
	assert.Equal(t, "John", d.Participants[n.Horizontal.Participants[0]].Name)
	assert.Equal(t, diagram.AfterMessage, n.Vertical.Kind)
	assert.Equal(t, diagram.MessageId(0), n.Vertical.Message)
	assert.Equal(t, "yeah", n.Content)
}

func TestParseNoteOverMultiple(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi\nNote over Alice, Bob: both\n")
	require.NoError(t, err)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, diagram.Over, d.Notes[0].Horizontal.Kind)
	assert.Len(t, d.Notes[0].Horizontal.Participants, 2)
}

func TestParseNoteFirstPosition(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("participant Alice\nNote left of Alice: early\nAlice->Alice: ping\n")
	require.NoError(t, err)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, diagram.First, d.Notes[0].Vertical.Kind)
}

func TestParseSelfMessage(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Alice: ping\n")
	require.NoError(t, err)
	msg := d.Messages[0]
	assert.Equal(t, msg.Left, msg.Right)
	assert.Equal(t, diagram.ToRight, msg.Direction)
}

func TestParseUnknownParticipantInNote(t *testing.T) {
	t.Parallel()
	_, err := seqparse.Parse("Alice->Bob: hi\nNote left of Carl: huh\n")
	require.Error(t, err)
	te, ok := err.(*trierr.Error)
	require.True(t, ok)
	assert.Equal(t, trierr.KindUnknownParticipant, te.Kind)
	assert.Equal(t, "Carl", te.Name)
}

func TestParseUnmatchedDeactivation(t *testing.T) {
	t.Parallel()
	_, err := seqparse.Parse("Alice->Bob: hi\nBob->-Alice: bye\n")
	require.Error(t, err)
	te, ok := err.(*trierr.Error)
	require.True(t, ok)
	assert.Equal(t, trierr.KindUnmatchedDeactivation, te.Kind)
	assert.Equal(t, "Bob", te.Name)
}

func TestParseUnclosedActivation(t *testing.T) {
	t.Parallel()
	_, err := seqparse.Parse("Alice->+Bob: hi\n")
	require.Error(t, err)
	te, ok := err.(*trierr.Error)
	require.True(t, ok)
	assert.Equal(t, trierr.KindUnclosedActivation, te.Kind)
}

func TestParseMalformedLineIsParseError(t *testing.T) {
	t.Parallel()
	_, err := seqparse.Parse("this is not a valid line\n")
	require.Error(t, err)
	te, ok := err.(*trierr.Error)
	require.True(t, ok)
	assert.Equal(t, trierr.KindParseError, te.Kind)
}

func TestParseEmptyLinesIgnored(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("\n\nAlice->Bob: hi\n\n")
	require.NoError(t, err)
	require.Len(t, d.Messages, 1)
}

func TestParseMissingTrailingNewline(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi")
	require.NoError(t, err)
	require.Len(t, d.Messages, 1)
	assert.Equal(t, "hi", d.Messages[0].Label)
}

func TestParseDottedArrow(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice-->Bob: async\n")
	require.NoError(t, err)
	assert.Equal(t, diagram.ArrowDotted, d.Messages[0].Arrow)
}
