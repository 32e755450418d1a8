package seqlayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/seqlayout"
	"github.com/axelerator/triton/internal/seqparse"
)

func countKind(scene *seqlayout.Scene, kind seqlayout.ElementKind) int {
	n := 0
	for _, e := range scene.Elements {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestTranslateEmptyDiagramIsEmptyScene(t *testing.T) {
	t.Parallel()
	d := &diagram.Diagram{}
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, scene.Elements)
	assert.Zero(t, scene.Width)
	assert.Zero(t, scene.Height)
}

func TestTranslateParticipantWithNoMessagesGetsZeroExtentLifeline(t *testing.T) {
	t.Parallel()
	d := &diagram.Diagram{
		Participants: []diagram.Participant{{ID: 0, Name: "Alice"}},
	}
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, countKind(scene, seqlayout.KindHead))
	assert.Equal(t, 1, countKind(scene, seqlayout.KindFooter))
	assert.Equal(t, 1, countKind(scene, seqlayout.KindLifeline))
	assert.Equal(t, 0, countKind(scene, seqlayout.KindArrow))
	for _, e := range scene.Elements {
		if e.Kind == seqlayout.KindLifeline {
			assert.InDelta(t, 0, e.Rect.H, 1e-6)
		}
	}
}

func TestTranslateSingleMessageProducesExpectedElementCounts(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi\n")
	require.NoError(t, err)
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, countKind(scene, seqlayout.KindHead))
	assert.Equal(t, 2, countKind(scene, seqlayout.KindFooter))
	assert.Equal(t, 2, countKind(scene, seqlayout.KindLifeline))
	assert.Equal(t, 1, countKind(scene, seqlayout.KindArrow))
	assert.Equal(t, 0, countKind(scene, seqlayout.KindActivation))
	assert.Positive(t, scene.Width)
	assert.Positive(t, scene.Height)
}

func TestTranslateLifelinesShareTopAndBottom(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi\nBob->Alice: bye\n")
	require.NoError(t, err)
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	var tops, bottoms []float64
	for _, e := range scene.Elements {
		if e.Kind == seqlayout.KindLifeline {
			tops = append(tops, e.Rect.Y)
			bottoms = append(bottoms, e.Rect.Y+e.Rect.H)
		}
	}
	require.Len(t, tops, 2)
	assert.InDelta(t, tops[0], tops[1], 1e-6)
	assert.InDelta(t, bottoms[0], bottoms[1], 1e-6)
}

func TestTranslateNestedActivationsStepRightward(t *testing.T) {
	t.Parallel()
	src := "Alice->+John: q1\n" +
		"Alice->+John: q2\n" +
		"John->-Alice: a2\n" +
		"John->-Alice: a1\n"
	d, err := seqparse.Parse(src)
	require.NoError(t, err)
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	var activations []seqlayout.Element
	for _, e := range scene.Elements {
		if e.Kind == seqlayout.KindActivation {
			activations = append(activations, e)
		}
	}
	require.Len(t, activations, 2)
	assert.Equal(t, 2, activations[0].Level)
	assert.Equal(t, 1, activations[1].Level)
	assert.Greater(t, activations[0].Rect.X, activations[1].Rect.X)
	assert.InDelta(t, activations[0].Rect.W, activations[1].Rect.W, 1e-6)
}

func TestTranslateNoteLeftOfSitsLeftOfLifeline(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->John: hi\nNote left of John: yeah\n")
	require.NoError(t, err)
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)

	var note *seqlayout.Element
	var johnLifeline *seqlayout.Element
	for i, e := range scene.Elements {
		if e.Kind == seqlayout.KindNote {
			note = &scene.Elements[i]
		}
		if e.Kind == seqlayout.KindLifeline && e.ParticipantName == "John" {
			johnLifeline = &scene.Elements[i]
		}
	}
	require.NotNil(t, note)
	require.NotNil(t, johnLifeline)
	assert.LessOrEqual(t, note.Rect.X+note.Rect.W, johnLifeline.Rect.X+1e-6)
}

func TestTranslateLongWrappedLabelNeverInfeasible(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: a very long message label that will need to be wrapped across several lines of text\nBob-->Alice: ok\n")
	require.NoError(t, err)
	_, err = seqlayout.Translate(d, seqlayout.DefaultConfig())
	assert.NoError(t, err)
}
