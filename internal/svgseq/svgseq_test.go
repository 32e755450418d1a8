package svgseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axelerator/triton/internal/seqlayout"
	"github.com/axelerator/triton/internal/seqparse"
	"github.com/axelerator/triton/internal/style"
	"github.com/axelerator/triton/internal/svgseq"
)

func TestRenderEmptySceneProducesValidEmptySVG(t *testing.T) {
	t.Parallel()
	out, err := svgseq.Render(&seqlayout.Scene{}, seqlayout.DefaultConfig(), style.Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
	assert.Contains(t, string(out), "</svg>")
}

func TestRenderSingleMessageContainsMarkersAndLabel(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->Bob: hi\n")
	require.NoError(t, err)
	scene, err := seqlayout.Translate(d, seqlayout.DefaultConfig())
	require.NoError(t, err)
	out, err := svgseq.Render(scene, seqlayout.DefaultConfig(), style.Default())
	require.NoError(t, err)
	svgOut := string(out)
	assert.Contains(t, svgOut, "end-arrow")
	assert.Contains(t, svgOut, "hi")
	assert.Contains(t, svgOut, "Alice")
	assert.Contains(t, svgOut, "Bob")
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()
	d, err := seqparse.Parse("Alice->+Bob: ask\nBob->-Alice: answer\n")
	require.NoError(t, err)
	cfg := seqlayout.DefaultConfig()
	scene1, err := seqlayout.Translate(d, cfg)
	require.NoError(t, err)
	out1, err := svgseq.Render(scene1, cfg, style.Default())
	require.NoError(t, err)

	scene2, err := seqlayout.Translate(d, cfg)
	require.NoError(t, err)
	out2, err := svgseq.Render(scene2, cfg, style.Default())
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}
