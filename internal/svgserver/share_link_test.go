package svgserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLink(t *testing.T) {
	t.Parallel()
	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()
		input := "Alice->Bob: hi\nBob-->Alice: hi back"
		encoded, err := encodeShareLink(input)
		require.NoError(t, err)
		require.NotEmpty(t, encoded)
		decoded, err := decodeShareLink(encoded)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	})
	t.Run("RoundTripEmpty", func(t *testing.T) {
		t.Parallel()
		encoded, err := encodeShareLink("")
		require.NoError(t, err)
		decoded, err := decodeShareLink(encoded)
		require.NoError(t, err)
		assert.Equal(t, "", decoded)
	})
	t.Run("RoundTripUnicode", func(t *testing.T) {
		t.Parallel()
		input := "Älice->Bob: hö"
		encoded, err := encodeShareLink(input)
		require.NoError(t, err)
		decoded, err := decodeShareLink(encoded)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	})
	t.Run("EncodedIsURLSafe", func(t *testing.T) {
		t.Parallel()
		input := "Alice->+Bob: request\nBob->-Alice: response\nNote over Alice, Bob: done"
		encoded, err := encodeShareLink(input)
		require.NoError(t, err)
		for _, c := range encoded {
			assert.Contains(t, shareAlphabet, string(c))
		}
	})
	t.Run("DecodeInvalidChar", func(t *testing.T) {
		t.Parallel()
		_, err := decodeShareLink("!!!!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding share link")
	})
}
