package triyaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("ValidFile", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "fontSize: 14\npadding: 8\nmaxMsgLabelLength: 40\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		o, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 14.0, o.FontSize)
		assert.Equal(t, 8.0, o.Padding)
		assert.Equal(t, 40, o.MaxMsgLabelLength)
		assert.Zero(t, o.MsgGutter)
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.Error(t, err)
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fontSize: [unterminated"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
		o, err := Load(path)
		require.NoError(t, err)
		assert.Zero(t, o)
	})
}
