package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "models"), ExpandTilde("~/models"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "relative/path", ExpandTilde("relative/path"))
}

func TestExpandTildeLeavesTildeNamesAlone(t *testing.T) {
	assert.Equal(t, "~backup", ExpandTilde("~backup"))
	assert.Equal(t, "", ExpandTilde(""))
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Equal(t, ShapeDir, Probe(dir))
	assert.Equal(t, ShapeFile, Probe(file))
	assert.Equal(t, ShapeMissing, Probe(filepath.Join(dir, "missing")))

	assert.True(t, Exists(file))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}
