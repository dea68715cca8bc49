package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	modelFile := filepath.Join(dir, "yolov8n.onnx")
	writeFile(t, modelFile)

	r := NewResolver()

	loc, err := r.Resolve(modelFile)
	require.NoError(t, err)
	assert.Equal(t, modelFile, loc.Path)
	assert.Equal(t, KindFileModel, loc.Kind)
}

func TestResolveAbsolutePackageDirectory(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "yolov8n.modelpkg")
	require.NoError(t, os.MkdirAll(pkg, 0o755))

	r := NewResolver()

	loc, err := r.Resolve(pkg)
	require.NoError(t, err)
	assert.Equal(t, pkg, loc.Path)
	assert.Equal(t, KindSourcePackage, loc.Kind)
}

func TestResolveFileScheme(t *testing.T) {
	dir := t.TempDir()
	modelFile := filepath.Join(dir, "yolov8n.onnx")
	writeFile(t, modelFile)

	r := NewResolver()

	loc, err := r.Resolve("file://" + modelFile)
	require.NoError(t, err)
	assert.Equal(t, modelFile, loc.Path)
}

func TestResolveRejectsShapeMismatch(t *testing.T) {
	dir := t.TempDir()

	// package suffix pointing at a plain file
	badPkg := filepath.Join(dir, "model.modelpkg")
	writeFile(t, badPkg)

	// file suffix pointing at a directory
	badFile := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.MkdirAll(badFile, 0o755))

	r := NewResolver()

	_, err := r.Resolve(badPkg)
	assert.ErrorIs(t, err, ErrModelNotFound)

	_, err = r.Resolve(badFile)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestResolveRelativePathWithSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "yolov8n.onnx"))

	r := NewResolver(WithWorkDir(dir))

	loc, err := r.Resolve("yolov8n.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "yolov8n.onnx"), loc.Path)
	assert.Equal(t, KindFileModel, loc.Kind)
}

func TestResolveBareNameSkipsPathStrategies(t *testing.T) {
	// A file without a recognized suffix exists in the work dir; a bare-name
	// identifier must not pick it up through the path strategies.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plain"))

	r := NewResolver(WithWorkDir(dir))

	_, err := r.Resolve("plain")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestResolveBundledNamePrefersCompiled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "yolo.modelc"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "yolo.modelpkg"), 0o755))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("yolo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "yolo.modelc"), loc.Path)
	assert.Equal(t, KindCompiledPackage, loc.Kind)
}

func TestResolveBundledNameFallsBackToSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "yolo.modelpkg"), 0o755))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("yolo")
	require.NoError(t, err)
	assert.Equal(t, KindSourcePackage, loc.Kind)
}

func TestResolveAssetLookupWithDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "flowers", "daisy.onnx"))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("flowers/daisy.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "flowers", "daisy.onnx"), loc.Path)
	assert.Equal(t, KindFileModel, loc.Kind)
}

func TestResolveAssetLookupBareName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "rose.onnx"))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("rose.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "rose.onnx"), loc.Path)
}

func TestResolveScanIsDeterministic(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	writeFile(t, filepath.Join(rootA, "dup.onnx"))
	writeFile(t, filepath.Join(rootB, "dup.onnx"))

	first := NewResolver(WithContainers(
		NewDirContainer("a", rootA),
		NewDirContainer("b", rootB),
	))

	loc, err := first.Resolve("dup.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootA, "dup.onnx"), loc.Path)

	// reversing registration order flips the winner
	second := NewResolver(WithContainers(
		NewDirContainer("b", rootB),
		NewDirContainer("a", rootA),
	))

	loc, err = second.Resolve("dup.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootB, "dup.onnx"), loc.Path)
}

func TestResolveScanFindsBareFileName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "scene.png"))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("ignored-dir/scene.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "scene.png"), loc.Path)
}

func TestResolveRoundTrip(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "yolo.modelc"), 0o755))

	r := NewResolver(WithContainers(NewDirContainer("main", root)))

	loc, err := r.Resolve("yolo")
	require.NoError(t, err)

	again, err := r.Resolve(loc.Path)
	require.NoError(t, err)
	assert.Equal(t, loc, again)
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver(WithWorkDir(t.TempDir()))

	_, err := r.Resolve("no-such-model")
	assert.ErrorIs(t, err, ErrModelNotFound)

	_, err = r.Resolve("")
	assert.ErrorIs(t, err, ErrModelNotFound)
}
