package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaFile = "visionkit.v1.schema.json"

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
model: yolov8n.onnx
task: segment
acceleration: false
thresholds:
  confidence: 0.3
  iou: 0.5
containers:
  - name: main
    path: ./resources
runner:
  bin: /usr/local/bin/visionkit-runner
  params:
    imgsz: 640
`)

	cfg, err := LoadAndValidate(path, schemaFile)
	require.NoError(t, err)

	assert.Equal(t, "yolov8n.onnx", cfg.Model)
	assert.Equal(t, "segment", cfg.Task)
	assert.False(t, cfg.Accelerated())
	assert.Equal(t, 0.3, cfg.Thresholds.Confidence)
	assert.Equal(t, 0.5, cfg.Thresholds.IoU)
	require.Len(t, cfg.Containers, 1)
	assert.Equal(t, "main", cfg.Containers[0].Name)
	assert.Equal(t, "/usr/local/bin/visionkit-runner", cfg.Runner.Bin)
}

func TestLoadAndValidateDefaults(t *testing.T) {
	path := writeConfig(t, `
version: "1"
model: yolov8n.onnx
`)

	cfg, err := LoadAndValidate(path, schemaFile)
	require.NoError(t, err)

	assert.True(t, cfg.Accelerated())
	assert.Equal(t, 0.25, cfg.Thresholds.ConfidenceOr(0.25))
	assert.Equal(t, 0.4, cfg.Thresholds.IoUOr(0.4))
}

func TestLoadAndValidateRejectsMissingModel(t *testing.T) {
	path := writeConfig(t, `
version: "1"
`)

	_, err := LoadAndValidate(path, schemaFile)
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidateRejectsUnknownTask(t *testing.T) {
	path := writeConfig(t, `
version: "1"
model: yolov8n.onnx
task: juggle
`)

	_, err := LoadAndValidate(path, schemaFile)
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml"), schemaFile)
	assert.ErrorContains(t, err, "failed to read config")
}
