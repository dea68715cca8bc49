// Package exec runs inference through an external runner binary. The runner
// receives the model path, task, thresholds and an image file and writes a
// JSON result document to stdout.
package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ekisa-team/visionkit/artifact"
	"github.com/ekisa-team/visionkit/internal/envvar"
	"github.com/ekisa-team/visionkit/mapsafe"
	"github.com/ekisa-team/visionkit/predictor"
)

const defaultTimeout = 120 * time.Second

// Standalone threshold defaults, matching the facade's.
const (
	defaultConfidence = 0.25
	defaultIoU        = 0.40
)

// DefaultBin returns the runner binary to invoke, honoring the
// VISIONKIT_RUNNER_BIN override.
func DefaultBin() string {
	if bin := os.Getenv(envvar.VisionkitRunnerBin); bin != "" {
		return bin
	}

	return "visionkit-runner"
}

// Engine is a predictor.Engine that delegates every call to the runner
// binary. One engine serves one loaded model.
type Engine struct {
	executor    *Executor
	location    artifact.Location
	task        predictor.Task
	accelerated bool
	conf        float64
	iou         float64
	params      map[string]any
	tempDir     string
}

// NewEngine creates an engine for the model at loc. The runner binary must
// exist; a missing binary is a load failure.
func NewEngine(binPath string, loc artifact.Location, task predictor.Task, accelerated bool, params map[string]any) (*Engine, error) {
	timeout := time.Duration(mapsafe.Get(params, "timeout_seconds", 0)) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	executor, err := NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return &Engine{
		executor:    executor,
		location:    loc,
		task:        task,
		accelerated: accelerated,
		conf:        defaultConfidence,
		iou:         defaultIoU,
		params:      params,
		tempDir:     os.TempDir(),
	}, nil
}

// SetConfidenceThreshold stores the confidence threshold passed on the next
// call. No clamping is applied.
func (e *Engine) SetConfidenceThreshold(v float64) {
	e.conf = v
}

// SetIoUThreshold stores the overlap threshold passed on the next call.
func (e *Engine) SetIoUThreshold(v float64) {
	e.iou = v
}

// Infer encodes img to a temp file, invokes the runner and parses its JSON
// output into a Result.
func (e *Engine) Infer(ctx context.Context, img image.Image) (*predictor.Result, error) {
	start := time.Now()

	// The runner reads its input from a file, so the image goes through a
	// temp file and is removed after the call.
	inputFile := filepath.Join(e.tempDir, fmt.Sprintf("visionkit_%s.png", uuid.NewString()))
	defer os.Remove(inputFile)

	if err := writePNG(inputFile, img); err != nil {
		return nil, fmt.Errorf("failed to stage input image: %w", err)
	}

	args := e.buildArgs(inputFile)

	stdout, stderr, err := e.executor.Execute(ctx, args, nil)
	if err != nil {
		return nil, fmt.Errorf("runner execution failed: %w\nstderr: %s", err, stderr)
	}

	var wire wireResult
	if err := json.Unmarshal(stdout, &wire); err != nil {
		return nil, fmt.Errorf("failed to parse runner output: %w", err)
	}

	result := wire.toResult()
	result.Elapsed = time.Since(start)

	bounds := img.Bounds()
	if result.OriginalWidth == 0 {
		result.OriginalWidth = bounds.Dx()
	}
	if result.OriginalHeight == 0 {
		result.OriginalHeight = bounds.Dy()
	}

	return result, nil
}

// Close releases engine resources. The runner is invoked per call, so there
// is nothing to tear down.
func (e *Engine) Close() error {
	return nil
}

// buildArgs builds the runner command line.
func (e *Engine) buildArgs(inputFile string) []string {
	device := "cpu"
	if e.accelerated {
		device = "auto"
	}

	args := []string{
		"predict",
		"--model", e.location.Path,
		"--task", e.task.String(),
		"--source", inputFile,
		"--conf", fmt.Sprintf("%.4f", e.conf),
		"--iou", fmt.Sprintf("%.4f", e.iou),
		"--device", device,
		"--format", "json",
	}

	if v := mapsafe.Get(e.params, "imgsz", 0); v > 0 {
		args = append(args, "--imgsz", fmt.Sprintf("%d", v))
	}

	if v := mapsafe.Get(e.params, "max_det", 0); v > 0 {
		args = append(args, "--max-det", fmt.Sprintf("%d", v))
	}

	if mapsafe.Get(e.params, "half", false) {
		args = append(args, "--half")
	}

	return args
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Builder returns an EngineBuilder that shells out to the runner at binPath.
func Builder(binPath string, params map[string]any) predictor.EngineBuilder {
	return func(_ context.Context, loc artifact.Location, task predictor.Task, accelerated bool) (predictor.Engine, error) {
		return NewEngine(binPath, loc, task, accelerated, params)
	}
}

// wireResult is the runner's JSON output document.
type wireResult struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Names      []string        `json:"names"`
	Detections []wireDetection `json:"detections"`
}

type wireDetection struct {
	Class     int          `json:"class"`
	Score     float64      `json:"score"`
	Box       [4]float64   `json:"box"` // left, top, right, bottom
	Mask      []float32    `json:"mask,omitempty"`
	Keypoints [][3]float64 `json:"keypoints,omitempty"`
	OBB       *[5]float64  `json:"obb,omitempty"` // cx, cy, w, h, angle
}

func (w wireResult) toResult() *predictor.Result {
	names := make(map[int]string, len(w.Names))
	for i, name := range w.Names {
		names[i] = name
	}

	detections := make([]predictor.Detection, 0, len(w.Detections))
	for _, d := range w.Detections {
		det := predictor.Detection{
			Class: d.Class,
			Score: d.Score,
			Box: image.Rect(
				int(d.Box[0]), int(d.Box[1]),
				int(d.Box[2]), int(d.Box[3]),
			),
			Mask: d.Mask,
		}

		for _, kp := range d.Keypoints {
			det.Keypoints = append(det.Keypoints, predictor.Keypoint{
				X: kp[0], Y: kp[1], Score: kp[2],
			})
		}

		if d.OBB != nil {
			det.Oriented = &predictor.OrientedBox{
				CX: d.OBB[0], CY: d.OBB[1],
				W: d.OBB[2], H: d.OBB[3],
				Angle: d.OBB[4],
			}
		}

		detections = append(detections, det)
	}

	return &predictor.Result{
		OriginalWidth:  w.Width,
		OriginalHeight: w.Height,
		Names:          names,
		Detections:     detections,
	}
}
