package predictor

import (
	"context"
	"image"
)

// Engine is the opaque inference capability a predictor family wraps. It
// owns model loading, acceleration selection and the actual forward pass.
type Engine interface {
	// SetConfidenceThreshold sets the minimum detection confidence. Values
	// are passed through unclamped; the engine may clamp or reject.
	SetConfidenceThreshold(v float64)

	// SetIoUThreshold sets the overlap threshold used for suppression.
	SetIoUThreshold(v float64)

	// Infer runs the model against img and returns a task-shaped result.
	Infer(ctx context.Context, img image.Image) (*Result, error)

	// Close releases engine resources.
	Close() error
}

// Predictor is a task-specialized inference capability. A predictor is
// exclusive-use: callers must not issue concurrent Predict calls unless the
// underlying engine documents otherwise.
type Predictor interface {
	SetConfidenceThreshold(v float64)
	SetIoUThreshold(v float64)
	Predict(ctx context.Context, img image.Image) (*Result, error)
	Task() Task
	Close() error
}

// family carries the shared predictor behavior; each concrete family type
// pins the task it answers for.
type family struct {
	task   Task
	engine Engine
}

func (f *family) SetConfidenceThreshold(v float64) {
	f.engine.SetConfidenceThreshold(v)
}

func (f *family) SetIoUThreshold(v float64) {
	f.engine.SetIoUThreshold(v)
}

func (f *family) Predict(ctx context.Context, img image.Image) (*Result, error) {
	return f.engine.Infer(ctx, img)
}

func (f *family) Task() Task {
	return f.task
}

func (f *family) Close() error {
	return f.engine.Close()
}

// Classifier is the whole-image classification family.
type Classifier struct{ family }

// NewClassifier wraps engine as a classification predictor.
func NewClassifier(engine Engine) *Classifier {
	return &Classifier{family{task: TaskClassify, engine: engine}}
}

// ObjectDetector is the axis-aligned box detection family. It is also the
// fallback family for unrecognized tasks.
type ObjectDetector struct{ family }

// NewObjectDetector wraps engine as a detection predictor.
func NewObjectDetector(engine Engine) *ObjectDetector {
	return &ObjectDetector{family{task: TaskDetect, engine: engine}}
}

// Segmenter is the instance segmentation family.
type Segmenter struct{ family }

// NewSegmenter wraps engine as a segmentation predictor.
func NewSegmenter(engine Engine) *Segmenter {
	return &Segmenter{family{task: TaskSegment, engine: engine}}
}

// PoseEstimator is the keypoint estimation family.
type PoseEstimator struct{ family }

// NewPoseEstimator wraps engine as a pose predictor.
func NewPoseEstimator(engine Engine) *PoseEstimator {
	return &PoseEstimator{family{task: TaskPose, engine: engine}}
}

// OBBDetector is the oriented bounding box family.
type OBBDetector struct{ family }

// NewOBBDetector wraps engine as an oriented-box predictor.
func NewOBBDetector(engine Engine) *OBBDetector {
	return &OBBDetector{family{task: TaskOBB, engine: engine}}
}
