package predictor

import (
	"context"
	"fmt"

	"github.com/ekisa-team/visionkit/artifact"
)

// EngineBuilder materializes an Engine from a resolved artifact location.
// Implementations own model loading and acceleration-backend selection.
type EngineBuilder func(ctx context.Context, loc artifact.Location, task Task, accelerated bool) (Engine, error)

// Factory maps tasks to predictor families over a single engine builder.
type Factory struct {
	build EngineBuilder
}

// NewFactory creates a factory backed by build.
func NewFactory(build EngineBuilder) *Factory {
	return &Factory{build: build}
}

// Create loads the model at loc and wraps it in the predictor family keyed
// by task. Every builder failure funnels into the same ErrLoadFailed outcome.
func (f *Factory) Create(ctx context.Context, loc artifact.Location, task Task, accelerated bool) (Predictor, error) {
	engine, err := f.build(ctx, loc, task, accelerated)
	if err != nil {
		return nil, fmt.Errorf("%w: %s model at %s: %w", ErrLoadFailed, task, loc.Path, err)
	}

	switch task {
	case TaskClassify:
		return NewClassifier(engine), nil
	case TaskSegment:
		return NewSegmenter(engine), nil
	case TaskPose:
		return NewPoseEstimator(engine), nil
	case TaskOBB:
		return NewOBBDetector(engine), nil
	case TaskDetect:
		return NewObjectDetector(engine), nil
	default:
		// unknown task strings degrade to plain detection
		return NewObjectDetector(engine), nil
	}
}
