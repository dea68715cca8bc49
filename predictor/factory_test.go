package predictor

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/visionkit/artifact"
)

// stubEngine records the threshold values pushed into it.
type stubEngine struct {
	conf   float64
	iou    float64
	closed bool
}

func (e *stubEngine) SetConfidenceThreshold(v float64) { e.conf = v }
func (e *stubEngine) SetIoUThreshold(v float64)        { e.iou = v }

func (e *stubEngine) Infer(_ context.Context, _ image.Image) (*Result, error) {
	return &Result{Names: map[int]string{}}, nil
}

func (e *stubEngine) Close() error {
	e.closed = true
	return nil
}

func stubBuilder(_ context.Context, _ artifact.Location, _ Task, _ bool) (Engine, error) {
	return &stubEngine{}, nil
}

var testLocation = artifact.Location{Path: "/models/test.onnx", Kind: artifact.KindFileModel}

func TestFactoryTaskRouting(t *testing.T) {
	f := NewFactory(stubBuilder)
	ctx := context.Background()

	tests := []struct {
		task Task
		want any
	}{
		{TaskClassify, &Classifier{}},
		{TaskSegment, &Segmenter{}},
		{TaskPose, &PoseEstimator{}},
		{TaskOBB, &OBBDetector{}},
		{TaskDetect, &ObjectDetector{}},
		{Task("banana"), &ObjectDetector{}},
	}

	for _, tt := range tests {
		p, err := f.Create(ctx, testLocation, tt.task, true)
		require.NoError(t, err)
		assert.IsType(t, tt.want, p)
	}
}

func TestFactoryFallbackPredictorReportsDetect(t *testing.T) {
	f := NewFactory(stubBuilder)

	p, err := f.Create(context.Background(), testLocation, Task("banana"), true)
	require.NoError(t, err)
	assert.Equal(t, TaskDetect, p.Task())
}

func TestFactoryFunnelsLoadFailures(t *testing.T) {
	cause := errors.New("model file is corrupt")
	f := NewFactory(func(_ context.Context, _ artifact.Location, _ Task, _ bool) (Engine, error) {
		return nil, cause
	})

	p, err := f.Create(context.Background(), testLocation, TaskDetect, true)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, cause)
}

func TestPredictorDelegatesToEngine(t *testing.T) {
	engine := &stubEngine{}
	p := NewSegmenter(engine)

	p.SetConfidenceThreshold(0.7)
	p.SetIoUThreshold(0.5)
	assert.Equal(t, 0.7, engine.conf)
	assert.Equal(t, 0.5, engine.iou)

	res, err := p.Predict(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	assert.NotNil(t, res)

	require.NoError(t, p.Close())
	assert.True(t, engine.closed)
	assert.Equal(t, TaskSegment, p.Task())
}
