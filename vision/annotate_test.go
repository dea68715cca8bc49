package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/visionkit/predictor"
)

func TestAnnotateReturnsCopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	res := &predictor.Result{
		Detections: []predictor.Detection{
			{Class: 0, Score: 0.9, Box: image.Rect(8, 8, 40, 40)},
		},
		Names: map[int]string{0: "person"},
	}

	out := NewDrawAnnotator().Annotate(src, res)

	require.NotNil(t, out)
	assert.NotSame(t, src, out)
	assert.Equal(t, src.Bounds(), out.Bounds())

	// box outline must have been painted
	rgba := out.(*image.RGBA)
	assert.NotEqual(t, src.RGBAAt(8, 8), rgba.RGBAAt(8, 8))
}

func TestAnnotateHandlesAllShapes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 128, 128))
	res := &predictor.Result{
		Detections: []predictor.Detection{
			{Class: 3, Score: 0.5, Box: image.Rect(0, 0, 10, 10)},
			{
				Class: 1,
				Score: 0.7,
				Keypoints: []predictor.Keypoint{
					{X: 20, Y: 20, Score: 0.9}, {X: 30, Y: 25, Score: 0.8},
				},
			},
			{
				Class:    2,
				Score:    0.6,
				Oriented: &predictor.OrientedBox{CX: 64, CY: 64, W: 30, H: 20, Angle: 0.5},
			},
		},
		Names: map[int]string{1: "person"},
	}

	// class 3 has no name and the first box touches the image edge; neither
	// may panic
	assert.NotPanics(t, func() {
		NewDrawAnnotator().Annotate(src, res)
	})
}

func TestAnnotateEmptyResultIsStillACopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))

	out := NewDrawAnnotator().Annotate(src, predictor.EmptyResult())
	assert.NotSame(t, src, out)
}
