package predictor

import (
	"image"
	"time"
)

// Keypoint is a single pose keypoint in original-image coordinates.
type Keypoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// OrientedBox is a rotated bounding box, center-based, angle in radians.
type OrientedBox struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Angle float64 `json:"angle"`
}

// Detection is a single detected object. Box, Score and Class are filled for
// every task; Mask, Keypoints and Oriented are only populated by the task
// family that produces them.
type Detection struct {
	// Class is the index into the model's class names.
	Class int `json:"class"`

	// Score is the confidence of the detection.
	Score float64 `json:"score"`

	// Box is the axis-aligned bounding box in original-image coordinates.
	Box image.Rectangle `json:"box"`

	// Mask holds per-pixel coverage for segmentation results, row-major over
	// the box region.
	Mask []float32 `json:"mask,omitempty"`

	// Keypoints holds the pose skeleton for pose results.
	Keypoints []Keypoint `json:"keypoints,omitempty"`

	// Oriented holds the rotated box for oriented-detection results.
	Oriented *OrientedBox `json:"oriented,omitempty"`
}

// Result is the normalized outcome of one inference call. It is created
// fresh per call and owned by the caller.
type Result struct {
	// OriginalWidth and OriginalHeight are the dimensions of the image the
	// inference ran against, before any engine-side resizing.
	OriginalWidth  int `json:"original_width"`
	OriginalHeight int `json:"original_height"`

	// Detections are the per-object records, in engine output order.
	Detections []Detection `json:"detections"`

	// Elapsed is the wall time the engine spent on this call.
	Elapsed time.Duration `json:"elapsed"`

	// Names maps class indices to class names.
	Names map[int]string `json:"names"`

	// Annotated is the input image with detections drawn on it, when
	// annotation was requested and the entry point supports it.
	Annotated image.Image `json:"-"`
}

// EmptyResult returns the zero-shaped result used when an input cannot be
// fetched, decoded or rendered: no detections, an empty name map, zero
// elapsed time, no annotated image.
func EmptyResult() *Result {
	return &Result{
		Names: map[int]string{},
	}
}

// Empty reports whether r carries no detections and no shape, the signature
// of a degraded call.
func (r *Result) Empty() bool {
	return len(r.Detections) == 0 && r.OriginalWidth == 0 && r.OriginalHeight == 0
}
