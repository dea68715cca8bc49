package predictor

import "strings"

// Task is the kind of vision problem a model solves. The set is closed;
// every dispatch site switches exhaustively over these five values.
type Task string

const (
	// TaskClassify assigns whole-image class labels.
	TaskClassify Task = "classify"

	// TaskDetect locates objects with axis-aligned bounding boxes.
	TaskDetect Task = "detect"

	// TaskSegment produces per-object masks in addition to boxes.
	TaskSegment Task = "segment"

	// TaskPose estimates per-object keypoint skeletons.
	TaskPose Task = "pose"

	// TaskOBB locates objects with oriented bounding boxes.
	TaskOBB Task = "obb"
)

// ParseTask maps a free-form string to a Task. Unknown or empty values fall
// back to TaskDetect.
func ParseTask(s string) Task {
	switch Task(strings.ToLower(strings.TrimSpace(s))) {
	case TaskClassify:
		return TaskClassify
	case TaskSegment:
		return TaskSegment
	case TaskPose:
		return TaskPose
	case TaskOBB:
		return TaskOBB
	default:
		return TaskDetect
	}
}

// String returns the task identifier.
func (t Task) String() string {
	return string(t)
}
