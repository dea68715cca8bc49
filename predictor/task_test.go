package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTask(t *testing.T) {
	assert.Equal(t, TaskClassify, ParseTask("classify"))
	assert.Equal(t, TaskDetect, ParseTask("detect"))
	assert.Equal(t, TaskSegment, ParseTask("segment"))
	assert.Equal(t, TaskPose, ParseTask("pose"))
	assert.Equal(t, TaskOBB, ParseTask("obb"))
}

func TestParseTaskNormalizes(t *testing.T) {
	assert.Equal(t, TaskClassify, ParseTask("  Classify "))
	assert.Equal(t, TaskOBB, ParseTask("OBB"))
}

func TestParseTaskFallsBackToDetect(t *testing.T) {
	assert.Equal(t, TaskDetect, ParseTask(""))
	assert.Equal(t, TaskDetect, ParseTask("banana"))
	assert.Equal(t, TaskDetect, ParseTask("classification"))
}
