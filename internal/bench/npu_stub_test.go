package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNPUPlaceholderAlwaysUnavailable(t *testing.T) {
	b := NewNPUPlaceholder("Intel AI Boost")
	assert.Equal(t, "NPU OpenVINO MatMul", b.Name())
	assert.False(t, b.IsAvailable())

	res := b.Run()
	assert.False(t, res.OK)
	assert.Contains(t, res.Summary, "Not built with")
}
