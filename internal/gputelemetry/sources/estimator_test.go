package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

func TestEstimateCapMonotonicInWidth(t *testing.T) {
	gen := uint32(4)
	assert.LessOrEqual(t, EstimateCapMBps(gen, 4), EstimateCapMBps(gen, 8))
	assert.LessOrEqual(t, EstimateCapMBps(gen, 8), EstimateCapMBps(gen, 16))
}

func TestEstimateCapUnknownGenerationIsZero(t *testing.T) {
	assert.Equal(t, 0.0, EstimateCapMBps(99, 16))
}

func TestEstimatorReadRequiresKnownLink(t *testing.T) {
	e := NewEstimator(func(index int) (gputelemetry.PcieLink, bool) {
		return gputelemetry.PcieLink{}, false
	})
	assert.Nil(t, e.Read(0))
}

func TestEstimatorReadProducesNote(t *testing.T) {
	e := NewEstimator(func(index int) (gputelemetry.PcieLink, bool) {
		return gputelemetry.PcieLink{Generation: 3, Width: 16}, true
	})
	got := e.Read(0)
	assert.NotNil(t, got)
	assert.Equal(t, gputelemetry.SourcePCIeCap, got.Source)
	assert.NotNil(t, got.PcieLinkNote)
}
