package sampler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

type stubMerger struct {
	result *gputelemetry.GpuTelemetry
}

func (m stubMerger) Read(index int) *gputelemetry.GpuTelemetry { return m.result }

func TestSamplerPublishesSnapshot(t *testing.T) {
	util := 42.0
	m := stubMerger{result: &gputelemetry.GpuTelemetry{UtilPct: &util}}
	s := New(m, func() int { return 1 }, func() (map[int]gputelemetry.PcieThroughput, bool) {
		return map[int]gputelemetry.PcieThroughput{0: {RxMbps: 1, TxMbps: 2}}, true
	})
	s.interval = time.Millisecond
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		gpus, pcie := s.Snapshot()
		g, ok := gpus[0]
		return ok && g != nil && g.UtilPct != nil && *g.UtilPct == 42 && pcie[0].RxMbps == 1
	}, time.Second, time.Millisecond)
}

func TestSamplerMemoizesUnsupportedPcie(t *testing.T) {
	m := stubMerger{}
	calls := 0
	s := New(m, func() int { return 0 }, func() (map[int]gputelemetry.PcieThroughput, bool) {
		calls++
		return nil, false
	})
	s.interval = time.Millisecond
	s.Start()
	defer s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.False(t, s.pcieEnabled())
	callsAfterDisable := calls
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, callsAfterDisable, calls, "pcie probe must not be retried once marked unsupported")
}

func TestSnapshotReturnsIndependentCopies(t *testing.T) {
	m := stubMerger{result: &gputelemetry.GpuTelemetry{}}
	s := New(m, func() int { return 1 }, func() (map[int]gputelemetry.PcieThroughput, bool) {
		return nil, false
	})
	s.tick()
	gpus, _ := s.Snapshot()
	gpus[0] = nil
	gpus2, _ := s.Snapshot()
	assert.NotNil(t, gpus2[0], "mutating a returned snapshot must not affect the cached state")
}
