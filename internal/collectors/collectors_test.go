package collectors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCpuUsageFirstCallIsUnprimed(t *testing.T) {
	c := NewCpuUsage()
	_, ok := c.Sample()
	assert.False(t, ok)
}

func TestCpuUsageSecondCallWithinMinIntervalRejected(t *testing.T) {
	c := NewCpuUsage()
	c.Sample()
	_, ok := c.Sample()
	assert.False(t, ok, "a near-zero interval between samples must be rejected")
}

func TestCpuUsageEventuallyPrimes(t *testing.T) {
	c := NewCpuUsage()
	c.Sample()
	time.Sleep(20 * time.Millisecond)
	s, ok := c.Sample()
	if ok {
		assert.GreaterOrEqual(t, s.Value, 0.0)
		assert.LessOrEqual(t, s.Value, 100.0)
		assert.Equal(t, "%", s.Unit)
	}
}

func TestDiskBandwidthFirstCallUnprimed(t *testing.T) {
	d := NewDiskBandwidthRead()
	_, ok := d.Sample()
	assert.False(t, ok)
}

func TestNetworkBandwidthFirstCallUnprimed(t *testing.T) {
	n := NewNetworkBandwidthRx()
	_, ok := n.Sample()
	assert.False(t, ok)
}

func TestRamUsageImmediate(t *testing.T) {
	r := NewRamUsage()
	s, ok := r.Sample()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, s.TotalGiB, 0.0)
	assert.GreaterOrEqual(t, s.UsedPct, 0.0)
	assert.LessOrEqual(t, s.UsedPct, 100.0)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-5))
	assert.Equal(t, 100.0, clampPercent(150))
	assert.Equal(t, 42.0, clampPercent(42))
}
