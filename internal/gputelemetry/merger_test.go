package gputelemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aiz-project/ai-z/internal/gputelemetry/sources"
)

type stubSource struct {
	name string
	out  *GpuTelemetry
}

func (s stubSource) Name() string                      { return s.name }
func (s stubSource) Read(index int) *GpuTelemetry { return s.out }

func f64p(v float64) *float64 { return &v }

func TestMergerFillsOnlyMissingFields(t *testing.T) {
	first := stubSource{name: "a", out: &GpuTelemetry{Source: "a", UtilPct: f64p(10)}}
	second := stubSource{name: "b", out: &GpuTelemetry{Source: "b", UtilPct: f64p(99), TempC: f64p(55)}}

	m := NewMerger([]sources.Source{first, second})
	got := m.Read(0)

	assert.NotNil(t, got)
	assert.Equal(t, "a", got.Source)
	assert.Equal(t, 10.0, *got.UtilPct, "first source wins, second must not overwrite")
	assert.Equal(t, 55.0, *got.TempC, "second source fills a field the first left empty")
}

func TestMergerReturnsNilWhenNoSourceContributes(t *testing.T) {
	m := NewMerger([]sources.Source{stubSource{name: "a", out: nil}})
	assert.Nil(t, m.Read(0))
}

func TestMergerDerivesMemUtilFromVram(t *testing.T) {
	s := stubSource{name: "a", out: &GpuTelemetry{
		Source:       "a",
		VramUsedGiB:  f64p(4),
		VramTotalGiB: f64p(16),
	}}
	m := NewMerger([]sources.Source{s})
	got := m.Read(0)

	assert.NotNil(t, got.MemUtilPct)
	assert.InDelta(t, 25.0, *got.MemUtilPct, 1e-6)
}

func TestMergerDerivedMemUtilClampsToRange(t *testing.T) {
	s := stubSource{name: "a", out: &GpuTelemetry{
		Source:       "a",
		VramUsedGiB:  f64p(20),
		VramTotalGiB: f64p(16),
	}}
	m := NewMerger([]sources.Source{s})
	got := m.Read(0)
	assert.InDelta(t, 100.0, *got.MemUtilPct, 1e-6)
}

func TestMemoryBandwidthPrefersTransferRate(t *testing.T) {
	rate := 10000.0
	clk := 5000.0
	tel := &GpuTelemetry{MemTransferRateMHz: &rate, MemClockMHz: &clk}
	gbps, ok := MemoryBandwidthGbps(tel, 256)
	assert.True(t, ok)
	assert.InDelta(t, 10000.0*(256.0/8)/1000, gbps, 1e-9)
}

func TestMemoryBandwidthFallsBackToClock(t *testing.T) {
	clk := 5000.0
	tel := &GpuTelemetry{MemClockMHz: &clk}
	gbps, ok := MemoryBandwidthGbps(tel, 256)
	assert.True(t, ok)
	assert.InDelta(t, 5000.0*(256.0/8)*2/1000, gbps, 1e-9)
}

func TestMemoryBandwidthUnavailable(t *testing.T) {
	_, ok := MemoryBandwidthGbps(&GpuTelemetry{}, 256)
	assert.False(t, ok)
}
