package gputelemetry

import "github.com/aiz-project/ai-z/internal/gputelemetry/sources"

// Merger queries a priority-ordered list of sources for a device index and
// merges their fields into one canonical record, per spec.md section 4.6.
type Merger struct {
	priority []sources.Source
}

// NewMerger builds a merger over the given sources, which must already be
// in priority order (highest priority first).
func NewMerger(priority []sources.Source) *Merger {
	return &Merger{priority: priority}
}

// Read queries every source in priority order for device index, filling
// only fields still missing from the accumulated record, then derives any
// computable-but-absent fields. It returns nil if no source produced
// anything at all.
func (m *Merger) Read(index int) *GpuTelemetry {
	t := &GpuTelemetry{}
	any := false

	for _, s := range m.priority {
		partial := s.Read(index)
		if partial == nil {
			continue
		}
		any = true
		mergeInto(t, partial)
		if t.Source == "" {
			t.Source = partial.Source
		}
	}

	if !any {
		return nil
	}
	deriveMissing(t)
	return t
}

// mergeInto copies every field set in src into dst, but only where dst
// does not already have a value — first-writer-wins, matching the
// priority-ordered merge in spec.md section 4.6.
func mergeInto(dst, src *GpuTelemetry) {
	if dst.UtilPct == nil {
		dst.UtilPct = src.UtilPct
	}
	if dst.MemUtilPct == nil {
		dst.MemUtilPct = src.MemUtilPct
	}
	if dst.VramUsedGiB == nil {
		dst.VramUsedGiB = src.VramUsedGiB
	}
	if dst.VramTotalGiB == nil {
		dst.VramTotalGiB = src.VramTotalGiB
	}
	if dst.Watts == nil {
		dst.Watts = src.Watts
	}
	if dst.TempC == nil {
		dst.TempC = src.TempC
	}
	if dst.Pstate == nil {
		dst.Pstate = src.Pstate
	}
	if dst.GpuClockMHz == nil {
		dst.GpuClockMHz = src.GpuClockMHz
	}
	if dst.MemClockMHz == nil {
		dst.MemClockMHz = src.MemClockMHz
	}
	if dst.MemTransferRateMHz == nil {
		dst.MemTransferRateMHz = src.MemTransferRateMHz
	}
	if dst.EncoderUtilPct == nil {
		dst.EncoderUtilPct = src.EncoderUtilPct
	}
	if dst.DecoderUtilPct == nil {
		dst.DecoderUtilPct = src.DecoderUtilPct
	}
	if dst.PcieLinkWidth == nil {
		dst.PcieLinkWidth = src.PcieLinkWidth
	}
	if dst.PcieLinkGen == nil {
		dst.PcieLinkGen = src.PcieLinkGen
	}
	if dst.PcieLinkNote == nil {
		dst.PcieLinkNote = src.PcieLinkNote
	}
}

// deriveMissing fills fields computable from others already present, per
// spec.md section 4.5's derivation rules.
func deriveMissing(t *GpuTelemetry) {
	if t.MemUtilPct == nil && t.VramUsedGiB != nil && t.VramTotalGiB != nil && *t.VramTotalGiB > 0 {
		pct := *t.VramUsedGiB / *t.VramTotalGiB * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		t.MemUtilPct = &pct
	}
}

// MemoryBandwidthGbps computes max_mem_bandwidth_gbps from transfer rate
// or clock + bus width, per spec.md section 4.5's two fallback formulas.
// busWidthBits is the memory bus width in bits; it returns (0, false) when
// neither input is available.
func MemoryBandwidthGbps(t *GpuTelemetry, busWidthBits float64) (float64, bool) {
	if busWidthBits <= 0 {
		return 0, false
	}
	if t.MemTransferRateMHz != nil && *t.MemTransferRateMHz > 0 {
		return *t.MemTransferRateMHz * (busWidthBits / 8) / 1000, true
	}
	if t.MemClockMHz != nil && *t.MemClockMHz > 0 {
		return *t.MemClockMHz * (busWidthBits / 8) * 2 / 1000, true
	}
	return 0, false
}
