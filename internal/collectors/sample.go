// Package collectors implements the stateful, per-metric OS samplers that
// feed the CPU/RAM/disk/network rows of the UI and JSON snapshot, grounded
// on the teacher's field-extraction style in
// components/accelerator/nvidia/query/nvml and on beszel's gopsutil-based
// delta collectors (internal/agent/cpu.go, disk.go, network.go).
package collectors

import "time"

// Sample is a single collector reading: a numeric value, its unit, and a
// human-readable label.
type Sample struct {
	Value float64
	Unit  string
	Label string
}

// minInterval is the smallest wall-clock gap between two samples a delta
// collector will honor; anything tighter is rejected (returns false) to
// avoid dividing by a near-zero interval, per spec.md section 4.4.
const minInterval = 10 * time.Millisecond

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
