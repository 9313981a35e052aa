// Package sources implements the priority-ordered GpuTelemetrySources of
// spec.md section 4.5: one file per vendor/OS source, each returning a
// partial GpuTelemetry for a device index (or nil when the source has
// nothing to say about that device).
package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// Source reads a partial telemetry record for a device index. A nil
// return means "this source has nothing for this device" and the merger
// moves on to the next source in priority order.
type Source interface {
	// Name identifies the source for logging and the diagnostic commands.
	Name() string
	// Read returns a partial record for the given device index, or nil.
	Read(index int) *gputelemetry.GpuTelemetry
}

func f64(v float64) *float64 { return &v }
func u32(v uint32) *uint32   { return &v }
func str(v string) *string   { return &v }
