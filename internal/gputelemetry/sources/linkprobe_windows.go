//go:build windows

package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// LinkFunc returns the PriorityList Estimator's link lookup function:
// SetupAPI's negotiated link width/generation, the same value the
// --diag-pcie flag inspects directly.
func LinkFunc() func(index int) (gputelemetry.PcieLink, bool) {
	link := NewSetupAPILink()
	return func(index int) (gputelemetry.PcieLink, bool) {
		t := link.Read(index)
		if t == nil || t.PcieLinkGen == nil || t.PcieLinkWidth == nil {
			return gputelemetry.PcieLink{}, false
		}
		return gputelemetry.PcieLink{Generation: *t.PcieLinkGen, Width: *t.PcieLinkWidth}, true
	}
}
