//go:build !windows

package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// LinkFunc has no negotiated-link source on non-Windows platforms (the
// sysfs sources this pack draws from don't expose PCIe generation/width),
// so the Estimator simply never fires here; measured PCIe bandwidth comes
// only from NVML, ahead of it in priority order.
func LinkFunc() func(index int) (gputelemetry.PcieLink, bool) {
	return func(index int) (gputelemetry.PcieLink, bool) {
		return gputelemetry.PcieLink{}, false
	}
}
