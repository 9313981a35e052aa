//go:build !linux

package hwprobe

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// probeNPUs has no sysfs-equivalent enumeration path on non-Linux
// platforms in this dependency set; npu_amd_windows.cpp/npu_intel_windows.cpp
// rely on vendor COM/ioctl surfaces not wired by this pack (see
// internal/gputelemetry/sources' Windows sources for the same gap noted
// against ADLX/IGCL telemetry extraction).
func probeNPUs() []gputelemetry.NpuDeviceInfo {
	return nil
}
