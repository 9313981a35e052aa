//go:build linux

package sources

import (
	"path/filepath"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// IntelSysfs reads Intel GPU telemetry from /sys/class/drm/card*, per
// spec.md section 4.5 item 6.
type IntelSysfs struct{}

func NewIntelSysfs() *IntelSysfs { return &IntelSysfs{} }

func (IntelSysfs) Name() string { return gputelemetry.SourceIntelSysfs }

func (s *IntelSysfs) Read(index int) *gputelemetry.GpuTelemetry {
	dir := cardDeviceDir(index)
	if dir == "" {
		return nil
	}
	if readSysfsAttr(filepath.Join(dir, "vendor")) != "0x8086" { // Intel PCI vendor ID
		return nil
	}

	t := &gputelemetry.GpuTelemetry{Source: gputelemetry.SourceIntelSysfs}
	if busy, ok := readSysfsPercent(filepath.Join(dir, "gt_busy_percent")); ok {
		t.UtilPct = f64(busy)
	}
	if total, ok := readSysfsUint64(filepath.Join(dir, "mem_info_vram_total")); ok {
		t.VramTotalGiB = f64(float64(total) / (1 << 30))
	}
	if used, ok := readSysfsUint64(filepath.Join(dir, "mem_info_vram_used")); ok {
		t.VramUsedGiB = f64(float64(used) / (1 << 30))
	}

	hwmon := firstHwmonDir(dir)
	if hwmon != "" {
		if milliC, ok := readSysfsUint64(filepath.Join(hwmon, "temp1_input")); ok {
			t.TempC = f64(float64(milliC) / 1000.0)
		}
	}

	if t.UtilPct == nil && t.VramTotalGiB == nil && t.TempC == nil {
		return nil
	}
	return t
}
