//go:build linux

package sources

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// AMDSysfs reads AMD GPU telemetry directly from /sys/class/drm/card*, the
// source of last resort on Linux when ROCm-SMI is not installed, per
// spec.md section 4.5 item 5.
type AMDSysfs struct{}

func NewAMDSysfs() *AMDSysfs { return &AMDSysfs{} }

func (AMDSysfs) Name() string { return gputelemetry.SourceAMDSysfs }

func (a *AMDSysfs) Read(index int) *gputelemetry.GpuTelemetry {
	dir := cardDeviceDir(index)
	if dir == "" {
		return nil
	}
	vendor := readSysfsAttr(filepath.Join(dir, "vendor"))
	if vendor != "0x1002" { // AMD PCI vendor ID
		return nil
	}

	t := &gputelemetry.GpuTelemetry{Source: gputelemetry.SourceAMDSysfs}
	if busy, ok := readSysfsPercent(filepath.Join(dir, "gpu_busy_percent")); ok {
		t.UtilPct = f64(busy)
	}
	if total, ok := readSysfsUint64(filepath.Join(dir, "mem_info_vram_total")); ok {
		t.VramTotalGiB = f64(float64(total) / (1 << 30))
	}
	if used, ok := readSysfsUint64(filepath.Join(dir, "mem_info_vram_used")); ok {
		t.VramUsedGiB = f64(float64(used) / (1 << 30))
	}
	if level := readSysfsAttr(filepath.Join(dir, "power_dpm_force_performance_level")); level != "" {
		t.Pstate = str(level)
	}

	hwmon := firstHwmonDir(dir)
	if hwmon != "" {
		if milliC, ok := readSysfsUint64(filepath.Join(hwmon, "temp1_input")); ok {
			t.TempC = f64(float64(milliC) / 1000.0)
		}
		if microW, ok := readSysfsUint64(filepath.Join(hwmon, "power1_average")); ok {
			t.Watts = f64(float64(microW) / 1_000_000.0)
		}
	}

	if t.UtilPct == nil && t.VramTotalGiB == nil && t.TempC == nil && t.Watts == nil {
		return nil
	}
	return t
}

func cardDeviceDir(index int) string {
	dir := "/sys/class/drm/card" + strconv.Itoa(index) + "/device"
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}

func firstHwmonDir(deviceDir string) string {
	hwmonRoot := filepath.Join(deviceDir, "hwmon")
	entries, err := os.ReadDir(hwmonRoot)
	if err != nil || len(entries) == 0 {
		return ""
	}
	return filepath.Join(hwmonRoot, entries[0].Name())
}

func readSysfsAttr(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readSysfsUint64(path string) (uint64, bool) {
	v := readSysfsAttr(path)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func readSysfsPercent(path string) (float64, bool) {
	n, ok := readSysfsUint64(path)
	if !ok {
		return 0, false
	}
	return float64(n), true
}
