//go:build linux

package hwprobe

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// intelNpuNames maps known Intel NPU device IDs to marketing names and
// their advertised peak INT8 TOPS, ported from the reference
// implementation's probeIntelNpuLinux device table.
var intelNpuNames = map[uint32]struct {
	name string
	tops float64
}{
	0x7D1D: {"Intel AI Boost (Meteor Lake NPU)", 10.0},
	0xAD1D: {"Intel AI Boost (Arrow Lake NPU)", 13.0},
	0xB01D: {"Intel AI Boost (Lunar Lake NPU)", 48.0},
	0x643E: {"Intel AI Boost (Panther Lake NPU)", 60.0},
}

const (
	intelVendorID        = 0x8086
	npuProcessingClass   = 0x0b40
	npuSignalProcClass   = 0x1280
)

// probeNPUs enumerates NPU devices exposed by the Linux DRM accel
// subsystem at /sys/class/accel, falling back to /sys/class/drm on
// kernels that predate the dedicated accel class.
func probeNPUs() []gputelemetry.NpuDeviceInfo {
	dir := "/sys/class/accel"
	entries, err := os.ReadDir(dir)
	if err != nil {
		dir = "/sys/class/drm"
		entries, err = os.ReadDir(dir)
		if err != nil {
			return nil
		}
	}

	var devices []gputelemetry.NpuDeviceInfo
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "accel") {
			continue
		}
		deviceDir := filepath.Join(dir, e.Name(), "device")

		vendorID := readSysfsHex(filepath.Join(deviceDir, "vendor"))
		if vendorID != intelVendorID {
			continue
		}

		classVal := readSysfsHex(filepath.Join(deviceDir, "class"))
		isNpu := (classVal>>8) == npuProcessingClass || (classVal>>8) == npuSignalProcClass
		if !isNpu {
			isNpu = strings.Contains(driverName(deviceDir), "vpu") || strings.Contains(driverName(deviceDir), "npu")
		}
		if !isNpu {
			continue
		}

		deviceID := readSysfsHex(filepath.Join(deviceDir, "device"))
		info := gputelemetry.NpuDeviceInfo{
			Vendor:   gputelemetry.NpuVendorIntel,
			VendorID: vendorID,
			DeviceID: deviceID,
			Name:     "Intel Neural Processing Unit",
		}
		if known, ok := intelNpuNames[deviceID]; ok {
			info.Name = known.name
			tops := known.tops
			info.PeakTops = &tops
		}

		info.DriverVersion = driverVersion(deviceDir)
		info.DetailLines = append(info.DetailLines, fmt.Sprintf(" Device ID: 0x%X", deviceID))
		if info.PeakTops != nil {
			info.DetailLines = append(info.DetailLines, fmt.Sprintf(" Peak Performance: %.1f TOPS (INT8)", *info.PeakTops))
		}
		if info.DriverVersion != "" {
			info.DetailLines = append(info.DetailLines, " Driver: "+info.DriverVersion)
		}

		devices = append(devices, info)
	}
	return devices
}

func readSysfsHex(path string) uint32 {
	s := readSysfsLine(path)
	s = strings.TrimPrefix(s, "0x")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

func readSysfsLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

func driverName(deviceDir string) string {
	target, err := os.Readlink(filepath.Join(deviceDir, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

func driverVersion(deviceDir string) string {
	name := driverName(deviceDir)
	if name == "" {
		return ""
	}
	if v := readSysfsLine(filepath.Join("/sys/module", name, "version")); v != "" {
		return v
	}
	return ""
}
