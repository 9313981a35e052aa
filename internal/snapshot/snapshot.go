// Package snapshot implements SystemSnapshot: aggregating current
// telemetry into a flat list of device records and emitting them as the
// JSON document described in spec.md section 6. Grounded on the teacher's
// pattern of a flat `omitempty`-tagged JSON struct per emitted entity (see
// components/accelerator/nvidia/query/nvml/nvml.go's Output/DeviceInfo
// JSON tags).
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/aiz-project/ai-z/internal/collectors"
	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// DeviceType enumerates the device_type discriminator values, per
// spec.md section 6.
type DeviceType string

const (
	DeviceGPU     DeviceType = "gpu"
	DeviceCPU     DeviceType = "cpu"
	DeviceRAM     DeviceType = "ram"
	DeviceNPU     DeviceType = "npu"
	DeviceDisk    DeviceType = "disk"
	DeviceNetwork DeviceType = "network"
)

// DeviceSnapshot is a single flattened row in the JSON devices array.
// Every field but DeviceType/DeviceName is a string, most of them with an
// embedded unit (core_count, npu_vendor and driver_version carry none),
// and is omitted entirely when the underlying value is unmeasured, per
// spec.md section 6: "Fields not measured are omitted (not null)."
type DeviceSnapshot struct {
	DeviceType DeviceType `json:"device_type"`
	DeviceName string     `json:"device_name"`

	GpuClock  string `json:"gpu_clock,omitempty"`
	MemClock  string `json:"mem_clock,omitempty"`
	Temp      string `json:"temp,omitempty"`
	FanSpeed  string `json:"fan_speed,omitempty"`
	PowerDraw string `json:"power_draw,omitempty"`
	GpuUtil   string `json:"gpu_util,omitempty"`
	MemUtil   string `json:"mem_util,omitempty"`
	VramUsed  string `json:"vram_used,omitempty"`
	VramTotal string `json:"vram_total,omitempty"`

	CpuUtil   string `json:"cpu_util,omitempty"`
	CoreCount string `json:"core_count,omitempty"`

	NpuVendor string `json:"npu_vendor,omitempty"`
	PeakTops  string `json:"peak_tops,omitempty"`

	DriverVersion string `json:"driver_version,omitempty"`

	ReadBw  string `json:"read_bw,omitempty"`
	WriteBw string `json:"write_bw,omitempty"`
	RxBw    string `json:"rx_bw,omitempty"`
	TxBw    string `json:"tx_bw,omitempty"`

	RamUsed  string `json:"ram_used,omitempty"`
	RamTotal string `json:"ram_total,omitempty"`
	RamUtil  string `json:"ram_util,omitempty"`
}

// Snapshot is the top-level JSON document emitted by --snapshot.
type Snapshot struct {
	Timestamp string           `json:"timestamp"`
	Devices   []DeviceSnapshot `json:"devices"`
}

// GpuDevice converts a merged GpuTelemetry plus its display name into a
// DeviceSnapshot row.
func GpuDevice(name string, t *gputelemetry.GpuTelemetry) DeviceSnapshot {
	d := DeviceSnapshot{DeviceType: DeviceGPU, DeviceName: name}
	if t == nil {
		return d
	}
	if t.GpuClockMHz != nil {
		d.GpuClock = fmt.Sprintf("%.0fMHz", *t.GpuClockMHz)
	}
	if t.MemClockMHz != nil {
		d.MemClock = fmt.Sprintf("%.0fMHz", *t.MemClockMHz)
	}
	if t.TempC != nil {
		d.Temp = fmt.Sprintf("%.0fC", *t.TempC)
	}
	if t.Watts != nil {
		d.PowerDraw = fmt.Sprintf("%.0fW", *t.Watts)
	}
	if t.UtilPct != nil {
		d.GpuUtil = fmt.Sprintf("%.0f%%", *t.UtilPct)
	}
	if t.MemUtilPct != nil {
		d.MemUtil = fmt.Sprintf("%.0f%%", *t.MemUtilPct)
	}
	if t.VramUsedGiB != nil {
		d.VramUsed = fmt.Sprintf("%.1fGiB", *t.VramUsedGiB)
	}
	if t.VramTotalGiB != nil {
		d.VramTotal = fmt.Sprintf("%.1fGiB", *t.VramTotalGiB)
	}
	return d
}

// CpuDevice builds the CPU row from a usage sample and core count.
func CpuDevice(name string, utilPct *float64, coreCount int) DeviceSnapshot {
	d := DeviceSnapshot{DeviceType: DeviceCPU, DeviceName: name}
	if utilPct != nil {
		d.CpuUtil = fmt.Sprintf("%.0f%%", *utilPct)
	}
	if coreCount > 0 {
		d.CoreCount = fmt.Sprintf("%d", coreCount)
	}
	return d
}

// RamDevice builds the RAM row from a ram collector sample.
func RamDevice(s collectors.RamSample) DeviceSnapshot {
	return DeviceSnapshot{
		DeviceType: DeviceRAM,
		DeviceName: "System Memory",
		RamUsed:    humanizeGiB(s.UsedGiB),
		RamTotal:   humanizeGiB(s.TotalGiB),
		RamUtil:    fmt.Sprintf("%.0f%%", s.UsedPct),
	}
}

// NpuDevice builds an NPU row from hardware probe data.
func NpuDevice(n gputelemetry.NpuDeviceInfo) DeviceSnapshot {
	d := DeviceSnapshot{
		DeviceType:    DeviceNPU,
		DeviceName:    n.Name,
		NpuVendor:     string(n.Vendor),
		DriverVersion: n.DriverVersion,
	}
	if n.PeakTops != nil {
		d.PeakTops = fmt.Sprintf("%.1f TOPS", *n.PeakTops)
	}
	return d
}

// DiskDevice builds a disk row from read/write bandwidth samples.
func DiskDevice(name string, readMBps, writeMBps *float64) DeviceSnapshot {
	d := DeviceSnapshot{DeviceType: DeviceDisk, DeviceName: name}
	if readMBps != nil {
		d.ReadBw = fmt.Sprintf("%.1f MB/s", *readMBps)
	}
	if writeMBps != nil {
		d.WriteBw = fmt.Sprintf("%.1f MB/s", *writeMBps)
	}
	return d
}

// NetworkDevice builds a network row from rx/tx bandwidth samples.
func NetworkDevice(name string, rxMBps, txMBps *float64) DeviceSnapshot {
	d := DeviceSnapshot{DeviceType: DeviceNetwork, DeviceName: name}
	if rxMBps != nil {
		d.RxBw = fmt.Sprintf("%.1f MB/s", *rxMBps)
	}
	if txMBps != nil {
		d.TxBw = fmt.Sprintf("%.1f MB/s", *txMBps)
	}
	return d
}

func humanizeGiB(gib float64) string {
	return fmt.Sprintf("%.1fGiB", gib)
}

// Marshal renders a Snapshot to its JSON wire form.
func Marshal(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}
