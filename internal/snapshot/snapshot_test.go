package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiz-project/ai-z/internal/collectors"
	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

func f64p(v float64) *float64 { return &v }

func TestGpuDeviceOmitsUnmeasuredFields(t *testing.T) {
	d := GpuDevice("Test GPU", &gputelemetry.GpuTelemetry{
		UtilPct: f64p(42),
		TempC:   f64p(65),
	})

	data, err := json.Marshal(d)
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, `"gpu_util":"42%"`)
	assert.Contains(t, s, `"temp":"65C"`)
	assert.NotContains(t, s, "fan_speed")
	assert.NotContains(t, s, "power_draw")
	assert.NotContains(t, s, "vram_used")
}

func TestGpuDeviceNilTelemetryYieldsBareRow(t *testing.T) {
	d := GpuDevice("Test GPU", nil)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"device_type":"gpu","device_name":"Test GPU"}`, string(data))
}

func TestNoGpuAndNoNVMLScenario(t *testing.T) {
	snap := Snapshot{
		Timestamp: "2026-07-31T00:00:00Z",
		Devices: []DeviceSnapshot{
			CpuDevice("CPU", f64p(12), 8),
			RamDevice(collectors.RamSample{UsedGiB: 4, TotalGiB: 16, UsedPct: 25}),
		},
	}

	data, err := Marshal(snap)
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, `"device_type":"gpu"`)
	assert.Contains(t, s, `"device_type":"cpu"`)
	assert.Contains(t, s, `"device_type":"ram"`)
	assert.NotContains(t, s, "fan_speed")
	assert.NotContains(t, s, "vram_used")
}

func TestRamDeviceFormatsFixedUnits(t *testing.T) {
	d := RamDevice(collectors.RamSample{UsedGiB: 4, TotalGiB: 16, UsedPct: 25})
	assert.Equal(t, "4.0GiB", d.RamUsed)
	assert.Equal(t, "16.0GiB", d.RamTotal)
	assert.Equal(t, "25%", d.RamUtil)
}

func TestNpuDeviceOmitsPeakTopsWhenUnknown(t *testing.T) {
	d := NpuDevice(gputelemetry.NpuDeviceInfo{Name: "Intel NPU", Vendor: gputelemetry.NpuVendorIntel})
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "peak_tops")
}

func TestDiskAndNetworkDevicesOmitMissingDirection(t *testing.T) {
	read := f64p(120.5)
	d := DiskDevice("nvme0n1", read, nil)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"read_bw":"120.5 MB/s"`)
	assert.NotContains(t, s, "write_bw")

	n := NetworkDevice("eth0", nil, f64p(5.0))
	data, err = json.Marshal(n)
	require.NoError(t, err)
	s = string(data)
	assert.Contains(t, s, `"tx_bw":"5.0 MB/s"`)
	assert.NotContains(t, s, "rx_bw")
}
