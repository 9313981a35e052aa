// Package gputelemetry defines the canonical per-device telemetry record
// merged from disjoint vendor/OS sources (spec.md section 3/4.5/4.6),
// grounded on the teacher's DeviceInfo struct in
// components/accelerator/nvidia/query/nvml/nvml.go: every field is a
// pointer so a source that did not report it leaves it nil rather than a
// false zero value.
package gputelemetry

// GpuTelemetry is a per-device record. Every scalar is optional because the
// contributing source may not report it; nil means unknown, not zero.
type GpuTelemetry struct {
	UtilPct            *float64
	MemUtilPct         *float64
	VramUsedGiB        *float64
	VramTotalGiB       *float64
	Watts              *float64
	TempC              *float64
	Pstate             *string
	GpuClockMHz        *float64
	MemClockMHz        *float64
	MemTransferRateMHz *float64
	EncoderUtilPct     *float64
	DecoderUtilPct     *float64
	PcieLinkWidth      *uint32
	PcieLinkGen        *uint32
	PcieLinkNote       *string

	// Source tags the contributor whose read populated Source first; it is
	// set once, by the merger, to the first source that returned anything.
	Source string
}

// Source tag constants, matching spec.md section 3's enumerated list.
const (
	SourceNVML       = "nvml"
	SourceADLX       = "adlx"
	SourceIGCL       = "igcl"
	SourceD3DKMT     = "d3dkmt"
	SourceDXGI       = "dxgi"
	SourcePDH        = "pdh"
	SourceAMDSysfs   = "amdgpu-sysfs"
	SourceIntelSysfs = "intel-sysfs"
	SourceROCmSMI    = "rocm-smi"
	SourcePCIeCap    = "pcie-cap"
)

// PcieThroughput is the measured Rx/Tx throughput over the last sampling
// interval, in decimal MB/s (not MiB/s).
type PcieThroughput struct {
	RxMbps float64
	TxMbps float64
}

// PcieLink is a negotiated PCIe link speed/width pair. Zero values mean
// unknown.
type PcieLink struct {
	Generation uint32
	Width      uint32
}

// NpuVendor enumerates the known NPU silicon vendors.
type NpuVendor string

const (
	NpuVendorIntel   NpuVendor = "Intel"
	NpuVendorAMD     NpuVendor = "AMD"
	NpuVendorUnknown NpuVendor = "Unknown"
)

// NpuDeviceInfo describes an on-board neural processing unit, produced
// once at startup and never mutated afterward.
type NpuDeviceInfo struct {
	Vendor        NpuVendor
	VendorID      uint32
	DeviceID      uint32
	Name          string
	DriverVersion string
	PeakTops      *float64
	DetailLines   []string
}

// HardwareInfo is the immutable snapshot BootHardwareProbe produces once
// and both the TUI and JSON snapshot consume thereafter.
type HardwareInfo struct {
	OSPrettyName   string
	Kernel         string
	CPUModel       string
	PhysicalCores  int
	LogicalCores   int
	L1CacheKiB     int
	L2CacheKiB     int
	L3CacheKiB     int
	ISAFeatures    []string
	RAMSummary     string
	GPUDetailLines []string
	NICDetailLines []string
	DiskDetailLines []string

	CUDAVersion   string
	NVMLVersion   string
	ROCmVersion   string
	OpenCLVersion string
	VulkanVersion string

	NPUs []NpuDeviceInfo
}
