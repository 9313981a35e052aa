package sources

import (
	"fmt"
	"sync"

	gonvml "github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/safecall"
)

// NVML is the highest-priority GPU telemetry source (spec.md section 4.5
// item 1), grounded on the teacher's nvml.Interface usage in
// components/accelerator/nvidia/query/nvml/nvml.go: every call into the
// driver goes through SafeCall so a wedged driver cannot hang the sampler.
type NVML struct {
	mu       sync.Mutex
	lib      gonvml.Interface
	initDone bool
	initOK   bool
}

// NewNVML returns an NVML source. The library handle is opened lazily on
// first Read, matching the "once-only initialization, cached failure"
// contract every vendor registry follows.
func NewNVML() *NVML {
	return &NVML{lib: gonvml.New()}
}

func (n *NVML) Name() string { return gputelemetry.SourceNVML }

func (n *NVML) ensureInit() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.initDone {
		return n.initOK
	}
	n.initDone = true
	_, ok := safecall.NVML(func() bool {
		return n.lib.Init() == gonvml.SUCCESS
	})
	n.initOK = ok
	return n.initOK
}

// Read queries NVML for device index and returns a fully-populated record
// when the driver is present and responsive, or nil otherwise.
func (n *NVML) Read(index int) *gputelemetry.GpuTelemetry {
	if !n.ensureInit() {
		return nil
	}

	dev, ok := safecall.NVML(func() gonvml.Device {
		d, ret := n.lib.DeviceGetHandleByIndex(index)
		if ret != gonvml.SUCCESS {
			return nil
		}
		return d
	})
	if !ok || dev == nil {
		return nil
	}

	t := &gputelemetry.GpuTelemetry{Source: gputelemetry.SourceNVML}

	if util, ok := safecall.NVML(func() *gonvml.Utilization {
		u, ret := dev.GetUtilizationRates()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &u
	}); ok && util != nil {
		t.UtilPct = f64(float64(util.Gpu))
		t.MemUtilPct = f64(float64(util.Memory))
	}

	if mem, ok := safecall.NVML(func() *gonvml.Memory {
		m, ret := dev.GetMemoryInfo()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &m
	}); ok && mem != nil {
		t.VramTotalGiB = f64(float64(mem.Total) / (1 << 30))
		t.VramUsedGiB = f64(float64(mem.Used) / (1 << 30))
	}

	if mw, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetPowerUsage()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && mw != nil {
		t.Watts = f64(float64(*mw) / 1000.0)
	}

	if c, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetTemperature(gonvml.TEMPERATURE_GPU)
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && c != nil {
		t.TempC = f64(float64(*c))
	}

	if p, ok := safecall.NVML(func() *gonvml.Pstates {
		v, ret := dev.GetPowerState()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && p != nil {
		t.Pstate = str(fmt.Sprintf("P%d", int(*p)))
	}

	if mhz, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetClockInfo(gonvml.CLOCK_GRAPHICS)
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && mhz != nil {
		t.GpuClockMHz = f64(float64(*mhz))
	}

	if mhz, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetClockInfo(gonvml.CLOCK_MEM)
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && mhz != nil {
		t.MemClockMHz = f64(float64(*mhz))
	}

	if pct, ok := safecall.NVML(func() *uint32 {
		v, _, ret := dev.GetEncoderUtilization()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && pct != nil {
		t.EncoderUtilPct = f64(float64(*pct))
	}

	if pct, ok := safecall.NVML(func() *uint32 {
		v, _, ret := dev.GetDecoderUtilization()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && pct != nil {
		t.DecoderUtilPct = f64(float64(*pct))
	}

	if gen, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetCurrPcieLinkGeneration()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && gen != nil {
		t.PcieLinkGen = u32(*gen)
	}

	if width, ok := safecall.NVML(func() *uint32 {
		v, ret := dev.GetCurrPcieLinkWidth()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	}); ok && width != nil {
		t.PcieLinkWidth = u32(*width)
	}

	return t
}

// PcieThroughput reads NVML's PCIe tx/rx counters for the device at index,
// used by GpuSampler's fast-path check (spec.md section 4.7).
func (n *NVML) PcieThroughput(index int) (gputelemetry.PcieThroughput, bool) {
	if !n.ensureInit() {
		return gputelemetry.PcieThroughput{}, false
	}
	dev, ok := safecall.NVML(func() gonvml.Device {
		d, ret := n.lib.DeviceGetHandleByIndex(index)
		if ret != gonvml.SUCCESS {
			return nil
		}
		return d
	})
	if !ok || dev == nil {
		return gputelemetry.PcieThroughput{}, false
	}

	result, ok := safecall.NVML(func() *gputelemetry.PcieThroughput {
		rx, ret := dev.GetPcieThroughput(gonvml.PCIE_UTIL_RX_BYTES)
		if ret != gonvml.SUCCESS {
			return nil
		}
		tx, ret := dev.GetPcieThroughput(gonvml.PCIE_UTIL_TX_BYTES)
		if ret != gonvml.SUCCESS {
			return nil
		}
		// NVML reports KB/s; convert to decimal MB/s.
		return &gputelemetry.PcieThroughput{RxMbps: float64(rx) / 1000.0, TxMbps: float64(tx) / 1000.0}
	})
	if !ok || result == nil {
		return gputelemetry.PcieThroughput{}, false
	}
	return *result, true
}

// DriverVersion returns the NVIDIA driver version string NVML reports
// (e.g. "535.161.08"), grounded on the teacher's nvml.GetDriverVersion,
// or false if NVML is unavailable or the call failed.
func (n *NVML) DriverVersion() (string, bool) {
	if !n.ensureInit() {
		return "", false
	}
	ver, ok := safecall.NVML(func() *string {
		v, ret := n.lib.SystemGetDriverVersion()
		if ret != gonvml.SUCCESS {
			return nil
		}
		return &v
	})
	if !ok || ver == nil {
		return "", false
	}
	return *ver, true
}

// Count returns the number of NVML-visible devices, or 0 if NVML is
// unavailable.
func (n *NVML) Count() int {
	if !n.ensureInit() {
		return 0
	}
	count, ok := safecall.NVML(func() int {
		c, ret := n.lib.DeviceGetCount()
		if ret != gonvml.SUCCESS {
			return 0
		}
		return c
	})
	if !ok {
		return 0
	}
	return count
}
