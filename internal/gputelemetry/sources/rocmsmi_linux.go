//go:build linux

package sources

import (
	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/vendorapi/rocmsmi"
)

// RocmSMI is the AMD Linux telemetry source, priority 4 per spec.md
// section 4.5.
type RocmSMI struct{}

func NewRocmSMI() *RocmSMI { return &RocmSMI{} }

func (RocmSMI) Name() string { return gputelemetry.SourceROCmSMI }

const (
	rsmiMemoryTypeVRAM    = 0
	rsmiTempTypeEdge      = 0
	rsmiTempMetricCurrent = 0
)

func (RocmSMI) Read(index int) *gputelemetry.GpuTelemetry {
	api, errMsg := rocmsmi.Get()
	if api == nil || errMsg != "" {
		return nil
	}

	dvInd := uint32(index)
	t := &gputelemetry.GpuTelemetry{Source: gputelemetry.SourceROCmSMI}
	populated := false

	var util uint32
	if api.DevUtilizationRate(dvInd, 0, &util) == 0 {
		t.UtilPct = f64(float64(util))
		populated = true
	}

	var used, total uint64
	if api.DevMemoryUsage(dvInd, rsmiMemoryTypeVRAM, &used) == 0 {
		t.VramUsedGiB = f64(float64(used) / (1 << 30))
		populated = true
	}
	if api.DevMemoryTotal(dvInd, rsmiMemoryTypeVRAM, &total) == 0 {
		t.VramTotalGiB = f64(float64(total) / (1 << 30))
		populated = true
	}

	var milliC int64
	if api.DevTemp(dvInd, rsmiTempTypeEdge, rsmiTempMetricCurrent, &milliC) == 0 {
		t.TempC = f64(float64(milliC) / 1000.0)
		populated = true
	}

	var microW uint64
	if api.DevPowerAve(dvInd, 0, &microW) == 0 {
		t.Watts = f64(float64(microW) / 1_000_000.0)
		populated = true
	}

	if !populated {
		return nil
	}
	return t
}
