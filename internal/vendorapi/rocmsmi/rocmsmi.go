// Package rocmsmi resolves librocm_smi64 for AMD GPU telemetry on Linux,
// per spec.md section 4.1/4.5 (the ROCm-SMI source in the telemetry merge
// priority list).
package rocmsmi

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "rocm-smi"

var candidates = []string{
	"librocm_smi64.so.1",
	"librocm_smi64.so",
	"librocm_smi64.so.6",
}

// Api holds the rsmi_* entry points ai-z uses to read AMD GPU utilization,
// memory, temperature, and power.
type Api struct {
	Init                  func(flags uint64) int32
	ShutDown              func() int32
	NumMonitorDevices     func(numDevices *uint32) int32
	DevUtilizationRate    func(dvInd uint32, sensorType int32, value *uint32) int32
	DevMemoryUsage        func(dvInd uint32, memType int32, used *uint64) int32
	DevMemoryTotal        func(dvInd uint32, memType int32, total *uint64) int32
	DevTemp               func(dvInd uint32, sensorType int32, metric int32, temp *int64) int32
	DevPowerAve           func(dvInd uint32, senorInd uint32, power *uint64) int32
	DevNameGet            func(dvInd uint32, name *byte, length uint32) int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves librocm_smi64.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("rocm-smi: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("rocm-smi: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.Init, "rsmi_init"},
		{&api.ShutDown, "rsmi_shut_down"},
		{&api.NumMonitorDevices, "rsmi_num_monitor_devices"},
		{&api.DevUtilizationRate, "rsmi_dev_busy_percent_get"},
		{&api.DevMemoryUsage, "rsmi_dev_memory_usage_get"},
		{&api.DevMemoryTotal, "rsmi_dev_memory_total_get"},
		{&api.DevTemp, "rsmi_dev_temp_metric_get"},
		{&api.DevPowerAve, "rsmi_dev_power_ave_get"},
		{&api.DevNameGet, "rsmi_dev_name_get"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	if rc := api.Init(0); rc != 0 {
		return nil, fmt.Errorf("rocm-smi: rsmi_init returned %d", rc)
	}
	return api, nil
}
