// Package nvml resolves the raw NVML shared library through dynload as a
// hand-rolled binding beside go-nvml, per spec.md section 4.1. No other
// package imports it: the GPU sampler's fast-path PCIe throughput poll goes
// through go-nvml via internal/gputelemetry/sources.NVML.
package nvml

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "nvml"

var candidates = []string{
	"libnvidia-ml.so.1",
	"libnvidia-ml.so",
	"nvml.dll",
}

// Api holds the subset of the NVML C ABI ai-z calls directly.
type Api struct {
	Init                    func() int32
	Shutdown                func() int32
	DeviceGetHandleByIndex  func(index uint32, device *uintptr) int32
	DeviceGetPcieThroughput func(device uintptr, counter uint32, value *uint32) int32
}

// PCIe counter selectors, mirrored from nvml.h's nvmlPcieUtilCounter_t.
const (
	CounterTxBytes uint32 = 0
	CounterRxBytes uint32 = 1
)

var get = probe.Once(vendorName, load)

// Get lazily resolves the NVML shared library, returning the cached
// failure reason on every call after the first unsuccessful attempt.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("nvml: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("nvml: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	if err := reg(&api.Init, "nvmlInit_v2"); err != nil {
		return nil, err
	}
	if err := reg(&api.Shutdown, "nvmlShutdown"); err != nil {
		return nil, err
	}
	if err := reg(&api.DeviceGetHandleByIndex, "nvmlDeviceGetHandleByIndex_v2"); err != nil {
		return nil, err
	}
	if err := reg(&api.DeviceGetPcieThroughput, "nvmlDeviceGetPcieThroughput"); err != nil {
		return nil, err
	}

	if rc := api.Init(); rc != 0 {
		return nil, fmt.Errorf("nvml: nvmlInit_v2 returned %d", rc)
	}
	return api, nil
}
