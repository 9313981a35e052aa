// Package igcl resolves Intel's Graphics Control Library on Windows, per
// spec.md section 4.1/4.5 (the Intel-vendor telemetry source). It only
// resolves the library's entry points and derives no power reading; the
// provisional power-unit heuristic recorded in DESIGN.md's Open Questions
// lives in internal/gputelemetry/sources/igcl_windows.go.
package igcl

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "igcl"

var candidates = []string{
	"ControlLib.dll",
}

// Api holds the ctl* entry points ai-z resolves from ControlLib.dll.
type Api struct {
	Init                  func(appInfo uintptr, apiHandle *uintptr) int32
	Close                 func(apiHandle uintptr) int32
	EnumerateDevices      func(apiHandle uintptr, count *uint32, devices *uintptr) int32
	GetDeviceProperties   func(device uintptr, props uintptr) int32
	PowerTelemetryGet     func(device uintptr, telemetry uintptr) int32
	TemperatureTelemetryGet func(device uintptr, telemetry uintptr) int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves ControlLib.dll.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("igcl: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("igcl: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.Init, "ctlInit"},
		{&api.Close, "ctlClose"},
		{&api.EnumerateDevices, "ctlEnumerateDevices"},
		{&api.GetDeviceProperties, "ctlGetDeviceProperties"},
		{&api.PowerTelemetryGet, "ctlPowerTelemetryGet"},
		{&api.TemperatureTelemetryGet, "ctlTemperatureTelemetryGet"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	return api, nil
}
