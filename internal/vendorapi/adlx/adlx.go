// Package adlx resolves AMD's ADLX management library on Windows, per
// spec.md section 4.1/4.5 (the AMD-vendor telemetry source on Windows,
// where ROCm-SMI is unavailable).
package adlx

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "adlx"

var candidates = []string{
	"amdadlx64.dll",
}

// Api holds the ADLX entry points ai-z resolves. ADLX is a COM-flavored
// C++ SDK; ai-z only uses the flattened C helper exports ADLX ships
// alongside it (ADLXInitialize / ADLXTerminate; no GPU metrics query is bound),
// matching the subset most third-party monitoring tools bind against.
type Api struct {
	Initialize func(version uint64, ppAdlxHelper *uintptr) int32
	Terminate  func() int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves amdadlx64.dll. On non-Windows platforms dynload.Open
// fails immediately since none of the candidate names resolve there.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("adlx: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("adlx: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	if err := reg(&api.Initialize, "ADLXInitialize"); err != nil {
		return nil, err
	}
	if err := reg(&api.Terminate, "ADLXTerminate"); err != nil {
		return nil, err
	}

	return api, nil
}
