//go:build windows

package sources

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// PDH reads the "GPU Engine"/"GPU Adapter Memory"/"GPU Process Memory"
// Windows performance counter sets, priority 7 per spec.md section 4.5
// item 7. Disabled process-wide when AI_Z_DISABLE_PDH is set, matching
// the env var contract in spec.md section 6.
type PDH struct {
	disabled bool
	query    uintptr
}

// NewPDH opens a PDH query handle via pdh.dll. A failure to resolve the
// library just means PDH counters are unavailable on this box.
func NewPDH(disabled bool) *PDH {
	p := &PDH{disabled: disabled}
	if disabled {
		return p
	}
	lib, err := windows.LoadLibrary("pdh.dll")
	if err != nil {
		p.disabled = true
		return p
	}
	defer windows.FreeLibrary(lib)

	openQuery, err := windows.GetProcAddress(lib, "PdhOpenQueryW")
	if err != nil {
		p.disabled = true
		return p
	}
	var openQueryFn func(source uintptr, userData uintptr, query *uintptr) int32
	purego.RegisterFunc(&openQueryFn, openQuery)

	var query uintptr
	if rc := openQueryFn(0, 0, &query); rc != 0 {
		p.disabled = true
		return p
	}
	p.query = query
	return p
}

func (PDH) Name() string { return gputelemetry.SourcePDH }

// Read resolves per-LUID GPU Engine/Adapter Memory counters. Matching a
// PDH counter-path instance name to a device's LUID requires enumerating
// the instance names at runtime (PdhEnumObjectItemsW) and is left as a
// documented gap alongside the DXGI source it depends on for LUID lookup.
func (p *PDH) Read(index int) *gputelemetry.GpuTelemetry {
	if p.disabled || p.query == 0 {
		return nil
	}
	return nil
}
