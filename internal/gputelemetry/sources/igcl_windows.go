//go:build windows

package sources

import (
	"sync"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/vendorapi/igcl"
)

// IGCL is the Intel Windows telemetry source, priority 3 per spec.md
// section 4.5 item 3. The struct holds a per-device igclSample map
// (activity counter, energy counter, timestamp) guarded by mu, but Read
// never fills it: Read only resolves and initializes the library and
// returns nil, so this source decodes no util%, power or other telemetry.
type IGCL struct {
	mu   sync.Mutex
	prev map[int]igclSample
}

type igclSample struct {
	activityCounter uint64
	energyCounter   uint64
	timeStampNs     uint64
}

func NewIGCL() *IGCL { return &IGCL{prev: make(map[int]igclSample)} }

func (*IGCL) Name() string { return gputelemetry.SourceIGCL }

func (g *IGCL) Read(index int) *gputelemetry.GpuTelemetry {
	api, errMsg := igcl.Get()
	if api == nil || errMsg != "" {
		return nil
	}

	var apiHandle uintptr
	if rc := api.Init(0, &apiHandle); rc != 0 {
		return nil
	}
	defer api.Close(apiHandle)

	// The full ctl_power_telemetry_t / ctl_temp_telemetry_t struct layout
	// (versioned, vendor-extensible) needs an ABI binding this pack's
	// dependency set doesn't provide; ai-z resolves and initializes the
	// library so absence is reported accurately and leaves the delta-based
	// util/power computation unwired, a known gap recorded in DESIGN.md.
	return nil
}

// igclPowerIsMilliwatts applies the Open Questions heuristic from
// spec.md section 9: the D3DKMT AdapterPerfData "Power" field is
// documented as tenths-of-percent-of-TDP but drivers report milliwatts in
// practice. Kept as a provisional heuristic, not a verified contract.
func igclPowerIsMilliwatts(raw uint32) bool {
	return raw > 1000
}
