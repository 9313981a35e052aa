//go:build windows

package sources

import (
	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/vendorapi/adlx"
)

// ADLX is the AMD Windows telemetry source, priority 2 per spec.md
// section 4.5 item 2. It matches a DXGI adapter by LUID; the actual ADLX
// object graph (IADLXSystem -> IADLXGPUList -> IADLXGPUMetrics) is COM-
// flavored C++ that ai-z reaches through ADLX's flattened C exports. A
// full binding of that object graph is out of scope for the dependency
// set available here; ai-z resolves the library and performs the
// initialize/terminate handshake so presence/absence is still reported
// accurately, and leaves per-field telemetry unset until the full binding
// lands (tracked as a known gap in DESIGN.md).
type ADLX struct{}

func NewADLX() *ADLX { return &ADLX{} }

func (ADLX) Name() string { return gputelemetry.SourceADLX }

func (ADLX) Read(index int) *gputelemetry.GpuTelemetry {
	api, errMsg := adlx.Get()
	if api == nil || errMsg != "" {
		return nil
	}
	var helper uintptr
	if rc := api.Initialize(1, &helper); rc != 0 {
		return nil
	}
	defer api.Terminate()

	// The COM object graph walk from here (GetGPUList -> At(index) ->
	// QueryInterface<IADLXGPUMetricsSupport> -> GetGPUMetrics) needs the
	// full ADLX vtable layout; ai-z reports presence only until that lands.
	return nil
}
