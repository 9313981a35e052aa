//go:build windows

package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// DXGI enumerates adapters and provides name/VRAM totals, priority 9 per
// spec.md section 4.5 item 9. DXGI's IDXGIFactory/IDXGIAdapter COM
// interfaces need vtable-offset calls this pack's dependency set has no
// ready binding for (the teacher never touches DXGI); ai-z carries the
// source as a documented gap so the merge priority list stays complete
// and future-wireable rather than silently dropping the step.
type DXGI struct{}

func NewDXGI() *DXGI { return &DXGI{} }

func (DXGI) Name() string { return gputelemetry.SourceDXGI }

func (DXGI) Read(index int) *gputelemetry.GpuTelemetry { return nil }
