// Package gpuident resolves per-index GPU display names once at startup,
// feeding both the boot hardware probe's GPUDetailLines and the bench
// runner's per-device row headers. It is deliberately separate from
// internal/gputelemetry/sources.NVML: that package's job is telemetry
// polling, this one's is the one-shot "what GPUs exist and what are they
// called" question the TUI and bench layers both need before any polling
// starts.
package gpuident

import (
	gonvml "github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/aiz-project/ai-z/internal/safecall"
)

// Names returns the display name of every NVML-visible GPU, in device
// index order. It returns an empty slice (not an error) on a machine with
// no NVIDIA driver or no GPUs; vendor-specific naming for AMD/Intel
// devices is not wired here since spec.md's bench rows are
// CUDA/OpenCL/Vulkan-probed directly rather than named ahead of time.
func Names() []string {
	lib := gonvml.New()
	if _, ok := safecall.NVML(func() bool { return lib.Init() == gonvml.SUCCESS }); !ok {
		return nil
	}
	defer lib.Shutdown()

	count, ok := safecall.NVML(func() int {
		c, ret := lib.DeviceGetCount()
		if ret != gonvml.SUCCESS {
			return 0
		}
		return c
	})
	if !ok || count == 0 {
		return nil
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := i
		name, ok := safecall.NVML(func() string {
			dev, ret := lib.DeviceGetHandleByIndex(idx)
			if ret != gonvml.SUCCESS {
				return ""
			}
			n, ret := dev.GetName()
			if ret != gonvml.SUCCESS {
				return ""
			}
			return n
		})
		if !ok || name == "" {
			name = "Unknown GPU"
		}
		names = append(names, name)
	}
	return names
}
