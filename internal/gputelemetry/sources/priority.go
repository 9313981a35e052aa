package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// VendorHint narrows which OS-specific sources are worth trying for a
// device, mirroring spec.md section 4.6's "device index, vendor hint"
// merger input.
type VendorHint string

const (
	VendorNVIDIA  VendorHint = "nvidia"
	VendorAMD     VendorHint = "amd"
	VendorIntel   VendorHint = "intel"
	VendorUnknown VendorHint = "unknown"
)

// PriorityList builds the full, priority-ordered source chain for a
// vendor hint, per spec.md section 4.5's numbered list. linkFn supplies
// the Estimator with a device's negotiated PCIe link when no source
// reported one directly.
func PriorityList(hint VendorHint, nvml *NVML, pdhDisabled bool, linkFn func(index int) (gputelemetry.PcieLink, bool)) []Source {
	var chain []Source

	if hint == VendorNVIDIA || hint == VendorUnknown {
		chain = append(chain, nvml)
	}
	chain = append(chain, WindowsOnly(pdhDisabled)...)
	chain = append(chain, linuxVendorSources(hint)...)
	chain = append(chain, NewEstimator(linkFn))
	return chain
}
