package sources

import (
	"fmt"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// pcieGenMBpsPerLane gives the per-lane decimal-MB/s capacity for PCIe
// generations 1 through 5, per spec.md section 4.5 item 11.
var pcieGenMBpsPerLane = map[uint32]float64{
	1: 250,
	2: 500,
	3: 984.615,
	4: 1969.231,
	5: 3938.462,
}

// Estimator derives an estimated PCIe bandwidth cap from a known link
// generation and width when no source reported actual throughput. It is
// the lowest-priority source in the merge order.
type Estimator struct {
	link func(index int) (gputelemetry.PcieLink, bool)
}

// NewEstimator builds an Estimator that asks link for the negotiated PCIe
// link of a device index.
func NewEstimator(link func(index int) (gputelemetry.PcieLink, bool)) *Estimator {
	return &Estimator{link: link}
}

func (e *Estimator) Name() string { return gputelemetry.SourcePCIeCap }

// Read produces a PcieLinkNote describing the estimated cap; it never
// fills throughput fields directly since spec.md reserves those for
// measured sources only.
func (e *Estimator) Read(index int) *gputelemetry.GpuTelemetry {
	link, ok := e.link(index)
	if !ok || link.Generation == 0 || link.Width == 0 {
		return nil
	}
	capMBps := EstimateCapMBps(link.Generation, link.Width)
	return &gputelemetry.GpuTelemetry{
		Source:        gputelemetry.SourcePCIeCap,
		PcieLinkGen:   u32(link.Generation),
		PcieLinkWidth: u32(link.Width),
		PcieLinkNote:  str(formatCapNote(capMBps)),
	}
}

// EstimateCapMBps computes the theoretical PCIe bandwidth cap for a given
// generation/width pair, converting MB to MiB-equivalent units by
// dividing by 1.048576 so it lines up with the other MB/s fields, per
// spec.md section 4.5's derivation rule. It is monotonic in width for a
// fixed generation.
func EstimateCapMBps(gen, width uint32) float64 {
	perLane, ok := pcieGenMBpsPerLane[gen]
	if !ok {
		return 0
	}
	return perLane * float64(width) / 1.048576
}

func formatCapNote(capMBps float64) string {
	return fmt.Sprintf("%.1f MB/s (estimated cap)", capMBps)
}
