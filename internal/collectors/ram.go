package collectors

import "github.com/shirou/gopsutil/v4/mem"

// RamUsage reports immediate memory usage; unlike the delta collectors it
// has no warm-up period, per spec.md section 4.4.
type RamUsage struct{}

// NewRamUsage returns a RAM collector.
func NewRamUsage() *RamUsage { return &RamUsage{} }

// RamSample carries the used/total/percent triple spec.md's RamUsage row
// needs, in GiB.
type RamSample struct {
	UsedGiB  float64
	TotalGiB float64
	UsedPct  float64
}

const bytesPerGiB = 1024 * 1024 * 1024

// Sample returns the current RAM usage; it never fails to have a value on
// a healthy host, so there is no first-call warm-up like the delta
// collectors.
func (RamUsage) Sample() (RamSample, bool) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return RamSample{}, false
	}
	return RamSample{
		UsedGiB:  float64(v.Used) / bytesPerGiB,
		TotalGiB: float64(v.Total) / bytesPerGiB,
		UsedPct:  clampPercent(v.UsedPercent),
	}, true
}
