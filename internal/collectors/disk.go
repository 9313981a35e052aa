package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v4/disk"
)

// DiskBandwidth samples aggregate disk read or write throughput across all
// block devices gopsutil reports, as a delta between consecutive calls,
// per spec.md section 4.4.
type DiskBandwidth struct {
	write    bool
	lastBytes uint64
	lastAt   time.Time
	primed   bool
}

// NewDiskBandwidthRead returns a collector for aggregate read bytes/s.
func NewDiskBandwidthRead() *DiskBandwidth { return &DiskBandwidth{write: false} }

// NewDiskBandwidthWrite returns a collector for aggregate write bytes/s.
func NewDiskBandwidthWrite() *DiskBandwidth { return &DiskBandwidth{write: true} }

// Sample returns throughput in MB/s since the previous call.
func (d *DiskBandwidth) Sample() (Sample, bool) {
	counters, err := disk.IOCounters()
	if err != nil {
		return Sample{}, false
	}

	var total uint64
	for _, c := range counters {
		if d.write {
			total += c.WriteBytes
		} else {
			total += c.ReadBytes
		}
	}
	now := time.Now()

	if !d.primed {
		d.lastBytes, d.lastAt, d.primed = total, now, true
		return Sample{}, false
	}
	elapsed := now.Sub(d.lastAt)
	if elapsed < minInterval {
		return Sample{}, false
	}

	var delta float64
	if total >= d.lastBytes {
		delta = float64(total - d.lastBytes)
	}
	mbps := delta / elapsed.Seconds() / 1e6

	d.lastBytes, d.lastAt = total, now

	label := "Disk read"
	if d.write {
		label = "Disk write"
	}
	if mbps < 0 {
		mbps = 0
	}
	return Sample{Value: mbps, Unit: "MB/s", Label: label}, true
}
