package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v4/net"
)

// NetworkBandwidth samples aggregate network receive or transmit
// throughput across all interfaces gopsutil reports, as a delta between
// consecutive calls, per spec.md section 4.4.
type NetworkBandwidth struct {
	transmit   bool
	lastBytes  uint64
	lastAt     time.Time
	primed     bool
}

// NewNetworkBandwidthRx returns a collector for aggregate receive bytes/s.
func NewNetworkBandwidthRx() *NetworkBandwidth { return &NetworkBandwidth{transmit: false} }

// NewNetworkBandwidthTx returns a collector for aggregate transmit bytes/s.
func NewNetworkBandwidthTx() *NetworkBandwidth { return &NetworkBandwidth{transmit: true} }

// Sample returns throughput in MB/s since the previous call.
func (n *NetworkBandwidth) Sample() (Sample, bool) {
	counters, err := net.IOCounters(false)
	if err != nil || len(counters) == 0 {
		return Sample{}, false
	}

	var total uint64
	if n.transmit {
		total = counters[0].BytesSent
	} else {
		total = counters[0].BytesRecv
	}
	now := time.Now()

	if !n.primed {
		n.lastBytes, n.lastAt, n.primed = total, now, true
		return Sample{}, false
	}
	elapsed := now.Sub(n.lastAt)
	if elapsed < minInterval {
		return Sample{}, false
	}

	var delta float64
	if total >= n.lastBytes {
		delta = float64(total - n.lastBytes)
	}
	mbps := delta / elapsed.Seconds() / 1e6

	n.lastBytes, n.lastAt = total, now

	label := "Network rx"
	if n.transmit {
		label = "Network tx"
	}
	if mbps < 0 {
		mbps = 0
	}
	return Sample{Value: mbps, Unit: "MB/s", Label: label}, true
}
