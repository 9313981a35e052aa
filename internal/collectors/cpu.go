package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CpuUsage samples aggregate CPU busy percentage as a delta between
// consecutive calls, per spec.md section 4.4.
type CpuUsage struct {
	lastTimes cpu.TimesStat
	lastAt    time.Time
	primed    bool
}

// NewCpuUsage returns an unprimed collector; its first Sample call always
// returns (Sample{}, false).
func NewCpuUsage() *CpuUsage { return &CpuUsage{} }

// Sample returns the busy percentage across all cores since the previous
// call, or false when a second reading is still needed or the interval
// since the last sample was too small to trust.
func (c *CpuUsage) Sample() (Sample, bool) {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return Sample{}, false
	}
	now := time.Now()

	if !c.primed {
		c.lastTimes, c.lastAt, c.primed = times[0], now, true
		return Sample{}, false
	}
	if now.Sub(c.lastAt) < minInterval {
		return Sample{}, false
	}

	pct := busyPercent(c.lastTimes, times[0])
	c.lastTimes, c.lastAt = times[0], now
	return Sample{Value: clampPercent(pct), Unit: "%", Label: "CPU"}, true
}

// CpuMaxCore samples the busiest single core's percentage since the
// previous call.
type CpuMaxCore struct {
	lastTimes []cpu.TimesStat
	lastAt    time.Time
	primed    bool
}

// NewCpuMaxCore returns an unprimed per-core collector.
func NewCpuMaxCore() *CpuMaxCore { return &CpuMaxCore{} }

// Sample returns the max per-core busy percentage since the previous call.
func (c *CpuMaxCore) Sample() (Sample, bool) {
	times, err := cpu.Times(true)
	if err != nil || len(times) == 0 {
		return Sample{}, false
	}
	now := time.Now()

	if !c.primed || len(c.lastTimes) != len(times) {
		c.lastTimes, c.lastAt, c.primed = times, now, true
		return Sample{}, false
	}
	if now.Sub(c.lastAt) < minInterval {
		return Sample{}, false
	}

	var max float64
	for i := range times {
		if pct := busyPercent(c.lastTimes[i], times[i]); pct > max {
			max = pct
		}
	}
	c.lastTimes, c.lastAt = times, now
	return Sample{Value: clampPercent(max), Unit: "%", Label: "CPU max core"}, true
}

func busyTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func busyPercent(t1, t2 cpu.TimesStat) float64 {
	busyDelta := busyTotal(t2) - busyTotal(t1)
	idleDelta := t2.Idle - t1.Idle
	total := busyDelta + idleDelta
	if total <= 0 {
		return 0
	}
	return busyDelta / total * 100
}
