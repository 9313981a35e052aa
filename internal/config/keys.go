package config

import "strconv"

// boolField is a (getter, setter) pair used to drive the key table
// generically instead of one switch-case per field.
type boolField struct {
	get func(*Config) bool
	set func(*Config, bool)
}

func boolFields() map[string]boolField {
	f := map[string]boolField{}
	add := func(key string, get func(*Config) bool, set func(*Config, bool)) {
		f[key] = boolField{get: get, set: set}
	}

	add("showCpu", func(c *Config) bool { return c.ShowCpu }, func(c *Config, v bool) { c.ShowCpu = v })
	add("showCpuHot", func(c *Config) bool { return c.ShowCpuHot }, func(c *Config, v bool) { c.ShowCpuHot = v })
	add("showGpu", func(c *Config) bool { return c.ShowGpu }, func(c *Config, v bool) { c.ShowGpu = v })
	add("showGpuMem", func(c *Config) bool { return c.ShowGpuMem }, func(c *Config, v bool) { c.ShowGpuMem = v })
	add("showGpuClock", func(c *Config) bool { return c.ShowGpuClock }, func(c *Config, v bool) { c.ShowGpuClock = v })
	add("showGpuMemClock", func(c *Config) bool { return c.ShowGpuMemClock }, func(c *Config, v bool) { c.ShowGpuMemClock = v })
	add("showGpuEnc", func(c *Config) bool { return c.ShowGpuEnc }, func(c *Config, v bool) { c.ShowGpuEnc = v })
	add("showGpuDec", func(c *Config) bool { return c.ShowGpuDec }, func(c *Config, v bool) { c.ShowGpuDec = v })
	add("showRam", func(c *Config) bool { return c.ShowRam }, func(c *Config, v bool) { c.ShowRam = v })
	add("showVram", func(c *Config) bool { return c.ShowVram }, func(c *Config, v bool) { c.ShowVram = v })
	add("showDiskRead", func(c *Config) bool { return c.ShowDiskRead }, func(c *Config, v bool) { c.ShowDiskRead = v })
	add("showDiskWrite", func(c *Config) bool { return c.ShowDiskWrite }, func(c *Config, v bool) { c.ShowDiskWrite = v })
	add("showNetRx", func(c *Config) bool { return c.ShowNetRx }, func(c *Config, v bool) { c.ShowNetRx = v })
	add("showNetTx", func(c *Config) bool { return c.ShowNetTx }, func(c *Config, v bool) { c.ShowNetTx = v })
	add("showPcieRx", func(c *Config) bool { return c.ShowPcieRx }, func(c *Config, v bool) { c.ShowPcieRx = v })
	add("showPcieTx", func(c *Config) bool { return c.ShowPcieTx }, func(c *Config, v bool) { c.ShowPcieTx = v })

	add("showCpuBars", func(c *Config) bool { return c.ShowCpuBars }, func(c *Config, v bool) { c.ShowCpuBars = v })
	add("showCpuHotBars", func(c *Config) bool { return c.ShowCpuHotBars }, func(c *Config, v bool) { c.ShowCpuHotBars = v })
	add("showGpuBars", func(c *Config) bool { return c.ShowGpuBars }, func(c *Config, v bool) { c.ShowGpuBars = v })
	add("showGpuMemBars", func(c *Config) bool { return c.ShowGpuMemBars }, func(c *Config, v bool) { c.ShowGpuMemBars = v })
	add("showGpuClockBars", func(c *Config) bool { return c.ShowGpuClockBars }, func(c *Config, v bool) { c.ShowGpuClockBars = v })
	add("showGpuMemClockBars", func(c *Config) bool { return c.ShowGpuMemClockBars }, func(c *Config, v bool) { c.ShowGpuMemClockBars = v })
	add("showGpuEncBars", func(c *Config) bool { return c.ShowGpuEncBars }, func(c *Config, v bool) { c.ShowGpuEncBars = v })
	add("showGpuDecBars", func(c *Config) bool { return c.ShowGpuDecBars }, func(c *Config, v bool) { c.ShowGpuDecBars = v })
	add("showRamBars", func(c *Config) bool { return c.ShowRamBars }, func(c *Config, v bool) { c.ShowRamBars = v })
	add("showVramBars", func(c *Config) bool { return c.ShowVramBars }, func(c *Config, v bool) { c.ShowVramBars = v })
	add("showDiskReadBars", func(c *Config) bool { return c.ShowDiskReadBars }, func(c *Config, v bool) { c.ShowDiskReadBars = v })
	add("showDiskWriteBars", func(c *Config) bool { return c.ShowDiskWriteBars }, func(c *Config, v bool) { c.ShowDiskWriteBars = v })
	add("showNetRxBars", func(c *Config) bool { return c.ShowNetRxBars }, func(c *Config, v bool) { c.ShowNetRxBars = v })
	add("showNetTxBars", func(c *Config) bool { return c.ShowNetTxBars }, func(c *Config, v bool) { c.ShowNetTxBars = v })
	add("showPcieRxBars", func(c *Config) bool { return c.ShowPcieRxBars }, func(c *Config, v bool) { c.ShowPcieRxBars = v })
	add("showPcieTxBars", func(c *Config) bool { return c.ShowPcieTxBars }, func(c *Config, v bool) { c.ShowPcieTxBars = v })

	add("showPeakValues", func(c *Config) bool { return c.ShowPeakValues }, func(c *Config, v bool) { c.ShowPeakValues = v })

	return f
}

// parseBool accepts the spec's extended boolean vocabulary, per spec.md
// section 6: "1/true/yes/on" or "0/false/no/off".
func parseBool(s string) (bool, bool) {
	switch s {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, true
	}
	return false, false
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// applyRaw maps parsed key=value pairs onto cfg, including the legacy
// showDisk/showNet/showPcie compatibility keys (spec.md section 6, section
// 8 scenario 2): on read, a legacy key sets both per-direction keys.
func applyRaw(cfg *Config, raw map[string]string) {
	fields := boolFields()
	for key, field := range fields {
		if v, ok := raw[key]; ok {
			if b, ok := parseBool(v); ok {
				field.set(cfg, b)
			}
		}
	}

	if v, ok := raw["showDisk"]; ok {
		if b, ok := parseBool(v); ok {
			cfg.ShowDiskRead, cfg.ShowDiskWrite = b, b
		}
	}
	if v, ok := raw["showNet"]; ok {
		if b, ok := parseBool(v); ok {
			cfg.ShowNetRx, cfg.ShowNetTx = b, b
		}
	}
	if v, ok := raw["showPcie"]; ok {
		if b, ok := parseBool(v); ok {
			cfg.ShowPcieRx, cfg.ShowPcieTx = b, b
		}
	}

	if v, ok := raw["refreshMs"]; ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.RefreshMs = ClampRefreshMs(uint32(n))
		}
	}
	if v, ok := raw["timelineSamples"]; ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.TimelineSamples = uint32(n)
		}
	}
	if v, ok := raw["peakWindowSec"]; ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.PeakWindowSec = uint32(n)
		}
	}
	if v, ok := raw["timelineAgg"]; ok {
		cfg.TimelineAgg = parseTimelineAgg(v)
	}
	if v, ok := raw["timelineGraphStyle"]; ok {
		cfg.TimelineGraphStyle = parseGraphStyle(v)
	}
	if v, ok := raw["metricNameColor"]; ok {
		cfg.MetricNameColor = parseMetricNameColor(v)
	}
}

func parseTimelineAgg(s string) TimelineAgg {
	switch s {
	case "max", "peak", "highest":
		return AggMax
	case "avg", "average", "mean":
		return AggAvg
	default:
		return AggMax
	}
}

func parseGraphStyle(s string) GraphStyle {
	switch s {
	case "block":
		return GraphBlock
	case "smooth":
		return GraphSmooth
	default:
		return GraphBraille
	}
}

func parseMetricNameColor(s string) MetricNameColor {
	switch s {
	case "white":
		return ColorWhite
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	default:
		return ColorCyan
	}
}

// toRaw serializes cfg to key=value pairs. Only per-direction keys are
// ever emitted, never the legacy showDisk/showNet/showPcie combined keys,
// per spec.md section 6: "On write, only per-direction keys are emitted."
func (c Config) toRaw() map[string]string {
	kv := map[string]string{}
	for key, field := range boolFields() {
		kv[key] = formatBool(field.get(&c))
	}

	kv["refreshMs"] = strconv.FormatUint(uint64(c.RefreshMs), 10)
	kv["timelineSamples"] = strconv.FormatUint(uint64(c.TimelineSamples), 10)
	kv["peakWindowSec"] = strconv.FormatUint(uint64(c.PeakWindowSec), 10)
	kv["timelineAgg"] = map[TimelineAgg]string{AggMax: "max", AggAvg: "avg"}[c.TimelineAgg]
	kv["timelineGraphStyle"] = string(c.TimelineGraphStyle)
	kv["metricNameColor"] = string(c.MetricNameColor)
	return kv
}
