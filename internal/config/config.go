// Package config implements the plain key=value INI-style config file
// described in spec.md section 6: per-metric visibility toggles, refresh
// rate, timeline sizing, and display preferences, with the legacy
// showDisk/showNet/showPcie compatibility keys. Grounded on the teacher's
// config packages' shape (a Config struct, a Default() constructor, a
// Load/Save pair) adapted to a hand-rolled line scanner since the format
// here is too small to reach for a generic config library.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// TimelineAgg selects how a section divider's "PEAK" value is computed.
type TimelineAgg int

const (
	AggMax TimelineAgg = iota
	AggAvg
)

// GraphStyle selects how a Timeline is rendered.
type GraphStyle string

const (
	GraphBlock   GraphStyle = "block"
	GraphBraille GraphStyle = "braille"
	GraphSmooth  GraphStyle = "smooth"
)

// MetricNameColor selects the color metric names are rendered in.
type MetricNameColor string

const (
	ColorCyan   MetricNameColor = "cyan"
	ColorWhite  MetricNameColor = "white"
	ColorGreen  MetricNameColor = "green"
	ColorYellow MetricNameColor = "yellow"
)

// Config is the full set of user-adjustable settings, per spec.md
// section 6's key table.
type Config struct {
	ShowCpu         bool
	ShowCpuHot      bool
	ShowGpu         bool
	ShowGpuMem      bool
	ShowGpuClock    bool
	ShowGpuMemClock bool
	ShowGpuEnc      bool
	ShowGpuDec      bool
	ShowRam         bool
	ShowVram        bool
	ShowDiskRead    bool
	ShowDiskWrite   bool
	ShowNetRx       bool
	ShowNetTx       bool
	ShowPcieRx      bool
	ShowPcieTx      bool

	ShowCpuBars         bool
	ShowCpuHotBars      bool
	ShowGpuBars         bool
	ShowGpuMemBars      bool
	ShowGpuClockBars    bool
	ShowGpuMemClockBars bool
	ShowGpuEncBars      bool
	ShowGpuDecBars      bool
	ShowRamBars         bool
	ShowVramBars        bool
	ShowDiskReadBars    bool
	ShowDiskWriteBars   bool
	ShowNetRxBars       bool
	ShowNetTxBars       bool
	ShowPcieRxBars      bool
	ShowPcieTxBars      bool

	RefreshMs        uint32
	TimelineSamples  uint32
	ShowPeakValues   bool
	PeakWindowSec    uint32
	TimelineAgg      TimelineAgg
	TimelineGraphStyle GraphStyle
	MetricNameColor  MetricNameColor
}

// Default returns the default configuration, per spec.md section 6.
func Default() Config {
	return Config{
		ShowCpu: true, ShowCpuHot: true, ShowGpu: true, ShowGpuMem: true,
		ShowGpuClock: true, ShowGpuMemClock: true, ShowGpuEnc: true, ShowGpuDec: true,
		ShowRam: true, ShowVram: true, ShowDiskRead: true, ShowDiskWrite: true,
		ShowNetRx: true, ShowNetTx: true, ShowPcieRx: true, ShowPcieTx: true,

		ShowCpuBars: true, ShowCpuHotBars: true, ShowGpuBars: true, ShowGpuMemBars: true,
		ShowGpuClockBars: true, ShowGpuMemClockBars: true, ShowGpuEncBars: true, ShowGpuDecBars: true,
		ShowRamBars: true, ShowVramBars: true, ShowDiskReadBars: true, ShowDiskWriteBars: true,
		ShowNetRxBars: true, ShowNetTxBars: true, ShowPcieRxBars: true, ShowPcieTxBars: true,

		RefreshMs:          500,
		TimelineSamples:    120,
		ShowPeakValues:     false,
		PeakWindowSec:      10,
		TimelineAgg:        AggMax,
		TimelineGraphStyle: GraphBraille,
		MetricNameColor:    ColorCyan,
	}
}

// ClampRefreshMs clamps a user-requested refresh interval to [200, 5000],
// per spec.md section 6.
func ClampRefreshMs(ms uint32) uint32 {
	if ms < 200 {
		return 200
	}
	if ms > 5000 {
		return 5000
	}
	return ms
}

// Dir resolves the config directory: XDG_CONFIG_HOME/ai-z (Unix) or
// %APPDATA%/ai-z (Windows), matching spec.md section 6. os.UserConfigDir
// already implements exactly this platform split in the standard library.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolving config dir: %w", err)
	}
	return filepath.Join(base, "ai-z"), nil
}

// Path returns the full path to config.ini.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.ini"), nil
}

// Load reads the config file, applying defaults for any missing key. A
// missing file is not an error -- it yields Default().
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses a specific config file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	raw := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		raw[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	applyRaw(&cfg, raw)
	return cfg, nil
}

// Save writes cfg to its canonical path, creating the directory if
// needed.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes cfg to a specific path.
func (c Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating dir for %s: %w", path, err)
	}

	kv := c.toRaw()
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, kv[k])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
