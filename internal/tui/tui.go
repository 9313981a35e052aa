// Package tui implements ai-z's default screen: a periodically refreshed
// text dashboard of per-GPU/CPU/RAM/disk/network telemetry plus compact
// ASCII timelines, per spec.md section 2's "primary interface is an
// interactive terminal screen." It is intentionally thin compared to the
// rest of ai-z: spec.md's testable properties and invariants concentrate
// on the data-collection/merge/bench layers, not on rendering, so this
// package does the minimum a program named ai-z needs to have something
// to run by default -- render one frame per tick and react to a handful
// of keys -- rather than reproducing a full curses-style layout engine.
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/aiz-project/ai-z/internal/config"
	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/hwprobe"
	"github.com/aiz-project/ai-z/internal/i18n"
	"github.com/aiz-project/ai-z/internal/sampler"
	"github.com/aiz-project/ai-z/internal/timeline"
)

// metricColor resolves a Config.MetricNameColor into a *color.Color,
// falling back to cyan for an unrecognized value.
func metricColor(c config.MetricNameColor) *color.Color {
	switch c {
	case config.ColorWhite:
		return color.New(color.FgWhite)
	case config.ColorGreen:
		return color.New(color.FgGreen)
	case config.ColorYellow:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

// Screen owns the per-metric timelines and renders one frame at a time.
// It holds no goroutines of its own; App drives it from a ticker.
type Screen struct {
	cfg       config.Config
	lang      i18n.Tag
	gpuNames  []string
	gpuLines  map[int]*timeline.Timeline // util% per GPU, the headline metric
	cpuLine   *timeline.Timeline
	smokeExit time.Duration
}

// NewScreen builds a Screen for the given GPU name list and config.
func NewScreen(cfg config.Config, gpuNames []string) *Screen {
	s := &Screen{
		cfg:      cfg,
		lang:     i18n.English,
		gpuNames: gpuNames,
		gpuLines: make(map[int]*timeline.Timeline),
		cpuLine:  timeline.New(int(cfg.TimelineSamples)),
	}
	for i := range gpuNames {
		s.gpuLines[i] = timeline.New(int(cfg.TimelineSamples))
	}
	return s
}

// SetConfig swaps the live config, resizing timelines in place when the
// sample count changed (the '+'/'-' refresh-rate keys don't touch
// capacity, but a config reload might).
func (s *Screen) SetConfig(cfg config.Config) {
	if cfg.TimelineSamples != s.cfg.TimelineSamples {
		s.cpuLine = s.cpuLine.Resize(int(cfg.TimelineSamples))
		for i, tl := range s.gpuLines {
			s.gpuLines[i] = tl.Resize(int(cfg.TimelineSamples))
		}
	}
	s.cfg = cfg
}

// Render draws one frame to stdout: a hardware banner (once available),
// then one block per GPU and a CPU/RAM block, each with the current
// reading and a compact bar built from the timeline's recent history.
func (s *Screen) Render(hw *gputelemetry.HardwareInfo, gpus map[int]*gputelemetry.GpuTelemetry, cpuUtilPct float64, ramUsedPct float64) {
	clearScreen()
	nameColor := metricColor(s.cfg.MetricNameColor)

	fmt.Println(nameColor.Sprint("ai-z"), "—", i18n.T(s.lang, "banner.hint"))
	if hw != nil {
		fmt.Printf("%s | %d cores | %s\n", hw.CPUModel, hw.LogicalCores, hw.RAMSummary)
	}
	fmt.Println(strings.Repeat("-", 60))

	for i, name := range s.gpuNames {
		t := gpus[i]
		util := 0.0
		if t != nil && t.UtilPct != nil {
			util = *t.UtilPct
		}
		tl := s.gpuLines[i]
		tl.Push(util)

		fmt.Printf("%s %s\n", nameColor.Sprintf("GPU%d", i), name)
		if s.cfg.ShowGpu {
			fmt.Printf("  util  %s\n", bar(util, 100, tl, s.cfg))
		}
		if s.cfg.ShowGpuMem && t != nil && t.MemUtilPct != nil {
			fmt.Printf("  mem   %.0f%%\n", *t.MemUtilPct)
		}
		if s.cfg.ShowVram && t != nil && t.VramUsedGiB != nil && t.VramTotalGiB != nil {
			fmt.Printf("  vram  %.1f/%.1f GiB\n", *t.VramUsedGiB, *t.VramTotalGiB)
		}
		if t != nil && t.TempC != nil {
			fmt.Printf("  temp  %.0fC\n", *t.TempC)
		}
		if t != nil && t.Watts != nil {
			fmt.Printf("  power %.0fW\n", *t.Watts)
		}
	}

	fmt.Println(strings.Repeat("-", 60))
	s.cpuLine.Push(cpuUtilPct)
	if s.cfg.ShowCpu {
		fmt.Printf("%s  %s\n", nameColor.Sprint("CPU0"), bar(cpuUtilPct, 100, s.cpuLine, s.cfg))
	}
	if s.cfg.ShowRam {
		fmt.Printf("%s  %.0f%%\n", nameColor.Sprint("RAM "), ramUsedPct)
	}
}

// bar renders a metric's current value plus, when showPeakValues is on,
// the PEAK line spec.md section 6 describes for section dividers.
func bar(value, max float64, tl *timeline.Timeline, cfg config.Config) string {
	width := 30
	filled := int(value / max * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	line := fmt.Sprintf("[%s%s] %5.1f%%", strings.Repeat("#", filled), strings.Repeat(" ", width-filled), value)
	if cfg.ShowPeakValues {
		window := int(cfg.PeakWindowSec * 1000 / cfg.RefreshMs)
		var peak float64
		if cfg.TimelineAgg == config.AggAvg {
			peak = tl.AvgLast(window)
		} else {
			peak = tl.MaxLast(window)
		}
		line += fmt.Sprintf("  PEAK: %.1f%%", peak)
	}
	return line
}

func clearScreen() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\033[H\033[2J")
	}
}

// App drives Screen from a ticker until quit is requested, reading
// telemetry from a sampler.GpuSampler and a hwprobe.Prober.
type App struct {
	cfg      config.Config
	sampler  *sampler.GpuSampler
	prober   *hwprobe.Prober
	screen   *Screen
	cpuUsage func() (float64, bool)
	ramUsage func() (float64, bool)
	quit     chan struct{}
}

// NewApp wires a Screen to the background sampler/prober plus the CPU
// and RAM usage samplers the caller has already constructed.
func NewApp(cfg config.Config, gpuNames []string, smp *sampler.GpuSampler, prober *hwprobe.Prober, cpuUsage, ramUsage func() (float64, bool)) *App {
	return &App{
		cfg:      cfg,
		sampler:  smp,
		prober:   prober,
		screen:   NewScreen(cfg, gpuNames),
		cpuUsage: cpuUsage,
		ramUsage: ramUsage,
		quit:     make(chan struct{}),
	}
}

// Run blocks, rendering a frame every cfg.RefreshMs until Stop is called,
// the keyboard listener sees 'q', or smokeExit elapses (AI_Z_TUI_SMOKE_MS
// support, per spec.md section 6).
func (a *App) Run(smokeExit time.Duration) {
	keys := make(chan byte, 8)
	go readKeys(keys)

	var smokeTimer <-chan time.Time
	if smokeExit > 0 {
		smokeTimer = time.After(smokeExit)
	}

	var hw *gputelemetry.HardwareInfo
	for {
		ticker := time.NewTicker(time.Duration(config.ClampRefreshMs(a.cfg.RefreshMs)) * time.Millisecond)
		select {
		case <-ticker.C:
			ticker.Stop()
		case k := <-keys:
			ticker.Stop()
			if a.handleKey(k) {
				return
			}
			continue
		case <-smokeTimer:
			ticker.Stop()
			return
		case <-a.quit:
			ticker.Stop()
			return
		}

		if a.prober != nil {
			if got, ok := a.prober.TryConsume(); ok {
				hw = got
			}
		}

		gpus := map[int]*gputelemetry.GpuTelemetry{}
		if a.sampler != nil {
			gpus, _ = a.sampler.Snapshot()
		}
		cpuPct, _ := a.cpuUsage()
		ramPct, _ := a.ramUsage()
		a.screen.Render(hw, gpus, cpuPct, ramPct)
	}
}

// Stop requests Run return at the next tick.
func (a *App) Stop() {
	close(a.quit)
}

// SetLang sets the UI language the banner renders in, per spec.md section
// 6's --lang/AI_Z_LANG/LC_ALL/LANG resolution.
func (a *App) SetLang(tag i18n.Tag) {
	a.screen.lang = tag
}

// handleKey applies a single keypress, returning true when Run should
// exit.
func (a *App) handleKey(k byte) bool {
	switch k {
	case 'q', 'Q':
		return true
	case '+':
		a.cfg.RefreshMs = config.ClampRefreshMs(a.cfg.RefreshMs + 100)
		a.screen.SetConfig(a.cfg)
	case '-':
		a.cfg.RefreshMs = config.ClampRefreshMs(a.cfg.RefreshMs - 100)
		a.screen.SetConfig(a.cfg)
	}
	return false
}

// readKeys feeds raw stdin bytes to ch. It is best-effort: on a
// non-interactive stdin it simply blocks forever, which is harmless since
// Run also reacts to its ticker and smoke-test timer.
func readKeys(ch chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			ch <- buf[0]
		}
	}
}
