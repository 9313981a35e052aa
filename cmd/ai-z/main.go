// Command ai-z is a cross-vendor GPU/CPU/RAM telemetry dashboard and
// micro-benchmark suite, per spec.md sections 2 and 6. Grounded on the
// teacher's cmd/gpud/main.go: os.Exit(run(os.Args, stdout, stderr)) with
// all flag/command wiring isolated in run so tests can drive it without a
// process exit.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/urfave/cli"
	"go.uber.org/zap/zapcore"

	"github.com/aiz-project/ai-z/internal/bench"
	"github.com/aiz-project/ai-z/internal/collectors"
	"github.com/aiz-project/ai-z/internal/config"
	"github.com/aiz-project/ai-z/internal/diag"
	"github.com/aiz-project/ai-z/internal/gpuident"
	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/gputelemetry/sources"
	"github.com/aiz-project/ai-z/internal/hwprobe"
	"github.com/aiz-project/ai-z/internal/i18n"
	"github.com/aiz-project/ai-z/internal/log"
	"github.com/aiz-project/ai-z/internal/sampler"
	"github.com/aiz-project/ai-z/internal/snapshot"
	"github.com/aiz-project/ai-z/internal/tui"
	"github.com/aiz-project/ai-z/internal/version"

	"github.com/shirou/gopsutil/v4/cpu"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// defaultSnapshotLoopMs is the fallback interval for --snapshot-loop given
// with no value or an invalid value, per spec.md section 6. A value below
// the 10ms floor is clamped to 10ms rather than replaced by this default.
const defaultSnapshotLoopMs = 500

func run(args []string, stdout, stderr io.Writer) int {
	args, snapshotLoopMs, snapshotLoopSet := extractSnapshotLoop(args)

	app := cli.NewApp()
	app.Name = "ai-z"
	app.Usage = "GPU/CPU hardware telemetry and benchmark terminal"
	app.Version = version.Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.HideHelp = false

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%s version %s\n", c.App.Name, c.App.Version)
		printDriverVersionNote(c.App.Writer)
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		cli.BoolFlag{Name: "hardware", Usage: "print static hardware info and exit"},
		cli.BoolFlag{Name: "bench-report", Usage: "run every benchmark and write an HTML report"},
		cli.StringFlag{Name: "lang", Usage: "UI language tag (en, zh-CN)"},
		cli.BoolFlag{Name: "snapshot", Usage: "emit a JSON telemetry snapshot and exit"},
		cli.StringFlag{Name: "format", Usage: "snapshot output format (json)"},
	}
	for _, f := range []diag.Flag{diag.PCIe, diag.ADLX, diag.IGCL, diag.IGCLFull, diag.D3DKMT, diag.PDHGpu} {
		app.Flags = append(app.Flags, cli.BoolFlag{Name: "diag-" + string(f)})
	}

	exitCode := 0
	app.Action = func(c *cli.Context) error {
		exitCode = dispatch(c, stdout, snapshotLoopMs, snapshotLoopSet)
		return nil
	}

	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "ai-z: %s\n", err)
		return 1
	}
	return exitCode
}

// extractSnapshotLoop pulls --snapshot-loop out of args by hand before
// handing the rest to urfave/cli, since cli v1 string flags cannot express
// "present with no value defaults to X" -- --snapshot-loop alone, followed
// by another flag, or at the end of args all mean "use the default",
// matching spec.md section 6.
func extractSnapshotLoop(args []string) (remaining []string, ms int, set bool) {
	remaining = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--snapshot-loop":
			set = true
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				ms = parseSnapshotLoopValue(args[i+1])
				i++
			} else {
				ms = defaultSnapshotLoopMs
			}
		case strings.HasPrefix(a, "--snapshot-loop="):
			set = true
			ms = parseSnapshotLoopValue(strings.TrimPrefix(a, "--snapshot-loop="))
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining, ms, set
}

func parseSnapshotLoopValue(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultSnapshotLoopMs
	}
	if v < 10 {
		return 10
	}
	return v
}

func dispatch(c *cli.Context, stdout io.Writer, snapshotLoopMs int, snapshotLoopSet bool) int {
	level := zapcore.InfoLevel
	if c.Bool("debug") {
		level = zapcore.DebugLevel
	}
	log.Logger = log.CreateLogger(level, "")

	lang := resolveLang(c.String("lang"))

	if f, ok := diagFlag(c); ok {
		return diag.Run(f)
	}

	gpuNames := gpuident.Names()
	nvml := sources.NewNVML()
	hint := sources.VendorUnknown
	merger := gputelemetry.NewMerger(sources.PriorityList(hint, nvml, os.Getenv("AI_Z_DISABLE_PDH") != "", sources.LinkFunc()))

	gpuCount := func() int {
		if n := len(gpuNames); n > 0 {
			return n
		}
		return nvml.Count()
	}

	if c.Bool("hardware") {
		return runHardware(stdout, gpuNames)
	}

	if c.Bool("bench-report") {
		return runBenchReport(stdout, gpuNames)
	}

	if c.Bool("snapshot") {
		format := c.String("format")
		if format != "" && format != "json" {
			fmt.Fprintf(stdout, "ai-z: unsupported --format %q\n", format)
			return 1
		}
		return runSnapshot(stdout, merger, gpuNames, gpuCount, nvml, snapshotLoopSet, snapshotLoopMs)
	}

	return runTUI(merger, gpuNames, gpuCount, nvml, lang)
}

func diagFlag(c *cli.Context) (diag.Flag, bool) {
	for _, f := range []diag.Flag{diag.PCIe, diag.ADLX, diag.IGCL, diag.IGCLFull, diag.D3DKMT, diag.PDHGpu} {
		if c.Bool("diag-" + string(f)) {
			return f, true
		}
	}
	return "", false
}

// resolveLang applies spec.md section 6's precedence: the --lang flag
// first, then AI_Z_LANG, LC_ALL, LANG.
func resolveLang(flagVal string) i18n.Tag {
	if strings.TrimSpace(flagVal) != "" {
		return i18n.Resolve(flagVal)
	}
	return i18n.ResolveEnv(func(key string) (string, bool) {
		v, ok := os.LookupEnv(key)
		return v, ok
	})
}

// printDriverVersionNote queries the installed NVIDIA driver version (when
// NVML is present) and, mirroring the teacher's
// nvml.ClockEventsSupportedVersion(major int) bool driver-gating idiom, flags
// a driver older than version.MinTestedNVMLDriverVersion. Parse failures or
// an absent driver are silent: this is a version-banner nicety, not a
// telemetry path, and spec.md section 7 only requires telemetry/benchmark
// paths to degrade quietly.
func printDriverVersionNote(w io.Writer) {
	nvml := sources.NewNVML()
	raw, ok := nvml.DriverVersion()
	if !ok {
		return
	}
	v, err := parseDriverSemver(raw)
	if err != nil {
		return
	}
	if v.LT(version.MinTestedNVMLDriverVersion) {
		fmt.Fprintf(w, "note: NVIDIA driver %s predates the %s baseline this build was tested against\n", raw, version.MinTestedNVMLDriverVersion)
	} else {
		fmt.Fprintf(w, "NVIDIA driver %s\n", raw)
	}
}

// parseDriverSemver turns an NVML driver string such as "535.104.05" into a
// semver.Version. NVML versions are dotted major[.minor[.patch]] but, unlike
// strict semver, allow leading zeros in a component ("04"), so each piece is
// re-rendered through strconv before parsing.
func parseDriverSemver(raw string) (semver.Version, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return semver.Version{}, fmt.Errorf("unexpected driver version shape %q", raw)
	}
	nums := make([]string, 3)
	for i := range nums {
		nums[i] = "0"
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return semver.Version{}, fmt.Errorf("non-numeric driver version component %q", p)
		}
		nums[i] = strconv.Itoa(n)
	}
	return semver.Parse(strings.Join(nums, "."))
}

func runHardware(stdout io.Writer, gpuNames []string) int {
	prober := hwprobe.New(func() []string { return gpuNames })
	prober.Start()

	deadline := time.After(5 * time.Second)
	for {
		if info, ok := prober.TryConsume(); ok {
			fmt.Fprint(stdout, hwprobe.RenderTable(info))
			return 0
		}
		select {
		case <-deadline:
			fmt.Fprintln(stdout, "ai-z: hardware probe timed out")
			return 0
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func runBenchReport(stdout io.Writer, gpuNames []string) int {
	cpuName := "Unknown CPU"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuName = infos[0].ModelName
	}

	runner := bench.BuildRunner(gpuNames, cpuName)
	runner.RunAllSync()

	var hwLines []string
	for i, name := range gpuNames {
		hwLines = append(hwLines, fmt.Sprintf("GPU%d: %s", i, name))
	}

	report := bench.BuildReport(runner.Rows(), hwLines)
	path, err := report.Write(time.Now())
	if err != nil {
		fmt.Fprintf(stdout, "ai-z: writing benchmark report: %s\n", err)
		return 1
	}
	fmt.Fprintln(stdout, report.RenderTable())
	fmt.Fprintf(stdout, "report written to %s\n", path)
	return 0
}

func runSnapshot(stdout io.Writer, merger *gputelemetry.Merger, gpuNames []string, gpuCount func() int, nvml *sources.NVML, loop bool, loopMs int) int {
	cpuUsage := collectors.NewCpuUsage()
	ramUsage := collectors.NewRamUsage()
	// Prime the delta-based CPU collector so the very first emission (or
	// the only emission, in non-loop mode) has a chance of a real reading.
	cpuUsage.Sample()

	emit := func() {
		devices := buildSnapshotDevices(merger, gpuNames, gpuCount, cpuUsage, ramUsage)
		doc := snapshot.Snapshot{Timestamp: time.Now().UTC().Format(time.RFC3339), Devices: devices}
		out, err := snapshot.Marshal(doc)
		if err != nil {
			fmt.Fprintf(stdout, "ai-z: marshaling snapshot: %s\n", err)
			return
		}
		fmt.Fprintln(stdout, string(out))
	}

	if !loop {
		emit()
		return 0
	}

	interval := time.Duration(loopMs) * time.Millisecond
	for {
		fmt.Fprint(stdout, "\033[H\033[2J")
		emit()
		time.Sleep(interval)
	}
}

func buildSnapshotDevices(merger *gputelemetry.Merger, gpuNames []string, gpuCount func() int, cpuUsage *collectors.CpuUsage, ramUsage *collectors.RamUsage) []snapshot.DeviceSnapshot {
	var devices []snapshot.DeviceSnapshot

	n := gpuCount()
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("GPU%d", i)
		if i < len(gpuNames) {
			name = gpuNames[i]
		}
		devices = append(devices, snapshot.GpuDevice(name, merger.Read(i)))
	}

	cores, _ := cpu.Counts(true)
	if s, ok := cpuUsage.Sample(); ok {
		devices = append(devices, snapshot.CpuDevice("CPU0", &s.Value, cores))
	} else {
		devices = append(devices, snapshot.CpuDevice("CPU0", nil, cores))
	}

	if s, ok := ramUsage.Sample(); ok {
		devices = append(devices, snapshot.RamDevice(s))
	}

	return devices
}

func runTUI(merger *gputelemetry.Merger, gpuNames []string, gpuCount func() int, nvml *sources.NVML, lang i18n.Tag) int {
	cfg, err := config.Load()
	if err != nil {
		log.Logger.Warnw("loading config, using defaults", "error", err)
		cfg = config.Default()
	}

	var prober *hwprobe.Prober
	if bootProbeEnabled() {
		prober = hwprobe.New(func() []string { return gpuNames })
		prober.Start()
	}

	var smp *sampler.GpuSampler
	if os.Getenv("AI_Z_DISABLE_GPU_SAMPLER") == "" {
		pcie := func() (map[int]gputelemetry.PcieThroughput, bool) {
			out := make(map[int]gputelemetry.PcieThroughput, gpuCount())
			any := false
			for i := 0; i < gpuCount(); i++ {
				if t, ok := nvml.PcieThroughput(i); ok {
					out[i] = t
					any = true
				}
			}
			return out, any
		}
		smp = sampler.New(merger, gpuCount, pcie)
		smp.Start()
	}

	cpuUsage := collectors.NewCpuUsage()
	ramUsage := collectors.NewRamUsage()

	app := tui.NewApp(cfg, gpuNames, smp, prober, func() (float64, bool) {
		s, ok := cpuUsage.Sample()
		return s.Value, ok
	}, func() (float64, bool) {
		s, ok := ramUsage.Sample()
		return s.UsedPct, ok
	})
	app.SetLang(lang)

	smokeExit := time.Duration(0)
	if raw := os.Getenv("AI_Z_TUI_SMOKE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			smokeExit = time.Duration(ms) * time.Millisecond
		}
	}

	app.Run(smokeExit)
	if smp != nil {
		smp.Stop()
	}
	return 0
}

// bootProbeEnabled applies AI_Z_DISABLE_BOOT_PROBE / AI_Z_ENABLE_BOOT_PROBE,
// per spec.md section 6. The probe runs by default; AI_Z_DISABLE_BOOT_PROBE
// turns it off, and AI_Z_ENABLE_BOOT_PROBE overrides a disable (e.g. when
// both are set by an outer wrapper script).
func bootProbeEnabled() bool {
	if os.Getenv("AI_Z_ENABLE_BOOT_PROBE") != "" {
		return true
	}
	return os.Getenv("AI_Z_DISABLE_BOOT_PROBE") == ""
}
