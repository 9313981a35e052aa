package bench

import (
	"fmt"
	"sync"

	"github.com/aiz-project/ai-z/internal/log"
)

// Row models one line of the benchmark screen: either a device header
// ("GPU0 - <name>", "CPU0 - <name>") or an actual benchmark. A header row
// has IsHeader set and a nil Bench; a benchmark row carries its Benchmark.
type Row struct {
	Title    string
	IsHeader bool
	Bench    Benchmark // nil when IsHeader is true
	Result   string
}

// Runner owns the ordered row list and runs at most one benchmark at a
// time on a dedicated worker goroutine, per spec.md section 4.8.
type Runner struct {
	mu      sync.Mutex
	rows    []Row
	running bool
	runIdx  *int
}

// NewRunner builds an empty runner; call AddGPU/AddCPU to populate it.
func NewRunner() *Runner {
	return &Runner{}
}

// AddHeader appends a device header row.
func (r *Runner) AddHeader(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, Row{Title: title, IsHeader: true})
}

// AddBench appends a benchmark row under the most recently added header.
func (r *Runner) AddBench(b Benchmark) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, Row{Title: b.Name(), Bench: b})
}

// AddGPU appends the standard per-GPU row block, per spec.md section
// 4.8's ordering: PCIe bandwidths (CUDA, Vulkan, OpenCL), FLOPS (Vulkan
// FP32, OpenCL FP32), then CUDA FP16/FP32/FP64/INT4/INT8.
func (r *Runner) AddGPU(name string, benches []Benchmark) {
	r.AddHeader(fmt.Sprintf("GPU%s - %s", indexSuffix(r), name))
	for _, b := range benches {
		r.AddBench(b)
	}
}

// indexSuffix returns the count of GPU headers already present, used so
// callers adding GPUs in order get "GPU0", "GPU1", ... without tracking
// the index themselves.
func indexSuffix(r *Runner) string {
	n := 0
	for _, row := range r.rows {
		if row.IsHeader && len(row.Title) > 3 && row.Title[:3] == "GPU" {
			n++
		}
	}
	return fmt.Sprintf("%d", n)
}

// AddCPU appends the CPU0 header plus the ONNX rows, per spec.md section
// 4.8: "CPU rows: ONNX FP32 MatMul, ONNX Memory BW." Per the Open
// Questions decision in DESIGN.md, these rows are added exactly once,
// never duplicated per GPU.
func (r *Runner) AddCPU(name string, benches []Benchmark) {
	r.AddHeader("CPU0 - " + name)
	for _, b := range benches {
		r.AddBench(b)
	}
}

// Rows returns a snapshot copy of the current row list, safe to read
// from the UI thread while a benchmark may be running.
func (r *Runner) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Row, len(r.rows))
	copy(out, r.rows)
	return out
}

// Running reports whether a worker is currently executing.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// RunningIndex returns the row index currently executing, or (0, false)
// when idle.
func (r *Runner) RunningIndex() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.runIdx == nil {
		return 0, false
	}
	return *r.runIdx, true
}

// Activate runs a single row (index > 0) or every non-header row in
// order (index == 0, "Run All"), per spec.md section 4.8. It spawns a
// worker goroutine and returns immediately; re-activation is ignored
// while a worker is already running.
func (r *Runner) Activate(index int) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.worker(index)
}

// RunAllSync runs every row on the calling goroutine and blocks until
// done, for the one-shot `--bench-report` CLI path where there is no UI
// thread to poll Rows() for completion.
func (r *Runner) RunAllSync() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.runAll()

	r.mu.Lock()
	r.running = false
	r.runIdx = nil
	r.mu.Unlock()
}

func (r *Runner) worker(index int) {
	defer func() {
		r.mu.Lock()
		r.running = false
		r.runIdx = nil
		r.mu.Unlock()
	}()

	if index == 0 {
		r.runAll()
		return
	}
	r.runOne(index)
}

func (r *Runner) runAll() {
	r.mu.Lock()
	n := len(r.rows)
	r.mu.Unlock()

	for i := 0; i < n; i++ {
		r.mu.Lock()
		row := r.rows[i]
		r.mu.Unlock()
		if row.IsHeader {
			continue
		}
		r.execute(i)
	}
}

func (r *Runner) runOne(index int) {
	r.mu.Lock()
	valid := index >= 0 && index < len(r.rows) && !r.rows[index].IsHeader
	r.mu.Unlock()
	if !valid {
		return
	}
	r.execute(index)
}

func (r *Runner) execute(index int) {
	r.mu.Lock()
	r.runIdx = &index
	b := r.rows[index].Bench
	r.mu.Unlock()

	var res Result
	if !b.IsAvailable() {
		res = notAvailable(b.Name())
	} else {
		res = runSafely(b)
	}

	r.mu.Lock()
	r.rows[index].Result = res.Summary
	r.mu.Unlock()

	log.Logger.Infow("benchmark finished", "name", b.Name(), "ok", res.OK, "summary", res.Summary)
}

// runSafely recovers from a panic inside a benchmark's Run (a vendor SDK
// call gone wrong) so one bad device call cannot crash the worker, per
// spec.md section 7's "resource exhaustion" error path.
func runSafely(b Benchmark) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = failf(b.Name(), fmt.Sprintf("panic: %v", p))
		}
	}()
	return b.Run()
}
