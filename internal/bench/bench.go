// Package bench implements BenchRunner (spec.md section 4.8) and the
// concrete Benchmark backends (section 4.9): CUDA/OpenCL/Vulkan PCIe
// bandwidth, CUDA PTX / OpenCL / Vulkan SPIR-V compute FLOPS-GOPS, and
// the CPU-side ONNX Runtime matmul/memory-bandwidth rows. Grounded on the
// teacher's polymorphic component registry shape (components.Register,
// one struct per check implementing a small interface) adapted from a
// health-check registry to a one-shot, user-triggered benchmark registry.
package bench

// Benchmark is the polymorphic object spec.md section 3 describes:
// "name() -> String, is_available() -> bool, run() -> BenchResult". Each
// concrete backend (CUDA/OpenCL/Vulkan PCIe, CUDA/OpenCL/Vulkan compute,
// ONNX CPU rows) is a plain struct implementing this interface.
type Benchmark interface {
	// Name is the row title, e.g. "CUDA FP32" or "Vulkan PCIe bandwidth".
	Name() string
	// IsAvailable reports whether the backing vendor SDK/device loaded
	// successfully; false means Run will return a "not built with/not
	// available" result without attempting anything.
	IsAvailable() bool
	// Run executes the benchmark synchronously and returns its result.
	// Run never panics: every failure path is captured in Result.Summary.
	Run() Result
}

// Result is the outcome of a single benchmark run, per spec.md section 3.
type Result struct {
	OK      bool
	Summary string
}

// notAvailable is the canonical failure result for a backend whose vendor
// SDK never loaded, per spec.md section 7: "Missing dependency ... surfaced
// as: ... benchmark is_available() = false + run() returns {ok: false,
// summary: 'Not built with …'}".
func notAvailable(sdk string) Result {
	return Result{OK: false, Summary: "Not built with " + sdk}
}

// failf builds a Result for a resource-exhaustion/call-failure path, per
// spec.md section 7: "{ok: false, summary: '<where>: <reason>'}".
func failf(where string, reason string) Result {
	return Result{OK: false, Summary: where + ": " + reason}
}

// ok builds a successful Result from a formatted summary line.
func ok(summary string) Result {
	return Result{OK: true, Summary: summary}
}
