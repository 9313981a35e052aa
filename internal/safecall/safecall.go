// Package safecall runs a closure with a deadline so that a single hung or
// crashing vendor SDK call (NVML is the usual offender -- see
// https://github.com/NVIDIA/go-nvml/issues -- some driver builds deadlock
// inside nvmlDeviceGetProcessUtilization) cannot freeze the whole sampler or
// TUI.
//
// The design note in spec.md recommends fork+pipe+select on Unix so a
// genuinely wedged call can be SIGKILLed. The Go runtime cannot safely fork()
// without an immediate exec() -- a forked child shares the parent's
// goroutine scheduler, GC, and open file descriptors in an unsupported way
// -- so arbitrary closures cannot be isolated that way without first
// serializing them into a re-exec'd helper process, which defeats the
// "isolate an arbitrary closure" requirement. This package instead adopts,
// uniformly on every platform, the alternative spec.md explicitly accepts
// for Windows: run f on its own goroutine and race it against a timer. A
// call that hangs past the deadline leaks its goroutine (it is never
// killed), exactly as a hung Windows call is never killed in the original
// design; the caller gets back zero value, false and moves on.
package safecall

import "time"

// Timeout runs f and returns its result if it completes before deadline
// elapses. If the deadline trips first, the zero value and false are
// returned and f's goroutine is abandoned (it may still be running).
func Timeout[T any](deadline time.Duration, f func() T) (T, bool) {
	resultc := make(chan T, 1)
	go func() {
		resultc <- f()
	}()

	var zero T
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case v := <-resultc:
		return v, true
	case <-timer.C:
		return zero, false
	}
}

// DefaultNVMLDeadline is the default timeout applied to NVML calls made
// through this package, per spec.md section 4.2.
const DefaultNVMLDeadline = 700 * time.Millisecond

// NVML runs f (an NVML call) with DefaultNVMLDeadline.
func NVML[T any](f func() T) (T, bool) {
	return Timeout(DefaultNVMLDeadline, f)
}
