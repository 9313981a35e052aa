package bench

import (
	"fmt"
	"time"

	"github.com/aiz-project/ai-z/internal/vendorapi/ort"
)

// onnxMemBWElems sizes the two input buffers for the "ONNX Memory BW"
// row: large enough that the Add graph is memory-bound rather than
// compute-bound, per spec.md section 4.9.
const onnxMemBWElems = 64 << 20 // 64M float32 elements per buffer, 256MiB each

const (
	onnxMemBWWarmup = 2
	onnxMemBWTimed  = 5
)

// onnxMemBWBench runs Y = Add(A, B) over large buffers and reports
// effective memory bandwidth.
type onnxMemBWBench struct{}

// NewONNXMemoryBandwidth builds the "ONNX Memory BW" benchmark row.
func NewONNXMemoryBandwidth() Benchmark {
	return &onnxMemBWBench{}
}

func (b *onnxMemBWBench) Name() string { return "ONNX Memory BW" }

func (b *onnxMemBWBench) IsAvailable() bool {
	api, _ := ort.Get()
	return api != nil
}

func (b *onnxMemBWBench) Run() Result {
	api, errMsg := ort.Get()
	if api == nil {
		return notAvailable("ONNX Runtime (" + errMsg + ")")
	}

	env, session, memInfo, cleanup, err := onnxSession(api, onnxAddModel)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanup()
	_ = env

	a := make([]float32, onnxMemBWElems)
	bm := make([]float32, onnxMemBWElems)
	shape := []int64{int64(onnxMemBWElems)}

	run := func() error {
		tensorA, err := onnxWrapTensor(api, memInfo, a, shape)
		if err != nil {
			return err
		}
		defer api.ReleaseValue(tensorA)

		tensorB, err := onnxWrapTensor(api, memInfo, bm, shape)
		if err != nil {
			return err
		}
		defer api.ReleaseValue(tensorB)

		inputNames := onnxNameArray("A", "B")
		outputNames := onnxNameArray("Y")
		inputs := []uintptr{tensorA, tensorB}
		var output uintptr
		if rc := api.Run(session, 0, inputNames, &inputs[0], 2, outputNames, 1, &output); rc != 0 {
			return fmt.Errorf("OrtRun failed")
		}
		if output != 0 {
			api.ReleaseValue(output)
		}
		return nil
	}

	for i := 0; i < onnxMemBWWarmup; i++ {
		if err := run(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}

	start := time.Now()
	for i := 0; i < onnxMemBWTimed; i++ {
		if err := run(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return failf(b.Name(), "invalid elapsed time")
	}

	// Add reads two buffers and writes one of equal size per run.
	bytesPerRun := 3.0 * float64(onnxMemBWElems) * 4
	gbps := bytesPerRun * onnxMemBWTimed / elapsed.Seconds() / 1e9
	return ok(fmt.Sprintf("%.2f GB/s", gbps))
}
