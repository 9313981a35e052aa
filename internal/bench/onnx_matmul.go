package bench

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/aiz-project/ai-z/internal/vendorapi/ort"
)

// onnxMatMulSize is the square matrix dimension for the "ONNX FP32
// MatMul" CPU row, per spec.md section 4.9.
const onnxMatMulSize = 1024

// onnxMatMulWarmup and onnxMatMulTimed mirror the warmup/timed split
// used throughout internal/bench.
const (
	onnxMatMulWarmup = 2
	onnxMatMulTimed  = 5
)

// onnxMatMulBench runs the dynamic-shape Y = MatMul(A, B) graph through
// onnxruntime's CPU execution provider.
type onnxMatMulBench struct{}

// NewONNXMatMul builds the "ONNX FP32 MatMul" benchmark row.
func NewONNXMatMul() Benchmark {
	return &onnxMatMulBench{}
}

func (b *onnxMatMulBench) Name() string { return "ONNX FP32 MatMul" }

func (b *onnxMatMulBench) IsAvailable() bool {
	api, _ := ort.Get()
	return api != nil
}

func (b *onnxMatMulBench) Run() Result {
	api, errMsg := ort.Get()
	if api == nil {
		return notAvailable("ONNX Runtime (" + errMsg + ")")
	}

	env, session, memInfo, cleanup, err := onnxSession(api, onnxMatMulModel)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanup()
	_ = env

	n := onnxMatMulSize
	a := make([]float32, n*n)
	bm := make([]float32, n*n)
	for i := range a {
		a[i] = 1
		bm[i] = 1
	}

	run := func() error {
		return onnxRunMatMul(api, session, memInfo, a, bm, n)
	}

	for i := 0; i < onnxMatMulWarmup; i++ {
		if err := run(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}

	start := time.Now()
	for i := 0; i < onnxMatMulTimed; i++ {
		if err := run(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return failf(b.Name(), "invalid elapsed time")
	}

	flopsPerRun := 2.0 * float64(n) * float64(n) * float64(n)
	gflops := flopsPerRun * onnxMatMulTimed / elapsed.Seconds() / 1e9
	return ok(fmt.Sprintf("%.2f GFLOPS", gflops))
}

// onnxSession creates an environment and CPU-execution-provider session
// from an embedded model byte slice, shared by both ONNX rows.
func onnxSession(api *ort.Api, model []byte) (env uintptr, session uintptr, memInfo uintptr, cleanup func(), err error) {
	logID := append([]byte("ai-z"), 0)
	if rc := api.CreateEnv(ortLoggingLevelWarning, &logID[0], &env); rc != 0 {
		return 0, 0, 0, nil, fmt.Errorf("OrtCreateEnv failed")
	}

	var options uintptr
	if rc := api.CreateSessionOptions(&options); rc != 0 {
		api.ReleaseEnv(env)
		return 0, 0, 0, nil, fmt.Errorf("OrtCreateSessionOptions failed")
	}

	if rc := api.CreateSessionFromArray(env, uintptr(unsafe.Pointer(&model[0])), uintptr(len(model)), options, &session); rc != 0 {
		api.ReleaseSessionOptions(options)
		api.ReleaseEnv(env)
		return 0, 0, 0, nil, fmt.Errorf("OrtCreateSessionFromArray failed")
	}
	api.ReleaseSessionOptions(options)

	if rc := api.CreateCpuMemoryInfo(ortAllocatorTypeDevice, ortMemTypeDefault, &memInfo); rc != 0 {
		api.ReleaseSession(session)
		api.ReleaseEnv(env)
		return 0, 0, 0, nil, fmt.Errorf("OrtCreateCpuMemoryInfo failed")
	}

	cleanup = func() {
		api.ReleaseMemoryInfo(memInfo)
		api.ReleaseSession(session)
		api.ReleaseEnv(env)
	}
	return env, session, memInfo, cleanup, nil
}

// onnxRunMatMul wraps a and b as input tensors, runs the session, and
// releases every OrtValue it created.
func onnxRunMatMul(api *ort.Api, session, memInfo uintptr, a, b []float32, n int) error {
	shape := []int64{int64(n), int64(n)}

	tensorA, err := onnxWrapTensor(api, memInfo, a, shape)
	if err != nil {
		return err
	}
	defer api.ReleaseValue(tensorA)

	tensorB, err := onnxWrapTensor(api, memInfo, b, shape)
	if err != nil {
		return err
	}
	defer api.ReleaseValue(tensorB)

	inputNames := onnxNameArray("A", "B")
	outputNames := onnxNameArray("Y")
	inputs := []uintptr{tensorA, tensorB}
	var output uintptr

	rc := api.Run(session, 0, inputNames, &inputs[0], 2, outputNames, 1, &output)
	if rc != 0 {
		return fmt.Errorf("OrtRun failed")
	}
	if output != 0 {
		api.ReleaseValue(output)
	}
	return nil
}

// onnxWrapTensor builds an OrtValue tensor view over a Go float32 slice
// without copying: CreateTensorWithDataAsOrtValue takes the buffer by
// reference, so data must outlive the call.
func onnxWrapTensor(api *ort.Api, memInfo uintptr, data []float32, shape []int64) (uintptr, error) {
	var value uintptr
	rc := api.CreateTensorWithDataAsOrtValue(memInfo, uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)*4), &shape[0], uintptr(len(shape)), onnxTensorFloat32, &value)
	if rc != 0 {
		return 0, fmt.Errorf("OrtCreateTensorWithDataAsOrtValue failed")
	}
	return value, nil
}

// onnxNameArray builds the **byte the ORT Run signature expects from a
// set of Go strings.
func onnxNameArray(names ...string) **byte {
	ptrs := make([]*byte, len(names))
	for i, n := range names {
		b := append([]byte(n), 0)
		ptrs[i] = &b[0]
	}
	return &ptrs[0]
}
