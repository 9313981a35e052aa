package bench

import (
	"fmt"

	"github.com/aiz-project/ai-z/internal/vendorapi/cuda"
)

// Grid geometry and iteration/op counts shared by every CUDA PTX compute
// kernel, per spec.md section 4.9.
const (
	computeBlocks  = 256
	computeThreads = 256
	computeWorkItems = computeBlocks * computeThreads

	computeWarmupLaunches = 2
	computeTimedLaunches  = 5
)

// precision names one of the FP16/32/64/INT4/INT8 kernel variants.
type precision int

const (
	precFP16 precision = iota
	precFP32
	precFP64
	precINT32
	precINT4
)

type precisionSpec struct {
	label        string
	ptx          string
	fallbackPTX  string
	kernelName   string
	itersPerThread int
	opsPerIter   int
	isFloat      bool
}

var precisionSpecs = map[precision]precisionSpec{
	precFP16: {label: "CUDA FP16", ptx: ptxFMAFP16, fallbackPTX: ptxFMAFP16Emu, kernelName: "fma_fp16", itersPerThread: 4096, opsPerIter: 2, isFloat: true},
	precFP32: {label: "CUDA FP32", ptx: ptxFMAFP32, kernelName: "fma_fp32", itersPerThread: 2048, opsPerIter: 2, isFloat: true},
	precFP64: {label: "CUDA FP64", ptx: ptxFMAFP64, kernelName: "fma_fp64", itersPerThread: 1024, opsPerIter: 2, isFloat: true},
	precINT32: {label: "CUDA INT8", ptx: ptxMADInt32, kernelName: "mad_int32", itersPerThread: 4096, opsPerIter: 4, isFloat: false},
	precINT4: {label: "CUDA INT4", ptx: ptxMADInt4, kernelName: "mad_int4", itersPerThread: 2048, opsPerIter: 16, isFloat: false},
}

// cudaComputeBench loads and times one of the PTX compute kernels, per
// spec.md section 4.9.
type cudaComputeBench struct {
	deviceIdx int
	prec      precision
}

// NewCUDACompute builds the CUDA PTX compute benchmark for one precision.
func NewCUDACompute(deviceIdx int, prec precision) Benchmark {
	return &cudaComputeBench{deviceIdx: deviceIdx, prec: prec}
}

func (b *cudaComputeBench) Name() string { return precisionSpecs[b.prec].label }

func (b *cudaComputeBench) IsAvailable() bool {
	api, _ := cuda.Get()
	return api != nil
}

func (b *cudaComputeBench) Run() Result {
	api, errMsg := cuda.Get()
	if api == nil {
		return notAvailable("CUDA driver (" + errMsg + ")")
	}
	spec := precisionSpecs[b.prec]

	var device int32
	if rc := api.DeviceGet(&device, int32(b.deviceIdx)); rc != 0 {
		return failf(spec.label, api.ErrString(rc))
	}
	var ctx uintptr
	if rc := api.CtxCreate(&ctx, 0, device); rc != 0 {
		return failf(spec.label, api.ErrString(rc))
	}
	defer api.CtxDestroy(ctx)

	module, fn, usedEmu, err := loadComputeKernel(api, spec)
	if err != nil {
		return failf(spec.label, err.Error())
	}
	defer api.ModuleUnload(module)

	var outBuf uintptr
	outBytes := uintptr(computeWorkItems) * 8 // worst case fp64/int32 width
	if rc := api.MemAlloc(&outBuf, outBytes); rc != 0 {
		return failf(spec.label, api.ErrString(rc))
	}
	defer api.MemFree(outBuf)

	iters := int32(spec.itersPerThread)
	launch := func() int32 {
		params := []uintptr{uintptrOf(&outBuf), uintptrOf(&iters)}
		return api.LaunchKernel(fn, computeBlocks, 1, 1, computeThreads, 1, 1, 0, 0, sliceToPtr(params), 0)
	}

	for i := 0; i < computeWarmupLaunches; i++ {
		if rc := launch(); rc != 0 {
			return failf(spec.label, api.ErrString(rc))
		}
	}
	if rc := api.CtxSynchronize(); rc != 0 {
		return failf(spec.label, api.ErrString(rc))
	}

	var start, stop uintptr
	api.EventCreate(&start, 0)
	defer api.EventDestroy(start)
	api.EventCreate(&stop, 0)
	defer api.EventDestroy(stop)

	api.EventRecord(start, 0)
	for i := 0; i < computeTimedLaunches; i++ {
		if rc := launch(); rc != 0 {
			return failf(spec.label, api.ErrString(rc))
		}
	}
	api.EventRecord(stop, 0)
	if rc := api.EventSynchronize(stop); rc != 0 {
		return failf(spec.label, api.ErrString(rc))
	}

	var ms float32
	if rc := api.EventElapsedTime(&ms, start, stop); rc != 0 || ms <= 0 {
		return failf(spec.label, "invalid elapsed time")
	}

	seconds := float64(ms) / 1000
	totalOps := float64(computeWorkItems) * float64(spec.itersPerThread) * float64(spec.opsPerIter) * computeTimedLaunches
	rate := totalOps / seconds / 1e9

	unit := "GOPS"
	if spec.isFloat {
		unit = "GFLOPS"
	}
	if usedEmu {
		return ok(fmt.Sprintf("%.2f %s (emu)", rate, unit))
	}
	return ok(fmt.Sprintf("%.2f %s", rate, unit))
}

// loadComputeKernel loads spec's primary PTX module. For the FP16
// variant a load failure falls back to the FP32-emulated kernel, per
// spec.md section 4.9; the bool return reports whether the fallback was
// used.
func loadComputeKernel(api *cuda.Api, spec precisionSpec) (module uintptr, fn uintptr, usedEmu bool, err error) {
	ptx := spec.ptx
	name := spec.kernelName
	if rc := api.ModuleLoadData(&module, ptxPtr(ptx)); rc != 0 {
		if spec.fallbackPTX == "" {
			return 0, 0, false, fmt.Errorf("loading PTX module: %s", api.ErrString(rc))
		}
		ptx = spec.fallbackPTX
		name = "fma_fp16_emu"
		usedEmu = true
		if rc := api.ModuleLoadData(&module, ptxPtr(ptx)); rc != 0 {
			return 0, 0, false, fmt.Errorf("loading fallback PTX module: %s", api.ErrString(rc))
		}
	}
	if rc := api.ModuleGetFunction(&fn, module, name); rc != 0 {
		return 0, 0, usedEmu, fmt.Errorf("resolving kernel %s: %s", name, api.ErrString(rc))
	}
	return module, fn, usedEmu, nil
}
