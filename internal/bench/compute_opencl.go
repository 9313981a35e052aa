package bench

import (
	"fmt"
	"unsafe"

	"github.com/aiz-project/ai-z/internal/vendorapi/opencl"
)

// openclComputeBench builds and runs the OpenCL FP32 FMA kernel, per
// spec.md section 4.9.
type openclComputeBench struct{}

// NewOpenCLCompute builds the "OpenCL FLOPS FP32" benchmark row.
func NewOpenCLCompute() Benchmark {
	return &openclComputeBench{}
}

func (b *openclComputeBench) Name() string { return "OpenCL FLOPS FP32" }

func (b *openclComputeBench) IsAvailable() bool {
	api, _ := opencl.Get()
	return api != nil
}

func (b *openclComputeBench) Run() Result {
	api, errMsg := opencl.Get()
	if api == nil {
		return notAvailable("OpenCL (" + errMsg + ")")
	}

	ctx, queue, device, cleanup, err := openCLContext(api)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanup()

	program, kernel, cleanupProgram, err := buildOpenCLKernel(api, ctx, device, openCLFP32Source, "fma_fp32", openCLBuildOptions)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanupProgram()
	_ = program

	var errCode int32
	outBuf := api.CreateBuffer(ctx, 1<<0, openCLFP32WorkItems*4, 0, &errCode)
	if errCode != 0 || outBuf == 0 {
		return failf(b.Name(), fmt.Sprintf("clCreateBuffer: %d", errCode))
	}
	defer api.ReleaseMemObject(outBuf)

	iters := int32(openCLFP32Iters)
	if rc := api.SetKernelArg(kernel, 0, unsafe.Sizeof(outBuf), uintptr(unsafe.Pointer(&outBuf))); rc != 0 {
		return failf(b.Name(), fmt.Sprintf("clSetKernelArg 0: %d", rc))
	}
	if rc := api.SetKernelArg(kernel, 1, unsafe.Sizeof(iters), uintptr(unsafe.Pointer(&iters))); rc != 0 {
		return failf(b.Name(), fmt.Sprintf("clSetKernelArg 1: %d", rc))
	}

	globalSize := uintptr(openCLFP32WorkItems)
	launch := func(event uintptr) int32 {
		return api.EnqueueNDRangeKernel(queue, kernel, 1, nil, &globalSize, nil, 0, 0, event)
	}

	for i := 0; i < computeWarmupLaunches; i++ {
		if rc := launch(0); rc != 0 {
			return failf(b.Name(), fmt.Sprintf("warmup launch: %d", rc))
		}
	}
	api.Finish(queue)

	var totalNanos uint64
	for i := 0; i < computeTimedLaunches; i++ {
		var event uintptr
		if rc := launch(eventPtr(&event)); rc != 0 {
			return failf(b.Name(), fmt.Sprintf("timed launch: %d", rc))
		}
		api.WaitForEvents(1, eventPtr(&event))

		var start, end uint64
		var sizeRet uintptr
		api.GetEventProfilingInfo(event, opencl.ProfilingCommandStart, unsafe.Sizeof(start), uintptr(unsafe.Pointer(&start)), &sizeRet)
		api.GetEventProfilingInfo(event, opencl.ProfilingCommandEnd, unsafe.Sizeof(end), uintptr(unsafe.Pointer(&end)), &sizeRet)
		api.ReleaseEvent(event)
		if end > start {
			totalNanos += end - start
		}
	}
	if totalNanos == 0 {
		return failf(b.Name(), "invalid elapsed time")
	}

	seconds := float64(totalNanos) / 1e9
	totalOps := float64(openCLFP32WorkItems) * float64(openCLFP32Iters) * 2 * computeTimedLaunches
	gflops := totalOps / seconds / 1e9
	return ok(fmt.Sprintf("%.2f GFLOPS", gflops))
}

// buildOpenCLKernel compiles source into a single named kernel, surfacing
// the build log in the returned error when compilation fails.
func buildOpenCLKernel(api *opencl.Api, ctx, device uintptr, source, kernelName, options string) (program uintptr, kernel uintptr, cleanup func(), err error) {
	src := append([]byte(source), 0)
	strPtr := &src[0]
	length := uintptr(len(src) - 1)

	var errCode int32
	program = api.CreateProgramWithSource(ctx, 1, &strPtr, &length, &errCode)
	if errCode != 0 || program == 0 {
		return 0, 0, nil, fmt.Errorf("clCreateProgramWithSource: %d", errCode)
	}

	optBytes := append([]byte(options), 0)
	if rc := api.BuildProgram(program, 1, &device, &optBytes[0], 0, 0); rc != 0 {
		logBuf := make([]byte, 8192)
		var logLen uintptr
		api.GetProgramBuildInfo(program, device, opencl.ProgramBuildLog, uintptr(len(logBuf)), uintptr(unsafe.Pointer(&logBuf[0])), &logLen)
		api.ReleaseProgram(program)
		return 0, 0, nil, fmt.Errorf("clBuildProgram failed (%d): %s", rc, string(logBuf[:logLen]))
	}

	nameBytes := append([]byte(kernelName), 0)
	kernel = api.CreateKernel(program, &nameBytes[0], &errCode)
	if errCode != 0 || kernel == 0 {
		api.ReleaseProgram(program)
		return 0, 0, nil, fmt.Errorf("clCreateKernel: %d", errCode)
	}

	return program, kernel, func() {
		api.ReleaseKernel(kernel)
		api.ReleaseProgram(program)
	}, nil
}
