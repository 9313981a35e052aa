package bench

import (
	"fmt"
	"unsafe"

	"github.com/aiz-project/ai-z/internal/vendorapi/opencl"
)

// openclPcieBench measures H<->D throughput through a profiled OpenCL
// command queue, per spec.md section 4.9.
type openclPcieBench struct{}

// NewOpenCLPcieBandwidth builds the OpenCL PCIe bandwidth row. OpenCL
// exposes a single device-wide queue rather than a per-GPU handle chosen
// ahead of time, so ai-z always benchmarks the first GPU device OpenCL
// reports, matching the fallback role spec.md section 4.1 assigns this
// backend.
func NewOpenCLPcieBandwidth() Benchmark {
	return &openclPcieBench{}
}

func (b *openclPcieBench) Name() string { return "OpenCL PCIe bandwidth" }

func (b *openclPcieBench) IsAvailable() bool {
	api, _ := opencl.Get()
	return api != nil
}

func (b *openclPcieBench) Run() Result {
	api, errMsg := opencl.Get()
	if api == nil {
		return notAvailable("OpenCL (" + errMsg + ")")
	}

	ctx, queue, device, cleanup, err := openCLContext(api)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanup()
	_ = device

	hostBuf := make([]byte, pcieBytes)
	var errCode int32
	devBuf := api.CreateBuffer(ctx, 1<<0 /*CL_MEM_READ_WRITE*/, pcieBytes, 0, &errCode)
	if errCode != 0 || devBuf == 0 {
		return failf(b.Name(), fmt.Sprintf("clCreateBuffer: %d", errCode))
	}
	defer api.ReleaseMemObject(devBuf)

	hostPtr := uintptr(unsafe.Pointer(&hostBuf[0]))

	copyToDevice := func(event uintptr) int32 {
		return api.EnqueueWriteBuffer(queue, devBuf, 1, 0, pcieBytes, hostPtr, 0, 0, event)
	}
	copyFromDevice := func(event uintptr) int32 {
		return api.EnqueueReadBuffer(queue, devBuf, 1, 0, pcieBytes, hostPtr, 0, 0, event)
	}

	for i := 0; i < pcieWarmupCopies; i++ {
		if rc := copyToDevice(0); rc != 0 {
			return failf(b.Name(), fmt.Sprintf("warmup write: %d", rc))
		}
	}
	api.Finish(queue)

	rx, okRx := timedOpenCLCopy(api, queue, copyToDevice)
	tx, okTx := timedOpenCLCopy(api, queue, copyFromDevice)
	if !okRx && !okTx {
		return failf(b.Name(), "all copies failed")
	}
	return ok(fmt.Sprintf("RX: %.2f GB/s, TX: %.2f GB/s", rx, tx))
}

// timedOpenCLCopy issues pcieTimedCopies blocking copies and times them
// with clGetEventProfilingInfo, per spec.md section 4.9. A blocking
// enqueue is used for simplicity; ai-z relies on the queue's profiling
// flag (not async ordering) for accurate timing.
func timedOpenCLCopy(api *opencl.Api, queue uintptr, enqueue func(event uintptr) int32) (float64, bool) {
	var totalNanos uint64
	for i := 0; i < pcieTimedCopies; i++ {
		var event uintptr
		if rc := enqueue(eventPtr(&event)); rc != 0 {
			return 0, false
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
		return 0, false
	}
	seconds := float64(totalNanos) / 1e9
	gbps := float64(pcieBytes) * pcieTimedCopies / seconds / 1e9
	return gbps, true
}

func eventPtr(event *uintptr) uintptr {
	return uintptr(unsafe.Pointer(event))
}

// openCLContext resolves the first GPU platform/device and builds a
// profiling-enabled context + command queue, per spec.md section 4.9.
// The returned cleanup releases the queue and context (not the
// platform/device handles, which OpenCL does not own per-call).
func openCLContext(api *opencl.Api) (ctx uintptr, queue uintptr, device uintptr, cleanup func(), err error) {
	var platform uintptr
	var numPlatforms uint32
	if rc := api.GetPlatformIDs(1, &platform, &numPlatforms); rc != 0 || numPlatforms == 0 {
		return 0, 0, 0, nil, fmt.Errorf("no OpenCL platform")
	}

	var numDevices uint32
	if rc := api.GetDeviceIDs(platform, opencl.DeviceTypeGPU, 1, &device, &numDevices); rc != 0 || numDevices == 0 {
		return 0, 0, 0, nil, fmt.Errorf("no OpenCL GPU device")
	}

	var errCode int32
	ctx = api.CreateContext(0, 1, &device, 0, 0, &errCode)
	if errCode != 0 || ctx == 0 {
		return 0, 0, 0, nil, fmt.Errorf("clCreateContext: %d", errCode)
	}

	queue = api.CreateCommandQueue(ctx, device, opencl.QueueProfilingEnable, &errCode)
	if errCode != 0 || queue == 0 {
		api.ReleaseContext(ctx)
		return 0, 0, 0, nil, fmt.Errorf("clCreateCommandQueue: %d", errCode)
	}

	return ctx, queue, device, func() {
		api.ReleaseCommandQueue(queue)
		api.ReleaseContext(ctx)
	}, nil
}
