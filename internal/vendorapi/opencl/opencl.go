// Package opencl resolves the OpenCL ICD loader for the OpenCL benchmark
// rows, which are added for every GPU whether or not a CUDA driver is
// present, per spec.md section 4.1/4.9 (the n=1<<20 fma_fp32 kernel).
package opencl

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "opencl"

var candidates = []string{
	"libOpenCL.so.1",
	"libOpenCL.so",
	"OpenCL.dll",
}

// Api holds the OpenCL entry points needed to build and run a simple
// single-kernel program against the first available GPU device.
type Api struct {
	GetPlatformIDs    func(numEntries uint32, platforms *uintptr, numPlatforms *uint32) int32
	GetDeviceIDs      func(platform uintptr, deviceType uint64, numEntries uint32, devices *uintptr, numDevices *uint32) int32
	CreateContext     func(props uintptr, numDevices uint32, devices *uintptr, pfnNotify uintptr, userData uintptr, errcodeRet *int32) uintptr
	CreateCommandQueue func(ctx uintptr, device uintptr, props uint64, errcodeRet *int32) uintptr
	CreateProgramWithSource func(ctx uintptr, count uint32, strings **byte, lengths *uintptr, errcodeRet *int32) uintptr
	BuildProgram      func(program uintptr, numDevices uint32, devices *uintptr, options *byte, pfnNotify uintptr, userData uintptr) int32
	CreateKernel      func(program uintptr, name *byte, errcodeRet *int32) uintptr
	CreateBuffer      func(ctx uintptr, flags uint64, size uintptr, hostPtr uintptr, errcodeRet *int32) uintptr
	SetKernelArg      func(kernel uintptr, argIndex uint32, argSize uintptr, argValue uintptr) int32
	EnqueueNDRangeKernel func(queue uintptr, kernel uintptr, workDim uint32, globalOffset *uintptr, globalSize *uintptr, localSize *uintptr, numWait uint32, waitList uintptr, event uintptr) int32
	EnqueueReadBuffer func(queue uintptr, buf uintptr, blocking uint32, offset uintptr, size uintptr, ptr uintptr, numWait uint32, waitList uintptr, event uintptr) int32
	Finish            func(queue uintptr) int32
	ReleaseMemObject  func(mem uintptr) int32
	ReleaseKernel     func(kernel uintptr) int32
	ReleaseProgram    func(program uintptr) int32
	ReleaseCommandQueue func(queue uintptr) int32
	ReleaseContext    func(ctx uintptr) int32
	EnqueueWriteBuffer func(queue uintptr, buf uintptr, blocking uint32, offset uintptr, size uintptr, ptr uintptr, numWait uint32, waitList uintptr, event uintptr) int32
	WaitForEvents     func(numEvents uint32, eventList uintptr) int32
	GetEventProfilingInfo func(event uintptr, param uint32, size uintptr, value uintptr, sizeRet *uintptr) int32
	ReleaseEvent      func(event uintptr) int32
	GetProgramBuildInfo func(program uintptr, device uintptr, param uint32, size uintptr, value uintptr, sizeRet *uintptr) int32
}

// Profiling command-queue property and event profiling-info parameter
// constants used by the PCIe/compute benchmarks, mirroring the CL headers.
const (
	QueueProfilingEnable     uint64 = 1 << 1
	ProfilingCommandStart    uint32 = 0x1282
	ProfilingCommandEnd      uint32 = 0x1283
	ProgramBuildLog          uint32 = 0x1183
)

// DeviceTypeGPU mirrors CL_DEVICE_TYPE_GPU.
const DeviceTypeGPU uint64 = 1 << 2

var get = probe.Once(vendorName, load)

// Get lazily resolves the OpenCL ICD loader.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("opencl: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("opencl: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.GetPlatformIDs, "clGetPlatformIDs"},
		{&api.GetDeviceIDs, "clGetDeviceIDs"},
		{&api.CreateContext, "clCreateContext"},
		{&api.CreateCommandQueue, "clCreateCommandQueue"},
		{&api.CreateProgramWithSource, "clCreateProgramWithSource"},
		{&api.BuildProgram, "clBuildProgram"},
		{&api.CreateKernel, "clCreateKernel"},
		{&api.CreateBuffer, "clCreateBuffer"},
		{&api.SetKernelArg, "clSetKernelArg"},
		{&api.EnqueueNDRangeKernel, "clEnqueueNDRangeKernel"},
		{&api.EnqueueReadBuffer, "clEnqueueReadBuffer"},
		{&api.Finish, "clFinish"},
		{&api.ReleaseMemObject, "clReleaseMemObject"},
		{&api.ReleaseKernel, "clReleaseKernel"},
		{&api.ReleaseProgram, "clReleaseProgram"},
		{&api.ReleaseCommandQueue, "clReleaseCommandQueue"},
		{&api.ReleaseContext, "clReleaseContext"},
		{&api.EnqueueWriteBuffer, "clEnqueueWriteBuffer"},
		{&api.WaitForEvents, "clWaitForEvents"},
		{&api.GetEventProfilingInfo, "clGetEventProfilingInfo"},
		{&api.ReleaseEvent, "clReleaseEvent"},
		{&api.GetProgramBuildInfo, "clGetProgramBuildInfo"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	return api, nil
}
