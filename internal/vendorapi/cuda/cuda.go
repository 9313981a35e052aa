// Package cuda resolves the CUDA driver library for the PTX-based GPU
// compute benchmarks in internal/bench, per spec.md section 4.1/4.9.
package cuda

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "cuda"

var candidates = []string{
	"libcuda.so.1",
	"libcuda.so",
	"nvcuda.dll",
}

// Api holds the driver-API entry points needed to load a PTX module,
// allocate device/pinned-host memory, launch a kernel, time it with
// events, and measure H<->D PCIe bandwidth with async copies on a
// profiled stream, per spec.md section 4.9.
type Api struct {
	Init              func(flags uint32) int32
	DeviceGet         func(device *int32, ordinal int32) int32
	DeviceGetCount    func(count *int32) int32
	CtxCreate         func(ctx *uintptr, flags uint32, device int32) int32
	CtxDestroy        func(ctx uintptr) int32
	ModuleLoadData    func(module *uintptr, image uintptr) int32
	ModuleUnload      func(module uintptr) int32
	ModuleGetFunction func(fn *uintptr, module uintptr, name string) int32
	MemAlloc          func(ptr *uintptr, bytesize uintptr) int32
	MemFree            func(ptr uintptr) int32
	MemAllocHost      func(ptr *uintptr, bytesize uintptr) int32
	MemFreeHost       func(ptr uintptr) int32
	MemcpyHtoD        func(dst uintptr, src uintptr, bytesize uintptr) int32
	MemcpyDtoH        func(dst uintptr, src uintptr, bytesize uintptr) int32
	MemcpyHtoDAsync   func(dst uintptr, src uintptr, bytesize uintptr, stream uintptr) int32
	MemcpyDtoHAsync   func(dst uintptr, src uintptr, bytesize uintptr, stream uintptr) int32
	LaunchKernel      func(fn uintptr, gx, gy, gz, bx, by, bz uint32, sharedMem uint32, stream uintptr, params uintptr, extra uintptr) int32
	StreamCreate      func(stream *uintptr, flags uint32) int32
	StreamDestroy     func(stream uintptr) int32
	StreamSynchronize func(stream uintptr) int32
	EventCreate       func(event *uintptr, flags uint32) int32
	EventDestroy      func(event uintptr) int32
	EventRecord       func(event uintptr, stream uintptr) int32
	EventSynchronize  func(event uintptr) int32
	EventElapsedTime  func(ms *float32, start uintptr, end uintptr) int32
	CtxSynchronize    func() int32
	GetErrorString    func(code int32, str **byte) int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves the CUDA driver library.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("cuda: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("cuda: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.Init, "cuInit"},
		{&api.DeviceGet, "cuDeviceGet"},
		{&api.DeviceGetCount, "cuDeviceGetCount"},
		{&api.CtxCreate, "cuCtxCreate_v2"},
		{&api.CtxDestroy, "cuCtxDestroy_v2"},
		{&api.ModuleLoadData, "cuModuleLoadData"},
		{&api.ModuleUnload, "cuModuleUnload"},
		{&api.ModuleGetFunction, "cuModuleGetFunction"},
		{&api.MemAlloc, "cuMemAlloc_v2"},
		{&api.MemFree, "cuMemFree_v2"},
		{&api.MemAllocHost, "cuMemAllocHost_v2"},
		{&api.MemFreeHost, "cuMemFreeHost"},
		{&api.MemcpyHtoD, "cuMemcpyHtoD_v2"},
		{&api.MemcpyDtoH, "cuMemcpyDtoH_v2"},
		{&api.MemcpyHtoDAsync, "cuMemcpyHtoDAsync_v2"},
		{&api.MemcpyDtoHAsync, "cuMemcpyDtoHAsync_v2"},
		{&api.LaunchKernel, "cuLaunchKernel"},
		{&api.StreamCreate, "cuStreamCreate"},
		{&api.StreamDestroy, "cuStreamDestroy_v2"},
		{&api.StreamSynchronize, "cuStreamSynchronize"},
		{&api.EventCreate, "cuEventCreate"},
		{&api.EventDestroy, "cuEventDestroy_v2"},
		{&api.EventRecord, "cuEventRecord"},
		{&api.EventSynchronize, "cuEventSynchronize"},
		{&api.EventElapsedTime, "cuEventElapsedTime"},
		{&api.CtxSynchronize, "cuCtxSynchronize"},
		{&api.GetErrorString, "cuGetErrorString"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	if rc := api.Init(0); rc != 0 {
		return nil, fmt.Errorf("cuda: cuInit returned %d", rc)
	}
	return api, nil
}

// ErrString converts a CUDA driver result code to its driver-provided
// error string, falling back to the bare numeric code when the SDK call
// itself fails, per spec.md section 4.1's "err_to_string(code)" contract.
func (a *Api) ErrString(code int32) string {
	if a.GetErrorString == nil {
		return fmt.Sprintf("cuda error %d", code)
	}
	var ptr *byte
	if rc := a.GetErrorString(code, &ptr); rc != 0 || ptr == nil {
		return fmt.Sprintf("cuda error %d", code)
	}
	return cStr(ptr)
}

// cStr reads a NUL-terminated C string starting at ptr.
func cStr(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var b []byte
	base := uintptr(unsafe.Pointer(ptr))
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(base + i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}
