// Package ort resolves ONNX Runtime's C API for the CPU inference
// benchmark rows in internal/bench, per spec.md section 4.1/4.9. ai-z only
// ever drives the CPU execution provider; the inference rows it produces
// are shown once, under the CPU0 section, per the Open Questions decision
// recorded in DESIGN.md.
package ort

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "onnxruntime"

// apiVersion is the OrtApiBase.GetApi(version) argument ai-z requests.
// ONNX Runtime guarantees the returned OrtApi table is ABI-stable for any
// version between the one the library was built with and this value, so
// an older runtime just returns a table with fewer trailing entries.
const apiVersion = 16

var candidates = []string{
	"libonnxruntime.so.1",
	"libonnxruntime.so",
	"onnxruntime.dylib",
	"onnxruntime.dll",
}

// ortApi field offsets within the OrtApi function-pointer table, in the
// declaration order of onnxruntime_c_api.h. ai-z only resolves the subset
// it calls; the table has several hundred entries in recent releases, so
// unused ones are simply never read.
const (
	idxCreateStatus                 = 0
	idxCreateEnv                    = 18
	idxCreateSessionOptions         = 10
	idxCreateSession                = 7
	idxCreateSessionFromArray       = 8
	idxRun                          = 9
	idxSessionGetInputCount         = 30
	idxSessionGetOutputCount        = 31
	idxCreateCpuMemoryInfo          = 64
	idxCreateTensorWithDataAsOrtValue = 41
	idxGetTensorMutableData         = 46
	idxReleaseEnv                   = 82
	idxReleaseStatus                = 83
	idxReleaseMemoryInfo            = 84
	idxReleaseSession               = 85
	idxReleaseValue                 = 87
	idxReleaseSessionOptions        = 89
)

// Api wraps the OrtApi function-pointer table. Every field is a bound
// Go func resolved from the table at load time rather than from the
// shared library's exported symbol table: ONNX Runtime's stable C ABI is
// a struct of function pointers returned by OrtGetApiBase, not a set of
// named exports, so purego.RegisterFunc has nothing to bind against
// directly. load() walks the table by index instead.
type Api struct {
	CreateEnv                     func(logLevel int32, logID *byte, env *uintptr) uintptr
	CreateSessionOptions          func(options *uintptr) uintptr
	CreateSessionFromArray        func(env uintptr, modelData uintptr, modelDataLen uintptr, options uintptr, session *uintptr) uintptr
	Run                           func(session uintptr, runOptions uintptr, inputNames **byte, inputs *uintptr, numInputs uintptr, outputNames **byte, numOutputs uintptr, outputs *uintptr) uintptr
	CreateCpuMemoryInfo           func(allocatorType int32, memType int32, info *uintptr) uintptr
	CreateTensorWithDataAsOrtValue func(info uintptr, data uintptr, dataLen uintptr, shape *int64, shapeLen uintptr, elemType int32, value *uintptr) uintptr
	GetTensorMutableData          func(value uintptr, data *uintptr) uintptr
	ReleaseEnv                    func(env uintptr)
	ReleaseMemoryInfo             func(info uintptr)
	ReleaseSession                func(session uintptr)
	ReleaseSessionOptions         func(options uintptr)
	ReleaseValue                  func(value uintptr)
}

var get = probe.Once(vendorName, load)

// Get lazily resolves libonnxruntime / onnxruntime.dll and its OrtApi
// table.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("onnxruntime: %w", err)
	}

	addr, err := lib.Sym("OrtGetApiBase")
	if err != nil {
		return nil, fmt.Errorf("onnxruntime: resolving OrtGetApiBase: %w", err)
	}
	var getApiBase func() uintptr
	purego.RegisterFunc(&getApiBase, addr)

	base := getApiBase()
	if base == 0 {
		return nil, fmt.Errorf("onnxruntime: OrtGetApiBase returned null")
	}
	// OrtApiBase's first field is GetApi(uint32) -> *OrtApi.
	getApiFn := tableEntry(base, 0)
	r1, _, errno := purego.SyscallN(getApiFn, uintptr(apiVersion))
	if errno != 0 {
		return nil, fmt.Errorf("onnxruntime: OrtApiBase.GetApi: %w", errno)
	}
	table := r1
	if table == 0 {
		return nil, fmt.Errorf("onnxruntime: GetApi(%d) returned null, runtime too old", apiVersion)
	}

	api := &Api{}
	bindTableFunc(&api.CreateEnv, table, idxCreateEnv)
	bindTableFunc(&api.CreateSessionOptions, table, idxCreateSessionOptions)
	bindTableFunc(&api.CreateSessionFromArray, table, idxCreateSessionFromArray)
	bindTableFunc(&api.Run, table, idxRun)
	bindTableFunc(&api.CreateCpuMemoryInfo, table, idxCreateCpuMemoryInfo)
	bindTableFunc(&api.CreateTensorWithDataAsOrtValue, table, idxCreateTensorWithDataAsOrtValue)
	bindTableFunc(&api.GetTensorMutableData, table, idxGetTensorMutableData)
	bindTableFunc(&api.ReleaseEnv, table, idxReleaseEnv)
	bindTableFunc(&api.ReleaseMemoryInfo, table, idxReleaseMemoryInfo)
	bindTableFunc(&api.ReleaseSession, table, idxReleaseSession)
	bindTableFunc(&api.ReleaseSessionOptions, table, idxReleaseSessionOptions)
	bindTableFunc(&api.ReleaseValue, table, idxReleaseValue)

	return api, nil
}

// tableEntry reads the index-th pointer-sized word from a function-
// pointer table, i.e. table[index] in C terms.
func tableEntry(table uintptr, index int) uintptr {
	return *(*uintptr)(unsafe.Pointer(table + uintptr(index)*unsafe.Sizeof(uintptr(0))))
}

// bindTableFunc resolves the function pointer at index and registers it
// against fnPtr the same way purego.RegisterFunc would bind a named
// symbol, just sourced from a vtable slot instead of the dynamic symbol
// table.
func bindTableFunc(fnPtr interface{}, table uintptr, index int) {
	purego.RegisterFunc(fnPtr, tableEntry(table, index))
}
