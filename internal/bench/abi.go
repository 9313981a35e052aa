package bench

import "unsafe"

// ptxPtr returns a pointer to a NUL-terminated copy of a PTX source
// string, suitable for cuModuleLoadData's `image` argument. The CUDA
// driver copies the image during JIT compilation, so the underlying byte
// slice only needs to stay alive for the duration of the call.
func ptxPtr(ptx string) uintptr {
	b := append([]byte(ptx), 0)
	return uintptr(unsafe.Pointer(&b[0]))
}

// uintptrOf returns the address of a Go value as a uintptr, used to build
// the per-parameter pointer array cuLaunchKernel expects in its `params`
// argument (an array of pointers to each kernel argument, not the
// arguments themselves).
func uintptrOf(v interface{}) uintptr {
	switch p := v.(type) {
	case *uintptr:
		return uintptr(unsafe.Pointer(p))
	case *int32:
		return uintptr(unsafe.Pointer(p))
	case *uint32:
		return uintptr(unsafe.Pointer(p))
	case *float32:
		return uintptr(unsafe.Pointer(p))
	case *float64:
		return uintptr(unsafe.Pointer(p))
	default:
		panic("bench: uintptrOf: unsupported type")
	}
}

// sliceToPtr returns a pointer to the first element of a uintptr slice,
// used wherever a purego-bound C function expects a `void**` style
// argument array.
func sliceToPtr(s []uintptr) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&s[0]))
}
