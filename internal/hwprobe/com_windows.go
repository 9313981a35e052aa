//go:build windows

package hwprobe

import "golang.org/x/sys/windows"

var (
	ole32             = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeEx = ole32.NewProc("CoInitializeEx")
	procCoUninitialize = ole32.NewProc("CoUninitialize")
)

const coinitMultithreaded = 0x0

// withCOM wraps fn in CoInitializeEx(COINIT_MULTITHREADED)/CoUninitialize,
// per spec.md section 4.10, so the probe's collect step runs inside the
// apartment it establishes here.
func withCOM(fn func()) {
	procCoInitializeEx.Call(0, uintptr(coinitMultithreaded))
	defer procCoUninitialize.Call()
	fn()
}
