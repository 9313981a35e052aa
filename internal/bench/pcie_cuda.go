package bench

import (
	"fmt"

	"github.com/aiz-project/ai-z/internal/vendorapi/cuda"
)

// pcieBytes is the shared transfer size for every backend's PCIe
// bandwidth benchmark, per spec.md section 4.9: "Allocate bytes = 256
// MiB of pinned/host-visible memory and a device buffer of the same
// size."
const pcieBytes = 256 * 1024 * 1024

const (
	pcieWarmupCopies = 2
	pcieTimedCopies  = 10
)

// direction selects which half of an H<->D round trip a single-direction
// PCIe benchmark measures.
type direction int

const (
	dirHostToDevice direction = iota
	dirDeviceToHost
	dirBoth
)

// cudaPcieBench measures H->D / D->H throughput using cuEvent-timed
// async copies on a dedicated stream, per spec.md section 4.9.
type cudaPcieBench struct {
	deviceIdx int
	dir       direction
	title     string
}

// NewCUDAPcieBandwidth builds the combined Rx+Tx CUDA PCIe bandwidth row
// for a device index.
func NewCUDAPcieBandwidth(deviceIdx int) Benchmark {
	return &cudaPcieBench{deviceIdx: deviceIdx, dir: dirBoth, title: "CUDA PCIe bandwidth"}
}

func (b *cudaPcieBench) Name() string { return b.title }

func (b *cudaPcieBench) IsAvailable() bool {
	api, _ := cuda.Get()
	return api != nil
}

func (b *cudaPcieBench) Run() Result {
	api, errMsg := cuda.Get()
	if api == nil {
		return notAvailable("CUDA driver (" + errMsg + ")")
	}

	var device int32
	if rc := api.DeviceGet(&device, int32(b.deviceIdx)); rc != 0 {
		return failf(b.title, api.ErrString(rc))
	}
	var ctx uintptr
	if rc := api.CtxCreate(&ctx, 0, device); rc != 0 {
		return failf(b.title, api.ErrString(rc))
	}
	defer api.CtxDestroy(ctx)

	var hostBuf, devBuf uintptr
	if rc := api.MemAllocHost(&hostBuf, pcieBytes); rc != 0 {
		return failf(b.title, api.ErrString(rc))
	}
	defer api.MemFreeHost(hostBuf)
	if rc := api.MemAlloc(&devBuf, pcieBytes); rc != 0 {
		return failf(b.title, api.ErrString(rc))
	}
	defer api.MemFree(devBuf)

	var stream uintptr
	if rc := api.StreamCreate(&stream, 0); rc != 0 {
		return failf(b.title, api.ErrString(rc))
	}
	defer api.StreamDestroy(stream)

	rx, ok1 := timedCUDACopy(api, stream, devBuf, hostBuf, true)
	tx, ok2 := timedCUDACopy(api, stream, hostBuf, devBuf, false)
	if !ok1 && !ok2 {
		return failf(b.title, "all copies failed")
	}

	switch b.dir {
	case dirHostToDevice:
		return ok(fmt.Sprintf("%.2f GB/s", rx))
	case dirDeviceToHost:
		return ok(fmt.Sprintf("%.2f GB/s", tx))
	default:
		return ok(fmt.Sprintf("RX: %.2f GB/s, TX: %.2f GB/s", rx, tx))
	}
}

// timedCUDACopy runs the shared warmup+timed-copy recipe in spec.md
// section 4.9 for one direction and returns the measured GB/s.
// toDevice selects cuMemcpyHtoDAsync (true) vs cuMemcpyDtoHAsync (false).
func timedCUDACopy(api *cuda.Api, stream uintptr, dst, src uintptr, toDevice bool) (float64, bool) {
	copyOnce := func() int32 {
		if toDevice {
			return api.MemcpyHtoDAsync(dst, src, pcieBytes, stream)
		}
		return api.MemcpyDtoHAsync(dst, src, pcieBytes, stream)
	}

	for i := 0; i < pcieWarmupCopies; i++ {
		if rc := copyOnce(); rc != 0 {
			return 0, false
		}
	}
	if rc := api.StreamSynchronize(stream); rc != 0 {
		return 0, false
	}

	var start, stop uintptr
	if rc := api.EventCreate(&start, 0); rc != 0 {
		return 0, false
	}
	defer api.EventDestroy(start)
	if rc := api.EventCreate(&stop, 0); rc != 0 {
		return 0, false
	}
	defer api.EventDestroy(stop)

	if rc := api.EventRecord(start, stream); rc != 0 {
		return 0, false
	}
	for i := 0; i < pcieTimedCopies; i++ {
		if rc := copyOnce(); rc != 0 {
			return 0, false
		}
	}
	if rc := api.EventRecord(stop, stream); rc != 0 {
		return 0, false
	}
	if rc := api.EventSynchronize(stop); rc != 0 {
		return 0, false
	}

	var ms float32
	if rc := api.EventElapsedTime(&ms, start, stop); rc != 0 {
		return 0, false
	}
	if ms <= 0 {
		return 0, false
	}

	seconds := float64(ms) / 1000
	gbps := float64(pcieBytes) * pcieTimedCopies / seconds / 1e9
	return gbps, true
}
