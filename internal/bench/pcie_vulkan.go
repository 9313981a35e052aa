package bench

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/aiz-project/ai-z/internal/vendorapi/vulkan"
)

// vulkanPcieBench measures host<->device-local buffer copy throughput
// through vkCmdCopyBuffer, per spec.md section 4.9.
type vulkanPcieBench struct {
	deviceIdx int
}

// NewVulkanPcieBandwidth builds the Vulkan PCIe bandwidth row for a
// device index.
func NewVulkanPcieBandwidth(deviceIdx int) Benchmark {
	return &vulkanPcieBench{deviceIdx: deviceIdx}
}

func (b *vulkanPcieBench) Name() string { return "Vulkan PCIe bandwidth" }

func (b *vulkanPcieBench) IsAvailable() bool {
	api, _ := vulkan.Get()
	return api != nil
}

func (b *vulkanPcieBench) Run() Result {
	api, errMsg := vulkan.Get()
	if api == nil {
		return notAvailable("Vulkan (" + errMsg + ")")
	}

	ctx, err := openVulkanDevice(api, b.deviceIdx)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer ctx.Close()

	hostBuf, hostMem, err := ctx.allocateBuffer(pcieBytes, vkBufferUsageTransferSrc|vkBufferUsageTransferDst, vkMemHostVisible|vkMemHostCoherent)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer api.FreeMemory(ctx.device, hostMem, 0)
	defer api.DestroyBuffer(ctx.device, hostBuf, 0)

	devBuf, devMem, err := ctx.allocateBuffer(pcieBytes, vkBufferUsageTransferSrc|vkBufferUsageTransferDst, vkMemDeviceLocal)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer api.FreeMemory(ctx.device, devMem, 0)
	defer api.DestroyBuffer(ctx.device, devBuf, 0)

	var hostPtr uintptr
	if rc := api.MapMemory(ctx.device, hostMem, 0, pcieBytes, 0, &hostPtr); rc != 0 {
		return failf(b.Name(), fmt.Sprintf("vkMapMemory: %d", rc))
	}
	clearBuffer(hostPtr, pcieBytes)
	api.UnmapMemory(ctx.device, hostMem)

	rx, okRx := timedVulkanCopy(ctx, hostBuf, devBuf)
	tx, okTx := timedVulkanCopy(ctx, devBuf, hostBuf)
	if !okRx && !okTx {
		return failf(b.Name(), "all copies failed")
	}
	return ok(fmt.Sprintf("RX: %.2f GB/s, TX: %.2f GB/s", rx, tx))
}

// clearBuffer zero-fills a mapped host-visible buffer, avoiding a
// dependency on a populated source for the copy to be meaningful.
func clearBuffer(ptr uintptr, size uint64) {
	base := (*[1 << 30]byte)(unsafe.Pointer(ptr))[:size:size]
	for i := range base {
		base[i] = 0
	}
}

// timedVulkanCopy runs the shared warmup+timed-copy recipe with CPU
// wall-clock timing around a submit+fence-wait. ai-z measures Vulkan
// copies this way rather than with GPU timestamp queries; see
// DESIGN.md's note on VkPhysicalDeviceLimits.timestampPeriod for why.
func timedVulkanCopy(ctx *vkContext, src, dst uintptr) (float64, bool) {
	runCopies := func(n int) error {
		cmd, err := ctx.oneShotCommandBuffer()
		if err != nil {
			return err
		}
		region := vkBufferCopy{size: pcieBytes}
		for i := 0; i < n; i++ {
			ctx.api.CmdCopyBuffer(cmd, src, dst, 1, ptrOf(&region))
		}
		return ctx.submitAndWait(cmd, 60*uint64(time.Second))
	}

	if err := runCopies(pcieWarmupCopies); err != nil {
		return 0, false
	}

	start := time.Now()
	if err := runCopies(pcieTimedCopies); err != nil {
		return 0, false
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return 0, false
	}

	gbps := float64(pcieBytes) * pcieTimedCopies / elapsed.Seconds() / 1e9
	return gbps, true
}
