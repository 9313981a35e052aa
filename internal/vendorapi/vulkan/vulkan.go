// Package vulkan resolves the Vulkan loader for the Vulkan benchmark rows
// (PCIe bandwidth and compute FLOPS), per spec.md section 4.1/4.9. No
// telemetry source or GPU-naming path uses it.
package vulkan

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "vulkan"

var candidates = []string{
	"libvulkan.so.1",
	"libvulkan.so",
	"vulkan-1.dll",
}

// Api holds the instance/device/pipeline entry points the Vulkan
// benchmarks need (section 4.9): one
// compute-capable, timestamp-supporting queue family, a single
// storage-buffer descriptor pipeline, and a query pool for GPU-side
// timing.
type Api struct {
	CreateInstance              func(createInfo uintptr, allocator uintptr, instance *uintptr) int32
	DestroyInstance             func(instance uintptr, allocator uintptr) uintptr
	EnumeratePhysicalDevices    func(instance uintptr, count *uint32, devices *uintptr) int32
	GetPhysicalDeviceProperties func(device uintptr, props uintptr) uintptr
	GetPhysicalDeviceQueueFamilyProperties func(device uintptr, count *uint32, props uintptr) uintptr
	GetPhysicalDeviceMemoryProperties      func(device uintptr, props uintptr) uintptr
	CreateDevice                func(physDevice uintptr, createInfo uintptr, allocator uintptr, device *uintptr) int32
	DestroyDevice               func(device uintptr, allocator uintptr) uintptr
	GetDeviceQueue               func(device uintptr, family uint32, index uint32, queue *uintptr) uintptr
	CreateBuffer                 func(device uintptr, createInfo uintptr, allocator uintptr, buf *uintptr) int32
	DestroyBuffer                func(device uintptr, buf uintptr, allocator uintptr) uintptr
	GetBufferMemoryRequirements  func(device uintptr, buf uintptr, reqs uintptr) uintptr
	AllocateMemory                func(device uintptr, allocInfo uintptr, allocator uintptr, mem *uintptr) int32
	FreeMemory                    func(device uintptr, mem uintptr, allocator uintptr) uintptr
	BindBufferMemory              func(device uintptr, buf uintptr, mem uintptr, offset uint64) int32
	MapMemory                     func(device uintptr, mem uintptr, offset uint64, size uint64, flags uint32, data *uintptr) int32
	UnmapMemory                   func(device uintptr, mem uintptr) uintptr
	CreateShaderModule            func(device uintptr, createInfo uintptr, allocator uintptr, module *uintptr) int32
	DestroyShaderModule           func(device uintptr, module uintptr, allocator uintptr) uintptr
	CreateDescriptorSetLayout     func(device uintptr, createInfo uintptr, allocator uintptr, layout *uintptr) int32
	DestroyDescriptorSetLayout    func(device uintptr, layout uintptr, allocator uintptr) uintptr
	CreatePipelineLayout          func(device uintptr, createInfo uintptr, allocator uintptr, layout *uintptr) int32
	DestroyPipelineLayout         func(device uintptr, layout uintptr, allocator uintptr) uintptr
	CreateComputePipelines        func(device uintptr, cache uintptr, count uint32, createInfos uintptr, allocator uintptr, pipelines *uintptr) int32
	DestroyPipeline               func(device uintptr, pipeline uintptr, allocator uintptr) uintptr
	CreateDescriptorPool          func(device uintptr, createInfo uintptr, allocator uintptr, pool *uintptr) int32
	DestroyDescriptorPool         func(device uintptr, pool uintptr, allocator uintptr) uintptr
	AllocateDescriptorSets        func(device uintptr, allocInfo uintptr, sets *uintptr) int32
	UpdateDescriptorSets          func(device uintptr, writeCount uint32, writes uintptr, copyCount uint32, copies uintptr) uintptr
	CreateCommandPool             func(device uintptr, createInfo uintptr, allocator uintptr, pool *uintptr) int32
	DestroyCommandPool            func(device uintptr, pool uintptr, allocator uintptr) uintptr
	AllocateCommandBuffers        func(device uintptr, allocInfo uintptr, buffers *uintptr) int32
	BeginCommandBuffer            func(cmd uintptr, beginInfo uintptr) int32
	EndCommandBuffer              func(cmd uintptr) int32
	CmdBindPipeline               func(cmd uintptr, bindPoint uint32, pipeline uintptr) uintptr
	CmdBindDescriptorSets         func(cmd uintptr, bindPoint uint32, layout uintptr, firstSet uint32, count uint32, sets uintptr, dynCount uint32, dynOffsets uintptr) uintptr
	CmdPushConstants              func(cmd uintptr, layout uintptr, stage uint32, offset uint32, size uint32, values uintptr) uintptr
	CmdDispatch                   func(cmd uintptr, x, y, z uint32) uintptr
	CmdCopyBuffer                 func(cmd uintptr, src uintptr, dst uintptr, regionCount uint32, regions uintptr) uintptr
	CreateQueryPool               func(device uintptr, createInfo uintptr, allocator uintptr, pool *uintptr) int32
	DestroyQueryPool              func(device uintptr, pool uintptr, allocator uintptr) uintptr
	CmdResetQueryPool             func(cmd uintptr, pool uintptr, first, count uint32) uintptr
	CmdWriteTimestamp             func(cmd uintptr, stage uint32, pool uintptr, query uint32) uintptr
	GetQueryPoolResults           func(device uintptr, pool uintptr, first, count uint32, dataSize uintptr, data uintptr, stride uint64, flags uint32) int32
	QueueSubmit                   func(queue uintptr, count uint32, submits uintptr, fence uintptr) int32
	QueueWaitIdle                 func(queue uintptr) int32
	CreateFence                   func(device uintptr, createInfo uintptr, allocator uintptr, fence *uintptr) int32
	DestroyFence                  func(device uintptr, fence uintptr, allocator uintptr) uintptr
	WaitForFences                 func(device uintptr, count uint32, fences uintptr, waitAll uint32, timeout uint64) int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves the Vulkan loader.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("vulkan: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("vulkan: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.CreateInstance, "vkCreateInstance"},
		{&api.DestroyInstance, "vkDestroyInstance"},
		{&api.EnumeratePhysicalDevices, "vkEnumeratePhysicalDevices"},
		{&api.GetPhysicalDeviceProperties, "vkGetPhysicalDeviceProperties"},
		{&api.GetPhysicalDeviceQueueFamilyProperties, "vkGetPhysicalDeviceQueueFamilyProperties"},
		{&api.GetPhysicalDeviceMemoryProperties, "vkGetPhysicalDeviceMemoryProperties"},
		{&api.CreateDevice, "vkCreateDevice"},
		{&api.DestroyDevice, "vkDestroyDevice"},
		{&api.GetDeviceQueue, "vkGetDeviceQueue"},
		{&api.CreateBuffer, "vkCreateBuffer"},
		{&api.DestroyBuffer, "vkDestroyBuffer"},
		{&api.GetBufferMemoryRequirements, "vkGetBufferMemoryRequirements"},
		{&api.AllocateMemory, "vkAllocateMemory"},
		{&api.FreeMemory, "vkFreeMemory"},
		{&api.BindBufferMemory, "vkBindBufferMemory"},
		{&api.MapMemory, "vkMapMemory"},
		{&api.UnmapMemory, "vkUnmapMemory"},
		{&api.CreateShaderModule, "vkCreateShaderModule"},
		{&api.DestroyShaderModule, "vkDestroyShaderModule"},
		{&api.CreateDescriptorSetLayout, "vkCreateDescriptorSetLayout"},
		{&api.DestroyDescriptorSetLayout, "vkDestroyDescriptorSetLayout"},
		{&api.CreatePipelineLayout, "vkCreatePipelineLayout"},
		{&api.DestroyPipelineLayout, "vkDestroyPipelineLayout"},
		{&api.CreateComputePipelines, "vkCreateComputePipelines"},
		{&api.DestroyPipeline, "vkDestroyPipeline"},
		{&api.CreateDescriptorPool, "vkCreateDescriptorPool"},
		{&api.DestroyDescriptorPool, "vkDestroyDescriptorPool"},
		{&api.AllocateDescriptorSets, "vkAllocateDescriptorSets"},
		{&api.UpdateDescriptorSets, "vkUpdateDescriptorSets"},
		{&api.CreateCommandPool, "vkCreateCommandPool"},
		{&api.DestroyCommandPool, "vkDestroyCommandPool"},
		{&api.AllocateCommandBuffers, "vkAllocateCommandBuffers"},
		{&api.BeginCommandBuffer, "vkBeginCommandBuffer"},
		{&api.EndCommandBuffer, "vkEndCommandBuffer"},
		{&api.CmdBindPipeline, "vkCmdBindPipeline"},
		{&api.CmdBindDescriptorSets, "vkCmdBindDescriptorSets"},
		{&api.CmdPushConstants, "vkCmdPushConstants"},
		{&api.CmdDispatch, "vkCmdDispatch"},
		{&api.CmdCopyBuffer, "vkCmdCopyBuffer"},
		{&api.CreateQueryPool, "vkCreateQueryPool"},
		{&api.DestroyQueryPool, "vkDestroyQueryPool"},
		{&api.CmdResetQueryPool, "vkCmdResetQueryPool"},
		{&api.CmdWriteTimestamp, "vkCmdWriteTimestamp"},
		{&api.GetQueryPoolResults, "vkGetQueryPoolResults"},
		{&api.QueueSubmit, "vkQueueSubmit"},
		{&api.QueueWaitIdle, "vkQueueWaitIdle"},
		{&api.CreateFence, "vkCreateFence"},
		{&api.DestroyFence, "vkDestroyFence"},
		{&api.WaitForFences, "vkWaitForFences"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	return api, nil
}
