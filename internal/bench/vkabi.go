package bench

import "unsafe"

// Vulkan structure-type tags this package needs, taken from vulkan_core.h.
// Only the subset the compute/PCIe benchmarks touch is declared.
const (
	vkStructApplicationInfo             uint32 = 0
	vkStructInstanceCreateInfo          uint32 = 1
	vkStructDeviceQueueCreateInfo       uint32 = 2
	vkStructDeviceCreateInfo            uint32 = 3
	vkStructSubmitInfo                  uint32 = 4
	vkStructMemoryAllocateInfo          uint32 = 5
	vkStructFenceCreateInfo             uint32 = 8
	vkStructBufferCreateInfo            uint32 = 12
	vkStructCommandPoolCreateInfo       uint32 = 39
	vkStructCommandBufferAllocateInfo   uint32 = 40
	vkStructCommandBufferBeginInfo      uint32 = 42
	vkStructShaderModuleCreateInfo      uint32 = 16
	vkStructPipelineShaderStageInfo     uint32 = 18
	vkStructComputePipelineCreateInfo   uint32 = 29
	vkStructPipelineLayoutCreateInfo    uint32 = 30
	vkStructDescriptorPoolCreateInfo    uint32 = 33
	vkStructDescriptorSetAllocateInfo   uint32 = 34
	vkStructDescriptorSetLayoutInfo     uint32 = 32
	vkStructWriteDescriptorSet          uint32 = 35
	vkStructQueryPoolCreateInfo         uint32 = 11
)

const (
	vkQueueComputeBit         uint32 = 0x2
	vkBufferUsageTransferSrc  uint32 = 0x1
	vkBufferUsageTransferDst  uint32 = 0x2
	vkBufferUsageStorage      uint32 = 0x20
	vkSharingModeExclusive    uint32 = 0
	vkMemHostVisible          uint32 = 0x2
	vkMemHostCoherent         uint32 = 0x4
	vkMemDeviceLocal          uint32 = 0x1
	vkCmdPoolTransient        uint32 = 0x1
	vkCmdPoolResetCmdBuffer   uint32 = 0x2
	vkCmdBufferLevelPrimary   uint32 = 0
	vkCmdBufferOneTimeSubmit  uint32 = 0x1
	vkPipelineBindPointCompute uint32 = 1
	vkShaderStageCompute      uint32 = 0x20
	vkDescriptorTypeStorage   uint32 = 7
	vkQueryTypeTimestamp      uint32 = 2
	vkPipelineStageTopOfPipe  uint32 = 0x1
	vkPipelineStageBottomOfPipe uint32 = 0x2000
)

// vkBufferCreateInfo mirrors VkBufferCreateInfo's field order (sType, pNext, flags,
// size, usage, sharingMode, queueFamilyIndexCount, pQueueFamilyIndices).
type vkBufferCreateInfo struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	_pad2                 uint32
	size                  uint64
	usage                 uint32
	sharingMode           uint32
	queueFamilyIndexCount uint32
	_pad3                 uint32
	pQueueFamilyIndices   uintptr
}

func newBufferCreateInfo(size uint64, usage uint32) *vkBufferCreateInfo {
	return &vkBufferCreateInfo{
		sType:       vkStructBufferCreateInfo,
		size:        size,
		usage:       usage,
		sharingMode: vkSharingModeExclusive,
	}
}

// vkMemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type vkMemoryAllocateInfo struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	allocationSize  uint64
	memoryTypeIndex uint32
	_pad2           uint32
}

// vkMemoryRequirements mirrors VkMemoryRequirements (read-only, filled in
// by vkGetBufferMemoryRequirements).
type vkMemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
	_pad           uint32
}

// vkPhysicalDeviceMemoryProperties mirrors the fixed-size arrays Vulkan
// returns for memory type/heap enumeration (32 types max, 16 heaps max).
type vkMemoryType struct {
	PropertyFlags uint32
	HeapIndex     uint32
}

type vkPhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]vkMemoryType
	MemoryHeapCount uint32
	_pad            uint32
	MemoryHeaps     [16]struct {
		Size  uint64
		Flags uint32
		_pad  uint32
	}
}

// findMemoryType mirrors the standard Vulkan helper: the first memory
// type whose bit is set in typeBits and whose property flags are a
// superset of want.
func findMemoryType(props *vkPhysicalDeviceMemoryProperties, typeBits uint32, want uint32) (uint32, bool) {
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if props.MemoryTypes[i].PropertyFlags&want == want {
			return i, true
		}
	}
	return 0, false
}

// vkDeviceQueueCreateInfo mirrors VkDeviceQueueCreateInfo.
type vkDeviceQueueCreateInfo struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	flags            uint32
	queueFamilyIndex uint32
	queueCount       uint32
	_pad2            uint32
	pQueuePriorities uintptr
}

// vkDeviceCreateInfo mirrors VkDeviceCreateInfo (the subset ai-z needs:
// no layers/extensions, no enabled features).
type vkDeviceCreateInfo struct {
	sType                   uint32
	_pad                    uint32
	pNext                   uintptr
	flags                   uint32
	queueCreateInfoCount    uint32
	pQueueCreateInfos       uintptr
	enabledLayerCount       uint32
	_pad2                   uint32
	ppEnabledLayerNames     uintptr
	enabledExtensionCount   uint32
	_pad3                   uint32
	ppEnabledExtensionNames uintptr
	pEnabledFeatures        uintptr
}

// vkCommandPoolCreateInfo mirrors VkCommandPoolCreateInfo.
type vkCommandPoolCreateInfo struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	flags            uint32
	queueFamilyIndex uint32
}

// vkCommandBufferAllocateInfo mirrors VkCommandBufferAllocateInfo.
type vkCommandBufferAllocateInfo struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	commandPool        uintptr
	level              uint32
	commandBufferCount uint32
}

// vkCommandBufferBeginInfo mirrors VkCommandBufferBeginInfo.
type vkCommandBufferBeginInfo struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	flags            uint32
	_pad2            uint32
	pInheritanceInfo uintptr
}

// vkSubmitInfo mirrors VkSubmitInfo.
type vkSubmitInfo struct {
	sType                uint32
	_pad                 uint32
	pNext                uintptr
	waitSemaphoreCount   uint32
	_pad2                uint32
	pWaitSemaphores      uintptr
	pWaitDstStageMask    uintptr
	commandBufferCount   uint32
	_pad3                uint32
	pCommandBuffers      uintptr
	signalSemaphoreCount uint32
	_pad4                uint32
	pSignalSemaphores    uintptr
}

// vkFenceCreateInfo mirrors VkFenceCreateInfo.
type vkFenceCreateInfo struct {
	sType uint32
	_pad  uint32
	pNext uintptr
	flags uint32
	_pad2 uint32
}

// vkShaderModuleCreateInfo mirrors VkShaderModuleCreateInfo.
type vkShaderModuleCreateInfo struct {
	sType    uint32
	_pad     uint32
	pNext    uintptr
	flags    uint32
	_pad2    uint32
	codeSize uintptr
	pCode    uintptr
}

// vkDescriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type vkDescriptorSetLayoutBinding struct {
	binding            uint32
	descriptorType     uint32
	descriptorCount    uint32
	stageFlags         uint32
	pImmutableSamplers uintptr
}

// vkDescriptorSetLayoutCreateInfo mirrors VkDescriptorSetLayoutCreateInfo.
type vkDescriptorSetLayoutCreateInfo struct {
	sType        uint32
	_pad         uint32
	pNext        uintptr
	flags        uint32
	bindingCount uint32
	pBindings    uintptr
}

// vkPushConstantRange mirrors VkPushConstantRange.
type vkPushConstantRange struct {
	stageFlags uint32
	offset     uint32
	size       uint32
	_pad       uint32
}

// vkPipelineLayoutCreateInfo mirrors VkPipelineLayoutCreateInfo.
type vkPipelineLayoutCreateInfo struct {
	sType                  uint32
	_pad                   uint32
	pNext                  uintptr
	flags                  uint32
	setLayoutCount         uint32
	pSetLayouts            uintptr
	pushConstantRangeCount uint32
	_pad2                  uint32
	pPushConstantRanges    uintptr
}

// vkPipelineShaderStageCreateInfo mirrors
// VkPipelineShaderStageCreateInfo.
type vkPipelineShaderStageCreateInfo struct {
	sType               uint32
	_pad                uint32
	pNext               uintptr
	flags               uint32
	stage               uint32
	module              uintptr
	pName               uintptr
	pSpecializationInfo uintptr
}

// vkComputePipelineCreateInfo mirrors VkComputePipelineCreateInfo.
type vkComputePipelineCreateInfo struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	flags              uint32
	_pad2              uint32
	stage              vkPipelineShaderStageCreateInfo
	layout             uintptr
	basePipelineHandle uintptr
	basePipelineIndex  int32
	_pad3              uint32
}

// vkDescriptorPoolSize mirrors VkDescriptorPoolSize.
type vkDescriptorPoolSize struct {
	descriptorType  uint32
	descriptorCount uint32
}

// vkDescriptorPoolCreateInfo mirrors VkDescriptorPoolCreateInfo.
type vkDescriptorPoolCreateInfo struct {
	sType      uint32
	_pad       uint32
	pNext      uintptr
	flags      uint32
	maxSets    uint32
	poolSizeCount uint32
	_pad2      uint32
	pPoolSizes uintptr
}

// vkDescriptorSetAllocateInfo mirrors VkDescriptorSetAllocateInfo.
type vkDescriptorSetAllocateInfo struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	descriptorPool     uintptr
	descriptorSetCount uint32
	_pad2              uint32
	pSetLayouts        uintptr
}

// vkDescriptorBufferInfo mirrors VkDescriptorBufferInfo.
type vkDescriptorBufferInfo struct {
	buffer uintptr
	offset uint64
	rnge   uint64
}

// vkWriteDescriptorSet mirrors VkWriteDescriptorSet (the fields ai-z
// uses: one storage-buffer binding).
type vkWriteDescriptorSet struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	dstSet           uintptr
	dstBinding       uint32
	dstArrayElement  uint32
	descriptorCount  uint32
	descriptorType   uint32
	pImageInfo       uintptr
	pBufferInfo      uintptr
	pTexelBufferView uintptr
}

// vkQueryPoolCreateInfo mirrors VkQueryPoolCreateInfo.
type vkQueryPoolCreateInfo struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	flags              uint32
	queryType          uint32
	queryCount         uint32
	pipelineStatistics uint32
}

// vkBufferCopy mirrors VkBufferCopy.
type vkBufferCopy struct {
	srcOffset uint64
	dstOffset uint64
	size      uint64
}

func ptrOf(v interface{}) uintptr {
	switch p := v.(type) {
	case *vkBufferCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkMemoryAllocateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkDeviceQueueCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkDeviceCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkCommandPoolCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkCommandBufferAllocateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkCommandBufferBeginInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkSubmitInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkFenceCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkShaderModuleCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorSetLayoutCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkPipelineLayoutCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkComputePipelineCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorPoolCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorSetAllocateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkWriteDescriptorSet:
		return uintptr(unsafe.Pointer(p))
	case *vkQueryPoolCreateInfo:
		return uintptr(unsafe.Pointer(p))
	case *vkBufferCopy:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorSetLayoutBinding:
		return uintptr(unsafe.Pointer(p))
	case *vkPushConstantRange:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorPoolSize:
		return uintptr(unsafe.Pointer(p))
	case *vkDescriptorBufferInfo:
		return uintptr(unsafe.Pointer(p))
	case *uintptr:
		return uintptr(unsafe.Pointer(p))
	case *float32:
		return uintptr(unsafe.Pointer(p))
	default:
		panic("bench: ptrOf: unsupported type")
	}
}
