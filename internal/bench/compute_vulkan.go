package bench

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/aiz-project/ai-z/internal/vendorapi/vulkan"
)

// vulkanComputeWorkItems matches spec.md section 4.9's "N = 1<<20" output
// buffer sizing for the Vulkan FP32 kernel.
const vulkanComputeWorkItems = 1 << 20

// vulkanComputeIters is the per-invocation FMA loop trip count, passed to
// the GLSL kernel through its push constant at each dispatch.
const vulkanComputeIters = 4096

// vulkanComputeBench loads the embedded SPIR-V FP32 kernel and measures
// its GFLOPS, per spec.md section 4.9.
type vulkanComputeBench struct {
	deviceIdx int
}

// NewVulkanCompute builds the "Vulkan FLOPS FP32" benchmark row for a
// device index.
func NewVulkanCompute(deviceIdx int) Benchmark {
	return &vulkanComputeBench{deviceIdx: deviceIdx}
}

func (b *vulkanComputeBench) Name() string { return "Vulkan FLOPS FP32" }

func (b *vulkanComputeBench) IsAvailable() bool {
	api, _ := vulkan.Get()
	return api != nil
}

func (b *vulkanComputeBench) Run() Result {
	api, errMsg := vulkan.Get()
	if api == nil {
		return notAvailable("Vulkan (" + errMsg + ")")
	}

	ctx, err := openVulkanDevice(api, b.deviceIdx)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer ctx.Close()

	outBuf, outMem, err := ctx.allocateBuffer(vulkanComputeWorkItems*4, vkBufferUsageStorage, vkMemDeviceLocal)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer api.FreeMemory(ctx.device, outMem, 0)
	defer api.DestroyBuffer(ctx.device, outBuf, 0)

	pipeline, cleanup, err := buildVulkanComputePipeline(ctx, outBuf)
	if err != nil {
		return failf(b.Name(), err.Error())
	}
	defer cleanup()

	iters := uint32(vulkanComputeIters)
	dispatch := func() error {
		cmd, err := ctx.oneShotCommandBuffer()
		if err != nil {
			return err
		}
		api.CmdBindPipeline(cmd, vkPipelineBindPointCompute, pipeline.pipeline)
		api.CmdBindDescriptorSets(cmd, vkPipelineBindPointCompute, pipeline.layout, 0, 1, ptrOf(&pipeline.descSet), 0, 0)
		api.CmdPushConstants(cmd, pipeline.layout, vkShaderStageCompute, 0, 4, uintptr(unsafe.Pointer(&iters)))
		api.CmdDispatch(cmd, vulkanComputeWorkItems/256, 1, 1)
		return ctx.submitAndWait(cmd, uint64(60*time.Second))
	}

	for i := 0; i < computeWarmupLaunches; i++ {
		if err := dispatch(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}

	start := time.Now()
	for i := 0; i < computeTimedLaunches; i++ {
		if err := dispatch(); err != nil {
			return failf(b.Name(), err.Error())
		}
	}
	elapsed := time.Since(start)
	if elapsed <= 0 {
		return failf(b.Name(), "invalid elapsed time")
	}

	totalOps := float64(vulkanComputeWorkItems) * float64(vulkanComputeIters) * 2 * computeTimedLaunches
	gflops := totalOps / elapsed.Seconds() / 1e9
	return ok(fmt.Sprintf("%.2f GFLOPS", gflops))
}

// vulkanPipeline bundles the handles buildVulkanComputePipeline creates
// so its cleanup closure can tear them all down in reverse order.
type vulkanPipeline struct {
	module     uintptr
	layout     uintptr
	setLayout  uintptr
	pipeline   uintptr
	descPool   uintptr
	descSet    uintptr
}

// buildVulkanComputePipeline compiles vulkanFP32SPIRV into a one-binding
// compute pipeline bound to outBuf, per spec.md section 4.9: "Compile
// compute pipeline with a single storage-buffer descriptor."
func buildVulkanComputePipeline(ctx *vkContext, outBuf uintptr) (*vulkanPipeline, func(), error) {
	api := ctx.api
	p := &vulkanPipeline{}

	shaderInfo := vkShaderModuleCreateInfo{
		sType:    vkStructShaderModuleCreateInfo,
		codeSize: uintptr(len(vulkanFP32SPIRV) * 4),
		pCode:    uintptr(unsafe.Pointer(&vulkanFP32SPIRV[0])),
	}
	if rc := api.CreateShaderModule(ctx.device, ptrOf(&shaderInfo), 0, &p.module); rc != 0 {
		return nil, nil, fmt.Errorf("vkCreateShaderModule: %d", rc)
	}

	binding := vkDescriptorSetLayoutBinding{
		binding:         0,
		descriptorType:  vkDescriptorTypeStorage,
		descriptorCount: 1,
		stageFlags:      vkShaderStageCompute,
	}
	layoutInfo := vkDescriptorSetLayoutCreateInfo{
		sType:        vkStructDescriptorSetLayoutInfo,
		bindingCount: 1,
		pBindings:    ptrOf(&binding),
	}
	if rc := api.CreateDescriptorSetLayout(ctx.device, ptrOf(&layoutInfo), 0, &p.setLayout); rc != 0 {
		api.DestroyShaderModule(ctx.device, p.module, 0)
		return nil, nil, fmt.Errorf("vkCreateDescriptorSetLayout: %d", rc)
	}

	pushRange := vkPushConstantRange{stageFlags: vkShaderStageCompute, size: 4}
	pipeLayoutInfo := vkPipelineLayoutCreateInfo{
		sType:                  vkStructPipelineLayoutCreateInfo,
		setLayoutCount:         1,
		pSetLayouts:            ptrOf(&p.setLayout),
		pushConstantRangeCount: 1,
		pPushConstantRanges:    ptrOf(&pushRange),
	}
	if rc := api.CreatePipelineLayout(ctx.device, ptrOf(&pipeLayoutInfo), 0, &p.layout); rc != 0 {
		api.DestroyDescriptorSetLayout(ctx.device, p.setLayout, 0)
		api.DestroyShaderModule(ctx.device, p.module, 0)
		return nil, nil, fmt.Errorf("vkCreatePipelineLayout: %d", rc)
	}

	entryPoint := append([]byte("main"), 0)
	pipelineInfo := vkComputePipelineCreateInfo{
		sType: vkStructComputePipelineCreateInfo,
		stage: vkPipelineShaderStageCreateInfo{
			sType:  vkStructPipelineShaderStageInfo,
			stage:  vkShaderStageCompute,
			module: p.module,
			pName:  uintptr(unsafe.Pointer(&entryPoint[0])),
		},
		layout:            p.layout,
		basePipelineIndex: -1,
	}
	if rc := api.CreateComputePipelines(ctx.device, 0, 1, ptrOf(&pipelineInfo), 0, &p.pipeline); rc != 0 {
		api.DestroyPipelineLayout(ctx.device, p.layout, 0)
		api.DestroyDescriptorSetLayout(ctx.device, p.setLayout, 0)
		api.DestroyShaderModule(ctx.device, p.module, 0)
		return nil, nil, fmt.Errorf("vkCreateComputePipelines: %d", rc)
	}

	poolSize := vkDescriptorPoolSize{descriptorType: vkDescriptorTypeStorage, descriptorCount: 1}
	poolInfo := vkDescriptorPoolCreateInfo{
		sType:         vkStructDescriptorPoolCreateInfo,
		maxSets:       1,
		poolSizeCount: 1,
		pPoolSizes:    ptrOf(&poolSize),
	}
	if rc := api.CreateDescriptorPool(ctx.device, ptrOf(&poolInfo), 0, &p.descPool); rc != 0 {
		return nil, nil, fmt.Errorf("vkCreateDescriptorPool: %d", rc)
	}

	setAllocInfo := vkDescriptorSetAllocateInfo{
		sType:              vkStructDescriptorSetAllocateInfo,
		descriptorPool:     p.descPool,
		descriptorSetCount: 1,
		pSetLayouts:        ptrOf(&p.setLayout),
	}
	if rc := api.AllocateDescriptorSets(ctx.device, ptrOf(&setAllocInfo), &p.descSet); rc != 0 {
		return nil, nil, fmt.Errorf("vkAllocateDescriptorSets: %d", rc)
	}

	bufferInfo := vkDescriptorBufferInfo{buffer: outBuf, rnge: ^uint64(0)} // VK_WHOLE_SIZE
	write := vkWriteDescriptorSet{
		sType:           vkStructWriteDescriptorSet,
		dstSet:          p.descSet,
		descriptorCount: 1,
		descriptorType:  vkDescriptorTypeStorage,
		pBufferInfo:     ptrOf(&bufferInfo),
	}
	api.UpdateDescriptorSets(ctx.device, 1, ptrOf(&write), 0, 0)

	cleanup := func() {
		api.DestroyDescriptorPool(ctx.device, p.descPool, 0)
		api.DestroyPipeline(ctx.device, p.pipeline, 0)
		api.DestroyPipelineLayout(ctx.device, p.layout, 0)
		api.DestroyDescriptorSetLayout(ctx.device, p.setLayout, 0)
		api.DestroyShaderModule(ctx.device, p.module, 0)
	}
	return p, cleanup, nil
}
