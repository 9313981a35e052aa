package bench

import "github.com/aiz-project/ai-z/internal/hwprobe"

// BuildRunner assembles the standard row layout spec.md section 4.8
// describes: one header + benchmark block per GPU (PCIe bandwidths,
// then FLOPS/GOPS rows), followed by a single CPU0 block holding the
// ONNX rows. gpuNames is indexed in device order; cpuName is typically
// the CPU model string from the boot hardware probe.
func BuildRunner(gpuNames []string, cpuName string) *Runner {
	r := NewRunner()

	for i, name := range gpuNames {
		r.AddGPU(name, gpuBenchmarks(i))
	}

	if cpuName == "" {
		cpuName = "CPU"
	}
	cpuRows := []Benchmark{
		NewONNXMatMul(),
		NewONNXMemoryBandwidth(),
	}
	if npus := hwprobe.ProbeNPUs(); len(npus) > 0 {
		cpuRows = append(cpuRows, NewNPUPlaceholder(npus[0].Name))
	}
	r.AddCPU(cpuName, cpuRows)

	return r
}

// gpuBenchmarks returns the per-GPU row block in spec.md section 4.8's
// order: PCIe bandwidth (CUDA, Vulkan, OpenCL), FLOPS (Vulkan FP32,
// OpenCL FP32), then CUDA FP16/FP32/FP64/INT4/INT8.
func gpuBenchmarks(deviceIdx int) []Benchmark {
	return []Benchmark{
		NewCUDAPcieBandwidth(deviceIdx),
		NewVulkanPcieBandwidth(deviceIdx),
		NewOpenCLPcieBandwidth(),
		NewVulkanCompute(deviceIdx),
		NewOpenCLCompute(),
		NewCUDACompute(deviceIdx, precFP16),
		NewCUDACompute(deviceIdx, precFP32),
		NewCUDACompute(deviceIdx, precFP64),
		NewCUDACompute(deviceIdx, precINT4),
		NewCUDACompute(deviceIdx, precINT32),
	}
}
