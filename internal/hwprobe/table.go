package hwprobe

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
)

// RenderTable formats a HardwareInfo as the text table printed by
// --hardware, grounded on the teacher's checkResult.String() pattern of
// building one tablewriter.Writer per section and concatenating buffers.
func RenderTable(info *gputelemetry.HardwareInfo) string {
	if info == nil {
		return ""
	}

	var out strings.Builder

	buf := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"OS", info.OSPrettyName})
	table.Append([]string{"Kernel", info.Kernel})
	table.Append([]string{"CPU", info.CPUModel})
	table.Append([]string{"Cores", strconv.Itoa(info.PhysicalCores) + " physical / " + strconv.Itoa(info.LogicalCores) + " logical"})
	table.Append([]string{"L1D Cache", strconv.Itoa(info.L1CacheKiB) + " KiB"})
	table.Append([]string{"L2 Cache", strconv.Itoa(info.L2CacheKiB) + " KiB"})
	table.Append([]string{"L3 Cache", strconv.Itoa(info.L3CacheKiB) + " KiB"})
	table.Append([]string{"ISA", strings.Join(info.ISAFeatures, ", ")})
	table.Append([]string{"RAM", info.RAMSummary})
	if info.CUDAVersion != "" {
		table.Append([]string{"CUDA", info.CUDAVersion})
	}
	if info.NVMLVersion != "" {
		table.Append([]string{"NVML", info.NVMLVersion})
	}
	if info.ROCmVersion != "" {
		table.Append([]string{"ROCm", info.ROCmVersion})
	}
	if info.OpenCLVersion != "" {
		table.Append([]string{"OpenCL", info.OpenCLVersion})
	}
	if info.VulkanVersion != "" {
		table.Append([]string{"Vulkan", info.VulkanVersion})
	}
	table.Render()
	out.WriteString(buf.String())

	appendLines(&out, "GPUs", info.GPUDetailLines)
	appendLines(&out, "Network Interfaces", info.NICDetailLines)
	appendLines(&out, "Disks", info.DiskDetailLines)

	for _, npu := range info.NPUs {
		buf.Reset()
		t := tablewriter.NewWriter(buf)
		t.SetAlignment(tablewriter.ALIGN_LEFT)
		t.SetHeader([]string{"NPU", npu.Name})
		for _, line := range npu.DetailLines {
			t.Append([]string{"", strings.TrimSpace(line)})
		}
		t.Render()
		out.WriteString(buf.String())
	}

	return out.String()
}

func appendLines(out *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	out.WriteString(title + ":\n")
	for _, l := range lines {
		out.WriteString("  " + l + "\n")
	}
}
