package hwprobe

import (
	"fmt"

	"github.com/dustin/go-humanize"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/disk"
)

// formatRAMSummary renders a total byte count as the free-form RAM
// summary string shown in the --hardware table and TUI header; unlike
// internal/snapshot's fixed-unit JSON fields, this output has no wire
// contract, so humanize's auto-scaled binary-prefix format is the
// natural fit.
func formatRAMSummary(totalBytes uint64) string {
	return humanize.IBytes(totalBytes) + " total"
}

func gpuDetailLine(index int, name string) string {
	return fmt.Sprintf("GPU%d: %s", index, name)
}

func nicDetailLine(ifc gopsnet.InterfaceStat) string {
	addr := ""
	if len(ifc.Addrs) > 0 {
		addr = ifc.Addrs[0].Addr
	}
	return fmt.Sprintf("%s: %s", ifc.Name, addr)
}

func diskDetailLine(part disk.PartitionStat, usage *disk.UsageStat) string {
	return fmt.Sprintf("%s (%s): %s used / %s total", part.Mountpoint, part.Fstype,
		humanize.IBytes(usage.Used), humanize.IBytes(usage.Total))
}
