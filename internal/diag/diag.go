// Package diag implements the `--diag-*` flags of spec.md section 6: a
// set of one-shot probes that dump a single telemetry source's raw
// reading for device 0, bypassing the merger's priority order. All of
// them are Windows-only; diag.go declares the shared dispatch table,
// diag_windows.go and diag_other.go supply the per-OS Run.
package diag

// Flag identifies which `--diag-*` flag was passed.
type Flag string

const (
	PCIe     Flag = "pcie"
	ADLX     Flag = "adlx"
	IGCL     Flag = "igcl"
	IGCLFull Flag = "igcl-full"
	D3DKMT   Flag = "d3dkmt"
	PDHGpu   Flag = "pdh-gpu"
)

// Run executes the named diagnostic, printing its raw reading to stdout,
// and returns the process exit code. On non-Windows builds every flag
// prints a stub message and returns 0, per spec.md section 6: "Diag
// flags are Windows-only; on other platforms print a stub message and
// return 0."
func Run(f Flag) int {
	return run(f)
}
