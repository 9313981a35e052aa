//go:build windows

package sources

// WindowsOnly returns the Windows-specific telemetry sources (ADLX, IGCL,
// PDH, D3DKMT, DXGI, SetupAPI link) in spec.md section 4.5 priority order.
// pdhDisabled should be set when AI_Z_DISABLE_PDH is present in the
// environment.
func WindowsOnly(pdhDisabled bool) []Source {
	return []Source{
		NewADLX(),
		NewIGCL(),
		NewPDH(pdhDisabled),
		NewD3DKMT(),
		NewDXGI(),
		NewSetupAPILink(),
	}
}
