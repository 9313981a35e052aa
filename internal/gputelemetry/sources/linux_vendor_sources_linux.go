//go:build linux

package sources

func linuxVendorSources(hint VendorHint) []Source {
	return []Source{
		NewRocmSMI(),
		NewAMDSysfs(),
		NewIntelSysfs(),
	}
}
