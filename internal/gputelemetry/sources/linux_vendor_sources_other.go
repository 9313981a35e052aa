//go:build !linux

package sources

func linuxVendorSources(hint VendorHint) []Source { return nil }
