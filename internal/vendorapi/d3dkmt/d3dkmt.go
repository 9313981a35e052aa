// Package d3dkmt resolves gdi32.dll's D3DKMT family on Windows, the
// lowest-common-denominator GPU query path that works even when no vendor
// SDK is installed, per spec.md section 4.1/4.5 (the last-resort Windows
// source: adapter enumeration and PCIe link width/speed via
// D3DKMTQueryStatistics).
package d3dkmt

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/aiz-project/ai-z/internal/dynload"
	"github.com/aiz-project/ai-z/internal/vendorapi/probe"
)

const vendorName = "d3dkmt"

var candidates = []string{
	"gdi32.dll",
}

// Api holds the D3DKMT entry points ai-z resolves from gdi32.dll.
type Api struct {
	OpenAdapterFromLuid func(openAdapter uintptr) int32
	CloseAdapter        func(closeAdapter uintptr) int32
	QueryStatistics     func(queryStatistics uintptr) int32
	QueryAdapterInfo    func(queryAdapterInfo uintptr) int32
}

var get = probe.Once(vendorName, load)

// Get lazily resolves gdi32.dll's D3DKMT exports.
func Get() (*Api, string) {
	return get()
}

func load() (*Api, error) {
	lib, _, err := dynload.Open(candidates)
	if err != nil {
		return nil, fmt.Errorf("d3dkmt: %w", err)
	}

	api := &Api{}
	reg := func(fnPtr interface{}, symbol string) error {
		addr, err := lib.Sym(symbol)
		if err != nil {
			return fmt.Errorf("d3dkmt: resolving %s: %w", symbol, err)
		}
		purego.RegisterFunc(fnPtr, addr)
		return nil
	}

	symbols := []struct {
		ptr  interface{}
		name string
	}{
		{&api.OpenAdapterFromLuid, "D3DKMTOpenAdapterFromLuid"},
		{&api.CloseAdapter, "D3DKMTCloseAdapter"},
		{&api.QueryStatistics, "D3DKMTQueryStatistics"},
		{&api.QueryAdapterInfo, "D3DKMTQueryAdapterInfo"},
	}
	for _, s := range symbols {
		if err := reg(s.ptr, s.name); err != nil {
			return nil, err
		}
	}

	return api, nil
}
