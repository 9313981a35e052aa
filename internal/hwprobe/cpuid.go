package hwprobe

import "github.com/klauspost/cpuid/v2"

// l1l3CacheKiB reports L1 data cache and L3 cache sizes in KiB. cpuid
// reports sizes in bytes per core; L2 is already filled in from
// gopsutil's cpu.Info, which reports a single combined value closer to
// what most distros' /proc/cpuinfo exposes.
func l1l3CacheKiB() (l1, l3 int) {
	return cpuid.CPU.Cache.L1D / 1024, cpuid.CPU.Cache.L3 / 1024
}

// isaFeatures returns the subset of detected CPU features relevant to
// compute workloads, in a fixed, deterministic order.
func isaFeatures() []string {
	candidates := []struct {
		name    string
		feature cpuid.FeatureID
	}{
		{"SSE4.1", cpuid.SSE4},
		{"SSE4.2", cpuid.SSE42},
		{"AVX", cpuid.AVX},
		{"AVX2", cpuid.AVX2},
		{"AVX512F", cpuid.AVX512F},
		{"AVX512BW", cpuid.AVX512BW},
		{"AVX512VL", cpuid.AVX512VL},
		{"FMA3", cpuid.FMA3},
		{"F16C", cpuid.F16C},
		{"BMI1", cpuid.BMI1},
		{"BMI2", cpuid.BMI2},
		{"AES", cpuid.AESNI},
	}

	var feats []string
	for _, c := range candidates {
		if cpuid.CPU.Supports(c.feature) {
			feats = append(feats, c.name)
		}
	}
	return feats
}
