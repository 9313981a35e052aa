package gpuident

import "testing"

func TestNamesDoesNotPanicWithoutDriver(t *testing.T) {
	// On a machine with no NVIDIA driver this returns nil; the only
	// contract under test here is that a missing driver degrades
	// gracefully instead of panicking.
	_ = Names()
}
