package hwprobe

import "testing"

func TestProbeNPUsDoesNotPanic(t *testing.T) {
	// No assertion on content: the result depends on the host's sysfs
	// layout. This just confirms the synchronous entry point is safe to
	// call without a running Prober.
	_ = ProbeNPUs()
}
