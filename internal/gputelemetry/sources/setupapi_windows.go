//go:build windows

package sources

import "github.com/aiz-project/ai-z/internal/gputelemetry"

// SetupAPILink is the last-resort PCIe generation/width source, priority
// 10 per spec.md section 4.5 item 10. Read performs no SetupAPI
// device-property query and always returns nil. acceptLink holds the
// plausibility filter (generation >= 2 and width >= 4); nothing calls it.
type SetupAPILink struct{}

func NewSetupAPILink() *SetupAPILink { return &SetupAPILink{} }

func (SetupAPILink) Name() string { return gputelemetry.SourceDXGI + "-setupapi" }

func (SetupAPILink) Read(index int) *gputelemetry.GpuTelemetry { return nil }

// acceptLink applies spec.md's plausibility filter for SetupAPI-derived
// PCIe link readings.
func acceptLink(gen, width uint32) bool {
	return gen >= 2 && width >= 4
}
