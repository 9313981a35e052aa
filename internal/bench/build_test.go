package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRunnerOrdersGPUsThenCPU(t *testing.T) {
	r := BuildRunner([]string{"GPU Alpha", "GPU Beta"}, "Test CPU")
	rows := r.Rows()

	assert.True(t, rows[0].IsHeader)
	assert.Equal(t, "GPU0 - GPU Alpha", rows[0].Title)

	var headers []string
	for _, row := range rows {
		if row.IsHeader {
			headers = append(headers, row.Title)
		}
	}
	assert.Equal(t, []string{"GPU0 - GPU Alpha", "GPU1 - GPU Beta", "CPU0 - Test CPU"}, headers)
}

func TestBuildRunnerDefaultsCPUName(t *testing.T) {
	r := BuildRunner(nil, "")
	rows := r.Rows()
	assert.Equal(t, "CPU0 - CPU", rows[0].Title)
}

func TestGpuBenchmarksCoversAllPrecisions(t *testing.T) {
	benches := gpuBenchmarks(0)
	assert.Len(t, benches, 10)
}
