// Package sampler implements GpuSampler (spec.md section 4.7): a
// background thread that periodically re-queries every GPU through the
// telemetry merger plus a PCIe throughput reading, and publishes an
// atomically-swappable snapshot the UI reads without blocking on the
// underlying vendor calls. Grounded on the teacher's poller goroutine
// shape (a stop channel plus a ticker, mutex-guarded published state).
package sampler

import (
	"sync"
	"time"

	"github.com/aiz-project/ai-z/internal/gputelemetry"
	"github.com/aiz-project/ai-z/internal/log"
)

// DefaultInterval is the sampler's re-query period, per spec.md section 4.7.
const DefaultInterval = 500 * time.Millisecond

// Merger is the subset of gputelemetry.Merger the sampler depends on, so
// tests can substitute a stub.
type Merger interface {
	Read(index int) *gputelemetry.GpuTelemetry
}

// PcieThroughputFunc reads an all-devices PCIe throughput snapshot, or
// false when the platform has no way to measure it.
type PcieThroughputFunc func() (map[int]gputelemetry.PcieThroughput, bool)

// GpuSampler runs the background re-sampling loop described in spec.md
// section 4.7.
type GpuSampler struct {
	merger       Merger
	gpuCount     func() int
	pcie         PcieThroughputFunc
	interval     time.Duration

	mu          sync.Mutex
	cachedGpus  map[int]*gputelemetry.GpuTelemetry
	cachedPcie  map[int]gputelemetry.PcieThroughput
	pcieSupported bool
	pcieChecked   bool

	stop chan struct{}
	done chan struct{}
}

// New builds a sampler. gpuCount reports the current device count (it may
// change across boot-probe completion); pcie supplies the per-device PCIe
// throughput reading, invoked at most once per tick.
func New(merger Merger, gpuCount func() int, pcie PcieThroughputFunc) *GpuSampler {
	return &GpuSampler{
		merger:        merger,
		gpuCount:      gpuCount,
		pcie:          pcie,
		interval:      DefaultInterval,
		cachedGpus:    make(map[int]*gputelemetry.GpuTelemetry),
		cachedPcie:    make(map[int]gputelemetry.PcieThroughput),
		pcieSupported: true,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the background loop. Each call starts another loop; it
// does not check whether one is already running.
func (s *GpuSampler) Start() {
	go s.run()
}

// Stop signals the loop to exit at its next iteration and waits for it to
// finish.
func (s *GpuSampler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *GpuSampler) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		s.tick()

		select {
		case <-s.stop:
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *GpuSampler) tick() {
	count := s.gpuCount()
	next := make(map[int]*gputelemetry.GpuTelemetry, count)
	for i := 0; i < count; i++ {
		next[i] = s.merger.Read(i)
	}

	var nextPcie map[int]gputelemetry.PcieThroughput
	if s.pcieEnabled() {
		readings, ok := s.pcie()
		if !ok {
			s.markPcieUnsupported()
		} else {
			nextPcie = readings
		}
	}

	s.mu.Lock()
	s.cachedGpus = next
	if nextPcie != nil {
		s.cachedPcie = nextPcie
	}
	s.mu.Unlock()
}

func (s *GpuSampler) pcieEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pcieSupported
}

// markPcieUnsupported memoizes a failed PCIe probe so its cost is never
// paid again, per spec.md section 4.7's "Windows PCIe counter probe is
// memoized" rule (it generalizes cleanly to any platform's probe).
func (s *GpuSampler) markPcieUnsupported() {
	s.mu.Lock()
	s.pcieSupported = false
	s.mu.Unlock()
	log.Logger.Infow("gpu sampler: pcie throughput probe unsupported, disabling")
}

// Snapshot copies the latest cached telemetry and PCIe readings under the
// sampler's mutex, matching spec.md section 4.7's snapshot contract.
func (s *GpuSampler) Snapshot() (map[int]*gputelemetry.GpuTelemetry, map[int]gputelemetry.PcieThroughput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gpus := make(map[int]*gputelemetry.GpuTelemetry, len(s.cachedGpus))
	for k, v := range s.cachedGpus {
		gpus[k] = v
	}
	pcie := make(map[int]gputelemetry.PcieThroughput, len(s.cachedPcie))
	for k, v := range s.cachedPcie {
		pcie[k] = v
	}
	return gpus, pcie
}
