package safecall

import (
	"testing"
	"time"
)

func TestTimeoutReturnsValueWhenFast(t *testing.T) {
	v, ok := Timeout(50*time.Millisecond, func() int { return 42 })
	if !ok || v != 42 {
		t.Fatalf("got (%v, %v), want (42, true)", v, ok)
	}
}

func TestTimeoutTripsOnSlowCall(t *testing.T) {
	start := time.Now()
	v, ok := Timeout(20*time.Millisecond, func() int {
		time.Sleep(2 * time.Second)
		return 99
	})
	elapsed := time.Since(start)

	if ok {
		t.Fatalf("expected timeout, got value %v", v)
	}
	if v != 0 {
		t.Fatalf("expected zero value on timeout, got %v", v)
	}
	if elapsed > time.Second {
		t.Fatalf("Timeout blocked for %v, should return near the deadline", elapsed)
	}
}

func TestNVMLDeadlineIsNonFatal(t *testing.T) {
	start := time.Now()
	_, ok := NVML(func() int {
		time.Sleep(2 * time.Second)
		return 1
	})
	if ok {
		t.Fatal("expected NVML call to time out")
	}
	if time.Since(start) >= time.Second {
		t.Fatal("NVML() should return promptly within ~1s, not block for the full sleep")
	}
}
