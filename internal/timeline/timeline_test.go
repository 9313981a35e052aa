package timeline

import "testing"

func TestPushAndRing(t *testing.T) {
	tl := New(3)
	for _, v := range []float64{1, 2, 3, 4} {
		tl.Push(v)
	}

	vals := tl.Values()
	want := []float64{2, 3, 4}
	if len(vals) != len(want) {
		t.Fatalf("values = %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("values = %v, want %v", vals, want)
		}
	}

	if max := tl.MaxLast(2); max != 4 {
		t.Fatalf("MaxLast(2) = %v, want 4", max)
	}
	if tl.Size() != 3 || tl.Capacity() != 3 {
		t.Fatalf("size/capacity = %d/%d, want 3/3", tl.Size(), tl.Capacity())
	}
}

func TestZeroCapacity(t *testing.T) {
	tl := New(0)
	tl.Push(1)
	tl.Push(2)
	if tl.Size() != 0 {
		t.Fatalf("size = %d, want 0", tl.Size())
	}
	if len(tl.Values()) != 0 {
		t.Fatalf("values should be empty")
	}
}

func TestMaxLastEmpty(t *testing.T) {
	tl := New(5)
	if max := tl.MaxLast(3); max != 0 {
		t.Fatalf("MaxLast on empty = %v, want 0", max)
	}
}

func TestResizePreservesOrder(t *testing.T) {
	tl := New(4)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		tl.Push(v)
	}
	// tl now holds [2,3,4,5]
	bigger := tl.Resize(6)
	want := []float64{2, 3, 4, 5}
	got := bigger.Values()
	if len(got) != len(want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("values = %v, want %v", got, want)
		}
	}
	if bigger.Capacity() != 6 {
		t.Fatalf("capacity = %d, want 6", bigger.Capacity())
	}

	smaller := tl.Resize(2)
	wantSmall := []float64{4, 5}
	gotSmall := smaller.Values()
	for i := range wantSmall {
		if gotSmall[i] != wantSmall[i] {
			t.Fatalf("values = %v, want %v", gotSmall, wantSmall)
		}
	}
}

func TestAvgLast(t *testing.T) {
	tl := New(5)
	for _, v := range []float64{10, 20, 30} {
		tl.Push(v)
	}
	if avg := tl.AvgLast(2); avg != 25 {
		t.Fatalf("AvgLast(2) = %v, want 25", avg)
	}
}
