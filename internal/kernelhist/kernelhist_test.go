package kernelhist

import (
	"testing"

	"quantsmooth/internal/binning"
	"quantsmooth/internal/colhist"
)

func TestKernelSumOfColumnsInvariant(t *testing.T) {
	p := binning.Params{Hmin: 0, Hmax: 8, Bins: 8}
	w, h := 5, 3
	samples := make([]float32, w*h)
	for i := range samples {
		samples[i] = float32(i % 9)
	}
	binned := p.BinAll(samples)
	ring := colhist.New(binned, w, h, p.N())
	ring.Prep(0, h-1)

	k := New(ring, p.N())
	k.Prep(1, 3)

	want := make([]int64, p.N())
	for x := 1; x <= 3; x++ {
		col := ring.Column(x)
		for i, v := range col {
			want[i] += v
		}
	}
	got := k.Counts()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("K[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestKernelResetIsEmpty(t *testing.T) {
	p := binning.Params{Hmin: 0, Hmax: 8, Bins: 8}
	w, h := 4, 4
	samples := make([]float32, w*h)
	for i := range samples {
		samples[i] = float32(i % 9)
	}
	binned := p.BinAll(samples)
	ring := colhist.New(binned, w, h, p.N())
	ring.Prep(0, h-1)

	k := New(ring, p.N())
	k.Prep(0, 2)
	k.Reset()

	for i, v := range k.Counts() {
		if v != 0 {
			t.Errorf("after Reset, K[%d] = %d, want 0", i, v)
		}
	}
	if k.Tally() != 0 {
		t.Errorf("after Reset, Tally() = %d, want 0", k.Tally())
	}
}

func TestKernelMonotoneAdvanceWithinRow(t *testing.T) {
	p := binning.Params{Hmin: 0, Hmax: 8, Bins: 8}
	w, h := 6, 1
	samples := []float32{0, 1, 2, 3, 4, 5}
	binned := p.BinAll(samples)
	ring := colhist.New(binned, w, h, p.N())
	ring.Prep(0, 0)

	k := New(ring, p.N())
	prevLo, prevHi := -1, -2
	for x := 0; x < w; x++ {
		lo, hi := max0(x-1), min0(x+1, w-1)
		k.Prep(lo, hi)
		if lo < prevLo || hi < prevHi {
			t.Errorf("advance not monotone at x=%d: (%d,%d) after (%d,%d)", x, lo, hi, prevLo, prevHi)
		}
		prevLo, prevHi = lo, hi
		if k.Tally() != int64(hi-lo+1) {
			t.Errorf("at x=%d tally=%d, want %d", x, k.Tally(), hi-lo+1)
		}
	}
}

func max0(a int) int {
	if a < 0 {
		return 0
	}
	return a
}

func min0(a, b int) int {
	if a < b {
		return a
	}
	return b
}
