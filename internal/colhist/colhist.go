// Package colhist implements C2: a per-column histogram ring that tracks a
// contiguous, monotonically advancing vertical row band shared by every
// input column.
package colhist

import "quantsmooth/internal/binning"

// Ring holds one histogram per input column, all sharing the same row band
// [rLo, rHi]. CH[x] is Ring.Column(x): N counters, the last being the tally.
type Ring struct {
	w, h   int
	n      int // N = B+3, per-column histogram slot count including tally
	counts []int64
	binned []int32 // I', row-major y*w+x, bin index or binning.NaNBin
	rLo    int
	rHi    int // -1 => empty band (initial state)
}

// New allocates a zeroed ring over w columns, n slots per column, backed by
// the already-binned image (binning.Params.BinAll output).
func New(binned []int32, w, h, n int) *Ring {
	return &Ring{
		w:      w,
		h:      h,
		n:      n,
		counts: make([]int64, w*n),
		binned: binned,
		rLo:    0,
		rHi:    -1,
	}
}

// Column returns CH[x], a view (not a copy) of column x's N counters.
func (r *Ring) Column(x int) []int64 {
	base := x * r.n
	return r.counts[base : base+r.n]
}

func (r *Ring) tallyIndex() int { return r.n - 1 }

func (r *Ring) addRow(y int) {
	base := y * r.w
	t := r.tallyIndex()
	for x := 0; x < r.w; x++ {
		b := r.binned[base+x]
		if b == binning.NaNBin {
			continue
		}
		col := r.Column(x)
		col[b]++
		col[t]++
	}
}

func (r *Ring) dropRow(y int) {
	base := y * r.w
	t := r.tallyIndex()
	for x := 0; x < r.w; x++ {
		b := r.binned[base+x]
		if b == binning.NaNBin {
			continue
		}
		col := r.Column(x)
		col[b]--
		col[t]--
	}
}

// Prep advances (rLo, rHi) to (ryLo, ryHi). The advance must be monotone
// non-decreasing in both bounds within one smoothing call; callers that
// need a non-monotone jump must build a fresh Ring instead.
func (r *Ring) Prep(ryLo, ryHi int) {
	for r.rLo < ryLo {
		r.dropRow(r.rLo)
		r.rLo++
	}
	for r.rHi < ryHi {
		r.rHi++
		r.addRow(r.rHi)
	}
}
