// Package binning implements C1: the fixed-range integer histogram space
// that every other sliding-window component (column rings, kernel
// histogram, quantile evaluator) operates in, plus its inverse, C6, the
// de-binning map back to real values.
package binning

import (
	"fmt"

	"github.com/chewxy/math32"
)

// NaNBin is the sentinel bin index carried by a NaN sample. It is
// distinguishable from any real bin index, which is always >= 0.
const NaNBin int32 = -1

// Params fixes the binned histogram space.
type Params struct {
	Hmin float32
	Hmax float32
	Bins int // B, number of in-range bins
}

// Validate checks hmin < hmax and at least one bin.
func (p Params) Validate() error {
	if !(p.Hmin < p.Hmax) {
		return fmt.Errorf("binning: hmin (%v) must be less than hmax (%v)", p.Hmin, p.Hmax)
	}
	if p.Bins < 1 {
		return fmt.Errorf("binning: bins (%d) must be >= 1", p.Bins)
	}
	return nil
}

// Width returns the in-range bin width s = (hmax - hmin) / B.
func (p Params) Width() float32 {
	return (p.Hmax - p.Hmin) / float32(p.Bins)
}

// NB is the histogram size excluding the tally counter: underflow (index 0),
// B in-range bins, overflow (index NB-1).
func (p Params) NB() int {
	return p.Bins + 2
}

// N is the full per-histogram slot count including the trailing tally
// counter: N = B + 3.
func (p Params) N() int {
	return p.Bins + 3
}

// Bin maps one sample to a bin index in [0, NB-1], or NaNBin if v is NaN.
// v == hmax is overflow, not the top in-range bin.
func (p Params) Bin(v float32) int32 {
	if math32.IsNaN(v) {
		return NaNBin
	}
	if v < p.Hmin {
		return 0
	}
	if v >= p.Hmax {
		return int32(p.Bins + 1)
	}
	return 1 + int32(math32.Floor((v-p.Hmin)/p.Width()))
}

// BinAll bins every sample of a flat row-major W*H array. NaN samples carry
// NaNBin.
func (p Params) BinAll(samples []float32) []int32 {
	out := make([]int32, len(samples))
	for i, v := range samples {
		out[i] = p.Bin(v)
	}
	return out
}

// Debin is C6: maps a decimal bin position p (in the NB-bin coordinate
// system, 0 = underflow, NB-1 = overflow) back to a real value:
// v = hmin + s*(p - 1).
func (p Params) Debin(pos float32) float32 {
	return p.Hmin + p.Width()*(pos-1)
}
