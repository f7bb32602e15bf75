// Package kernelhist implements C3: a single histogram equal to the sum of
// a contiguous, monotonically advancing column range of a colhist.Ring.
package kernelhist

import "quantsmooth/internal/colhist"

// Kernel is K: the histogram over columns [cLo, cHi] of the ring's current
// row band. It resets to empty at the start of every output row.
type Kernel struct {
	n      int
	counts []int64
	ring   *colhist.Ring
	cLo    int
	cHi    int // -1 => empty range
}

// New allocates a zeroed kernel histogram of n = ring's per-column slot
// count, backed by ring.
func New(ring *colhist.Ring, n int) *Kernel {
	k := &Kernel{n: n, counts: make([]int64, n), ring: ring}
	k.Reset()
	return k
}

// Reset zeros K and starts a fresh column range, called once per output row.
// No state carries over from the previous row.
func (k *Kernel) Reset() {
	for i := range k.counts {
		k.counts[i] = 0
	}
	k.cLo = 0
	k.cHi = -1
}

func (k *Kernel) addColumn(x int) {
	col := k.ring.Column(x)
	for i, v := range col {
		k.counts[i] += v
	}
}

func (k *Kernel) dropColumn(x int) {
	col := k.ring.Column(x)
	for i, v := range col {
		k.counts[i] -= v
	}
}

// Prep advances (cLo, cHi) to (cxLo, cxHi): drop columns leaving the range,
// then append columns entering it. Monotone non-decreasing within one
// output row.
func (k *Kernel) Prep(cxLo, cxHi int) {
	for k.cLo < cxLo {
		k.dropColumn(k.cLo)
		k.cLo++
	}
	for k.cHi < cxHi {
		k.cHi++
		k.addColumn(k.cHi)
	}
}

// Counts returns K's N counters, the last being the tally.
func (k *Kernel) Counts() []int64 {
	return k.counts
}

// Tally returns T = K[N-1], the total non-NaN samples in the current window.
func (k *Kernel) Tally() int64 {
	return k.counts[k.n-1]
}
