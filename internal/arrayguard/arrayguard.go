// Package arrayguard is a scoped holder: one smoothing call exclusively
// owns I' (the binned image), CH (the column histogram ring), and K (the
// kernel histogram) for its duration, and releases them on every exit path,
// including allocation failure.
package arrayguard

import (
	"fmt"
	"runtime"

	"quantsmooth/internal/colhist"
	"quantsmooth/internal/kernelhist"
)

// Guard owns I' (the binned image), CH (the column histogram ring), and K
// (the kernel histogram) for the lifetime of one smoothing call.
type Guard struct {
	Binned []int32
	Ring   *colhist.Ring
	Kernel *kernelhist.Kernel
	closed bool
}

// New takes ownership of the already-binned I' and allocates CH and K,
// zero-filled. A panic raised by the runtime
// on an oversized make() is recovered and reported as a plain error instead
// of crashing the process, and releases whatever was already allocated.
func New(binned []int32, w, h, n int) (g *Guard, err error) {
	defer func() {
		if r := recover(); r != nil {
			if g != nil {
				g.Release()
			}
			err = fmt.Errorf("arrayguard: allocation failed for %dx%d histogram (n=%d): %v", w, h, n, r)
		}
	}()

	g = &Guard{Binned: binned}
	g.Ring = colhist.New(binned, w, h, n)
	g.Kernel = kernelhist.New(g.Ring, n)
	runtime.SetFinalizer(g, (*Guard).finalize)
	return g, nil
}

// Release drops the guard's references so the GC can reclaim them promptly.
// Safe to call more than once and on a partially-constructed Guard.
func (g *Guard) Release() {
	if g == nil || g.closed {
		return
	}
	g.closed = true
	g.Binned = nil
	g.Ring = nil
	g.Kernel = nil
	runtime.SetFinalizer(g, nil)
}

func (g *Guard) finalize() {
	g.Release()
}

// AlignedFloat32s allocates n float32s whose backing array starts on a
// 64-byte boundary, for SIMD-friendly access.
func AlignedFloat32s(n int) []float32 {
	const alignment = 64
	const elemSize = 4

	raw := make([]float32, n+alignment/elemSize)
	addr := sliceAddr(raw)
	offset := (alignment - int(addr%alignment)) % alignment
	start := offset / elemSize
	return raw[start : start+n : start+n]
}
