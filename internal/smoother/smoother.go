// Package smoother implements C5: the driver loop that glues binning (C1),
// the column histogram ring (C2), the kernel histogram (C3), the quantile
// evaluator (C4), and de-binning (C6) into one smoothing pass.
package smoother

import (
	"context"
	"fmt"

	"quantsmooth/internal/arrayguard"
	"quantsmooth/internal/binning"
	"quantsmooth/internal/logger"
	"quantsmooth/internal/progress"
	"quantsmooth/internal/quantile"
)

// Image is a 2-D array of real samples, row-major: Data[y*W+x].
type Image struct {
	W, H int
	Data []float32
}

// NewImage allocates a zeroed W*H image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Data: make([]float32, w*h)}
}

// Options are smooth's validated parameters.
type Options struct {
	HalfWidthX int // hx, pixels
	HalfWidthY int // hy, pixels
	Quantile   float32
	Hmin       float32
	Hmax       float32
	Bins       int
	Strategy   quantile.Strategy
}

// Validate checks hx/hy/q/hmin/hmax/bins; a validation error causes no
// output to be written.
func (o Options) Validate() error {
	if o.HalfWidthX < 0 {
		return fmt.Errorf("smoother: hx (%d) must be >= 0", o.HalfWidthX)
	}
	if o.HalfWidthY < 0 {
		return fmt.Errorf("smoother: hy (%d) must be >= 0", o.HalfWidthY)
	}
	if !(o.Quantile > 0 && o.Quantile < 1) {
		return fmt.Errorf("smoother: q (%v) must be in (0, 1)", o.Quantile)
	}
	return binning.Params{Hmin: o.Hmin, Hmax: o.Hmax, Bins: o.Bins}.Validate()
}

// Smooth runs one full sliding-window quantile smoothing pass (C5). It
// returns a validation error without allocating I', CH, or K when Options
// fails validation. A cancelled ctx is checked once per output row and
// aborts the pass without writing the remaining output.
func Smooth(ctx context.Context, in *Image, opts Options, log logger.Logger, prog *progress.Reporter) (*Image, error) {
	if in == nil {
		return nil, fmt.Errorf("smoother: input image is nil")
	}
	if in.W <= 0 || in.H <= 0 {
		return nil, fmt.Errorf("smoother: invalid input dimensions %dx%d", in.W, in.H)
	}
	if len(in.Data) != in.W*in.H {
		return nil, fmt.Errorf("smoother: input data length %d does not match %dx%d", len(in.Data), in.W, in.H)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := binning.Params{Hmin: opts.Hmin, Hmax: opts.Hmax, Bins: opts.Bins}
	evaluate, err := quantile.Resolve(opts.Strategy, opts.Quantile)
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Info("smoothing started", map[string]interface{}{
			"width": in.W, "height": in.H,
			"hx": opts.HalfWidthX, "hy": opts.HalfWidthY,
			"bins": opts.Bins, "strategy": opts.Strategy.String(),
		})
	}

	binned := params.BinAll(in.Data)
	n := params.N()
	nb := params.NB()

	guard, err := arrayguard.New(binned, in.W, in.H, n)
	if err != nil {
		if log != nil {
			log.Error("smoothing allocation failed", err, map[string]interface{}{"width": in.W, "height": in.H})
		}
		return nil, err
	}
	defer guard.Release()

	ring := guard.Ring
	kernel := guard.Kernel
	out := NewImage(in.W, in.H)

	prog.Start()

	for y := 0; y < in.H; y++ {
		if err := ctx.Err(); err != nil {
			if log != nil {
				log.Warning("smoothing cancelled", map[string]interface{}{"row": y, "height": in.H})
			}
			return nil, err
		}

		ryLo := max(0, y-opts.HalfWidthY)
		ryHi := min(in.H-1, y+opts.HalfWidthY)
		ring.Prep(ryLo, ryHi)
		kernel.Reset()

		rowBase := y * in.W
		for x := 0; x < in.W; x++ {
			cxLo := max(0, x-opts.HalfWidthX)
			cxHi := min(in.W-1, x+opts.HalfWidthX)
			kernel.Prep(cxLo, cxHi)

			p := evaluate(kernel.Counts(), nb)
			out.Data[rowBase+x] = params.Debin(p)
		}

		prog.Row(y, in.H)
	}

	if log != nil {
		log.Info("smoothing complete", map[string]interface{}{"width": in.W, "height": in.H})
	}
	return out, nil
}
