// Package quantile implements C4: three strategies for turning a kernel
// histogram into a decimal bin position for a target quantile. Each
// strategy is resolved to a concrete closure once before the outer driver
// loop runs, so no per-pixel strategy dispatch is needed.
package quantile

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Strategy selects one of the three quantile-evaluation conventions.
type Strategy int

const (
	IntegerExact Strategy = iota
	FPTBinCenters
	FPTInterpolate
)

func (s Strategy) String() string {
	switch s {
	case IntegerExact:
		return "integer_exact"
	case FPTBinCenters:
		return "fpt_bin_centers"
	case FPTInterpolate:
		return "fpt_interpolate"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a CLI-facing name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "integer_exact":
		return IntegerExact, nil
	case "fpt_bin_centers":
		return FPTBinCenters, nil
	case "fpt_interpolate":
		return FPTInterpolate, nil
	default:
		return 0, fmt.Errorf("quantile: unknown strategy %q", name)
	}
}

// Evaluator consumes a kernel histogram's counts (length NB+1, last slot the
// tally) and NB (the bin count excluding the tally) and returns a decimal
// bin position in the NB-bin coordinate system (0 = underflow, NB-1 =
// overflow), or NaN when the window held no valid samples.
type Evaluator func(counts []int64, nb int) float32

// Resolve binds a quantile q in (0,1) and a Strategy into a single
// Evaluator closure. Called once per smoothing run, never per pixel.
func Resolve(strat Strategy, q float32) (Evaluator, error) {
	if !(q > 0 && q < 1) {
		return nil, fmt.Errorf("quantile: q (%v) must be in (0, 1)", q)
	}
	switch strat {
	case IntegerExact:
		return integerExact(q), nil
	case FPTBinCenters:
		return fptBinCenters(q), nil
	case FPTInterpolate:
		return fptInterpolate(q), nil
	default:
		return nil, fmt.Errorf("quantile: unknown strategy %d", strat)
	}
}

// cumulation is the common preamble shared by all three strategies: locate
// i*, the first bin where the running total reaches the target element qi.
type cumulation struct {
	istar int
	total int64
	qi    int64
	qf    float32
	tally int64
}

func cumulate(counts []int64, nb int, q float32) cumulation {
	tally := counts[nb]
	qe := (float32(tally) + 1) * q
	qiF := math32.Floor(qe)
	qi := int64(qiF)
	qf := qe - qiF

	var total int64
	istar := nb - 1
	for i := 0; i < nb; i++ {
		total += counts[i]
		if total >= qi {
			istar = i
			break
		}
	}
	return cumulation{istar: istar, total: total, qi: qi, qf: qf, tally: tally}
}

// nextPopulated returns the first j > from with counts[j] > 0, searching up
// to nb-2; if none is populated it returns nb-1, the overflow bin, which the
// caller treats as its own terminal case.
func nextPopulated(counts []int64, nb, from int) int {
	for j := from + 1; j < nb-1; j++ {
		if counts[j] > 0 {
			return j
		}
	}
	return nb - 1
}

func integerExact(q float32) Evaluator {
	return func(counts []int64, nb int) float32 {
		c := cumulate(counts, nb, q)
		if c.tally == 0 {
			return float32(math.NaN())
		}
		if c.istar == 0 {
			return 0.0
		}
		if c.istar == nb-1 {
			return float32(nb - 1)
		}
		qe := (float32(c.tally) + 1) * q
		if float32(c.total) >= qe {
			return float32(c.istar)
		}
		j := nextPopulated(counts, nb, c.istar)
		if j == nb-1 {
			return float32(nb - 1)
		}
		return (1-c.qf)*float32(c.istar) + c.qf*float32(j)
	}
}

func fptBinCenters(q float32) Evaluator {
	return func(counts []int64, nb int) float32 {
		c := cumulate(counts, nb, q)
		if c.tally == 0 {
			return float32(math.NaN())
		}
		if c.istar == 0 {
			return 0.5
		}
		if c.istar == nb-1 {
			return float32(nb) - 1.5
		}
		qe := (float32(c.tally) + 1) * q
		if float32(c.total) >= qe {
			return float32(c.istar) + 0.5
		}
		j := nextPopulated(counts, nb, c.istar)
		if j == nb-1 {
			return float32(nb) - 1.5
		}
		return 0.5 + (1-c.qf)*float32(c.istar) + c.qf*float32(j)
	}
}

func fptInterpolate(q float32) Evaluator {
	return func(counts []int64, nb int) float32 {
		c := cumulate(counts, nb, q)
		if c.tally == 0 {
			return float32(math.NaN())
		}
		if c.istar == 0 {
			return 0.5
		}
		if c.istar == nb-1 {
			return float32(nb) - 1.5
		}
		qe := (float32(c.tally) + 1) * q
		ki := counts[c.istar]
		if float32(c.total) >= qe {
			return float32(c.istar) + 1 - (float32(c.total)-qe)/float32(ki)
		}
		loEff := float32(c.istar) + (float32(ki)-0.5)/float32(ki)
		j := nextPopulated(counts, nb, c.istar)
		if j == nb-1 {
			return float32(nb) - 1.5
		}
		hiEff := float32(j) + 0.5/float32(counts[j])
		return (1-c.qf)*loEff + c.qf*hiEff
	}
}
