// Package config is the typed, validated settings layer between the CLI
// and the smoother: a fixed struct rather than a dynamic parameter bag,
// since this tool's parameter set never varies by algorithm.
package config

import (
	"fmt"

	"quantsmooth/internal/quantile"
	"quantsmooth/internal/smoother"
)

// Config is the full set of external parameters, plus the ambient
// verbosity/timing flags handed to the progress collaborator.
type Config struct {
	Input  string
	Output string

	HalfWidthX int
	HalfWidthY int
	Quantile   float64
	Hmin       float64
	Hmax       float64
	Bins       int
	Strategy   string

	VerboseLevel int
	TimingFlag   bool
}

// Default returns the conventional starting point: median smoothing over a
// 5x5 window, 256 bins spanning an 8-bit range.
func Default() Config {
	return Config{
		HalfWidthX: 2,
		HalfWidthY: 2,
		Quantile:   0.5,
		Hmin:       0,
		Hmax:       256,
		Bins:       256,
		Strategy:   "fpt_interpolate",
	}
}

// Validate checks the CLI-facing fields this package owns (paths, strategy
// name) before handing the rest to smoother.Options.Validate.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	if _, err := quantile.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	_, err := c.SmootherOptions()
	return err
}

// SmootherOptions converts the CLI-facing Config into smoother.Options,
// narrowing to float32 at the boundary since the core never deals in wider
// types.
func (c Config) SmootherOptions() (smoother.Options, error) {
	strat, err := quantile.ParseStrategy(c.Strategy)
	if err != nil {
		return smoother.Options{}, err
	}
	opts := smoother.Options{
		HalfWidthX: c.HalfWidthX,
		HalfWidthY: c.HalfWidthY,
		Quantile:   float32(c.Quantile),
		Hmin:       float32(c.Hmin),
		Hmax:       float32(c.Hmax),
		Bins:       c.Bins,
		Strategy:   strat,
	}
	if err := opts.Validate(); err != nil {
		return smoother.Options{}, err
	}
	return opts, nil
}
