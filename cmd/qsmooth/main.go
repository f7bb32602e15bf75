// Command qsmooth wires argument parsing, progress display, and file I/O
// around one smoother.Smooth call: bootstrap the app, install graceful
// shutdown, load an image, smooth it, save the result.
package main

import (
	"fmt"
	"time"

	"github.com/gookit/gcli/v2"

	"quantsmooth/internal/config"
	"quantsmooth/internal/imagearray"
	"quantsmooth/internal/logger"
	"quantsmooth/internal/progress"
	"quantsmooth/internal/shutdown"
	"quantsmooth/internal/smoother"
)

func main() {
	app := gcli.NewApp()
	app.Name = "qsmooth"
	app.Version = "1.0.0"
	app.Description = "sliding-window histogram quantile smoother for 2-D gridded data"

	cfg := config.Default()

	cmd := &gcli.Command{
		Name: "smooth",
		Desc: "smooth an image with a sliding-window quantile filter",
		Config: func(c *gcli.Command) {
			c.StrOpt(&cfg.Input, "input", "i", "", "input image path")
			c.StrOpt(&cfg.Output, "output", "o", "", "output image path")
			c.IntOpt(&cfg.HalfWidthX, "hx", "x", cfg.HalfWidthX, "kernel half-width in x")
			c.IntOpt(&cfg.HalfWidthY, "hy", "y", cfg.HalfWidthY, "kernel half-width in y")
			c.Float64Opt(&cfg.Quantile, "quantile", "q", cfg.Quantile, "target quantile in (0,1)")
			c.Float64Opt(&cfg.Hmin, "hmin", "", cfg.Hmin, "lower bound of the in-range histogram")
			c.Float64Opt(&cfg.Hmax, "hmax", "", cfg.Hmax, "upper bound of the in-range histogram")
			c.IntOpt(&cfg.Bins, "bins", "b", cfg.Bins, "number of in-range histogram bins")
			c.StrOpt(&cfg.Strategy, "strategy", "s", cfg.Strategy,
				"integer_exact | fpt_bin_centers | fpt_interpolate")
			c.IntOpt(&cfg.VerboseLevel, "verbose", "v", 0, "progress verbosity level")
			c.BoolOpt(&cfg.TimingFlag, "timing", "t", false, "log elapsed time per row batch")
		},
		Func: func(c *gcli.Command, args []string) error {
			return run(cfg)
		},
	}
	app.Add(cmd)
	app.Run(nil)
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("qsmooth: %w", err)
	}

	level := logger.InfoLevel
	if cfg.VerboseLevel > 0 {
		level = logger.DebugLevel
	}
	log := logger.NewConsole(level)

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Listen()

	opts, err := cfg.SmootherOptions()
	if err != nil {
		return fmt.Errorf("qsmooth: %w", err)
	}

	in, err := imagearray.Load(cfg.Input)
	if err != nil {
		return fmt.Errorf("qsmooth: %w", err)
	}

	var prog *progress.Reporter
	if cfg.TimingFlag || cfg.VerboseLevel > 0 {
		prog = progress.New(func(row, total int, elapsed time.Duration) {
			log.Info("smoothing progress", map[string]interface{}{
				"row": row, "total": total, "elapsed": elapsed.String(),
			})
		}, 200*time.Millisecond)
	}

	out, err := smoother.Smooth(shutdownMgr.Context(), in, opts, log, prog)
	if err != nil {
		return fmt.Errorf("qsmooth: %w", err)
	}

	if err := imagearray.Save(cfg.Output, out); err != nil {
		return fmt.Errorf("qsmooth: %w", err)
	}

	log.Info("done", map[string]interface{}{"output": cfg.Output})
	return nil
}
