// Package runner implements one plotting run: load the simulation CSV, build and
// rasterize the figure, write the PNG, show it, and confirm on stdout.
package runner

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/LfpBatteryPlot/src/config"
	"github.com/iafilius/LfpBatteryPlot/src/logx"
	"github.com/iafilius/LfpBatteryPlot/src/render"
	"github.com/iafilius/LfpBatteryPlot/src/simdata"
	"github.com/iafilius/LfpBatteryPlot/src/viewer"
)

// ErrInputMissing marks a run whose input CSV does not exist.
var ErrInputMissing = errors.New("input file missing")

// Runner holds what a run needs. Stdout receives the two user-facing messages.
type Runner struct {
	Config *config.Config
	Viewer viewer.Viewer
	Stdout io.Writer
}

// New returns a runner writing to os.Stdout. A nil viewer means no display.
func New(cfg *config.Config, v viewer.Viewer) *Runner {
	return &Runner{Config: cfg, Viewer: v, Stdout: os.Stdout}
}

// Run performs a single run. A missing input file is reported on stdout and is
// not an error; every other failure is returned.
func (r *Runner) Run() error {
	cfg := r.Config
	rend, err := render.Lookup(cfg.Renderer)
	if err != nil {
		return err
	}

	raster, err := r.plot(rend)
	if errors.Is(err, ErrInputMissing) {
		fmt.Fprintf(r.Stdout, "%s not found. Run '%s' first.\n", filepath.Base(cfg.Input), cfg.BuildStep)
		return nil
	}
	if err != nil {
		return err
	}

	v := r.Viewer
	if v == nil || !cfg.Show {
		v = viewer.Nop{}
	}
	reload := func() (image.Image, error) {
		raster, err := r.plot(rend)
		if err != nil {
			return nil, err
		}
		return raster.Image, nil
	}
	if err := v.Show(cfg.Title, raster.Image, reload); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	fmt.Fprintf(r.Stdout, "Plot generated: %s\n", cfg.Output)
	return nil
}

// plot loads the table, renders it and writes the output file.
func (r *Runner) plot(rend render.Renderer) (*render.Raster, error) {
	cfg := r.Config

	start := time.Now()
	tbl, err := simdata.Load(cfg.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrInputMissing, err)
	}
	if err != nil {
		return nil, err
	}
	logx.TimeTrack(start, "load")
	logx.Infof("loaded %d rows from %s", tbl.Len(), cfg.Input)
	if n := tbl.Len(); n > 0 {
		logx.Debugf("first sample %+v, last sample %+v", tbl.Record(0), tbl.Record(n-1))
	}

	start = time.Now()
	fig := render.Build(tbl, render.Options{
		Title:     cfg.Title,
		WidthIn:   cfg.WidthIn,
		HeightIn:  cfg.HeightIn,
		DPI:       cfg.DPI,
		LineWidth: cfg.LineWidth,
	})
	w, h := fig.PixelSize()
	logx.Debugf("figure %dx%d px at %g dpi", w, h, fig.DPI)
	raster, err := render.Rasterize(rend, fig)
	if err != nil {
		return nil, err
	}
	if cfg.Annotate {
		if err := raster.Annotate(caption(tbl)); err != nil {
			return nil, err
		}
	}
	logx.TimeTrack(start, rend.Name()+" render")

	if err := os.WriteFile(cfg.Output, raster.PNG, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	logx.Debugf("wrote %d bytes to %s", len(raster.PNG), cfg.Output)
	return raster, nil
}

func caption(t *simdata.Table) string {
	return fmt.Sprintf("source: %s (%d rows)", filepath.Base(t.Source), t.Len())
}
