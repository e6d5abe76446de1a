// Package render turns a simulation table into the stacked three-panel figure and
// rasterizes it to PNG with one of the available backends.
package render

import (
	"image/color"
	"math"

	"github.com/iafilius/LfpBatteryPlot/src/simdata"
)

// Axis labels and captions of the three panels.
const (
	LabelVoltage    = "Terminal Voltage (V)"
	LabelSOC        = "SOC"
	LabelHysteresis = "Hysteresis State (h)"
	LabelTime       = "Time (s)"
)

// axisMargin mirrors the usual 5% autoscale margin on both axes.
const axisMargin = 0.05

// Line colours: blue, green, red.
var (
	ColorVoltage    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ColorSOC        = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	ColorHysteresis = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorGrid       = color.RGBA{R: 176, G: 176, B: 176, A: 255}
)

// Panel is one subplot: a single line of Y against the shared X.
type Panel struct {
	Title     string
	XLabel    string
	YLabel    string
	X         []float64
	Y         []float64
	Color     color.RGBA
	LineWidth float64 // points
	Grid      bool
}

// Figure is the rendered chart: panels stacked top to bottom over one x range.
type Figure struct {
	Title    string
	WidthIn  float64
	HeightIn float64
	DPI      float64
	XMin     float64
	XMax     float64
	Panels   []Panel
}

// Options sets the figure geometry and caption.
type Options struct {
	Title     string
	WidthIn   float64
	HeightIn  float64
	DPI       float64
	LineWidth float64
}

// Build lays out voltage, SOC and hysteresis against time. Every panel shares the
// table's Time slice, so x values line up index for index.
func Build(t *simdata.Table, o Options) *Figure {
	xmin, xmax, ok := DataRange(t.Time)
	if !ok {
		xmin, xmax = 0, 1
	}
	xmin, xmax = PadRange(xmin, xmax, axisMargin)

	panel := func(y []float64, label string, c color.RGBA) Panel {
		return Panel{X: t.Time, Y: y, YLabel: label, Color: c, LineWidth: o.LineWidth, Grid: true}
	}
	voltage := panel(t.Voltage, LabelVoltage, ColorVoltage)
	voltage.Title = o.Title
	soc := panel(t.SOC, LabelSOC, ColorSOC)
	hyst := panel(t.Hysteresis, LabelHysteresis, ColorHysteresis)
	hyst.XLabel = LabelTime

	return &Figure{
		Title:    o.Title,
		WidthIn:  o.WidthIn,
		HeightIn: o.HeightIn,
		DPI:      math.Round(o.DPI),
		XMin:     xmin,
		XMax:     xmax,
		Panels:   []Panel{voltage, soc, hyst},
	}
}

// PixelSize is the raster size at the figure DPI.
func (f *Figure) PixelSize() (int, int) {
	return int(math.Round(f.WidthIn * f.DPI)), int(math.Round(f.HeightIn * f.DPI))
}

// yRange is the padded value range of a panel.
func (p *Panel) yRange() (float64, float64) {
	min, max, ok := DataRange(p.Y)
	if !ok {
		return 0, 1
	}
	return PadRange(min, max, axisMargin)
}

// runs splits a panel into [start, end) index ranges of consecutive finite points.
// A missing sample ends a run, so the line is drawn with a gap there.
func (p *Panel) runs() [][2]int {
	var out [][2]int
	start := -1
	for i := range p.X {
		ok := finite(p.X[i]) && finite(p.Y[i])
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			out = append(out, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(p.X)})
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
