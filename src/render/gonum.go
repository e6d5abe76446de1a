package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GonumRenderer draws the panels as aligned gonum/plot tiles on one canvas.
type GonumRenderer struct{}

func (GonumRenderer) Name() string { return "gonum" }

func (GonumRenderer) Render(w io.Writer, fig *Figure) error {
	if len(fig.Panels) == 0 {
		return fmt.Errorf("figure has no panels")
	}
	plots := make([][]*plot.Plot, len(fig.Panels))
	for i := range fig.Panels {
		p, err := gonumPanel(fig, &fig.Panels[i])
		if err != nil {
			return fmt.Errorf("panel %d (%s): %w", i+1, fig.Panels[i].YLabel, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(fig.WidthIn)*vg.Inch, vg.Length(fig.HeightIn)*vg.Inch),
		vgimg.UseDPI(int(math.Round(fig.DPI))),
		vgimg.UseBackgroundColor(color.White),
	)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(14),
		PadY:      vg.Points(10),
	}
	// Align gives every tile the same data-area edges so the time axes line up.
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}

func gonumPanel(fig *Figure, pn *Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.Title
	p.X.Label.Text = pn.XLabel
	p.Y.Label.Text = pn.YLabel

	if pn.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = ColorGrid
		g.Horizontal.Color = ColorGrid
		p.Add(g)
	}

	// plotter.NewLine rejects NaN, so each run of finite samples is its own line.
	for _, r := range pn.runs() {
		xys := make(plotter.XYs, 0, r[1]-r[0])
		for i := r[0]; i < r[1]; i++ {
			xys = append(xys, plotter.XY{X: pn.X[i], Y: pn.Y[i]})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = pn.Color
		line.LineStyle.Width = vg.Points(pn.LineWidth)
		p.Add(line)
	}

	// Fixed ranges after Add, which would otherwise autoscale each panel on its own.
	p.X.Min, p.X.Max = fig.XMin, fig.XMax
	p.Y.Min, p.Y.Max = pn.yRange()
	p.X.Tick.Marker = numericTicker{n: 8}
	p.Y.Tick.Marker = numericTicker{n: 6}
	return p, nil
}

// numericTicker places major ticks with BuildNumericTicks.
type numericTicker struct{ n int }

func (t numericTicker) Ticks(min, max float64) []plot.Tick {
	vals := BuildNumericTicks(min, max, t.n)
	step := TickStep(min, max, t.n)
	out := make([]plot.Tick, 0, len(vals))
	for _, v := range vals {
		out = append(out, plot.Tick{Value: v, Label: FormatTick(v, step)})
	}
	return out
}
