package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartRenderer draws each panel as its own go-chart chart and stacks the
// resulting images top to bottom.
type ChartRenderer struct{}

func (ChartRenderer) Name() string { return "gochart" }

func (ChartRenderer) Render(w io.Writer, fig *Figure) error {
	n := len(fig.Panels)
	if n == 0 {
		return fmt.Errorf("figure has no panels")
	}
	width, height := fig.PixelSize()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := 0
	for i := range fig.Panels {
		h := height / n
		if i == n-1 {
			h = height - y
		}
		img, err := renderChartPanel(fig, &fig.Panels[i], width, h)
		if err != nil {
			return fmt.Errorf("panel %d (%s): %w", i+1, fig.Panels[i].YLabel, err)
		}
		draw.Draw(out, image.Rect(0, y, width, y+h), img, img.Bounds().Min, draw.Over)
		y += h
	}
	return png.Encode(w, out)
}

func renderChartPanel(fig *Figure, pn *Panel, width, height int) (image.Image, error) {
	ch := panelChart(fig, pn, width, height)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// panelChart configures one panel. Only major gridlines are drawn.
func panelChart(fig *Figure, pn *Panel, width, height int) chart.Chart {
	ymin, ymax := pn.yRange()

	// Stroke widths are in pixels here, so convert from points.
	px := func(pt float64) float64 { return pt * fig.DPI / 72 }

	padTop := int(px(8))
	if pn.Title != "" {
		padTop = int(px(26))
	}
	return chart.Chart{
		Title:      pn.Title,
		TitleStyle: chart.Style{FontSize: 12},
		Width:      width,
		Height:     height,
		DPI:        fig.DPI,
		Background: chart.Style{Padding: chart.Box{Top: padTop, Left: int(px(10)), Right: int(px(8)), Bottom: int(px(6))}},
		XAxis: chart.XAxis{
			Name:           pn.XLabel,
			Range:          &chart.ContinuousRange{Min: fig.XMin, Max: fig.XMax},
			Ticks:          chartTicks(fig.XMin, fig.XMax, 8),
			GridMajorStyle: gridStyle(pn, px(0.8)),
			GridMinorStyle: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Name:           pn.YLabel,
			Range:          &chart.ContinuousRange{Min: ymin, Max: ymax},
			Ticks:          chartTicks(ymin, ymax, 6),
			GridMajorStyle: gridStyle(pn, px(0.8)),
			GridMinorStyle: chart.Style{Hidden: true},
		},
		Series: chartSeries(fig, pn, ymin, px(pn.LineWidth)),
	}
}

// chartSeries returns one series per run of finite samples. A single-sample run is
// padded to two x values the way go-chart requires. go-chart refuses a chart with no
// visible series, so a panel without samples gets a transparent placeholder line.
func chartSeries(fig *Figure, pn *Panel, ymin, width float64) []chart.Series {
	style := chart.Style{StrokeColor: toDrawing(pn.Color), StrokeWidth: width}
	var series []chart.Series
	for _, r := range pn.runs() {
		xs, ys := pn.X[r[0]:r[1]], pn.Y[r[0]:r[1]]
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, chart.ContinuousSeries{Name: pn.YLabel, XValues: xs, YValues: ys, Style: style})
	}
	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    pn.YLabel,
			XValues: []float64{fig.XMin, fig.XMax},
			YValues: []float64{ymin, ymin},
			Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 0}, StrokeWidth: width},
		})
	}
	return series
}

func chartTicks(min, max float64, n int) []chart.Tick {
	vals := BuildNumericTicks(min, max, n)
	step := TickStep(min, max, n)
	ticks := make([]chart.Tick, 0, len(vals))
	for _, v := range vals {
		ticks = append(ticks, chart.Tick{Value: v, Label: FormatTick(v, step)})
	}
	return ticks
}

func gridStyle(pn *Panel, width float64) chart.Style {
	if !pn.Grid {
		return chart.Style{Hidden: true}
	}
	return chart.Style{StrokeColor: toDrawing(ColorGrid), StrokeWidth: width}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
