package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/LfpBatteryPlot/src/simdata"
)

func TestLookup(t *testing.T) {
	r, err := Lookup("gonum")
	require.NoError(t, err)
	assert.Equal(t, "gonum", r.Name())

	r, err = Lookup(" GoChart ")
	require.NoError(t, err)
	assert.Equal(t, "gochart", r.Name())

	_, err = Lookup("svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gochart, gonum")

	assert.Equal(t, []string{"gochart", "gonum"}, Names())
}

func TestRenderers_ProducePNGOfFigureSize(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, err := Lookup(name)
			require.NoError(t, err)
			fig := Build(sampleTable(40), testOptions())

			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, fig))
			require.NotZero(t, buf.Len())

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			w, h := fig.PixelSize()
			assert.InDelta(t, w, img.Bounds().Dx(), 1)
			assert.InDelta(t, h, img.Bounds().Dy(), 1)
		})
	}
}

func TestRenderers_TwoRowScenario(t *testing.T) {
	tbl := &simdata.Table{
		Time:       []float64{0, 10},
		Voltage:    []float64{3.65, 3.60},
		SOC:        []float64{1.0, 0.98},
		Hysteresis: []float64{0.0, 0.1},
	}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			raster, err := Rasterize(r, Build(tbl, testOptions()))
			require.NoError(t, err)
			assert.NotEmpty(t, raster.PNG)
			assert.NotNil(t, raster.Image)
		})
	}
}

func TestRenderers_SingleRow(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			_, err := Rasterize(r, Build(sampleTable(1), testOptions()))
			require.NoError(t, err)
		})
	}
}

func TestRenderers_GapsAndEmptyTable(t *testing.T) {
	gappy := sampleTable(6)
	gappy.SOC[2] = math.NaN()
	gappy.Voltage[0] = math.NaN()
	gappy.Hysteresis[3], gappy.Hysteresis[4] = math.NaN(), math.NaN()
	tables := map[string]*simdata.Table{
		"gaps":  gappy,
		"empty": {},
	}
	for name, tbl := range tables {
		for _, rn := range Names() {
			t.Run(name+"/"+rn, func(t *testing.T) {
				r, _ := Lookup(rn)
				fig := Build(tbl, testOptions())
				raster, err := Rasterize(r, fig)
				require.NoError(t, err)
				w, h := fig.PixelSize()
				assert.InDelta(t, w, raster.Image.Bounds().Dx(), 1)
				assert.InDelta(t, h, raster.Image.Bounds().Dy(), 1)
			})
		}
	}
}

func TestPanel_Runs(t *testing.T) {
	nan := math.NaN()
	p := Panel{
		X: []float64{0, 1, 2, 3, 4, 5, 6},
		Y: []float64{nan, 1, 2, nan, 4, nan, 6},
	}
	assert.Equal(t, [][2]int{{1, 3}, {4, 5}, {6, 7}}, p.runs())
	assert.Empty(t, (&Panel{}).runs())
}

func TestBuild_RoundsDPI(t *testing.T) {
	o := testOptions()
	o.DPI = 60.4
	fig := Build(sampleTable(3), o)
	assert.Equal(t, 60.0, fig.DPI)

	for _, rn := range Names() {
		t.Run(rn, func(t *testing.T) {
			r, _ := Lookup(rn)
			raster, err := Rasterize(r, fig)
			require.NoError(t, err)
			w, h := fig.PixelSize()
			assert.InDelta(t, w, raster.Image.Bounds().Dx(), 1)
			assert.InDelta(t, h, raster.Image.Bounds().Dy(), 1)
		})
	}
}

func TestChartSeries_PadsEmptyPanel(t *testing.T) {
	fig := Build(&simdata.Table{}, testOptions())
	pn := &fig.Panels[0]
	ymin, _ := pn.yRange()
	series := chartSeries(fig, pn, ymin, 1)
	require.Len(t, series, 1)
	cs, ok := series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.False(t, cs.Style.Hidden)
	assert.Zero(t, cs.Style.StrokeColor.A)
	assert.Equal(t, []float64{fig.XMin, fig.XMax}, cs.XValues)

	tbl := sampleTable(5)
	tbl.Voltage[2] = math.NaN()
	fig = Build(tbl, testOptions())
	assert.Len(t, chartSeries(fig, &fig.Panels[0], 0, 1), 2)
}

func TestRaster_Annotate(t *testing.T) {
	raster, err := Rasterize(GonumRenderer{}, Build(sampleTable(10), testOptions()))
	require.NoError(t, err)
	before := append([]byte(nil), raster.PNG...)

	require.NoError(t, raster.Annotate(""))
	assert.Equal(t, before, raster.PNG)

	require.NoError(t, raster.Annotate("source: battery_simulation.csv (10 rows)"))
	assert.NotEqual(t, before, raster.PNG)
	img, err := png.Decode(bytes.NewReader(raster.PNG))
	require.NoError(t, err)
	assert.Equal(t, raster.Image.Bounds(), img.Bounds())
}

func TestDrawCaption_DarkensCorner(t *testing.T) {
	raster, err := Rasterize(ChartRenderer{}, Build(sampleTable(10), testOptions()))
	require.NoError(t, err)
	b := raster.Image.Bounds()

	out := DrawCaption(raster.Image, "source: x.csv (10 rows)")
	r, g, bl, _ := out.At(b.Min.X+4, b.Max.Y-8).RGBA()
	// white background becomes the translucent dark band
	assert.Less(t, r+g+bl, uint32(3*0x8000))
	assert.Same(t, raster.Image, DrawCaption(raster.Image, "  "))
}

func TestPanelChart_MajorGridOnly(t *testing.T) {
	fig := Build(sampleTable(10), testOptions())
	ch := panelChart(fig, &fig.Panels[1], 480, 120)
	assert.True(t, ch.XAxis.GridMinorStyle.Hidden)
	assert.True(t, ch.YAxis.GridMinorStyle.Hidden)
	assert.False(t, ch.XAxis.GridMajorStyle.Hidden)
	assert.False(t, ch.YAxis.GridMajorStyle.Hidden)
}
