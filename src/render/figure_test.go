package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/LfpBatteryPlot/src/simdata"
)

// sampleTable mimics a short charge/rest run.
func sampleTable(n int) *simdata.Table {
	t := &simdata.Table{Source: "battery_simulation.csv"}
	for i := 0; i < n; i++ {
		t.Time = append(t.Time, float64(i*10))
		t.Voltage = append(t.Voltage, 3.30+0.001*float64(i))
		t.SOC = append(t.SOC, 1.0-0.01*float64(i))
		t.Hysteresis = append(t.Hysteresis, 0.02*float64(i))
	}
	return t
}

func testOptions() Options {
	return Options{Title: "LFP Battery Simulation", WidthIn: 8, HeightIn: 6, DPI: 60, LineWidth: 1.5}
}

func TestBuild_PanelsShareTimeAxis(t *testing.T) {
	tbl := sampleTable(25)
	fig := Build(tbl, testOptions())
	require.Len(t, fig.Panels, 3)

	for i, p := range fig.Panels {
		require.Len(t, p.X, tbl.Len(), "panel %d", i)
		require.Len(t, p.Y, tbl.Len(), "panel %d", i)
		// same backing array, not a copy
		assert.Same(t, &tbl.Time[0], &p.X[0], "panel %d", i)
	}
	for j := 0; j < tbl.Len(); j++ {
		for i := 1; i < len(fig.Panels); i++ {
			assert.Equal(t, fig.Panels[0].X[j], fig.Panels[i].X[j])
		}
	}
	assert.Equal(t, tbl.Voltage, fig.Panels[0].Y)
	assert.Equal(t, tbl.SOC, fig.Panels[1].Y)
	assert.Equal(t, tbl.Hysteresis, fig.Panels[2].Y)
}

func TestBuild_Labels(t *testing.T) {
	fig := Build(sampleTable(3), testOptions())

	top, mid, bottom := fig.Panels[0], fig.Panels[1], fig.Panels[2]
	assert.Equal(t, "LFP Battery Simulation", top.Title)
	assert.Equal(t, "Terminal Voltage (V)", top.YLabel)
	assert.Empty(t, top.XLabel)
	assert.Equal(t, "SOC", mid.YLabel)
	assert.Empty(t, mid.Title)
	assert.Equal(t, "Hysteresis State (h)", bottom.YLabel)
	assert.Equal(t, "Time (s)", bottom.XLabel)

	for _, p := range fig.Panels {
		assert.True(t, p.Grid)
		assert.Equal(t, 1.5, p.LineWidth)
	}
	assert.Equal(t, ColorVoltage, top.Color)
	assert.Equal(t, ColorSOC, mid.Color)
	assert.Equal(t, ColorHysteresis, bottom.Color)
}

func TestBuild_SharedXRange(t *testing.T) {
	fig := Build(sampleTable(11), testOptions()) // time 0..100
	assert.InDelta(t, -5.0, fig.XMin, 1e-9)
	assert.InDelta(t, 105.0, fig.XMax, 1e-9)

	w, h := fig.PixelSize()
	assert.Equal(t, 480, w)
	assert.Equal(t, 360, h)
}
