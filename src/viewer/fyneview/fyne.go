// Package fyneview shows the figure in a Fyne desktop window.
package fyneview

import (
	"image"
	"image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/iafilius/LfpBatteryPlot/src/logx"
	"github.com/iafilius/LfpBatteryPlot/src/viewer"
)

const (
	defaultAppID  = "com.lfpplot.viewer"
	defaultWidth  = 1100
	defaultHeight = 800
	minImageW     = 400
	minImageH     = 300
)

// Fyne implements viewer.Viewer. It opens a desktop window with the figure and runs the event loop until it is closed.
type Fyne struct {
	AppID      string
	ExportName string // file name proposed by File > Export PNG
}

func (f *Fyne) Show(title string, img image.Image, reload viewer.ReloadFunc) error {
	id := f.AppID
	if id == "" {
		id = defaultAppID
	}
	a := app.NewWithID(id)
	v := newWindow(a, title, img, reload, f.ExportName)
	logx.Debugf("[viewer] showing %q", title)
	v.win.ShowAndRun()
	return nil
}

type window struct {
	app        fyne.App
	win        fyne.Window
	image      *canvas.Image
	reload     viewer.ReloadFunc
	exportName string
}

func newWindow(a fyne.App, title string, img image.Image, reload viewer.ReloadFunc, exportName string) *window {
	w := a.NewWindow(title)
	v := &window{app: a, win: w, reload: reload, exportName: exportName}
	if v.exportName == "" {
		v.exportName = "simulation_plot.png"
	}

	v.image = canvas.NewImageFromImage(img)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleSmooth
	v.image.SetMinSize(fyne.NewSize(minImageW, minImageH))
	w.SetContent(container.NewScroll(v.image))

	prefs := a.Preferences()
	w.Resize(fyne.NewSize(
		float32(prefs.FloatWithFallback("windowWidth", defaultWidth)),
		float32(prefs.FloatWithFallback("windowHeight", defaultHeight)),
	))
	v.buildMenus()
	w.SetCloseIntercept(v.close)
	return v
}

func (v *window) buildMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Reload", v.doReload),
		fyne.NewMenuItem("Export PNG…", v.exportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", v.close),
	)
	v.win.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := v.win.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { v.doReload() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { v.close() })
	}
}

// doReload re-renders from disk; failures are shown in a dialog and keep the old image.
func (v *window) doReload() {
	if v.reload == nil {
		return
	}
	img, err := v.reload()
	if err != nil {
		logx.Warnf("[viewer] reload failed: %v", err)
		dialog.ShowError(err, v.win)
		return
	}
	v.image.Image = img
	v.image.Refresh()
}

func (v *window) exportPNG() {
	if v.image == nil || v.image.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", v.win)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, v.image.Image); err != nil {
			dialog.ShowError(err, v.win)
		}
	}, v.win)
	fs.SetFileName(v.exportName)
	fs.Show()
}

func (v *window) close() {
	v.savePrefs()
	v.win.Close()
}

func (v *window) savePrefs() {
	sz := v.win.Canvas().Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return
	}
	prefs := v.app.Preferences()
	prefs.SetFloat("windowWidth", float64(sz.Width))
	prefs.SetFloat("windowHeight", float64(sz.Height))
}
