// lfpplot renders the battery simulation CSV as three stacked panels
// (terminal voltage, SOC, hysteresis state) into simulation_plot.png and shows it.
//
// With no arguments it reads battery_simulation.csv from the working directory.
// A missing CSV prints a hint and exits 0; any other failure exits 1.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iafilius/LfpBatteryPlot/src/config"
	"github.com/iafilius/LfpBatteryPlot/src/logx"
	"github.com/iafilius/LfpBatteryPlot/src/runner"
	"github.com/iafilius/LfpBatteryPlot/src/viewer"
	"github.com/iafilius/LfpBatteryPlot/src/viewer/fyneview"
)

// version is injected at build time via ldflags
var version = "dev"

// newViewer is swapped in tests so no window is opened.
var newViewer = func(cfg *config.Config) viewer.Viewer {
	return &fyneview.Fyne{ExportName: filepath.Base(cfg.Output)}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Logger().WithError(err).Error("lfpplot failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lfpplot",
		Short: "Plot LFP battery simulation results",
		Long: `lfpplot reads the CSV written by the battery simulation (columns time,
voltage, soc, hysteresis) and renders voltage, state of charge and hysteresis
state against time into one PNG, then shows it in a window.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logx.SetLogLevel(cfg.LogLevel)
			logx.Debugf("config: input=%s output=%s renderer=%s dpi=%g show=%t", cfg.Input, cfg.Output, cfg.Renderer, cfg.DPI, cfg.Show)

			var v viewer.Viewer = viewer.Nop{}
			if cfg.Show {
				v = newViewer(cfg)
			}
			r := runner.New(cfg, v)
			r.Stdout = cmd.OutOrStdout()
			return r.Run()
		},
	}

	f := cmd.Flags()
	f.String("config", "", "Optional YAML config file")
	f.String("input", config.DefaultInput, "Simulation CSV to read")
	f.String("output", config.DefaultOutput, "PNG file to write")
	f.String("renderer", config.DefaultRenderer, "Rendering backend (gonum|gochart)")
	f.Float64("dpi", config.DefaultDPI, "Output resolution in dots per inch")
	f.Bool("no-show", false, "Do not open the interactive window")
	f.Bool("annotate", false, "Stamp the source file and row count on the image")
	f.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	return cmd
}

// resolveConfig layers defaults, the optional config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.Changed("input") {
		cfg.Input, _ = f.GetString("input")
	}
	if f.Changed("output") {
		cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("renderer") {
		cfg.Renderer, _ = f.GetString("renderer")
	}
	if f.Changed("dpi") {
		cfg.DPI, _ = f.GetFloat64("dpi")
	}
	if f.Changed("no-show") {
		noShow, _ := f.GetBool("no-show")
		cfg.Show = !noShow
	}
	if f.Changed("annotate") {
		cfg.Annotate, _ = f.GetBool("annotate")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
