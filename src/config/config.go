// Package config holds the plotter configuration: built-in defaults, an optional
// YAML file on top of them, and validation.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/LfpBatteryPlot/src/logx"
	"github.com/iafilius/LfpBatteryPlot/src/render"
)

// Config holds all options for a plotting run. The zero-argument CLI uses Default().
type Config struct {
	Input     string `yaml:"input"`      // CSV produced by the simulation
	Output    string `yaml:"output"`     // PNG written on every run
	BuildStep string `yaml:"build_step"` // command suggested when the CSV is missing

	Title     string  `yaml:"title"`
	WidthIn   float64 `yaml:"width_in"`
	HeightIn  float64 `yaml:"height_in"`
	DPI       float64 `yaml:"dpi"`
	LineWidth float64 `yaml:"line_width"`

	Renderer string `yaml:"renderer"` // "gonum" or "gochart"
	Show     bool   `yaml:"show"`     // open the interactive window
	Annotate bool   `yaml:"annotate"` // stamp source file and row count on the image

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		BuildStep: DefaultBuildStep,
		Title:     DefaultTitle,
		WidthIn:   DefaultWidthIn,
		HeightIn:  DefaultHeightIn,
		DPI:       DefaultDPI,
		LineWidth: DefaultLineWidth,
		Renderer:  DefaultRenderer,
		Show:      true,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes the renderer and log level names.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if !positive(c.WidthIn) || !positive(c.HeightIn) {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %gx%g in", c.WidthIn, c.HeightIn))
	}
	// Renderers draw at whole DPI, so anything that rounds to zero is unusable.
	if !positive(c.DPI) || math.Round(c.DPI) < 1 {
		errs = append(errs, fmt.Errorf("dpi must be at least 1, got %g", c.DPI))
	}
	if !positive(c.LineWidth) {
		errs = append(errs, fmt.Errorf("line width must be positive, got %g", c.LineWidth))
	}
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	if _, err := render.Lookup(c.Renderer); err != nil {
		errs = append(errs, err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if !logx.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
