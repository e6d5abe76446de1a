package config

// Central place for the plotter's file names, labels and figure geometry.

const (
	DefaultInput     = "battery_simulation.csv"
	DefaultOutput    = "simulation_plot.png"
	DefaultBuildStep = "make run"

	DefaultTitle = "LFP Battery Simulation: Charge → Rest → Discharge"

	// Figure geometry in inches at DefaultDPI (2100x1500 px).
	DefaultWidthIn  = 14.0
	DefaultHeightIn = 10.0
	DefaultDPI      = 150.0

	DefaultLineWidth = 1.5 // points

	DefaultRenderer = "gonum"
	DefaultLogLevel = "info"
)
