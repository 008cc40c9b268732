package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFunction   = flag.String("f", "", "Initial function, e.g. \"x*x + y*y\"")
	flagDialect    = flag.String("dialect", "", "Function dialect: auto, expr or lisp")
	flagXMin       = flag.Float64("xmin", 0, "Initial domain minimum x")
	flagXMax       = flag.Float64("xmax", 0, "Initial domain maximum x")
	flagYMin       = flag.Float64("ymin", 0, "Initial domain minimum y")
	flagYMax       = flag.Float64("ymax", 0, "Initial domain maximum y")
	flagResolution = flag.Int("resolution", 0, "Grid segments per side")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFunction != "" {
		cfg.Plot.Function = *flagFunction
	}
	if *flagDialect != "" {
		cfg.Plot.Dialect = *flagDialect
	}
	// Domain bounds may legitimately be zero, so only explicit flags apply.
	if set["xmin"] {
		cfg.Plot.Domain.XMin = *flagXMin
	}
	if set["xmax"] {
		cfg.Plot.Domain.XMax = *flagXMax
	}
	if set["ymin"] {
		cfg.Plot.Domain.YMin = *flagYMin
	}
	if set["ymax"] {
		cfg.Plot.Domain.YMax = *flagYMax
	}
	if *flagResolution > 0 {
		cfg.Plot.Resolution = *flagResolution
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
