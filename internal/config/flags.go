package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagScene      = flag.String("scene", "", "Scene file to load (.yaml, .json, .toml)")
	flagParam1     = flag.Int("param1", 0, "Tessellation parameter 1")
	flagParam2     = flag.Int("param2", 0, "Tessellation parameter 2")
	flagShadows    = flag.Bool("shadows", true, "Enable shadow mapping")
	flagFog        = flag.Bool("fog", false, "Enable distance fog")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagWatch      = flag.Bool("watch", false, "Reload the scene when its files change")
	flagScreenshot = flag.String("screenshot", "", "Render one frame to this PNG file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags applies CLI flag overrides to the config. Boolean toggles
// only override the file when they were given explicitly.
func applyFlags(cfg *Config, set map[string]bool) {
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagParam1 > 0 {
		cfg.Render.Param1 = *flagParam1
	}
	if *flagParam2 > 0 {
		cfg.Render.Param2 = *flagParam2
	}
	if set["shadows"] {
		cfg.Render.Shadows = *flagShadows
	}
	if set["fog"] {
		cfg.Render.Fog = *flagFog
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
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
	if *flagWatch {
		cfg.Scene.Watch = true
	}
	if *flagScreenshot != "" {
		cfg.Debug.Screenshot = *flagScreenshot
	}
}
