package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagMode        = flag.String("mode", "", "Tool mode (paint, build)")
	flagLockNormal  = flag.Bool("lock-normal", false, "Keep the construction plane normal fixed")
	flagWorldPixels = flag.Float64("world-pixels", 0, "Pixels per world unit")
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
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		cfg.Tool.Mode = *flagMode
	}
	if *flagLockNormal {
		cfg.Tool.LockNormal = true
	}
	if *flagWorldPixels > 0 {
		cfg.Grid.WorldPixels = *flagWorldPixels
	}
}
