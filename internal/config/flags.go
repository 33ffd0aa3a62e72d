package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAddr   = flag.String("addr", "", "Serve the result feed on this address")
	flagFPS    = flag.Int("fps", 0, "Frames per second")
	flagRounds = flag.Int("rounds", 0, "Stop after this many rounds")
	flagSeed   = flag.Uint64("seed", 0, "Seed for headless frame jitter")
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
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
		cfg.Server.Enabled = true
	}
	if *flagFPS > 0 {
		cfg.Loop.FPS = *flagFPS
	}
	if *flagRounds > 0 {
		cfg.Loop.MaxRounds = *flagRounds
	}
	if *flagSeed != 0 {
		cfg.Loop.Seed = *flagSeed
	}
}
