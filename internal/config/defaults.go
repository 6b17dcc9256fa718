package config

import (
	_ "embed"
)

//go:embed defaults/threetile.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			Preset:      "classic",
			Propagation: "direct",
			Resolve:     "all",
		},
		Levels:  LevelsConfig{Dir: "levels"},
		Storage: StorageConfig{Path: "~/.threetile/sessions.db"},
		Log:     LogConfig{Level: "info"},
		Stats:   StatsConfig{Workers: 4},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
