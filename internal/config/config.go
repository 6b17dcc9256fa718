// Package config provides YAML-based configuration loading for ThreeTile.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/registry"
)

// Config contains all configuration for the threetile command.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Stats   StatsConfig   `yaml:"stats"`
}

// RulesConfig names a preset and optional overrides. Zero values keep
// the preset's own setting.
type RulesConfig struct {
	Preset      string `yaml:"preset"`
	Capacity    int    `yaml:"capacity,omitempty"`
	Match       int    `yaml:"match,omitempty"`
	Propagation string `yaml:"propagation,omitempty"`
	Resolve     string `yaml:"resolve,omitempty"`
}

// LevelsConfig locates level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the logger verbosity: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StatsConfig tunes the stats command.
type StatsConfig struct {
	Workers int `yaml:"workers"` // 0 = one per level
}

// CoreRules resolves the configured preset and overrides.
func (c Config) CoreRules() (core.Rules, error) {
	return c.Rules.ToRules()
}

// ToRules looks up the preset and applies the overrides on top of it.
func (rc RulesConfig) ToRules() (core.Rules, error) {
	preset := rc.Preset
	if preset == "" {
		preset = "classic"
	}
	r, err := registry.Create(preset)
	if err != nil {
		return core.Rules{}, fmt.Errorf("config: %w", err)
	}
	if rc.Capacity > 0 {
		r.Capacity = rc.Capacity
	}
	if rc.Match > 0 {
		r.MatchCount = rc.Match
	}
	if rc.Propagation != "" {
		if r.Propagation, err = core.ParsePropagation(rc.Propagation); err != nil {
			return core.Rules{}, fmt.Errorf("config: %w", err)
		}
	}
	if rc.Resolve != "" {
		if r.Resolve, err = core.ParseResolvePolicy(rc.Resolve); err != nil {
			return core.Rules{}, fmt.Errorf("config: %w", err)
		}
	}
	if err := r.Validate(); err != nil {
		return core.Rules{}, fmt.Errorf("config: %w", err)
	}
	return r, nil
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	if strings.TrimSpace(c.Log.Level) == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
