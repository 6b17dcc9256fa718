package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/threetile/internal/config"
	"github.com/vovakirdan/threetile/internal/games/threetile/core"

	// Register rule presets
	_ "github.com/vovakirdan/threetile/internal/games/threetile"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(config.DefaultYAML(), &cfg))
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	rules, err := cfg.CoreRules()
	require.NoError(t, err)
	assert.Equal(t, core.ClassicRules(), rules)
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	writeFile(t, config.LocalConfigPath, "rules:\n  preset: vita\n")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "vita", cfg.Rules.Preset, "local file used when no user file exists")
	assert.Equal(t, "levels", cfg.Levels.Dir, "missing fields keep defaults")

	writeFile(t, filepath.Join(home, ".threetile", "config.yaml"), "log:\n  level: debug\n")
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.Rules.Preset, "user file wins over local file")
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadSkipsMalformedOptionalFiles(t *testing.T) {
	isolate(t)
	writeFile(t, config.LocalConfigPath, "rules: [not a map")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
rules:
  preset: classic
  capacity: 9
  match: 4
  propagation: cascade
  resolve: exact
stats:
  workers: 2
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Stats.Workers)

	rules, err := cfg.CoreRules()
	require.NoError(t, err)
	assert.Equal(t, 9, rules.Capacity)
	assert.Equal(t, 4, rules.MatchCount)
	assert.Equal(t, core.PropagationCascade, rules.Propagation)
	assert.Equal(t, core.ResolveExact, rules.Resolve)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "log: [")
	_, err = config.Load(bad)
	assert.Error(t, err)
}

func TestRulesConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		rc   config.RulesConfig
	}{
		{"unknown preset", config.RulesConfig{Preset: "nope"}},
		{"bad propagation", config.RulesConfig{Propagation: "sideways"}},
		{"bad resolve", config.RulesConfig{Resolve: "most"}},
		{"match above capacity", config.RulesConfig{Preset: "vita", Match: 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.rc.ToRules()
			assert.Error(t, err)
		})
	}
}

func TestLogLevel(t *testing.T) {
	testCases := map[string]log.Level{
		"":      log.InfoLevel,
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"loud":  log.InfoLevel,
	}
	for in, want := range testCases {
		cfg := config.Config{Log: config.LogConfig{Level: in}}
		assert.Equal(t, want, cfg.LogLevel(), "level %q", in)
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	got, err := config.ExpandHome("~/.threetile/sessions.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".threetile", "sessions.db"), got)

	got, err = config.ExpandHome("relative/path")
	require.NoError(t, err)
	assert.Equal(t, "relative/path", got)
}
