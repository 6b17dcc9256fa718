package main

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"

	"github.com/vovakirdan/threetile/internal/config"
	"github.com/vovakirdan/threetile/internal/games/threetile"
	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels"
	"github.com/vovakirdan/threetile/internal/storage"
)

// exitf prints an error line to stderr and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func levelLoader() *levels.Loader {
	dir, err := config.ExpandHome(cfg.Levels.Dir)
	if err != nil {
		exitf("%v", err)
	}
	return levels.NewLoader(dir)
}

// levelRules picks the preset for lvl: the --rules flag, else the level
// file's own preset, else the configured one. File overrides apply last.
func levelRules(lvl levels.Level, explicit bool) (core.Rules, string, error) {
	rc := cfg.Rules
	if !explicit && lvl.Preset != "" {
		rc.Preset = lvl.Preset
	}
	base, err := rc.ToRules()
	if err != nil {
		return core.Rules{}, "", err
	}
	rules, err := lvl.Rules(base)
	if err != nil {
		return core.Rules{}, "", err
	}
	name := rc.Preset
	if name == "" {
		name = "classic"
	}
	return rules, name, nil
}

// openGame loads a level by id and starts a session on it.
func openGame(id string, explicitRules bool) *threetile.Game {
	lvl, err := levelLoader().LoadByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'threetile list' to see available levels.")
		os.Exit(1)
	}
	rules, name, err := levelRules(lvl, explicitRules)
	if err != nil {
		exitf("%v", err)
	}
	g, err := threetile.NewGame(lvl, rules, logger)
	if err != nil {
		exitf("%v", err)
	}
	g.SetRulesName(name)
	return g
}

// playScript runs a space-separated token script on g. Quoting follows
// shell rules, so "t1,2 3" and 't1,2' '3' are equivalent.
func playScript(g *threetile.Game, script string) error {
	tokens, err := shellquote.Split(script)
	if err != nil {
		return fmt.Errorf("parse moves: %w", err)
	}
	for i, tok := range tokens {
		if err := g.Play(tok); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, tok, err)
		}
	}
	return nil
}

func saveGame(g *threetile.Game) (int64, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.SaveSession(g.Record())
}
