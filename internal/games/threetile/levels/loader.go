// Package levels loads ThreeTile level files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID for an unknown id.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Preset      string // rule preset named by the file, may be empty
	Capacity    int
	Match       int
	Propagation string
	Resolve     string
	Tiles       []formats.Tile
	Metadata    map[string]string
	FilePath    string
}

// Layout returns the packed positions and colors in tile order, ready for
// core.NewLevel.
func (l *Level) Layout() ([]core.Pos, []int) {
	positions := make([]core.Pos, len(l.Tiles))
	colors := make([]int, len(l.Tiles))
	for i, t := range l.Tiles {
		positions[i] = core.P(t.X, t.Y, t.Z)
		colors[i] = t.Color
	}
	return positions, colors
}

// Colors returns the distinct tile colors in ascending order.
func (l *Level) Colors() []int {
	colors := lo.Uniq(lo.Map(l.Tiles, func(t formats.Tile, _ int) int { return t.Color }))
	slices.Sort(colors)
	return colors
}

// Layers returns the number of layers the tiles start on.
func (l *Level) Layers() int {
	top := lo.MaxBy(l.Tiles, func(a, b formats.Tile) bool { return a.Z > b.Z })
	return top.Z + 1
}

// Rules applies the file's own overrides on top of base.
func (l *Level) Rules(base core.Rules) (core.Rules, error) {
	r := base
	if l.Capacity > 0 {
		r.Capacity = l.Capacity
	}
	if l.Match > 0 {
		r.MatchCount = l.Match
	}
	if l.Propagation != "" {
		p, err := core.ParsePropagation(l.Propagation)
		if err != nil {
			return core.Rules{}, err
		}
		r.Propagation = p
	}
	if l.Resolve != "" {
		p, err := core.ParseResolvePolicy(l.Resolve)
		if err != nil {
			return core.Rules{}, err
		}
		r.Resolve = p
	}
	if err := r.Validate(); err != nil {
		return core.Rules{}, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return r, nil
}

// Build creates a fresh core level under the given rules. File overrides
// are not applied; call Rules first for that.
func (l *Level) Build(rules core.Rules) (*core.Level, error) {
	positions, colors := l.Layout()
	lvl, err := core.NewLevel(positions, colors, rules)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return lvl, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	slices.SortFunc(levels, func(a, b Level) int { return strings.Compare(a.ID, b.ID) })
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Preset:      parsed.Preset,
		Capacity:    parsed.Capacity,
		Match:       parsed.Match,
		Propagation: parsed.Propagation,
		Resolve:     parsed.Resolve,
		Tiles:       parsed.Tiles,
		Metadata:    parsed.Metadata,
		FilePath:    path,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	lvl, ok := lo.Find(levels, func(lvl Level) bool { return lvl.ID == id })
	if !ok {
		return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return lvl, nil
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return lo.Map(levels, func(lvl Level, _ int) string { return lvl.ID }), nil
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
