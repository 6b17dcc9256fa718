// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

// ValidationError describes why a level file was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Rules       string            `yaml:"rules,omitempty"` // preset name
	Capacity    int               `yaml:"capacity,omitempty"`
	Match       int               `yaml:"match,omitempty"`
	Propagation string            `yaml:"propagation,omitempty"`
	Resolve     string            `yaml:"resolve,omitempty"`
	Tiles       []YAMLTile        `yaml:"tiles"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLTile is one tile entry. A missing color parses as unspecified.
type YAMLTile struct {
	X int  `yaml:"x"`
	Y int  `yaml:"y"`
	Z int  `yaml:"z"`
	C *int `yaml:"c"`
}

// Tile is a validated tile placement.
type Tile struct {
	X, Y, Z int
	Color   int
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Preset      string
	Capacity    int
	Match       int
	Propagation string
	Resolve     string
	Tiles       []Tile
	Metadata    map[string]string
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if len(yl.Tiles) == 0 {
		return Level{}, ValidationError{Code: "NO_TILES", Message: fmt.Sprintf("level %s has no tiles", yl.ID)}
	}
	if yl.Capacity < 0 || yl.Match < 0 {
		return Level{}, ValidationError{
			Code:    "INVALID_RULES",
			Message: fmt.Sprintf("capacity %d and match %d must not be negative", yl.Capacity, yl.Match),
		}
	}
	if _, err := core.ParsePropagation(yl.Propagation); err != nil {
		return Level{}, ValidationError{Code: "INVALID_RULES", Message: err.Error()}
	}
	if _, err := core.ParseResolvePolicy(yl.Resolve); err != nil {
		return Level{}, ValidationError{Code: "INVALID_RULES", Message: err.Error()}
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Preset:      yl.Rules,
		Capacity:    yl.Capacity,
		Match:       yl.Match,
		Propagation: yl.Propagation,
		Resolve:     yl.Resolve,
		Tiles:       make([]Tile, 0, len(yl.Tiles)),
		Metadata:    yl.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	for i, t := range yl.Tiles {
		color := core.ColorUnspecified
		if t.C != nil {
			color = *t.C
		}
		if color < core.ColorUnspecified || color > core.MaxColorIndex {
			return Level{}, ValidationError{
				Code:    "INVALID_COLOR",
				Message: fmt.Sprintf("tile %d has color %d outside %d..%d", i, color, core.ColorUnspecified, core.MaxColorIndex),
			}
		}
		if !inRange(t.X) || !inRange(t.Y) || !inRange(t.Z) {
			return Level{}, ValidationError{
				Code:    "OUT_OF_RANGE",
				Message: fmt.Sprintf("tile %d at (%d,%d,%d) outside 0..%d", i, t.X, t.Y, t.Z, core.MaxCoord),
			}
		}
		level.Tiles = append(level.Tiles, Tile{X: t.X, Y: t.Y, Z: t.Z, Color: color})
	}

	return level, nil
}

func inRange(v int) bool { return v >= 0 && v <= core.MaxCoord }

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
