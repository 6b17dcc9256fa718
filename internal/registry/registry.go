// Package registry provides a global registry of named rule presets.
// Presets register themselves in init() functions, so the CLI and config
// can resolve a preset name without hardcoding the list.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID         string
	Title      string
	Capacity   int
	MatchCount int
}

// Factory returns a fresh copy of a preset's rules.
type Factory func() core.Rules

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a preset to the registry.
// Panics if a preset with the same ID is already registered or if the
// factory yields invalid rules.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}
	if err := f().Validate(); err != nil {
		panic(fmt.Sprintf("registry: preset %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(factories))
	for id, f := range factories {
		r := f()
		result = append(result, PresetInfo{
			ID:         id,
			Title:      titles[id],
			Capacity:   r.Capacity,
			MatchCount: r.MatchCount,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns the rules of a preset by its ID.
func Create(id string) (core.Rules, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return core.Rules{}, fmt.Errorf("registry: unknown preset %q", id)
	}

	return f(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
