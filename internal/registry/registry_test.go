package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/registry"
)

func TestRegisterAndCreate(t *testing.T) {
	registry.Register("test-wide", "Wide", func() core.Rules {
		r := core.ClassicRules()
		r.Capacity = 9
		return r
	})

	require.True(t, registry.Exists("test-wide"))
	r, err := registry.Create("test-wide")
	require.NoError(t, err)
	assert.Equal(t, 9, r.Capacity)
	assert.Equal(t, 3, r.MatchCount)

	infos := registry.List()
	var found bool
	for i, info := range infos {
		if i > 0 {
			assert.Less(t, infos[i-1].ID, info.ID)
		}
		if info.ID == "test-wide" {
			found = true
			assert.Equal(t, registry.PresetInfo{ID: "test-wide", Title: "Wide", Capacity: 9, MatchCount: 3}, info)
		}
	}
	assert.True(t, found)
}

func TestRegisterPanics(t *testing.T) {
	registry.Register("test-dup", "Dup", core.VitaRules)
	assert.Panics(t, func() { registry.Register("test-dup", "Dup", core.VitaRules) })

	assert.Panics(t, func() {
		registry.Register("test-invalid", "Invalid", func() core.Rules { return core.Rules{} })
	})
	assert.False(t, registry.Exists("test-invalid"))
}

func TestCreateUnknown(t *testing.T) {
	_, err := registry.Create("absent")
	assert.Error(t, err)
	assert.False(t, registry.Exists("absent"))
}
