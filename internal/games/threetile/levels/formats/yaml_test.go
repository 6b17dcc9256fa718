package formats_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels/formats"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: sample
rules: vita
capacity: 5
resolve: exact
tiles:
  - {x: 0, y: 0, z: 0, c: 3}
  - {x: 2, y: 1, z: 1}
`)
	lvl, err := formats.ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "sample", lvl.ID)
	assert.Equal(t, "sample", lvl.Name, "name defaults to id")
	assert.Equal(t, "vita", lvl.Preset)
	assert.Equal(t, 5, lvl.Capacity)
	assert.Equal(t, "exact", lvl.Resolve)
	assert.Equal(t, []formats.Tile{
		{X: 0, Y: 0, Z: 0, Color: 3},
		{X: 2, Y: 1, Z: 1, Color: core.ColorUnspecified},
	}, lvl.Tiles)
}

func TestParseYAMLValidation(t *testing.T) {
	testCases := []struct {
		name string
		data string
		code string
	}{
		{"missing id", "tiles: [{x: 0, y: 0, z: 0, c: 1}]", "MISSING_ID"},
		{"no tiles", "id: a\ntiles: []", "NO_TILES"},
		{"negative capacity", "id: a\ncapacity: -1\ntiles: [{x: 0, y: 0, z: 0, c: 1}]", "INVALID_RULES"},
		{"bad propagation", "id: a\npropagation: sideways\ntiles: [{x: 0, y: 0, z: 0, c: 1}]", "INVALID_RULES"},
		{"bad resolve", "id: a\nresolve: some\ntiles: [{x: 0, y: 0, z: 0, c: 1}]", "INVALID_RULES"},
		{"color too large", "id: a\ntiles: [{x: 0, y: 0, z: 0, c: 62}]", "INVALID_COLOR"},
		{"color too small", "id: a\ntiles: [{x: 0, y: 0, z: 0, c: -2}]", "INVALID_COLOR"},
		{"negative coord", "id: a\ntiles: [{x: -1, y: 0, z: 0, c: 1}]", "OUT_OF_RANGE"},
		{"coord overflow", "id: a\ntiles: [{x: 0, y: 256, z: 0, c: 1}]", "OUT_OF_RANGE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tc.data))
			var verr formats.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := formats.ParseYAML([]byte("id: [unterminated"))
	require.Error(t, err)
	var verr formats.ValidationError
	assert.False(t, errors.As(err, &verr))
}
